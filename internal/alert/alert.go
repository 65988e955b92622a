// Package alert tells operators about failures that need a human.
package alert

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"pack/pkg/email"
)

// SignupRollback describes a signup whose profile insert failed after the
// user row was written.
type SignupRollback struct {
	UserID      int
	Username    string
	Role        string
	Step        string
	Cause       error
	RollbackErr error // nil when the user row was removed
	At          time.Time
}

// Alerter delivers alerts. Delivery is best effort and never fails the caller.
type Alerter interface {
	SignupRollback(ctx context.Context, d SignupRollback)
}

type LogAlerter struct{}

func (LogAlerter) SignupRollback(_ context.Context, d SignupRollback) {
	entry := fields(d)
	if d.RollbackErr != nil {
		entry.Error("signup rollback failed, orphan user row left behind")
		return
	}
	entry.Warn("signup rolled back")
}

type rollbackMailer interface {
	SendSignupRollback(from string, to []string, data email.SignupRollbackData) error
}

// EmailAlerter mails operators and always logs as well.
type EmailAlerter struct {
	mailer     rollbackMailer
	from       string
	recipients []string
}

func NewEmailAlerter(mailer rollbackMailer, from string, recipients []string) *EmailAlerter {
	return &EmailAlerter{mailer: mailer, from: from, recipients: recipients}
}

func (a *EmailAlerter) SignupRollback(ctx context.Context, d SignupRollback) {
	LogAlerter{}.SignupRollback(ctx, d)

	data := email.SignupRollbackData{
		UserID:   strconv.Itoa(d.UserID),
		Username: d.Username,
		Role:     d.Role,
		Step:     d.Step,
		Cause:    errString(d.Cause),
		At:       d.At,
	}
	if d.RollbackErr != nil {
		data.RollbackErr = d.RollbackErr.Error()
	}
	if err := a.mailer.SendSignupRollback(a.from, a.recipients, data); err != nil {
		fields(d).WithField("mail_error", err.Error()).Error("send signup rollback alert failed")
	}
}

// New picks the email alerter when SMTP and recipients are configured.
func New(mailer rollbackMailer, from string, recipients []string, smtpHost string) Alerter {
	if mailer == nil || smtpHost == "" || len(recipients) == 0 {
		return LogAlerter{}
	}
	return NewEmailAlerter(mailer, from, recipients)
}

func fields(d SignupRollback) *logrus.Entry {
	f := logrus.Fields{
		"user_id":  d.UserID,
		"username": d.Username,
		"role":     d.Role,
		"step":     d.Step,
		"cause":    errString(d.Cause),
	}
	if d.RollbackErr != nil {
		f["rollback_error"] = d.RollbackErr.Error()
	}
	return logrus.WithFields(f)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
