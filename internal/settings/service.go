package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"pack/internal/code"
	"pack/internal/model"
	"pack/internal/user"
	"pack/pkg/response"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	lowerRegex = regexp.MustCompile(`[a-z]`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

// bcrypt rejects longer input
const maxPasswordBytes = 72

type UserStore interface {
	FindByID(ctx context.Context, id int) (*model.User, error)
	EmailInUse(ctx context.Context, email string, exceptID int) (bool, error)
	UpdateEmail(ctx context.Context, id int, email string) error
	UpdatePassword(ctx context.Context, id int, hash string) error
	SetProgressEmails(ctx context.Context, userID int, enabled bool) error
}

type CodeStore interface {
	Save(ctx context.Context, userID int, email, code string) error
	Consume(ctx context.Context, userID int, email, code string) error
	Allow(ctx context.Context, userID int, email string) (bool, error)
	TTL() time.Duration
}

type Mailer interface {
	SendVerificationCode(from string, to string, code string, expireMinutes int) error
}

type SessionIssuer interface {
	Issue(ctx context.Context, userID int, flow string) (*model.Session, error)
}

type Service struct {
	users      UserStore
	codes      CodeStore
	mailer     Mailer
	issuer     SessionIssuer
	from       string
	codeLength int
	bcryptCost int
}

func NewService(users UserStore, codes CodeStore, mailer Mailer, issuer SessionIssuer, from string, codeLength, bcryptCost int) *Service {
	return &Service{
		users:      users,
		codes:      codes,
		mailer:     mailer,
		issuer:     issuer,
		from:       from,
		codeLength: codeLength,
		bcryptCost: bcryptCost,
	}
}

// SendEmailCode mails a code to the address the user wants to switch to.
// Sends are rate limited per user and per address.
func (s *Service) SendEmailCode(ctx context.Context, id *model.Identity, email string) *response.BusinessError {
	email, bizErr := s.checkNewEmail(ctx, id, email)
	if bizErr != nil {
		return bizErr
	}

	ok, err := s.codes.Allow(ctx, id.UserID, email)
	if err != nil {
		return response.Internal(err)
	}
	if !ok {
		logrus.WithField("user_id", id.UserID).Warn("verification code rate limit hit")
		return response.Throttled("Too many codes requested, try again later")
	}

	c, err := code.Generate(s.codeLength)
	if err != nil {
		return response.Internal(err)
	}
	if err := s.codes.Save(ctx, id.UserID, email, c); err != nil {
		return response.Internal(err)
	}
	if err := s.mailer.SendVerificationCode(s.from, email, c, int(s.codes.TTL()/time.Minute)); err != nil {
		return response.Internal(fmt.Errorf("send verification code: %w", err))
	}
	return nil
}

func (s *Service) ChangeEmail(ctx context.Context, id *model.Identity, email, c string) *response.BusinessError {
	email, bizErr := s.checkNewEmail(ctx, id, email)
	if bizErr != nil {
		return bizErr
	}

	if err := s.codes.Consume(ctx, id.UserID, email, strings.TrimSpace(c)); err != nil {
		if errors.Is(err, code.ErrExpired) || errors.Is(err, code.ErrMismatch) {
			return response.Invalid("Verification code is invalid or has expired")
		}
		return response.Internal(err)
	}

	if err := s.users.UpdateEmail(ctx, id.UserID, email); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return response.Conflict("Email already in use")
		}
		return response.Internal(err)
	}
	return nil
}

func (s *Service) checkNewEmail(ctx context.Context, id *model.Identity, email string) (string, *response.BusinessError) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return "", response.Invalid("Email address is not valid")
	}
	if email == id.Email {
		return "", response.Invalid("That is already your email address")
	}
	inUse, err := s.users.EmailInUse(ctx, email, id.UserID)
	if err != nil {
		return "", response.Internal(err)
	}
	if inUse {
		return "", response.Conflict("Email already in use")
	}
	return email, nil
}

// ChangePassword stores a new hash and replaces every session of the user
// with the returned one.
func (s *Service) ChangePassword(ctx context.Context, id *model.Identity, req ChangePasswordRequest) (*model.Session, *response.BusinessError) {
	if len(req.NewPassword) < 8 || len(req.NewPassword) > maxPasswordBytes {
		return nil, response.Invalid("Password must be 8-72 characters")
	}
	if !upperRegex.MatchString(req.NewPassword) || !lowerRegex.MatchString(req.NewPassword) || !digitRegex.MatchString(req.NewPassword) {
		return nil, response.Invalid("Password needs an upper-case letter, a lower-case letter and a digit")
	}

	u, err := s.users.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, response.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, response.Invalid("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return nil, response.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, id.UserID, string(hash)); err != nil {
		return nil, response.Internal(err)
	}

	sess, err := s.issuer.Issue(ctx, id.UserID, "password_change")
	if err != nil {
		return nil, response.Internal(err)
	}
	logrus.WithField("user_id", id.UserID).Info("password changed, other sessions ended")
	return sess, nil
}

func (s *Service) SetProgressEmails(ctx context.Context, id *model.Identity, enabled bool) *response.BusinessError {
	if err := s.users.SetProgressEmails(ctx, id.UserID, enabled); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return response.NotFound("Student profile not found")
		}
		return response.Internal(err)
	}
	return nil
}
