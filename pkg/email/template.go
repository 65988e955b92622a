package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

type Template struct {
	tmpl *template.Template
}

func NewTemplate(htmlContent string) (*Template, error) {
	tmpl, err := template.New("email").Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("parse email template: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

// MustTemplate panics on a malformed built-in template.
func MustTemplate(htmlContent string) *Template {
	t, err := NewTemplate(htmlContent)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return buf.String(), nil
}

func (c *Client) SendWithTemplate(from string, to []string, subject string, tmpl *Template, data any) error {
	body, err := tmpl.Render(data)
	if err != nil {
		return err
	}
	return c.SendHTML(from, to, subject, body)
}

const VerificationCodeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1d70b8; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .code { font-size: 32px; font-weight: bold; color: #1d70b8; text-align: center;
                letter-spacing: 5px; padding: 20px; background-color: #fff; border: 2px dashed #1d70b8; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
        </div>
        <div class="content">
            <p>Hello,</p>
            <p>{{.Message}}</p>
            <div class="code">{{.Code}}</div>
            <p>This code expires in {{.ExpireMinutes}} minutes.</p>
            <p>If you did not ask for this, you can ignore this email.</p>
        </div>
        <div class="footer">
            <p>This is an automated message from Pack. Please do not reply.</p>
        </div>
    </div>
</body>
</html>
`

type VerificationCodeData struct {
	Title         string
	Message       string
	Code          string
	ExpireMinutes int
}

var verificationCode = MustTemplate(VerificationCodeTemplate)

// SendVerificationCode mails a code that confirms a new address.
func (c *Client) SendVerificationCode(from string, to string, code string, expireMinutes int) error {
	data := VerificationCodeData{
		Title:         "Confirm your email address",
		Message:       "Enter this code in Pack to confirm your new email address:",
		Code:          code,
		ExpireMinutes: expireMinutes,
	}
	return c.SendWithTemplate(from, []string{to}, "[Pack] Email verification code", verificationCode, data)
}

const SignupRollbackTemplate = `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: monospace;">
    <h2>Signup rollback</h2>
    <table>
        <tr><td>User ID</td><td>{{.UserID}}</td></tr>
        <tr><td>Username</td><td>{{.Username}}</td></tr>
        <tr><td>Role</td><td>{{.Role}}</td></tr>
        <tr><td>Failed step</td><td>{{.Step}}</td></tr>
        <tr><td>Cause</td><td>{{.Cause}}</td></tr>
        <tr><td>Rollback</td><td>{{if .RollbackErr}}FAILED: {{.RollbackErr}}{{else}}ok{{end}}</td></tr>
        <tr><td>At</td><td>{{.At.Format "2006-01-02T15:04:05Z07:00"}}</td></tr>
    </table>
    {{if .RollbackErr}}<p><strong>The user row may still exist. Remove it by hand.</strong></p>{{end}}
</body>
</html>
`

type SignupRollbackData struct {
	UserID      string
	Username    string
	Role        string
	Step        string
	Cause       string
	RollbackErr string
	At          time.Time
}

var signupRollback = MustTemplate(SignupRollbackTemplate)

// SendSignupRollback notifies operators that a signup was compensated.
func (c *Client) SendSignupRollback(from string, to []string, data SignupRollbackData) error {
	subject := "[Pack] Signup rolled back"
	if data.RollbackErr != "" {
		subject = "[Pack] Signup rollback FAILED"
	}
	return c.SendWithTemplate(from, to, subject, signupRollback, data)
}
