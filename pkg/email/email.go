package email

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// Config is the SMTP relay setup.
type Config struct {
	Host     string `koanf:"host"`     // e.g. smtp.office365.com
	Port     int    `koanf:"port"`     // 587 (STARTTLS) or 25
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	UseTLS   bool   `koanf:"tls"`
}

// Message is one outgoing mail.
type Message struct {
	From        string // "Pack <noreply@pack.school>"
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	ContentType string // defaults to text/plain
}

type Client struct {
	config *Config
}

func NewClient(config *Config) *Client {
	if config.Port == 0 {
		config.Port = 587
	}
	return &Client{config: config}
}

// Send delivers msg through the configured relay.
func (c *Client) Send(msg *Message) error {
	raw, err := msg.Bytes()
	if err != nil {
		return err
	}

	recipients := append([]string{}, msg.To...)
	recipients = append(recipients, msg.Cc...)
	recipients = append(recipients, msg.Bcc...)

	auth := smtp.PlainAuth("", c.config.Username, c.config.Password, c.config.Host)
	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)

	if c.config.UseTLS || c.config.Port == 587 {
		return c.sendWithTLS(addr, auth, msg.From, recipients, raw)
	}

	return smtp.SendMail(addr, auth, msg.From, recipients, raw)
}

// Bytes renders the headers and body. Header order is fixed.
func (m *Message) Bytes() ([]byte, error) {
	if m.From == "" {
		return nil, errors.New("email: sender is empty")
	}
	if len(m.To) == 0 {
		return nil, errors.New("email: no recipients")
	}
	if m.Subject == "" {
		return nil, errors.New("email: subject is empty")
	}
	if m.ContentType == "" {
		m.ContentType = "text/plain; charset=UTF-8"
	}

	var b strings.Builder
	writeHeader := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}
	writeHeader("From", m.From)
	writeHeader("To", strings.Join(m.To, ", "))
	if len(m.Cc) > 0 {
		writeHeader("Cc", strings.Join(m.Cc, ", "))
	}
	writeHeader("Subject", m.Subject)
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", m.ContentType)
	b.WriteString("\r\n")
	b.WriteString(m.Body)

	return []byte(b.String()), nil
}

func (c *Client) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: c.config.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, recipient := range to {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", recipient, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}

	return client.Quit()
}

func (c *Client) SendSimple(from string, to []string, subject string, body string) error {
	return c.Send(&Message{
		From:    from,
		To:      to,
		Subject: subject,
		Body:    body,
	})
}

func (c *Client) SendHTML(from string, to []string, subject string, htmlBody string) error {
	return c.Send(&Message{
		From:        from,
		To:          to,
		Subject:     subject,
		Body:        htmlBody,
		ContentType: "text/html; charset=UTF-8",
	})
}
