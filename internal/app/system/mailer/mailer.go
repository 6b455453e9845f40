// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Email is one outbound message.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends notification email over SMTP. Workflow code only ever calls
// SendAsync: delivery is best-effort and must never decide, delay, or roll
// back a workflow outcome. Failures are logged and dropped.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	log      *zap.Logger
}

// Config holds SMTP settings for the Mailer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// New constructs a Mailer. An empty host disables sending; SendAsync
// becomes a logged no-op, which keeps dev and test environments quiet.
func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		fromName: cfg.FromName,
		log:      logger,
	}
}

// SendAsync dispatches the email on its own goroutine and returns
// immediately. Callers must have already committed their state change;
// nothing here can affect the request outcome or its latency.
func (m *Mailer) SendAsync(email Email) {
	go func() {
		if err := m.send(email); err != nil {
			m.log.Warn("email send failed",
				zap.String("to", email.To),
				zap.String("subject", email.Subject),
				zap.Error(err))
			return
		}
		m.log.Debug("email sent",
			zap.String("to", email.To),
			zap.String("subject", email.Subject))
	}()
}

func (m *Mailer) send(email Email) error {
	if m.host == "" {
		m.log.Debug("mailer disabled, dropping email", zap.String("subject", email.Subject))
		return nil
	}
	if email.To == "" {
		return fmt.Errorf("empty recipient")
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	msg := m.buildMessage(email)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{email.To}, msg)
}

func (m *Mailer) buildMessage(email Email) []byte {
	var b strings.Builder
	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		boundary := "scholarhub-alt-boundary"
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, email.TextBody)
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, email.HTMLBody)
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	} else {
		fmt.Fprintf(&b, "Content-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", email.TextBody)
	}
	return []byte(b.String())
}
