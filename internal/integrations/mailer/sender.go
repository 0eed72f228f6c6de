package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

const defaultFrom = "no-reply@ev-charging.local"

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender отправляет письма через SMTP
// PLAIN авторизация включается, если задан username
type SMTPSender struct {
	addr     string
	from     string
	auth     smtp.Auth
	sendMail sendFunc
}

// NewSMTPSender создает отправителя для host:port
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	from = strings.TrimSpace(from)
	if from == "" {
		from = defaultFrom
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		from:     from,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

// Send отправляет текстовое письмо одному получателю
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	msg, err := buildMessage(s.from, to, subject, body)
	if err != nil {
		return err
	}

	if err := s.sendMail(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSend, to, err)
	}
	return nil
}

// LogSender пишет письма в лог вместо отправки, используется при [mail].enabled = false
type LogSender struct {
	log Logger
}

func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	if _, err := buildMessage(defaultFrom, to, subject, body); err != nil {
		return err
	}
	s.log.Info("mailer: (disabled) to=%s subject=%q body_len=%d", to, subject, len(body))
	return nil
}

func buildMessage(from, to, subject, body string) ([]byte, error) {
	to = strings.TrimSpace(to)
	if to == "" || strings.ContainsAny(to+subject, "\r\n") {
		return nil, fmt.Errorf("%w: to=%q subject=%q", ErrInvalidMessage, to, subject)
	}

	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
	return []byte(msg), nil
}
