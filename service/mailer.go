// Package service holds the business logic behind the HTTP handlers
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Notifier delivers account mail. Split out as an interface so the
// account service can be tested without an SMTP server
type Notifier interface {
	SendConfirmation(ctx context.Context, email, token string) error
	SendTempPassword(ctx context.Context, email, password string) error
}

// Mailer sends account mail over SMTP. All settings are passed in at
// construction time instead of being read from globals at send time
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	baseURL     string
	sendTimeout time.Duration
}

// NewMailer builds a Mailer from the mail.* and host.* config sections
func NewMailer() *Mailer {
	scheme := "http"
	if viper.GetBool("host.ssl_enabled") {
		scheme = "https"
	}

	from := viper.GetString("mail.from")

	return &Mailer{
		dialer: gomail.NewDialer(
			viper.GetString("mail.host"),
			viper.GetInt("mail.port"),
			viper.GetString("mail.username"),
			viper.GetString("mail.password"),
		),
		from:        from,
		baseURL:     fmt.Sprintf("%s://%s", scheme, viper.GetString("host.domain")),
		sendTimeout: time.Duration(viper.GetInt("mail.send_timeout")) * time.Second,
	}
}

func (m *Mailer) SendConfirmation(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/api/users/confirm/%s", m.baseURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Confirm your email address")
	msg.SetBody("text/html", fmt.Sprintf("Click <a href='%s'>here</a> to confirm your email address and activate your account.", link))

	return m.send(ctx, msg)
}

func (m *Mailer) SendTempPassword(ctx context.Context, email, password string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your new password")
	msg.SetBody("text/plain", fmt.Sprintf("Your new password: %s\n\nPlease change it after logging in.", password))

	return m.send(ctx, msg)
}

// send runs DialAndSend under a bounded timeout. gomail has no context
// support of its own, so the dial runs in a goroutine and the slow path
// is abandoned rather than blocking the request forever
func (m *Mailer) send(ctx context.Context, msg *gomail.Message) error {
	ctx, cancel := context.WithTimeout(ctx, m.sendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("mail send timed out, %w", ctx.Err())
	}
}
