package mailer

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/samandr77/microservices/challenge/pkg/config"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Client struct {
	cfg    config.MailerConfig
	dialer dialer
}

func New(cfg config.MailerConfig) *Client {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Login, cfg.Password)

	d.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	return &Client{
		cfg:    cfg,
		dialer: d,
	}
}

func (c *Client) newMessage(subject, text string, recipients []string) *gomail.Message {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)

	msg.SetAddressHeader("From", c.cfg.From, c.cfg.FromName)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)

	return msg
}

func (c *Client) SendMessage(subject, text string, recipients []string) error {
	err := c.dialer.DialAndSend(c.newMessage(subject, text, recipients))
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
