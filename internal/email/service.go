package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/healthkey/healthkey-api/pkg/circuitbreaker"
	"github.com/healthkey/healthkey-api/pkg/logger"
)

type Service interface {
	SendApprovalResult(ctx context.Context, to, name, role string, approved bool) error
	SendWelcome(ctx context.Context, to, name string) error
}

type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type smtpService struct {
	dialer  *gomail.Dialer
	from    string
	breaker *circuitbreaker.CircuitBreaker
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		// A dead relay should not hold every review action hostage.
		breaker: circuitbreaker.New(circuitbreaker.Settings{Name: "smtp"}),
	}
}

func (s *smtpService) SendApprovalResult(ctx context.Context, to, name, role string, approved bool) error {
	subject := fmt.Sprintf("HealthKey %s registration update", role)
	body := fmt.Sprintf("Hello %s,\n\nYour %s registration was rejected. Contact support for details.\n", name, role)
	if approved {
		body = fmt.Sprintf("Hello %s,\n\nYour %s registration has been approved. You can now sign in to your portal.\n", name, role)
	}
	return s.send(to, subject, body)
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	return s.send(to, "Welcome to HealthKey", fmt.Sprintf("Hello %s,\n\nYour HealthKey account is ready.\n", name))
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	err := s.breaker.Execute(func() error {
		return s.dialer.DialAndSend(m)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// noopService logs instead of sending; used when SMTP is not configured.
type noopService struct {
	log *logger.Logger
}

func NewNoopService(log *logger.Logger) Service {
	return &noopService{log: log}
}

func (s *noopService) SendApprovalResult(ctx context.Context, to, name, role string, approved bool) error {
	s.log.Info("email suppressed (no SMTP config)", "to", to, "role", role, "approved", approved)
	return nil
}

func (s *noopService) SendWelcome(ctx context.Context, to, name string) error {
	s.log.Info("email suppressed (no SMTP config)", "to", to)
	return nil
}
