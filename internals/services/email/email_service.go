// file: internals/services/email/email_service.go
package email

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"eduanalytics_backend/internals/configs"
)

// Service sends transactional mail. Controllers depend on this interface so
// tests and local setups can run without SendGrid.
type Service interface {
	SendPasswordReset(toEmail, toName, resetURL string) error
	SendPasswordChanged(toEmail, toName string) error
	SendParentVerificationRequest(toEmail, parentName, studentName string) error
	SendParentVerificationApproval(toEmail, toName, studentName string) error
}

// New returns the SendGrid-backed sender when an API key is configured and a
// console logger otherwise.
func New(cfg configs.EmailConfig) Service {
	if cfg.SendgridKey == "" {
		log.Println("[EMAIL] SENDGRID_API_KEY not set, emails will be logged to console")
		return &ConsoleService{}
	}
	return &SendgridService{cfg: cfg, client: sendgrid.NewSendClient(cfg.SendgridKey)}
}

type SendgridService struct {
	cfg    configs.EmailConfig
	client *sendgrid.Client
}

func (s *SendgridService) send(toEmail, toName, subject, plain, html string) error {
	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromAddress)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *SendgridService) SendPasswordReset(toEmail, toName, resetURL string) error {
	subject := "Reset your EduAnalytics password"
	plain := fmt.Sprintf("Hi %s,\n\nUse the link below to reset your password. It expires in one hour.\n\n%s\n\nIf you did not request this, you can ignore this email.", toName, resetURL)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Use the link below to reset your password. It expires in one hour.</p><p><a href="%s">Reset password</a></p><p>If you did not request this, you can ignore this email.</p>`, toName, resetURL)
	return s.send(toEmail, toName, subject, plain, html)
}

func (s *SendgridService) SendPasswordChanged(toEmail, toName string) error {
	subject := "Your EduAnalytics password was changed"
	plain := fmt.Sprintf("Hi %s,\n\nYour password was just changed. If this was not you, contact your school administrator immediately.", toName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your password was just changed. If this was not you, contact your school administrator immediately.</p>", toName)
	return s.send(toEmail, toName, subject, plain, html)
}

func (s *SendgridService) SendParentVerificationRequest(toEmail, parentName, studentName string) error {
	subject := "New parent access request"
	plain := fmt.Sprintf("%s has requested access to %s's records. Review the request under Parent Requests in your admin dashboard.", parentName, studentName)
	html := fmt.Sprintf("<p>%s has requested access to %s's records.</p><p>Review the request under Parent Requests in your admin dashboard.</p>", parentName, studentName)
	return s.send(toEmail, "", subject, plain, html)
}

func (s *SendgridService) SendParentVerificationApproval(toEmail, toName, studentName string) error {
	subject := "Your parent account link was approved"
	plain := fmt.Sprintf("Hi %s,\n\nYour link to %s has been verified by the school. You can now view their progress on your dashboard.", toName, studentName)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your link to %s has been verified by the school. You can now view their progress on your dashboard.</p>", toName, studentName)
	return s.send(toEmail, toName, subject, plain, html)
}

// ConsoleService logs instead of sending. Used in development and tests.
type ConsoleService struct{}

func (ConsoleService) SendPasswordReset(toEmail, _ string, resetURL string) error {
	log.Printf("[EMAIL] password reset for %s: %s", toEmail, resetURL)
	return nil
}

func (ConsoleService) SendPasswordChanged(toEmail, _ string) error {
	log.Printf("[EMAIL] password changed notice for %s", toEmail)
	return nil
}

func (ConsoleService) SendParentVerificationRequest(toEmail, parentName, studentName string) error {
	log.Printf("[EMAIL] parent verification request to %s: %s for %s", toEmail, parentName, studentName)
	return nil
}

func (ConsoleService) SendParentVerificationApproval(toEmail, _, studentName string) error {
	log.Printf("[EMAIL] parent verification approval for %s (student %s)", toEmail, studentName)
	return nil
}
