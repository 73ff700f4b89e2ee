package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"padelhub/internal/shared/config"
	"padelhub/pkg/logger"
)

// EmailService delivers a notification to its recipient.
type EmailService interface {
	Send(ctx context.Context, notification *EmailNotification) error
}

// NewEmailService returns the SMTP sender when SMTP is configured, otherwise
// a log-backed stub so the pipeline still works in development.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.SMTPHost == "" {
		return &logEmailService{log: logger.GetDefault()}
	}
	return &smtpEmailService{cfg: cfg, log: logger.GetDefault()}
}

type smtpEmailService struct {
	cfg config.EmailConfig
	log *logger.Logger
}

func (s *smtpEmailService) Send(ctx context.Context, notification *EmailNotification) error {
	if notification.RecipientEmail == "" {
		return fmt.Errorf("notification %s has no recipient email", notification.ID)
	}

	body := renderBody(notification)
	msg := strings.Join([]string{
		"From: " + s.cfg.FromEmail,
		"To: " + notification.RecipientEmail,
		"Subject: " + notification.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{notification.RecipientEmail}, []byte(msg)); err != nil {
		notification.Status = NotificationStatusFailed
		return fmt.Errorf("failed to send email: %w", err)
	}

	now := time.Now()
	notification.Status = NotificationStatusSent
	notification.SentAt = &now

	s.log.InfoContext(ctx, "reservation email sent",
		"notification_id", notification.ID,
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
	)
	return nil
}

// logEmailService stands in for SMTP in development: deliveries are logged,
// never sent.
type logEmailService struct {
	log *logger.Logger
}

func (s *logEmailService) Send(ctx context.Context, notification *EmailNotification) error {
	now := time.Now()
	notification.Status = NotificationStatusSent
	notification.SentAt = &now

	s.log.InfoContext(ctx, "email delivery skipped (SMTP not configured)",
		"notification_id", notification.ID,
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
		"subject", notification.Subject,
		"body", renderBody(notification),
	)
	return nil
}

func renderBody(n *EmailNotification) string {
	data := n.TemplateData
	switch n.Type {
	case NotificationTypeReservationConfirmed:
		return fmt.Sprintf(
			"Your reservation is confirmed!\n\n"+
				"Booking reference: %s\n"+
				"Club: %s\nCourt: %s\nDate: %s\nTime: %s\nPrice: %s\n\n"+
				"See you on the court!",
			n.BookingRef, data["club_name"], data["court_name"], data["date"], data["slot_label"], data["price"],
		)
	case NotificationTypeReservationCancelled:
		return fmt.Sprintf(
			"Your reservation %s has been cancelled.\n\n"+
				"Club: %s\nCourt: %s\nDate: %s\nTime: %s\n\n"+
				"The slot is open for booking again.",
			n.BookingRef, data["club_name"], data["court_name"], data["date"], data["slot_label"],
		)
	default:
		return fmt.Sprintf("Notification %s (%s)", n.ID, n.Type)
	}
}
