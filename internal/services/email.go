package services

import (
	"context"
	"fmt"
	"log"

	"bookingcalendar/internal/domain"
)

const bookingConfirmationTemplate = "booking_confirmation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendBookingConfirmation renders the booking_confirmation template and mails it to the requester.
func (s *emailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("booking confirmation data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("booking confirmation has no recipient")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(bookingConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", bookingConfirmationTemplate, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	log.Printf("[EMAIL] Booking confirmation for %s sent to %s", data.SlotID, data.Email)
	return nil
}
