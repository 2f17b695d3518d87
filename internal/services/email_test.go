package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingcalendar/internal/domain"
)

type fakeMailer struct {
	to, subject string
	err         error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	f.to, f.subject = to, subject
	return f.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.name = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

func TestEmailService_SendBookingConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer)

	err := svc.SendBookingConfirmation(context.Background(), &domain.BookingConfirmationEmailData{Email: "jane@example.com", SlotID: "SLOT_2025-06-10_0900"})
	require.NoError(t, err)
	assert.Equal(t, "booking_confirmation", renderer.name)
	assert.Equal(t, "jane@example.com", mailer.to)
	assert.Equal(t, "subject", mailer.subject)

	assert.Error(t, svc.SendBookingConfirmation(context.Background(), nil))
	assert.Error(t, svc.SendBookingConfirmation(context.Background(), &domain.BookingConfirmationEmailData{}))

	renderer.err = errors.New("bad template")
	assert.Error(t, svc.SendBookingConfirmation(context.Background(), &domain.BookingConfirmationEmailData{Email: "jane@example.com"}))

	renderer.err = nil
	mailer.err = errors.New("ses down")
	assert.Error(t, svc.SendBookingConfirmation(context.Background(), &domain.BookingConfirmationEmailData{Email: "jane@example.com"}))
}
