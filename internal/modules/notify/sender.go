package notify

import (
	"context"
	"fmt"
	"log"

	"venuebook/internal/config"
	"venuebook/internal/domain"

	"gopkg.in/gomail.v2"
)

// Sender delivers booking notifications: email to the customer and admin,
// plus a push to the admin dashboard over the hub. Email sends run in a
// goroutine so request latency never depends on the SMTP server; failures
// are logged and swallowed.
type Sender struct {
	smtp config.SMTP
	hub  *Hub
}

func NewSender(smtp config.SMTP, hub *Hub) *Sender {
	return &Sender{smtp: smtp, hub: hub}
}

func (s *Sender) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	s.hub.Broadcast(map[string]interface{}{
		"event":   "booking.created",
		"booking": b,
	})

	subject := fmt.Sprintf("Booking request received for %s", b.EventDate)
	body := customerCreatedBody(b)
	s.sendAsync(b.CustomerEmail, subject, body)

	if s.smtp.AdminTo != "" {
		adminSubject := fmt.Sprintf("New %s request: %s on %s", b.Type, b.CustomerName, b.EventDate)
		s.sendAsync(s.smtp.AdminTo, adminSubject, adminCreatedBody(b))
	}
	return nil
}

func (s *Sender) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error {
	s.hub.Broadcast(map[string]interface{}{
		"event":   "booking.cancelled",
		"booking": b,
	})

	subject := fmt.Sprintf("Booking cancelled for %s", b.EventDate)
	s.sendAsync(b.CustomerEmail, subject, customerCancelledBody(b))

	if s.smtp.AdminTo != "" {
		adminSubject := fmt.Sprintf("Cancelled: %s on %s", b.CustomerName, b.EventDate)
		s.sendAsync(s.smtp.AdminTo, adminSubject, customerCancelledBody(b))
	}
	return nil
}

func (s *Sender) sendAsync(to, subject, body string) {
	if s.smtp.Host == "" || to == "" {
		return
	}

	go func() {
		m := gomail.NewMessage()
		m.SetHeader("From", s.smtp.From)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", body)

		d := gomail.NewDialer(s.smtp.Host, s.smtp.Port, s.smtp.Username, s.smtp.Password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("level=error msg=\"email send failed\" to=%s err=%v", to, err)
		}
	}()
}

func customerCreatedBody(b *domain.Booking) string {
	if b.Type == domain.BookingShowing {
		return fmt.Sprintf(
			"Hi %s,\n\nYour venue showing is scheduled for %s at %s.\n\nWe look forward to seeing you.\n",
			b.CustomerName, b.EventDate, b.StartTime.Format("15:04"),
		)
	}
	return fmt.Sprintf(
		"Hi %s,\n\nWe received your booking request for %s, %s-%s.\n\nTotal: $%.2f (deposit $%.2f). Your booking is pending until the deposit is paid and the contract is signed.\n",
		b.CustomerName, b.EventDate,
		b.StartTime.Format("15:04"), b.EndTime.Format("15:04"),
		float64(b.TotalCents)/100, float64(b.DepositCents)/100,
	)
}

func adminCreatedBody(b *domain.Booking) string {
	return fmt.Sprintf(
		"Type: %s\nDate: %s\nTime: %s-%s\nCustomer: %s <%s> %s\nGuests: %d\nTotal: $%.2f\n",
		b.Type, b.EventDate,
		b.StartTime.Format("15:04"), b.EndTime.Format("15:04"),
		b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.GuestCount, float64(b.TotalCents)/100,
	)
}

func customerCancelledBody(b *domain.Booking) string {
	return fmt.Sprintf(
		"The %s booking for %s (%s) has been cancelled.\n",
		b.Type, b.EventDate, b.CustomerName,
	)
}
