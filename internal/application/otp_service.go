package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eazydocs/eazydocs-backend/internal/domain/repository"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
)

var (
	// ErrOTPExpired covers both never-issued and expired codes; a consumed
	// code also reports expired, so each issued code verifies at most once.
	ErrOTPExpired  = errors.New("otp expired or not found")
	ErrOTPMismatch = errors.New("invalid otp")
	// ErrMailDelivery is returned when the mailer rejects the message.
	ErrMailDelivery = errors.New("error sending otp email")
)

// CodeStore is the ephemeral keyed store for one-time codes.
type CodeStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (code string, ok bool, err error)
	Delete(ctx context.Context, email string) error
}

// MailSender delivers a single transactional email synchronously.
type MailSender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// OTPService issues and verifies email one-time codes.
type OTPService struct {
	Users  repository.UserRepository
	Codes  CodeStore
	Mail   MailSender
	TTL    time.Duration
	Logger *logrus.Logger
}

// Send generates a 6-digit code for an existing user, stores it with the
// configured TTL (overwriting any prior code), and emails it. Mailer
// rejection surfaces as ErrMailDelivery; the stored code is left in place
// so a retry within the TTL reuses the same key.
func (s *OTPService) Send(ctx context.Context, email string) error {
	if u, err := s.Users.GetByEmail(ctx, email); err != nil || u == nil {
		return ErrUserNotFound
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := s.Codes.Set(ctx, email, code, s.TTL); err != nil {
		return err
	}

	minutes := int(s.TTL.Minutes())
	text := "Your OTP is " + code + ". It will expire in " + strconv.Itoa(minutes) + " minutes."
	html := "<p>Your OTP is <b>" + code + "</b>. It will expire in <b>" + strconv.Itoa(minutes) + " minutes</b>.</p>"
	if err := s.Mail.Send(ctx, email, "Here's your OTP Code", text, html); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("otp email delivery failed")
		}
		return ErrMailDelivery
	}
	return nil
}

// Verify checks the submitted code. On match it marks the user verified and
// deletes the key, so a second verification with the same code fails with
// ErrOTPExpired.
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	stored, ok, err := s.Codes.Get(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOTPExpired
	}
	if stored != code {
		return ErrOTPMismatch
	}
	if err := s.Users.SetVerified(ctx, email); err != nil {
		return err
	}
	return s.Codes.Delete(ctx, email)
}

