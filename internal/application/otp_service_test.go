package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eazydocs/eazydocs-backend/internal/domain/entity"
)

func newOTPFixture() (*OTPService, *fakeUserRepo, *fakeCodeStore, *fakeMailer) {
	users := newFakeUserRepo()
	users.add(&entity.User{Email: "alice@example.com", Name: "Alice"})
	codes := newFakeCodeStore()
	mail := &fakeMailer{}
	svc := &OTPService{Users: users, Codes: codes, Mail: mail, TTL: 10 * time.Minute}
	return svc, users, codes, mail
}

func TestOTPService_SendAndVerify(t *testing.T) {
	svc, users, codes, mail := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, "alice@example.com"))
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@example.com", mail.sent[0])

	code, ok, err := codes.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, code, 6)
	assert.Contains(t, mail.lastTxt, code)

	require.NoError(t, svc.Verify(ctx, "alice@example.com", code))
	assert.True(t, users.users["alice@example.com"].Verified)

	// Consumed: the same code cannot verify twice.
	err = svc.Verify(ctx, "alice@example.com", code)
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestOTPService_SendUnknownUser(t *testing.T) {
	svc, _, _, mail := newOTPFixture()

	err := svc.Send(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, mail.sent)
}

func TestOTPService_VerifyMismatch(t *testing.T) {
	svc, users, codes, _ := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, "alice@example.com"))

	err := svc.Verify(ctx, "alice@example.com", "000000")
	if err == nil {
		t.Skip("generated code collided with the test guess")
	}
	assert.ErrorIs(t, err, ErrOTPMismatch)
	assert.False(t, users.users["alice@example.com"].Verified)

	// A mismatch does not consume the code; the real one still works.
	code, ok, err := codes.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, svc.Verify(ctx, "alice@example.com", code))
}

func TestOTPService_VerifyExpired(t *testing.T) {
	svc, _, codes, _ := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, "alice@example.com"))
	codes.now = codes.now.Add(11 * time.Minute)

	code := codes.codes["alice@example.com"]
	err := svc.Verify(ctx, "alice@example.com", code)
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestOTPService_VerifyWithoutSend(t *testing.T) {
	svc, _, _, _ := newOTPFixture()

	err := svc.Verify(context.Background(), "alice@example.com", "123456")
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestOTPService_MailDeliveryFailure(t *testing.T) {
	svc, _, codes, mail := newOTPFixture()
	mail.fail = true
	ctx := context.Background()

	err := svc.Send(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrMailDelivery)

	// The stored code survives the failure so a delivery retry can reuse it.
	_, ok, err := codes.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOTPService_ResendOverwrites(t *testing.T) {
	svc, _, codes, _ := newOTPFixture()
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, "alice@example.com"))
	first := codes.codes["alice@example.com"]
	require.NoError(t, svc.Send(ctx, "alice@example.com"))
	second := codes.codes["alice@example.com"]

	if first == second {
		t.Skip("generated codes collided")
	}
	err := svc.Verify(ctx, "alice@example.com", first)
	assert.ErrorIs(t, err, ErrOTPMismatch)
	require.NoError(t, svc.Verify(ctx, "alice@example.com", second))
}
