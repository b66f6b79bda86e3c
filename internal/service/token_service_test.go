package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

func seedPass(t *testing.T, passes *fakePassRepo) *repository.LegacyPass {
	t.Helper()
	pass := &repository.LegacyPass{
		MemberID:    "member-1",
		EventID:     "event-1",
		PassNumber:  "INNER-CIRCLE-#007",
		Token:       uuid.New().String(),
		AccessLevel: types.AccessPlatinum,
		GiftTier:    types.GiftPremium,
	}
	require.NoError(t, passes.Create(context.Background(), pass))
	return pass
}

func TestValidateTokenMalformed(t *testing.T) {
	svc := NewTokenService(newFakePassRepo(), newFakePaymentRepo())

	_, err := svc.ValidateToken(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenUnknown(t *testing.T) {
	svc := NewTokenService(newFakePassRepo(), newFakePaymentRepo())

	_, err := svc.ValidateToken(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateTokenDeactivated(t *testing.T) {
	passes := newFakePassRepo()
	svc := NewTokenService(passes, newFakePaymentRepo())
	pass := seedPass(t, passes)
	require.NoError(t, passes.SetActive(context.Background(), pass.ID, false))

	_, err := svc.ValidateToken(context.Background(), pass.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPassByTokenPaymentGate(t *testing.T) {
	passes := newFakePassRepo()
	payments := newFakePaymentRepo()
	svc := NewTokenService(passes, payments)
	pass := seedPass(t, passes)

	// No payment on record
	_, err := svc.GetPassByToken(context.Background(), pass.Token, true)
	var payErr *PaymentRequiredError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "no_payment", payErr.Reason)

	// Pending payment
	payment := &repository.Payment{
		MemberID:     pass.MemberID,
		LegacyPassID: pass.ID,
		Status:       types.PaymentPending,
	}
	require.NoError(t, payments.Create(context.Background(), payment))

	_, err = svc.GetPassByToken(context.Background(), pass.Token, true)
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "pending", payErr.Reason)

	// Preview path ignores the gate
	got, err := svc.GetPassByToken(context.Background(), pass.Token, false)
	require.NoError(t, err)
	assert.Equal(t, pass.ID, got.ID)

	// Verified payment opens the gate
	require.NoError(t, payments.MarkVerified(context.Background(), payment.ID, "admin@example.com", nil))
	got, err = svc.GetPassByToken(context.Background(), pass.Token, true)
	require.NoError(t, err)
	assert.Equal(t, pass.ID, got.ID)
}

func TestAccessInfo(t *testing.T) {
	passes := newFakePassRepo()
	payments := newFakePaymentRepo()
	svc := NewTokenService(passes, payments)
	pass := seedPass(t, passes)

	info, err := svc.AccessInfo(context.Background(), pass.Token)
	require.NoError(t, err)
	assert.False(t, info.HasPayment)
	assert.False(t, info.CanAccessFullPass)
	assert.Equal(t, "no_payment", info.PaymentStatus)

	payment := &repository.Payment{LegacyPassID: pass.ID, Status: types.PaymentPending}
	require.NoError(t, payments.Create(context.Background(), payment))
	require.NoError(t, payments.MarkVerified(context.Background(), payment.ID, "admin@example.com", nil))

	info, err = svc.AccessInfo(context.Background(), pass.Token)
	require.NoError(t, err)
	assert.True(t, info.HasPayment)
	assert.True(t, info.PaymentVerified)
	assert.True(t, info.CanAccessFullPass)
	assert.Equal(t, "verified", info.PaymentStatus)
}

func TestDeactivateReactivate(t *testing.T) {
	passes := newFakePassRepo()
	svc := NewTokenService(passes, newFakePaymentRepo())
	pass := seedPass(t, passes)

	require.NoError(t, svc.Deactivate(context.Background(), pass.Token))
	_, err := svc.ValidateToken(context.Background(), pass.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	// Reactivate bypasses the is_active filter
	require.NoError(t, svc.Reactivate(context.Background(), pass.Token))
	got, err := svc.ValidateToken(context.Background(), pass.Token)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestFormatPassNumberPreview(t *testing.T) {
	assert.Equal(t, "INNER-CIRCLE-#***", FormatPassNumberPreview("INNER-CIRCLE-#007"))
	assert.Equal(t, "***", FormatPassNumberPreview("no-hash"))
}
