package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paige-inner-circle/legacy-backend/internal/config"
	"github.com/paige-inner-circle/legacy-backend/internal/repository"
	"github.com/paige-inner-circle/legacy-backend/internal/types"
)

type paymentFixture struct {
	svc      PaymentService
	members  *fakeMemberRepo
	passes   *fakePassRepo
	payments *fakePaymentRepo
	pass     *repository.LegacyPass
	payment  *repository.Payment
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		members:  newFakeMemberRepo(),
		passes:   newFakePassRepo(),
		payments: newFakePaymentRepo(),
	}

	member := &repository.Member{
		Email:          "marcus.webb@example.com",
		FullName:       "Marcus Webb",
		MembershipTier: types.TierVIP,
		IsActive:       true,
	}
	require.NoError(t, f.members.Create(context.Background(), member))

	f.pass = seedPass(t, f.passes)
	f.pass.MemberID = member.ID

	f.payment = &repository.Payment{
		MemberID:     member.ID,
		LegacyPassID: f.pass.ID,
		Amount:       decimal.NewFromInt(1000),
		Currency:     "USD",
		Status:       types.PaymentPending,
	}
	require.NoError(t, f.payments.Create(context.Background(), f.payment))

	cfg := &config.Config{FrontendURL: "http://localhost:5173", AdminEmail: "admin@example.com"}
	f.svc = NewPaymentService(cfg, f.payments, f.passes, f.members, nil, nil)
	return f
}

func TestMethodsCatalog(t *testing.T) {
	f := newPaymentFixture(t)

	methods := f.svc.Methods()
	require.Len(t, methods, 6)
	ids := make([]string, len(methods))
	for i, m := range methods {
		ids[i] = m.ID
	}
	assert.Contains(t, ids, "bank_transfer")
	assert.Contains(t, ids, "cryptocurrency")
}

func TestSubmitContact(t *testing.T) {
	f := newPaymentFixture(t)

	err := f.svc.SubmitContact(context.Background(), ContactRequest{
		LegacyToken:   f.pass.Token,
		ContactEmail:  "marcus.webb@example.com",
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)

	stored, err := f.payments.FindByID(context.Background(), f.payment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Method)
	assert.Equal(t, "bank_transfer", *stored.Method)
	assert.Equal(t, "marcus.webb@example.com", stored.ContactEmail)
}

func TestSubmitContactAfterVerifyIsConflict(t *testing.T) {
	f := newPaymentFixture(t)
	require.NoError(t, f.payments.MarkVerified(context.Background(), f.payment.ID, "admin@example.com", nil))

	err := f.svc.SubmitContact(context.Background(), ContactRequest{
		LegacyToken:   f.pass.Token,
		ContactEmail:  "marcus.webb@example.com",
		PaymentMethod: "paypal",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestVerifyUnlocksPass(t *testing.T) {
	f := newPaymentFixture(t)

	verified, err := f.svc.Verify(context.Background(), f.payment.ID, "admin@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentVerified, verified.Status)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, "admin@example.com", *verified.VerifiedBy)
	assert.NotNil(t, verified.VerifiedAt)

	// Gate is now open
	tokenSvc := NewTokenService(f.passes, f.payments)
	_, err = tokenSvc.GetPassByToken(context.Background(), f.pass.Token, true)
	assert.NoError(t, err)
}

func TestVerifyTwiceIsConflict(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.Verify(context.Background(), f.payment.ID, "admin@example.com", nil)
	require.NoError(t, err)

	_, err = f.svc.Verify(context.Background(), f.payment.ID, "admin@example.com", nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMarkFailed(t *testing.T) {
	f := newPaymentFixture(t)
	notes := "card declined twice"

	failed, err := f.svc.MarkFailed(context.Background(), f.payment.ID, &notes)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentFailed, failed.Status)
	require.NotNil(t, failed.Notes)
	assert.Equal(t, notes, *failed.Notes)

	// Failed payment keeps the gate closed with reason "failed"
	tokenSvc := NewTokenService(f.passes, f.payments)
	_, err = tokenSvc.GetPassByToken(context.Background(), f.pass.Token, true)
	var payErr *PaymentRequiredError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "failed", payErr.Reason)
}

func TestMarkFailedIsTerminal(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.MarkFailed(context.Background(), f.payment.ID, nil)
	require.NoError(t, err)

	// Failed is terminal: neither a second failure nor a verification moves it
	_, err = f.svc.MarkFailed(context.Background(), f.payment.ID, nil)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.Verify(context.Background(), f.payment.ID, "admin@example.com", nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStatusByToken(t *testing.T) {
	f := newPaymentFixture(t)

	info, err := f.svc.StatusByToken(context.Background(), f.pass.Token)
	require.NoError(t, err)
	assert.Equal(t, types.PaymentPending, info.Status)
	assert.False(t, info.CanAccessFullPass)
	assert.NotEmpty(t, info.Message)

	require.NoError(t, f.payments.MarkVerified(context.Background(), f.payment.ID, "admin@example.com", nil))
	info, err = f.svc.StatusByToken(context.Background(), f.pass.Token)
	require.NoError(t, err)
	assert.True(t, info.IsVerified)
	assert.True(t, info.CanAccessFullPass)
}

func TestAllFiltersByStatus(t *testing.T) {
	f := newPaymentFixture(t)

	pending, err := f.svc.All(context.Background(), "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = f.svc.All(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidInput)

	all, err := f.svc.All(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
