package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/gamify/storefront/pkg/errors"
)

// ============================================================================
// Payment method set
// ============================================================================

func TestIsValidPaymentMethod(t *testing.T) {
	for _, m := range PaymentMethods() {
		assert.True(t, IsValidPaymentMethod(m), m)
	}
	assert.False(t, IsValidPaymentMethod("paypal"))
	assert.False(t, IsValidPaymentMethod(""))
}

func TestIsMobileWallet(t *testing.T) {
	assert.True(t, IsMobileWallet(PaymentMethodBkash))
	assert.True(t, IsMobileWallet(PaymentMethodNagad))
	assert.True(t, IsMobileWallet(PaymentMethodRocket))
	assert.False(t, IsMobileWallet(PaymentMethodCard))
}

// ============================================================================
// PaymentDetails.Validate
// ============================================================================

func TestValidate_NoMethodSelected(t *testing.T) {
	err := PaymentDetails{}.Validate()
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "please select a payment method")
}

func TestValidate_UnknownMethod(t *testing.T) {
	err := PaymentDetails{Method: "paypal"}.Validate()
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "unknown payment method: paypal")
}

func TestValidate_WalletRequiresPhone(t *testing.T) {
	for _, method := range []string{PaymentMethodBkash, PaymentMethodNagad, PaymentMethodRocket} {
		err := PaymentDetails{Method: method}.Validate()
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, method)
		assert.Contains(t, err.Error(), "please enter your mobile number", method)

		assert.NoError(t, PaymentDetails{Method: method, PhoneNumber: "01712345678"}.Validate(), method)
	}
}

func TestValidate_WalletIgnoresCardFields(t *testing.T) {
	// Card details entered before switching to a wallet do not satisfy the
	// wallet's phone requirement.
	details := PaymentDetails{
		Method:     PaymentMethodBkash,
		CardNumber: "4111111111111111",
		CardExpiry: "12/27",
		CardCVV:    "123",
	}
	err := details.Validate()
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "please enter your mobile number")
}

func TestValidate_CardFieldByField(t *testing.T) {
	cases := []struct {
		name    string
		details PaymentDetails
		wantMsg string
	}{
		{
			name:    "missing number",
			details: PaymentDetails{Method: PaymentMethodCard},
			wantMsg: "please enter your card number",
		},
		{
			name:    "missing expiry",
			details: PaymentDetails{Method: PaymentMethodCard, CardNumber: "4111111111111111"},
			wantMsg: "please enter your card expiry date",
		},
		{
			name:    "missing cvv",
			details: PaymentDetails{Method: PaymentMethodCard, CardNumber: "4111111111111111", CardExpiry: "12/27"},
			wantMsg: "please enter your card CVV",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.details.Validate()
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestValidate_CardComplete(t *testing.T) {
	details := PaymentDetails{
		Method:     PaymentMethodCard,
		CardNumber: "4111111111111111",
		CardExpiry: "12/27",
		CardCVV:    "123",
	}
	assert.NoError(t, details.Validate())
}

func TestValidate_CardIgnoresPhone(t *testing.T) {
	err := PaymentDetails{Method: PaymentMethodCard, PhoneNumber: "01712345678"}.Validate()
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
}
