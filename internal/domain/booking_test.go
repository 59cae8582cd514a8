package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseBookingStatus("no_show")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAmountFromPrice(t *testing.T) {
	assert.Equal(t, int64(15000), AmountFromPrice(decimal.NewFromInt(150)))
	assert.Equal(t, int64(1999), AmountFromPrice(decimal.RequireFromString("19.99")))
	assert.Equal(t, int64(1000), AmountFromPrice(decimal.RequireFromString("9.995")))
}

func TestUserProfile_Addresses(t *testing.T) {
	p := UserProfile{Addresses: []Address{
		{ID: "a1", Street: "1 Main St"},
		{ID: "a2", Street: "2 Oak Ave", IsDefault: true},
	}}

	def, ok := p.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, "a2", def.ID)

	_, ok = p.AddressByID("missing")
	assert.False(t, ok)
}

func TestAddress_FullAddress(t *testing.T) {
	unit := "Apt 4"
	a := Address{Street: "1 Main St", Unit: &unit, City: "Springfield", State: "IL", ZipCode: "62701", Country: "USA"}
	assert.Equal(t, "1 Main St Apt 4, Springfield, IL 62701, USA", a.FullAddress())
}

func TestSavedPaymentMethod_DisplayName(t *testing.T) {
	brand := "Visa"
	assert.Equal(t, "Visa •••• 4242", SavedPaymentMethod{Type: MethodCard, Last4: "4242", Brand: &brand}.DisplayName())
	assert.Equal(t, "Apple Pay", SavedPaymentMethod{Type: MethodApplePay}.DisplayName())
}
