package domain

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]OrderStatus{
		{OrderPending, OrderCancelled},
		{OrderPaid, OrderProcessing},
		{OrderProcessing, OrderShipped},
		{OrderShipped, OrderDelivered},
		{OrderDelivered, OrderRefunded},
		{OrderPaid, OrderRefunded},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]OrderStatus{
		{OrderPending, OrderPaid},
		{OrderPending, OrderShipped},
		{OrderShipped, OrderCancelled},
		{OrderCancelled, OrderPending},
		{OrderRefunded, OrderDelivered},
		{OrderDelivered, OrderShipped},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
		assert.ErrorIs(t, ValidateTransition(tr[0], tr[1]), ErrInvalidTransition)
	}
}

func TestOrderStatusHelpers(t *testing.T) {
	assert.True(t, OrderCancelled.Closed())
	assert.False(t, OrderDelivered.Closed())
	assert.True(t, OrderPartiallyPaid.AwaitingPayment())
	assert.False(t, OrderPaid.AwaitingPayment())
	assert.False(t, OrderStatus("lost").Valid())
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name    string
		price   int64
		qty     int
		want    int64
		wantErr error
	}{
		{"simple", 1999, 3, 5997, nil},
		{"free item", 0, 5, 0, nil},
		{"at limit", MaxAmount / MaxQuantity, MaxQuantity, MaxAmount, nil},
		{"over limit", MaxAmount/MaxQuantity + 1, MaxQuantity, 0, ErrAmountTooLarge},
		{"would overflow int64", math.MaxInt64 / 2, 3, 0, ErrAmountTooLarge},
		{"zero quantity", 100, 0, 0, ErrInvalidQuantity},
		{"quantity over limit", 1, MaxQuantity + 1, 0, ErrInvalidQuantity},
		{"negative price", -1, 1, 0, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LineTotal(tt.price, tt.qty)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckItems(t *testing.T) {
	ok := []OrderItem{
		{ProductID: 1, Name: "Mouse", UnitPrice: 1999, Quantity: 2},
		{ProductID: 2, Name: "Setup", UnitPrice: 5000, Quantity: 1},
	}
	assert.NoError(t, CheckItems(ok))

	half := MaxAmount / 2
	sum := []OrderItem{
		{ProductID: 1, Name: "A", UnitPrice: half, Quantity: 1},
		{ProductID: 2, Name: "B", UnitPrice: half, Quantity: 1},
		{ProductID: 3, Name: "C", UnitPrice: 1, Quantity: 1},
	}
	assert.ErrorIs(t, CheckItems(sum), ErrAmountTooLarge)
	assert.NoError(t, CheckItems(sum[:2]))

	bad := []OrderItem{{ProductID: 1, Name: "Mouse", UnitPrice: 10, Quantity: 0}}
	err := CheckItems(bad)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Contains(t, err.Error(), "Mouse")
}

func TestNewOrder(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Name: "Mouse", UnitPrice: 1999, Quantity: 2},
		{ProductID: 2, Name: "Setup", UnitPrice: 5000, Quantity: 1},
	}
	o := NewOrder(7, "USD", items, "gift")

	assert.Equal(t, OrderPending, o.Status)
	assert.Equal(t, int64(8998), o.Total)
	assert.NotEqual(t, uuid.Nil, o.Reference)
	assert.Equal(t, int64(7), o.CustomerID)
}
