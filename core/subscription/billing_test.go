package subscription

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/trackx/core"
)

func TestEndDate(t *testing.T) {
	start := core.NewDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	endOfJan := core.NewDate(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		start core.Date
		cycle string
		want  string
	}{
		{name: "monthly", start: start, cycle: "monthly", want: "2024-02-15"},
		{name: "quarterly", start: start, cycle: "quarterly", want: "2024-04-15"},
		{name: "annual", start: start, cycle: "annual", want: "2025-01-15"},
		{name: "case insensitive", start: start, cycle: "Annual", want: "2025-01-15"},
		{name: "unknown cycle", start: start, cycle: "weekly", want: "2024-02-14"},
		{name: "empty cycle", start: start, cycle: "", want: "2024-02-14"},
		{name: "month overflow", start: endOfJan, cycle: "monthly", want: "2024-03-02"},
		{name: "leap day", start: core.NewDate(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)), cycle: "annual", want: "2025-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EndDate(tt.start, tt.cycle).String())
		})
	}
}

func TestCodes(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	subCode := newSubscriptionCode(now)
	assert.Regexp(t, regexp.MustCompile(`^SUB-20240115-[0-9A-F]{13}$`), subCode)
	assert.Regexp(t, regexp.MustCompile(`^INV-20240115-[0-9A-F]{13}$`), newInvoiceNumber(now))
	assert.Equal(t, "TXN-1705312800", newTransactionID(now))

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := uniqueToken()
		require.False(t, seen[tok], "duplicate token %s", tok)
		seen[tok] = true
	}
}

func TestNewInvoice(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	sub := Subscription{
		ID:       7,
		SchoolID: 3,
		PlanName: "Basic",
		Amount:   decimal.RequireFromString("49.99"),
	}

	inv := newInvoice(sub, now, 30)
	assert.Equal(t, int64(7), inv.SubscriptionID)
	assert.Equal(t, int64(3), inv.SchoolID)
	assert.True(t, inv.Tax.IsZero())
	assert.Equal(t, "49.99", inv.TotalAmount.String())
	assert.Equal(t, "2024-01-15", inv.InvoiceDate.String())
	assert.Equal(t, "2024-02-14", inv.DueDate.String())
	assert.Equal(t, InvoiceStatusPending, inv.Status)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, InvoiceItem{Description: "Basic", Quantity: 1, UnitPrice: sub.Amount, Total: sub.Amount}, inv.Items[0])
}
