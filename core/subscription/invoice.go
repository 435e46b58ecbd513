package subscription

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trezcool/trackx/core"
)

const InvoiceStatusPending = "pending"

type (
	InvoiceItem struct {
		Description string          `json:"description"`
		Quantity    int             `json:"quantity"`
		UnitPrice   decimal.Decimal `json:"unit_price"`
		Total       decimal.Decimal `json:"total"`
	}

	Invoice struct {
		ID             int64           `json:"id" db:"id"`
		InvoiceNumber  string          `json:"invoice_number" db:"invoice_number"`
		SubscriptionID int64           `json:"subscription_id" db:"subscription_id"`
		SchoolID       int64           `json:"school_id" db:"school_id"`
		Amount         decimal.Decimal `json:"amount" db:"amount"`
		Tax            decimal.Decimal `json:"tax" db:"tax"`
		TotalAmount    decimal.Decimal `json:"total_amount" db:"total_amount"`
		InvoiceDate    core.Date       `json:"invoice_date" db:"invoice_date"`
		DueDate        core.Date       `json:"due_date" db:"due_date"`
		Status         string          `json:"status" db:"status"`
		Items          []InvoiceItem   `json:"items" db:"-"`
		CreatedAt      time.Time       `json:"created_at" db:"created_at"` // UTC
	}
)

// newInvoice bills the whole subscription amount in a single line, untaxed.
func newInvoice(sub Subscription, now time.Time, dueDays int) Invoice {
	tax := decimal.Zero
	today := core.NewDate(now)
	return Invoice{
		InvoiceNumber:  newInvoiceNumber(now),
		SubscriptionID: sub.ID,
		SchoolID:       sub.SchoolID,
		Amount:         sub.Amount,
		Tax:            tax,
		TotalAmount:    sub.Amount.Add(tax),
		InvoiceDate:    today,
		DueDate:        today.AddDate(0, 0, dueDays),
		Status:         InvoiceStatusPending,
		Items: []InvoiceItem{
			{
				Description: sub.PlanName,
				Quantity:    1,
				UnitPrice:   sub.Amount,
				Total:       sub.Amount,
			},
		},
		CreatedAt: now,
	}
}
