package subscription

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/plan"
)

const (
	subscriptionCodePrefix = "SUB-"
	invoiceNumberPrefix    = "INV-"
	transactionIDPrefix    = "TXN-"

	defaultPeriodDays = 30
	tokenLen          = 13
	codeDateLayout    = "20060102"
)

// EndDate returns the end of a subscription period starting at start.
// Unknown cycles last 30 days. Month overflow normalizes (Jan 31 + 1 month = Mar 2 or 3).
func EndDate(start core.Date, billingCycle string) core.Date {
	switch strings.ToLower(billingCycle) {
	case plan.CycleMonthly:
		return start.AddDate(0, 1, 0)
	case plan.CycleQuarterly:
		return start.AddDate(0, 3, 0)
	case plan.CycleAnnual:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 0, defaultPeriodDays)
	}
}

// uniqueToken returns an uppercase hex token, unique in practice.
func uniqueToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLen])
}

func newSubscriptionCode(now time.Time) string {
	return subscriptionCodePrefix + now.Format(codeDateLayout) + "-" + uniqueToken()
}

func newInvoiceNumber(now time.Time) string {
	return invoiceNumberPrefix + now.Format(codeDateLayout) + "-" + uniqueToken()
}

func newTransactionID(now time.Time) string {
	return transactionIDPrefix + strconv.FormatInt(now.Unix(), 10)
}
