package subscription

import (
	"encoding/json"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/trackx/core"
)

const StatusActive = "active"

// Subscription is a School subscribed to a Plan.
// The school_* and plan_* fields, and Features, are read from the joined rows.
type Subscription struct {
	ID               int64           `json:"id" db:"id"`
	SubscriptionCode string          `json:"subscription_code" db:"subscription_code"`
	SchoolID         int64           `json:"school_id" db:"school_id"`
	SchoolCode       string          `json:"school_code" db:"school_code"`
	SchoolName       string          `json:"school_name" db:"school_name"`
	SchoolEmail      string          `json:"school_email" db:"school_email"`
	PlanID           int64           `json:"plan_id" db:"plan_id"`
	PlanCode         string          `json:"plan_code" db:"plan_code"`
	PlanName         string          `json:"plan_name" db:"plan_name"`
	BillingCycle     string          `json:"billing_cycle" db:"billing_cycle"`
	Features         null.JSON       `json:"features" db:"features"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	Status           string          `json:"status" db:"status"`
	StartDate        core.Date       `json:"start_date" db:"start_date"`
	EndDate          core.Date       `json:"end_date" db:"end_date"`
	AutoRenew        bool            `json:"auto_renew" db:"auto_renew"`
	PaymentMethod    string          `json:"payment_method" db:"payment_method"`
	TransactionID    string          `json:"transaction_id" db:"transaction_id"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"` // UTC
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"` // UTC
}

// NewSubscription contains information needed to subscribe a School to a Plan.
type NewSubscription struct {
	SchoolID      int64            `json:"school_id" validate:"required"`
	PlanID        int64            `json:"plan_id" validate:"required"`
	StartDate     core.Date        `json:"start_date"`
	BillingCycle  string           `json:"billing_cycle"`
	Amount        *decimal.Decimal `json:"amount"`
	Status        string           `json:"status"`
	AutoRenew     *bool            `json:"auto_renew"`
	PaymentMethod string           `json:"payment_method"`
	TransactionID string           `json:"transaction_id"`
}

// UnmarshalJSON accepts school_id & plan_id as numbers or numeric strings.
func (ns *NewSubscription) UnmarshalJSON(data []byte) error {
	type plain NewSubscription
	aux := struct {
		*plain
		SchoolID core.ID `json:"school_id"`
		PlanID   core.ID `json:"plan_id"`
	}{plain: (*plain)(ns)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ns.SchoolID, ns.PlanID = int64(aux.SchoolID), int64(aux.PlanID)
	return nil
}

func (ns *NewSubscription) Validate(validate *validator.Validate, translator ut.Translator) error {
	ns.BillingCycle = core.CleanString(ns.BillingCycle, true /* lower */)
	ns.Status = core.CleanString(ns.Status)
	ns.PaymentMethod = core.CleanString(ns.PaymentMethod)
	ns.TransactionID = core.CleanString(ns.TransactionID)

	err := core.ValidateStruct(validate, translator, ns)
	if ns.StartDate.IsZero() {
		var missing []string
		if vErr, ok := err.(*core.ValidationError); ok {
			missing = vErr.Missing
		}
		return core.NewMissingFieldsError(append(missing, "start_date")...)
	}
	if err != nil {
		return err
	}
	if ns.Amount != nil && ns.Amount.IsNegative() {
		return core.NewValidationError(errInvalidAmount, core.FieldError{Field: "amount", Error: errInvalidAmount.Error()})
	}
	return nil
}

// UpdateSubscription defines what information may be provided to modify an existing Subscription.
// Absent fields are left untouched.
type UpdateSubscription struct {
	PlanID        *int64           `json:"plan_id"`
	Amount        *decimal.Decimal `json:"amount"`
	Status        *string          `json:"status"`
	EndDate       *core.Date       `json:"end_date"`
	AutoRenew     *bool            `json:"auto_renew"`
	PaymentMethod *string          `json:"payment_method"`
	TransactionID *string          `json:"transaction_id"`
}

// UnmarshalJSON accepts plan_id as a number or a numeric string.
func (us *UpdateSubscription) UnmarshalJSON(data []byte) error {
	type plain UpdateSubscription
	aux := struct {
		*plain
		PlanID *core.ID `json:"plan_id"`
	}{plain: (*plain)(us)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	us.PlanID = nil
	if aux.PlanID != nil {
		id := int64(*aux.PlanID)
		us.PlanID = &id
	}
	return nil
}

func (us *UpdateSubscription) IsEmpty() bool {
	return us.PlanID == nil && us.Amount == nil && us.Status == nil && us.EndDate == nil &&
		us.AutoRenew == nil && us.PaymentMethod == nil && us.TransactionID == nil
}

func (us *UpdateSubscription) Validate() error {
	if us.IsEmpty() {
		return core.ErrNoData
	}

	var flds []core.FieldError
	if us.Status != nil {
		*us.Status = core.CleanString(*us.Status)
		if *us.Status == "" {
			flds = append(flds, core.FieldError{Field: "status", Error: "status must not be blank"})
		}
	}
	if us.EndDate != nil && us.EndDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "end_date", Error: "end_date must be a date"})
	}
	if us.Amount != nil && us.Amount.IsNegative() {
		flds = append(flds, core.FieldError{Field: "amount", Error: errInvalidAmount.Error()})
	}
	if len(flds) > 0 {
		msgs := make([]string, 0, len(flds))
		for _, f := range flds {
			msgs = append(msgs, f.Error)
		}
		return core.NewValidationError(errors.New(strings.Join(msgs, "; ")), flds...)
	}
	return nil
}

// Filter applies AND semantics on its non-zero fields.
type Filter struct {
	Status   string `query:"status"`
	SchoolID int64  `query:"school_id"`
	PlanID   int64  `query:"plan_id"`
}

func (f *Filter) Clean() {
	f.Status = core.CleanString(f.Status)
}
