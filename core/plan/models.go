package plan

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/trackx/core"
)

const (
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleAnnual    = "annual"
)

type Plan struct {
	ID           int64           `json:"id" db:"id"`
	PlanCode     string          `json:"plan_code" db:"plan_code"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	BillingCycle string          `json:"billing_cycle" db:"billing_cycle"`
	MaxStudents  null.Int        `json:"max_students" db:"max_students"`
	MaxBuses     null.Int        `json:"max_buses" db:"max_buses"`
	Features     null.JSON       `json:"features" db:"features"`
	Limitations  null.JSON       `json:"limitations" db:"limitations"`
	IsActive     bool            `json:"is_active" db:"is_active"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"` // UTC
}

// Decode turns the stored features/limitations text back into structured JSON.
func (p *Plan) Decode() {
	p.Features = DecodeAttributes(p.Features)
	p.Limitations = DecodeAttributes(p.Limitations)
}

// NewPlan contains information needed to create a new Plan.
// It is also the payload of a full Plan update.
type NewPlan struct {
	PlanCode     string           `json:"plan_code" validate:"required,notblank_"`
	Name         string           `json:"name" validate:"required,notblank_"`
	Description  string           `json:"description" validate:"required,notblank_"`
	Price        *decimal.Decimal `json:"price"`
	BillingCycle string           `json:"billing_cycle"`
	MaxStudents  null.Int         `json:"max_students"`
	MaxBuses     null.Int         `json:"max_buses"`
	Features     null.JSON        `json:"features"`
	Limitations  null.JSON        `json:"limitations"`
	IsActive     *bool            `json:"is_active"`
}

func (np *NewPlan) Validate(validate *validator.Validate, translator ut.Translator) error {
	np.PlanCode = core.CleanString(np.PlanCode)
	np.Name = core.CleanString(np.Name)
	np.Description = core.CleanString(np.Description)
	np.BillingCycle = core.CleanString(np.BillingCycle, true /* lower */)
	if np.BillingCycle == "" {
		np.BillingCycle = CycleMonthly
	}
	np.Features = EncodeAttributes(np.Features)
	np.Limitations = EncodeAttributes(np.Limitations)

	err := core.ValidateStruct(validate, translator, np)

	// price is required too: report it along with the other missing fields
	if np.Price == nil || np.Price.IsZero() {
		var missing []string
		if vErr, ok := err.(*core.ValidationError); ok {
			missing = vErr.Missing
		}
		return core.NewMissingFieldsError(append(missing, "price")...)
	}
	if err != nil {
		return err
	}
	if np.Price.IsNegative() {
		return core.NewValidationError(errInvalidPrice, core.FieldError{Field: "price", Error: errInvalidPrice.Error()})
	}
	return nil
}

// IsActiveOrDefault returns is_active as given, true when absent.
func (np *NewPlan) IsActiveOrDefault() bool {
	if np.IsActive == nil {
		return true
	}
	return *np.IsActive
}
