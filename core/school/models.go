package school

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/trackx/core"
)

const StatusActive = "active"

type School struct {
	ID            int64       `json:"id" db:"id"`
	SchoolCode    string      `json:"school_code" db:"school_code"`
	Name          string      `json:"name" db:"name"`
	Email         string      `json:"email" db:"email"`
	Phone         null.String `json:"phone" db:"phone"`
	Address       null.String `json:"address" db:"address"`
	City          null.String `json:"city" db:"city"`
	Country       null.String `json:"country" db:"country"`
	ContactPerson null.String `json:"contact_person" db:"contact_person"`
	TotalStudents int         `json:"total_students" db:"total_students"`
	TotalBuses    int         `json:"total_buses" db:"total_buses"`
	Status        string      `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

// NewSchool contains information needed to create a new School.
type NewSchool struct {
	SchoolCode    string      `json:"school_code" validate:"required,notblank_"`
	Name          string      `json:"name" validate:"required,notblank_"`
	Email         string      `json:"email" validate:"required,notblank_,email"`
	Phone         null.String `json:"phone"`
	Address       null.String `json:"address"`
	City          null.String `json:"city"`
	Country       null.String `json:"country"`
	ContactPerson null.String `json:"contact_person"`
	TotalStudents int         `json:"total_students" validate:"gte=0"`
	TotalBuses    int         `json:"total_buses" validate:"gte=0"`
	Status        string      `json:"status"`
}

func (ns *NewSchool) Validate(validate *validator.Validate, translator ut.Translator) error {
	ns.SchoolCode = core.CleanString(ns.SchoolCode)
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Status = core.CleanString(ns.Status)
	if ns.Status == "" {
		ns.Status = StatusActive
	}
	return core.ValidateStruct(validate, translator, ns)
}

// UpdateSchool defines what information may be provided to modify an existing School.
// Every field is overwritten; school_code cannot be changed.
type UpdateSchool struct {
	Name          string      `json:"name" validate:"required,notblank_"`
	Email         string      `json:"email" validate:"required,notblank_,email"`
	Phone         null.String `json:"phone"`
	Address       null.String `json:"address"`
	City          null.String `json:"city"`
	Country       null.String `json:"country"`
	ContactPerson null.String `json:"contact_person"`
	TotalStudents int         `json:"total_students" validate:"gte=0"`
	TotalBuses    int         `json:"total_buses" validate:"gte=0"`
	Status        string      `json:"status"`
}

func (us *UpdateSchool) Validate(validate *validator.Validate, translator ut.Translator) error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Status = core.CleanString(us.Status)
	if us.Status == "" {
		us.Status = StatusActive
	}
	return core.ValidateStruct(validate, translator, us)
}
