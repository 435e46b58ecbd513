package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/school"
)

const schoolColumns = `id, school_code, name, email, phone, address, city, country, contact_person,
	total_students, total_buses, status, created_at, updated_at`

var schoolOrdering = []core.DBOrdering{{Field: "created_at"}, {Field: "id"}}

type schoolRepository struct {
	exec core.DBExecutor
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(exec core.DBExecutor) school.Repository {
	return &schoolRepository{exec: exec}
}

func (repo *schoolRepository) QuerySchools(ctx context.Context) ([]school.School, error) {
	schools := make([]school.School, 0)
	q := `SELECT ` + schoolColumns + ` FROM schools ORDER BY ` + orderBy(schoolOrdering)
	if err := repo.exec.SelectContext(ctx, &schools, q); err != nil {
		return nil, errors.Wrap(err, "selecting schools")
	}
	return schools, nil
}

func (repo *schoolRepository) GetSchool(ctx context.Context, id int64) (school.School, error) {
	var sch school.School
	q := `SELECT ` + schoolColumns + ` FROM schools WHERE id = $1`
	if err := repo.exec.GetContext(ctx, &sch, q, id); err != nil {
		return school.School{}, trapErr(err, school.ErrNotFound)
	}
	return sch, nil
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	var created school.School
	q := `INSERT INTO schools (
		school_code, name, email, phone, address, city, country, contact_person,
		total_students, total_buses, status, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING ` + schoolColumns
	err := repo.exec.GetContext(
		ctx, &created, q,
		sch.SchoolCode, sch.Name, sch.Email, sch.Phone, sch.Address, sch.City, sch.Country, sch.ContactPerson,
		sch.TotalStudents, sch.TotalBuses, sch.Status, sch.CreatedAt, sch.UpdatedAt,
	)
	if err != nil {
		return school.School{}, trapErr(errors.Wrap(err, "inserting school"), school.ErrNotFound)
	}
	return created, nil
}

func (repo *schoolRepository) UpdateSchool(ctx context.Context, sch school.School) (school.School, error) {
	var updated school.School
	q := `UPDATE schools SET
		name = $1, email = $2, phone = $3, address = $4, city = $5, country = $6, contact_person = $7,
		total_students = $8, total_buses = $9, status = $10, updated_at = $11
	WHERE id = $12
	RETURNING ` + schoolColumns
	err := repo.exec.GetContext(
		ctx, &updated, q,
		sch.Name, sch.Email, sch.Phone, sch.Address, sch.City, sch.Country, sch.ContactPerson,
		sch.TotalStudents, sch.TotalBuses, sch.Status, sch.UpdatedAt, sch.ID,
	)
	if err != nil {
		return school.School{}, trapErr(err, school.ErrNotFound)
	}
	return updated, nil
}

func (repo *schoolRepository) DeleteSchool(ctx context.Context, id int64) error {
	res, err := repo.exec.ExecContext(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return trapErr(errors.Wrap(err, "deleting school"), school.ErrNotFound)
	}
	return checkAffected(res, school.ErrNotFound)
}
