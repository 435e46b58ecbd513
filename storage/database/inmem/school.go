package inmemdb

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) QuerySchools(ctx context.Context) ([]school.School, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	schools := make([]school.School, 0, len(repo.db.school))
	for _, sch := range repo.db.school {
		schools = append(schools, *sch)
	}
	sort.Slice(schools, func(i, j int) bool {
		if schools[i].CreatedAt.Equal(schools[j].CreatedAt) {
			return schools[i].ID > schools[j].ID
		}
		return schools[i].CreatedAt.After(schools[j].CreatedAt)
	})
	return schools, nil
}

func (repo *schoolRepository) GetSchool(ctx context.Context, id int64) (school.School, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sch, ok := repo.db.school[id]; ok {
		return *sch, nil
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, s := range repo.db.school {
		if s.SchoolCode == sch.SchoolCode {
			return school.School{}, core.NewConflictError(errors.Errorf("school_code %q already exists", sch.SchoolCode))
		}
	}
	sch.ID = repo.db.nextPK("school")
	repo.db.school[sch.ID] = &sch
	return sch, nil
}

func (repo *schoolRepository) UpdateSchool(ctx context.Context, sch school.School) (school.School, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.school[sch.ID]
	if !ok {
		return school.School{}, school.ErrNotFound
	}
	sch.SchoolCode = orig.SchoolCode
	sch.CreatedAt = orig.CreatedAt
	repo.db.school[sch.ID] = &sch
	return sch, nil
}

func (repo *schoolRepository) DeleteSchool(ctx context.Context, id int64) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.school[id]; !ok {
		return school.ErrNotFound
	}
	for _, sub := range repo.db.subscription {
		if sub.SchoolID == id {
			return core.NewConflictError(errors.New("school has subscriptions"))
		}
	}
	delete(repo.db.school, id)
	return nil
}
