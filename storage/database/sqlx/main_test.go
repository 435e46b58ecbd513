package sqlxrepos

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/trackx/core"
	"github.com/trezcool/trackx/core/school"
)

var now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func setupMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = mockDB.Close()
	})
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func TestTrapErr(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantNotFound bool
		wantConflict bool
		wantMsg      string
	}{
		{name: "no rows", err: errors.Wrap(sql.ErrNoRows, "selecting"), wantNotFound: true, wantMsg: "School not found"},
		{
			name:         "unique violation",
			err:          &pq.Error{Code: pqUniqueViolation, Message: "duplicate key", Detail: "Key (school_code)=(A) already exists."},
			wantConflict: true,
			wantMsg:      "Key (school_code)=(A) already exists.",
		},
		{
			name:         "foreign key violation",
			err:          errors.Wrap(&pq.Error{Code: pqForeignKeyViolation, Message: "violates foreign key constraint"}, "deleting"),
			wantConflict: true,
			wantMsg:      "violates foreign key constraint",
		},
		{name: "other pq error", err: &pq.Error{Code: "42P01", Message: "relation does not exist"}, wantMsg: "pq: relation does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := trapErr(tt.err, school.ErrNotFound)
			assert.Equal(t, tt.wantNotFound, core.IsNotFound(err))
			assert.Equal(t, tt.wantConflict, core.IsConflict(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	assert.NoError(t, trapErr(nil, school.ErrNotFound))
}
