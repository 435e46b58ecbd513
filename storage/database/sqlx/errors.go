package sqlxrepos

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/trackx/core"
)

// postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// trapErr maps driver errors to core errors: missing rows become notFound,
// unique & foreign key violations become *core.ConflictError.
func trapErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		switch pqErr.Code {
		case pqUniqueViolation, pqForeignKeyViolation:
			msg := pqErr.Message
			if pqErr.Detail != "" {
				msg = pqErr.Detail
			}
			return core.NewConflictError(errors.New(msg))
		}
	}
	return err
}

// checkAffected returns notFound when res did not touch any row.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
