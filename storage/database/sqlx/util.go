package sqlxrepos

import (
	"strings"

	"github.com/trezcool/trackx/core"
)

func orderBy(orderings []core.DBOrdering) string {
	parts := make([]string, 0, len(orderings))
	for _, ord := range orderings {
		parts = append(parts, ord.String())
	}
	return strings.Join(parts, ", ")
}
