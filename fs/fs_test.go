package appfs

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS(t *testing.T) {
	files, err := fs.Glob(FS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/00001_create_schools.sql",
		"migrations/00002_create_subscription_plans.sql",
		"migrations/00003_create_school_subscriptions.sql",
		"migrations/00004_create_invoices.sql",
	}, files)
}
