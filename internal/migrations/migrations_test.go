package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationCount(t *testing.T) {
	n, err := count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMigrations_DefineTriggerFunctions(t *testing.T) {
	data, err := fs.ReadFile(files, "sql/00002_id_triggers.sql")
	require.NoError(t, err)
	body := string(data)

	for _, fn := range []string{"next_id()", "next_bookRef()", "next_rid()"} {
		assert.True(t, strings.Contains(body, "FUNCTION "+fn), fn)
	}
}
