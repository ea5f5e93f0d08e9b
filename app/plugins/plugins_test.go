package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fengshan-hs/timetable/core/factory"
)

func TestBuiltinAdapters(t *testing.T) {
	assert.Equal(t, []string{"pdf"}, Documents.Names())
	assert.Equal(t, []string{"xlsx"}, Workbooks.Names())

	_, err := Documents.Create(factory.ModuleConfig{Type: "pdf"})
	require.NoError(t, err)
	_, err = Workbooks.Create(factory.ModuleConfig{Type: "xlsx"})
	require.NoError(t, err)
	_, err = Workbooks.Create(factory.ModuleConfig{Type: "ods"})
	assert.Error(t, err)
}
