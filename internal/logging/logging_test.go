package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bot.log")
	l, err := New("debug", "json", file)
	require.NoError(t, err)
	l.Error("boom", Critical())
	_ = l.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"critical":true`)
	assert.Contains(t, string(data), `"msg":"boom"`)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("loud", "json", "")
	assert.Error(t, err)

	_, err = New("info", "xml", "")
	assert.Error(t, err)
}
