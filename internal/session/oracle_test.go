package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peridot-shell/pkg/logger"
)

func writeSession(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestFileOracle_MissingFile(t *testing.T) {
	o := NewFileOracle(filepath.Join(t.TempDir(), "session.json"), logger.Nop())
	assert.False(t, o.IsLoggedIn())
}

func TestFileOracle_ValidRecord(t *testing.T) {
	path := writeSession(t, `{"principal":"aaaaa-aa","expires_at":"2030-01-01T00:00:00Z"}`)
	o := NewFileOracle(path, logger.Nop())
	o.now = func() time.Time { return time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) }

	assert.True(t, o.IsLoggedIn())
}

func TestFileOracle_ExpiredRecord(t *testing.T) {
	path := writeSession(t, `{"principal":"aaaaa-aa","expires_at":"2020-01-01T00:00:00Z"}`)
	o := NewFileOracle(path, logger.Nop())
	assert.False(t, o.IsLoggedIn())
}

func TestFileOracle_NoExpiry(t *testing.T) {
	path := writeSession(t, `{"principal":"aaaaa-aa"}`)
	assert.True(t, NewFileOracle(path, logger.Nop()).IsLoggedIn())
}

func TestFileOracle_EmptyPrincipal(t *testing.T) {
	path := writeSession(t, `{"principal":""}`)
	assert.False(t, NewFileOracle(path, logger.Nop()).IsLoggedIn())
}

func TestFileOracle_Malformed(t *testing.T) {
	path := writeSession(t, `{not json`)
	assert.False(t, NewFileOracle(path, logger.Nop()).IsLoggedIn())
}

func TestStatic(t *testing.T) {
	assert.True(t, Static(true).IsLoggedIn())
	assert.False(t, Static(false).IsLoggedIn())
}
