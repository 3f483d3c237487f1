package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, closer, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("symbol", "AAPL").Msg("priced")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"symbol":"AAPL"`)
	assert.Contains(t, out, `"message":"priced"`)
	assert.False(t, strings.Contains(out, "hidden"))
}
