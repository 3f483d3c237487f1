package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadHoldings_YAMLList(t *testing.T) {
	path := writeFile(t, "h.yaml", `
- symbol: aapl
  quantity: 10
  purchase_price: 150
- symbol: MSFT
  quantity: 2.5
  purchase_price: 300
`)
	got, err := loadHoldings(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Equal(t, 2.5, got[1].Quantity)
	assert.Zero(t, got[0].CurrentPrice)
}

func TestLoadHoldings_JSONObject(t *testing.T) {
	path := writeFile(t, "h.json", `{"holdings":[{"symbol":"TSLA","quantity":3,"purchase_price":200}]}`)
	got, err := loadHoldings(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 200.0, got[0].PurchasePrice)
}

func TestLoadHoldings_Invalid(t *testing.T) {
	for name, content := range map[string]string{
		"empty":          ``,
		"no holdings":    `holdings: []`,
		"zero quantity":  `[{"symbol":"A","quantity":0,"purchase_price":1}]`,
		"missing symbol": `[{"quantity":1,"purchase_price":1}]`,
		"not a list":     `holdings: 3`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := loadHoldings(writeFile(t, "h.yaml", content))
			assert.Error(t, err)
		})
	}
	_, err := loadHoldings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
