package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepACH50_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	require.NoError(t, SweepACH50(ACH50Sweep{From: 1, To: 3, Step: 0.5}, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "ACH50", rows[0][0])
	assert.Equal(t, "1.00", rows[1][0])
	assert.Equal(t, "3.00", rows[5][0])
}

func TestSweepACH50_InvalidSweep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	assert.Error(t, SweepACH50(ACH50Sweep{From: 1, To: 3, Step: 0}, path))
	assert.Error(t, SweepACH50(ACH50Sweep{From: 3, To: 1, Step: 1}, path))
}

func TestSweepACH50_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "sweep.csv")
	assert.Error(t, SweepACH50(ACH50Sweep{From: 1, To: 2, Step: 1}, path))
}
