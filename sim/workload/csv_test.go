package workload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusim/sim"
)

func TestParseCSV_ThreeAndFourColumns(t *testing.T) {
	// GIVEN rows in id,burst,arrival[,priority] order, one without priority
	in := "1,5,0,2\n2, 9, 3\n"

	// WHEN parsed
	got, err := ParseCSV(strings.NewReader(in))

	// THEN burst and arrival land in the right fields
	require.NoError(t, err)
	assert.Equal(t, []sim.ProcessSpec{
		{ID: 1, BurstTime: 5, ArrivalTime: 0, Priority: 2},
		{ID: 2, BurstTime: 9, ArrivalTime: 3},
	}, got)
}

func TestParseCSV_SkipsHeaderAndComments(t *testing.T) {
	in := "id,burst,arrival,priority\n# seed row\n1,4,0,1\n"
	got, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []sim.ProcessSpec{{ID: 1, BurstTime: 4, Priority: 1}}, got)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too few fields", "1,2\n"},
		{"too many fields", "1,2,3,4,5\n"},
		{"non-numeric burst", "1,x,0\n"},
		{"non-numeric priority", "1,2,0,high\n"},
		{"zero burst", "1,0,0\n"},
		{"duplicate id", "1,2,0\n1,3,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestParseCSV_ErrorNamesRow(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("1,2,0\n2,oops,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procs.csv")
	require.NoError(t, os.WriteFile(path, []byte("3,7,2\n"), 0o644))
	got, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []sim.ProcessSpec{{ID: 3, BurstTime: 7, ArrivalTime: 2}}, got)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
