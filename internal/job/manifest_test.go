package job

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jobs.yaml", `
defaults:
  weights: "1,1"
  impacts: "+,-"
jobs:
  - input: phones.csv
  - name: laptops
    input: data/laptops.xlsx
    output: /tmp/laptops-ranked.csv
    weights: "2,1,1"
    impacts: "+,+,-"
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Jobs, 2)

	phones := m.Jobs[0]
	assert.Equal(t, "phones", phones.Name)
	assert.Equal(t, filepath.Join(dir, "phones.csv"), phones.Input)
	assert.Equal(t, filepath.Join(dir, "phones-result.csv"), phones.Output)
	assert.Equal(t, "1,1", phones.Weights)
	assert.Equal(t, "+,-", phones.Impacts)

	laptops := m.Jobs[1]
	assert.Equal(t, "laptops", laptops.Name)
	assert.Equal(t, filepath.Join(dir, "data", "laptops.xlsx"), laptops.Input)
	assert.Equal(t, "/tmp/laptops-ranked.csv", laptops.Output)
	assert.Equal(t, "2,1,1", laptops.Weights)
}

func TestLoadManifest_OutputSuffix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jobs.yaml", `
defaults:
  weights: "1,1"
  impacts: "+,+"
  output_suffix: _ranked
jobs:
  - input: q1.xlsx
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "q1_ranked.csv"), m.Jobs[0].Output)
}

func TestLoadManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"no jobs", "jobs: []\n", "no jobs defined"},
		{"missing input", "jobs:\n  - weights: \"1,1\"\n    impacts: \"+,+\"\n", "jobs[0]: input is required"},
		{"missing weights", "jobs:\n  - input: a.csv\n    impacts: \"+,+\"\n", "weights and impacts are required"},
		{"bad yaml", "jobs: [", "job: parse manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "jobs.yaml", tt.yaml)
			_, err := LoadManifest(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read manifest")
}
