package job

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Manifest lists jobs for a batch run. Jobs without weights or impacts take
// them from Defaults.
type Manifest struct {
	Defaults Defaults `yaml:"defaults"`
	Jobs     []Job    `yaml:"jobs"`
}

// Defaults holds manifest-wide settings.
type Defaults struct {
	Weights string `yaml:"weights"`
	Impacts string `yaml:"impacts"`
	// OutputSuffix derives a missing output path from the input path,
	// e.g. "-result" turns data.csv into data-result.csv.
	OutputSuffix string `yaml:"output_suffix"`
}

// LoadManifest reads a manifest from a YAML file. Relative paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "job: read manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "job: parse manifest")
	}
	if m.Defaults.OutputSuffix == "" {
		m.Defaults.OutputSuffix = "-result"
	}

	base := filepath.Dir(path)
	var errs []string
	for i := range m.Jobs {
		j := &m.Jobs[i]
		if j.Input == "" {
			errs = append(errs, fmt.Sprintf("jobs[%d]: input is required", i))
			continue
		}
		j.Input = resolve(base, j.Input)
		if j.Output == "" {
			j.Output = derivedOutput(j.Input, m.Defaults.OutputSuffix)
		} else {
			j.Output = resolve(base, j.Output)
		}
		if j.Weights == "" {
			j.Weights = m.Defaults.Weights
		}
		if j.Impacts == "" {
			j.Impacts = m.Defaults.Impacts
		}
		if j.Name == "" {
			j.Name = strings.TrimSuffix(filepath.Base(j.Input), filepath.Ext(j.Input))
		}
		if j.Weights == "" || j.Impacts == "" {
			errs = append(errs, fmt.Sprintf("jobs[%d] (%s): weights and impacts are required", i, j.Name))
		}
	}
	if len(m.Jobs) == 0 {
		errs = append(errs, "no jobs defined")
	}
	if len(errs) > 0 {
		return nil, eris.Errorf("job: invalid manifest %s: %s", path, strings.Join(errs, "; "))
	}

	return &m, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// derivedOutput names the output after the input. Spreadsheet inputs produce
// CSV output like any other input.
func derivedOutput(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ".csv"
}
