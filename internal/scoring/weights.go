package scoring

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

//go:embed weights.yaml
var weightsYAML []byte

// Weights is one category row of the weight table. All values are
// percentages; a valid row sums to exactly 100.
type Weights struct {
	Skills      float64 `yaml:"skills"`
	Activity    float64 `yaml:"activity"`
	Algorithmic float64 `yaml:"algorithmic"`
	Experience  float64 `yaml:"experience"`
	Projects    float64 `yaml:"projects"`
	Education   float64 `yaml:"education"`
	Profile     float64 `yaml:"profile"`
	Readiness   float64 `yaml:"readiness"`
}

func (w Weights) sum() float64 {
	return w.Skills + w.Activity + w.Algorithmic + w.Experience +
		w.Projects + w.Education + w.Profile + w.Readiness
}

type weightFile struct {
	Categories map[string]Weights `yaml:"categories"`
}

// loadWeights decodes the embedded weight table and validates every row.
// The table is build-time data, so a malformed embed is a programming error.
func loadWeights() (map[domain.JobCategory]Weights, error) {
	var f weightFile
	if err := yaml.Unmarshal(weightsYAML, &f); err != nil {
		return nil, fmt.Errorf("op=scoring.loadWeights: %w", err)
	}
	table := make(map[domain.JobCategory]Weights, len(f.Categories))
	for name, row := range f.Categories {
		if s := row.sum(); s != 100 {
			return nil, fmt.Errorf("op=scoring.loadWeights: category %q weights sum to %.0f, want 100", name, s)
		}
		table[domain.JobCategory(name)] = row
	}
	for _, required := range []domain.JobCategory{
		domain.CategorySoftware, domain.CategoryDataScience, domain.CategoryQAAutomation,
		domain.CategoryNonTechnical, domain.CategoryBusiness,
	} {
		if _, ok := table[required]; !ok {
			return nil, fmt.Errorf("op=scoring.loadWeights: category %q missing from weight table", required)
		}
	}
	return table, nil
}
