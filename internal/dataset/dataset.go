package dataset

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"satbackbone/internal/backbone"
	"satbackbone/internal/sat"

	"github.com/mitchellh/mapstructure"
)

// Generator labels random 3-SAT instances with their exact frozen backbone,
// producing the persisted samples downstream experiments train against.
type Generator struct {
	finder backbone.Finder
	rng    *rand.Rand
}

func NewGenerator(finder backbone.Finder, rng *rand.Rand) *Generator {
	return &Generator{finder: finder, rng: rng}
}

// Generate produces the requested number of satisfiable labeled samples at
// the given size and ratio. Unsatisfiable draws are discarded; attempts
// counts every draw, accepted or not. Samples are numbered sequentially
// from 0.
func (generator *Generator) Generate(samples int, variables uint64, alpha float64) ([]Sample, int, error) {
	dataset := make([]Sample, 0, samples)
	attempts := 0

	for len(dataset) < samples {
		attempts++

		instance, err := sat.Generate3SAT(variables, alpha, generator.rng)
		if err != nil {
			return nil, attempts, err
		}

		frozen, satisfiable, _, err := generator.finder.FindBackbone(instance)
		if err != nil {
			return nil, attempts, err
		} else if !satisfiable {
			continue
		}

		dataset = append(dataset, newSample(len(dataset), instance, alpha, frozen))
	}

	return dataset, attempts, nil
}

// WriteJson persists the dataset as an indented JSON array.
func WriteJson(dataset []Sample, file string) error {
	bytes, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, bytes, 0666)
}

// DatasetFromJson loads a persisted dataset.
func DatasetFromJson(file string) ([]Sample, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var datasetJson []map[string]any
	if err := json.Unmarshal(bytes, &datasetJson); err != nil {
		return nil, err
	}

	dataset := make([]Sample, 0, len(datasetJson))
	for _, entry := range datasetJson {
		var sample Sample
		if err := mapstructure.Decode(entry, &sample); err != nil {
			return nil, fmt.Errorf("cannot decode sample: %v", err)
		}
		dataset = append(dataset, sample)
	}

	return dataset, nil
}
