package dataset

import (
	"fmt"
	"strconv"

	"satbackbone/internal/backbone"
	"satbackbone/internal/sat"

	"github.com/samber/lo"
)

// Sample is the persisted record consumed by downstream experiments: one
// generated instance together with its exact frozen backbone. Immutable once
// built. Backbone keys are strings because JSON object keys are strings; use
// GetBackbone for the variable-indexed view.
type Sample struct {
	Id           int             `json:"id"`
	Variables    uint64          `json:"n_vars" mapstructure:"n_vars"`
	Alpha        float64         `json:"alpha"`
	Clauses      [][]int64       `json:"clauses"`
	Backbone     map[string]bool `json:"backbone"`
	BackboneSize int             `json:"backbone_size" mapstructure:"backbone_size"`
	Rigidity     float64         `json:"rigidity"`
}

func newSample(id int, instance sat.SAT, alpha float64, frozen backbone.Backbone) Sample {
	return Sample{
		Id:        id,
		Variables: instance.Variables,
		Alpha:     alpha,
		Clauses:   instance.Clauses,
		Backbone: lo.MapKeys(frozen, func(_ bool, variable uint64) string {
			return strconv.FormatUint(variable, 10)
		}),
		BackboneSize: len(frozen),
		Rigidity:     float64(len(frozen)) / float64(instance.Variables),
	}
}

// GetInstance rebuilds the CNF instance the sample was generated from.
func (sample Sample) GetInstance() sat.SAT {
	return sat.SAT{Variables: sample.Variables, Clauses: sample.Clauses}
}

func (sample Sample) GetBackbone() backbone.Backbone {
	result := make(backbone.Backbone, len(sample.Backbone))
	for k, v := range sample.Backbone {
		key, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			panic(fmt.Sprintf("cannot transform backbone key: %v", err))
		}
		result[key] = v
	}
	return result
}
