package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/tradewinds/internal/settlement"
	"github.com/talgya/tradewinds/internal/trade"
)

// LoadPropensities reads per-settlement trade profiles from a YAML file of
// the form:
//
//	1:
//	  imports: {grain: 3, cloth: 1}
//	  exports: {wood: 5, stone: 2}
func LoadPropensities(path string) (map[settlement.ID]trade.Propensity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profiles map[settlement.ID]trade.Propensity
	if err := yaml.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("propensities %s: %w", path, err)
	}
	return profiles, nil
}

// ApplyPropensities registers a batch of loaded profiles.
func (w *World) ApplyPropensities(profiles map[settlement.ID]trade.Propensity) {
	for id, p := range profiles {
		w.propensity[id] = p
	}
}
