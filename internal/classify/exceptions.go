package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pbankaus/akviza/internal/model"
)

// exceptionsFile is the on-disk shape of the product exception lists.
// YAML is a superset of JSON, so legacy JSON exception files load too.
type exceptionsFile struct {
	ForceNonAlcoholExact    []string   `yaml:"force_non_alcohol_exact"`
	ForceNonAlcoholCombined [][]string `yaml:"force_non_alcohol_combined"`
	ForceNonAlcoholContains []string   `yaml:"force_non_alcohol_contains"`
}

// LoadExceptions reads the exception lists from cfg.ExceptionsFile and
// appends them to the lists already in cfg. A missing path is not an error:
// the classifier simply runs without site-specific exceptions.
func LoadExceptions(cfg model.ClassifyConfig) (model.ClassifyConfig, error) {
	if cfg.ExceptionsFile == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(cfg.ExceptionsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read exceptions file: %w", err)
	}
	var f exceptionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cfg, fmt.Errorf("parse exceptions file %s: %w", cfg.ExceptionsFile, err)
	}
	cfg.ForceNonAlcoholExact = append(cfg.ForceNonAlcoholExact, f.ForceNonAlcoholExact...)
	cfg.ForceNonAlcoholCombined = append(cfg.ForceNonAlcoholCombined, f.ForceNonAlcoholCombined...)
	cfg.ForceNonAlcoholContains = append(cfg.ForceNonAlcoholContains, f.ForceNonAlcoholContains...)
	return cfg, nil
}
