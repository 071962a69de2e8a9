package xbrl

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v2"
)

// ConceptMapping maps a canonical metric name to its acceptable source
// concepts, ordered by preference. Modeled as data rather than code so a new
// taxonomy alias is a one-line change to concepts.yaml.
type ConceptMapping map[string][]string

//go:embed concepts.yaml
var defaultConceptsYAML []byte

var (
	defaultMappingOnce sync.Once
	defaultMapping     ConceptMapping
	defaultMappingErr  error
)

// DefaultConceptMapping returns the built-in mapping parsed from the embedded
// concepts.yaml.
func DefaultConceptMapping() (ConceptMapping, error) {
	defaultMappingOnce.Do(func() {
		defaultMapping, defaultMappingErr = ParseConceptMapping(defaultConceptsYAML)
	})
	return defaultMapping, defaultMappingErr
}

// ParseConceptMapping parses a YAML concept mapping document.
func ParseConceptMapping(data []byte) (ConceptMapping, error) {
	var mapping ConceptMapping
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse concept mapping: %w", err)
	}
	return mapping, nil
}
