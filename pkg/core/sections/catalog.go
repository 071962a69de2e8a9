package sections

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v2"
)

// CatalogEntry is one standard item of the filing family, as declared in
// catalog.yaml. Modeled as data so a new standard item is a yaml change.
type CatalogEntry struct {
	ID          string      `yaml:"id"`
	Label       string      `yaml:"label"`
	SectionType SectionType `yaml:"section_type"`
	Part        string      `yaml:"part"`
}

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     []CatalogEntry
	defaultCatalogErr  error
)

// DefaultCatalog returns the built-in 10-K item catalogue in nominal order.
func DefaultCatalog() ([]CatalogEntry, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(defaultCatalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// ParseCatalog parses a YAML section catalogue.
func ParseCatalog(data []byte) ([]CatalogEntry, error) {
	var entries []CatalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse section catalog: %w", err)
	}
	return entries, nil
}
