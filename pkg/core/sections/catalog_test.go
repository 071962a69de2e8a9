package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, catalog)

	assert.Equal(t, "item_1", catalog[0].ID)

	byID := make(map[string]CatalogEntry)
	for _, e := range catalog {
		byID[e.ID] = e
	}
	assert.Equal(t, TypeRisks, byID["item_1a"].SectionType)
	assert.Equal(t, TypeMDNA, byID["item_7"].SectionType)
	assert.Equal(t, TypeFinancials, byID["item_8"].SectionType)
	assert.Equal(t, "PART IV", byID["item_16"].Part)
}

func TestParseCatalogInvalid(t *testing.T) {
	_, err := ParseCatalog([]byte("- id: [broken"))
	assert.Error(t, err)
}
