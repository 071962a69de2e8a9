package sections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewBuilder(catalog, nil)
}

func TestBuildSplitsAtNextHeading(t *testing.T) {
	text := "Cover page\n" +
		"Item 1A. Risk Factors\n" +
		"Competition could harm our margins.\n" +
		"Item 1B. Unresolved Staff Comments\n" +
		"None.\n"

	ix := testBuilder(t).Build(text)

	riskSection := ix.Get("item_1a")
	require.NotNil(t, riskSection)
	assert.True(t, riskSection.PresentInDocument)
	assert.Equal(t, TypeRisks, riskSection.SectionType)
	assert.True(t, strings.HasPrefix(riskSection.Text, "Item 1A."))
	assert.Contains(t, riskSection.Text, "Competition could harm our margins.")
	assert.NotContains(t, riskSection.Text, "Item 1B.")

	staffSection := ix.Get("item_1b")
	require.NotNil(t, staffSection)
	assert.True(t, staffSection.PresentInDocument)
	assert.True(t, strings.HasPrefix(staffSection.Text, "Item 1B."))
	assert.Contains(t, staffSection.Text, "None.")
}

// A table-of-contents mention and the real heading share an id; the longer
// body wins.
func TestBuildDuplicateHeadingKeepsLongest(t *testing.T) {
	text := "Table of Contents\n" +
		"Item 7. Management's Discussion and Analysis\n" +
		"Item 8. Financial Statements\n" +
		"Item 7. Management's Discussion and Analysis\n" +
		strings.Repeat("Revenue increased due to strong product demand. ", 40) + "\n" +
		"Item 8. Financial Statements\n" +
		"See accompanying notes.\n"

	ix := testBuilder(t).Build(text)

	mdna := ix.Get("item_7")
	require.NotNil(t, mdna)
	assert.Contains(t, mdna.Text, "strong product demand")
	assert.Equal(t, len(mdna.Text), mdna.ApproxCharLen)
}

func TestBuildNoHeadings(t *testing.T) {
	ix := testBuilder(t).Build("Just a plain letter to shareholders with no item headings.")
	assert.Equal(t, 0, ix.Len())
}

// Catalogue entries absent from the document still appear, marked absent.
func TestBuildAbsentCatalogueEntries(t *testing.T) {
	ix := testBuilder(t).Build("Item 1A. Risk Factors\nSome risks.\n")

	require.NotZero(t, ix.Len())
	cyber := ix.Get("item_1c")
	require.NotNil(t, cyber)
	assert.False(t, cyber.PresentInDocument)
	assert.Equal(t, "Item 1C. Cybersecurity", cyber.Label)
	assert.Empty(t, cyber.Text)
}

// Headings outside the catalogue are indexed with type "other".
func TestBuildUncataloguedSection(t *testing.T) {
	ix := testBuilder(t).Build("Item 1A. Risk Factors\nRisks.\nItem 99. Exhibits Supplement\nExtra.\n")

	extra := ix.Get("item_99")
	require.NotNil(t, extra)
	assert.Equal(t, TypeOther, extra.SectionType)
	assert.Equal(t, "UNKNOWN", extra.Part)
	assert.True(t, extra.PresentInDocument)
}

func TestFindHeadingsNormalizesIDs(t *testing.T) {
	headings := findHeadings("ITEM 7A. Quantitative and Qualitative Disclosures\ntext")
	require.Len(t, headings, 1)
	assert.Equal(t, "item_7a", headings[0].id)
	assert.Equal(t, "7A", headings[0].number)
}
