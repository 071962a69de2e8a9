// Package sections builds a navigable map of a 10-K's narrative structure:
// heading detection, section slicing, a typed section index, and the
// retrieval filters used to route questions to relevant sections.
package sections

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// =============================================================================
// SECTION INDEX TYPES
// =============================================================================

// SectionType classifies a filing section for retrieval routing.
type SectionType string

const (
	TypeBusiness          SectionType = "business"
	TypeRisks             SectionType = "risks"
	TypeStaffComments     SectionType = "staff_comments"
	TypeCybersecurity     SectionType = "cybersecurity"
	TypeProperties        SectionType = "properties"
	TypeLegal             SectionType = "legal"
	TypeSafety            SectionType = "safety"
	TypeEquityMarket      SectionType = "equity_market"
	TypeReserved          SectionType = "reserved"
	TypeMDNA              SectionType = "mdna"
	TypeMarketRisk        SectionType = "market_risk"
	TypeFinancials        SectionType = "financials"
	TypeAccountingChanges SectionType = "accounting_changes"
	TypeControls          SectionType = "controls"
	TypeOtherInfo         SectionType = "other_info"
	TypeForeignDisclosure SectionType = "foreign_disclosure"
	TypeGovernance        SectionType = "directors_governance"
	TypeCompensation      SectionType = "compensation"
	TypeOwnership         SectionType = "ownership"
	TypeRelationships     SectionType = "relationships"
	TypeAccountantFees    SectionType = "accountant_fees"
	TypeExhibits          SectionType = "exhibits"
	TypeSummary           SectionType = "summary"

	// TypeOther marks detected headings outside the standard catalogue.
	TypeOther SectionType = "other"
)

// Section is one entry of the Section Index: a standard catalogue item
// (possibly absent from this particular document) or a detected extra.
// Text holds the full body on a freshly built index; an index restored
// from JSON carries only the leading snippetLen bytes, which is exactly
// the slice retrieval scoring reads.
type Section struct {
	ID                string
	Label             string
	SectionType       SectionType
	Part              string
	Text              string
	ApproxCharLen     int
	PresentInDocument bool
}

// sectionJSON is the persisted form of a Section. Only a bounded prefix
// of the body is carried; full bodies run to hundreds of KB and
// ApproxCharLen records the original length.
type sectionJSON struct {
	ID                string      `json:"id"`
	Label             string      `json:"label"`
	SectionType       SectionType `json:"section_type"`
	Part              string      `json:"part"`
	TextPrefix        string      `json:"text_prefix,omitempty"`
	ApproxCharLen     int         `json:"approx_char_len"`
	PresentInDocument bool        `json:"present_in_document"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	prefix := s.Text
	if len(prefix) > snippetLen {
		prefix = prefix[:snippetLen]
	}
	return json.Marshal(sectionJSON{
		ID:                s.ID,
		Label:             s.Label,
		SectionType:       s.SectionType,
		Part:              s.Part,
		TextPrefix:        prefix,
		ApproxCharLen:     s.ApproxCharLen,
		PresentInDocument: s.PresentInDocument,
	})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var j sectionJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*s = Section{
		ID:                j.ID,
		Label:             j.Label,
		SectionType:       j.SectionType,
		Part:              j.Part,
		Text:              j.TextPrefix,
		ApproxCharLen:     j.ApproxCharLen,
		PresentInDocument: j.PresentInDocument,
	}
	return nil
}

// Index is an ordered collection of sections keyed by id. Order is the
// catalogue's nominal ordering followed by detected extras in document
// order; retrieval tie-breaks depend on it.
type Index struct {
	order []string
	byID  map[string]*Section
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{byID: make(map[string]*Section)}
}

// Add inserts or replaces a section. First insertion fixes its position.
func (ix *Index) Add(s *Section) {
	if _, exists := ix.byID[s.ID]; !exists {
		ix.order = append(ix.order, s.ID)
	}
	ix.byID[s.ID] = s
}

// Get returns the section for id, or nil.
func (ix *Index) Get(id string) *Section {
	if ix == nil {
		return nil
	}
	return ix.byID[id]
}

// Sections returns all entries in index order.
func (ix *Index) Sections() []*Section {
	if ix == nil {
		return nil
	}
	out := make([]*Section, 0, len(ix.order))
	for _, id := range ix.order {
		out = append(out, ix.byID[id])
	}
	return out
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.order)
}

// MarshalJSON renders the index as id -> entry, the shape downstream
// consumers read. Keys are written in index order so a restored index
// ranks retrieval ties the same way as the index it was built from.
func (ix *Index) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range ix.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(ix.byID[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores an index from its id -> entry form, preserving
// the key order it was written with.
func (ix *Index) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("section index: expected object, got %v", tok)
	}
	ix.order = nil
	ix.byID = make(map[string]*Section)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("section index: non-string key %v", keyTok)
		}
		s := &Section{}
		if err := dec.Decode(s); err != nil {
			return err
		}
		if s.ID == "" {
			s.ID = id
		}
		ix.Add(s)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
