// Package document loads one 10-K HTML/iXBRL filing and exposes its parsed
// tree plus a flattened-text view for section mapping.
//
// A Document is immutable after construction: all extraction stages are pure
// reads of the same parsed input, so batches of filings can be processed in
// parallel without shared state.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrMissingInput is returned when the filing cannot be read or located.
// Fatal for the document: no partial fact table is produced.
var ErrMissingInput = errors.New("filing document missing or unreadable")

// Document is one parsed filing.
type Document struct {
	doc      *goquery.Document
	fullText string
}

// Load reads and parses a filing from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
	}
	return FromBytes(data)
}

// FromBytes parses a filing held in memory.
func FromBytes(data []byte) (*Document, error) {
	return FromReader(bytes.NewReader(data))
}

// FromReader parses a filing from a reader. The reader is fully consumed
// before this returns; no handle is retained.
func FromReader(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filing HTML: %w", err)
	}
	return &Document{
		doc:      doc,
		fullText: flattenText(doc),
	}, nil
}

// Query exposes the parsed tree for fact extraction.
func (d *Document) Query() *goquery.Document {
	return d.doc
}

// FullText returns the newline-joined visible text of the filing.
func (d *Document) FullText() string {
	return d.fullText
}

// flattenText joins every visible text node with newlines so heading
// detection sees "Item 1A." on its own boundary even when the markup packs
// headings and bodies into adjacent elements.
func flattenText(doc *goquery.Document) string {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}
