package goquery

import (
	"net/url"
	"strings"

	"github.com/fwojciec/pulse"
)

// Ensure Extractor implements pulse.Extractor at compile time.
var _ pulse.Extractor = (*Extractor)(nil)

// Extractor runs the market and news heuristics over a parsed snapshot.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	rules pulse.Rules
	base  *url.URL
}

// NewExtractor creates an Extractor driven by rules.
// Returns EINVALID if the rules do not validate.
func NewExtractor(rules pulse.Rules) (*Extractor, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	base, err := url.Parse(rules.BaseURL)
	if err != nil {
		return nil, pulse.Errorf(pulse.EINVALID, "invalid base URL: %v", err)
	}
	return &Extractor{rules: rules, base: base}, nil
}

// Extract parses src once and projects both record sets from the tree.
func (e *Extractor) Extract(src string) (*pulse.Extraction, error) {
	if strings.TrimSpace(src) == "" {
		return nil, pulse.Errorf(pulse.EMISSING, "snapshot is empty: run 'pulse fetch' first")
	}

	doc, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return &pulse.Extraction{
		Market: e.ExtractMarketData(doc),
		News:   e.ExtractLatestNews(doc),
	}, nil
}
