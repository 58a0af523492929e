package goquery

import (
	"regexp"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pulse"
	"golang.org/x/net/html"
)

// ExtractMarketData returns the ticker cards of the document in first-seen
// order. Records are unique by their (symbol, position, change) triple.
//
// Candidates come from two sources, concatenated: elements whose class
// carries the symbol signal, then the parents of short all-caps text
// fragments. The same card reached from both sources collapses only when
// the extracted fields are identical strings.
func (e *Extractor) ExtractMarketData(doc *goquery.Document) []pulse.MarketRecord {
	records := []pulse.MarketRecord{}
	seen := make(map[pulse.MarketKey]struct{})

	for _, seed := range e.symbolCandidates(doc) {
		card := FindCardRoot(seed, e.rules)

		record := pulse.MarketRecord{
			Symbol:        normalizedText(seed),
			StockPosition: fieldText(card, e.rules.Position, e.rules.PositionValue),
			ChangePct:     fieldText(card, e.rules.Change, e.rules.ChangeValue),
		}
		if record.Validate() != nil {
			continue
		}
		if _, ok := seen[record.Key()]; ok {
			continue
		}
		seen[record.Key()] = struct{}{}
		records = append(records, record)
	}

	return records
}

// symbolCandidates enumerates symbol seeds in encounter order.
func (e *Extractor) symbolCandidates(doc *goquery.Document) []*html.Node {
	var seeds []*html.Node
	byClass := classSignal(e.rules.Symbol)

	for _, root := range doc.Nodes {
		each(root, func(n *html.Node) {
			if byClass(n) {
				seeds = append(seeds, n)
			}
		})
	}

	for _, root := range doc.Nodes {
		each(root, func(n *html.Node) {
			if n.Type != html.TextNode || n.Parent == nil {
				return
			}
			// Whitespace padding disqualifies a fragment; only bare tickers seed.
			if utf8.RuneCountInString(n.Data) > e.rules.MaxSeedLen {
				return
			}
			if e.rules.Symbol.MatchText(n.Data) {
				seeds = append(seeds, n.Parent)
			}
		})
	}

	return seeds
}

// fieldText reads one card field: the first element carrying the signal
// class, else the first text fragment matching the value pattern.
func fieldText(card *html.Node, signal pulse.Signal, value *regexp.Regexp) string {
	if el := findFirst(card, classSignal(signal)); el != nil {
		return normalizedText(el)
	}
	frag := findFirst(card, func(n *html.Node) bool {
		return n.Type == html.TextNode && value.MatchString(n.Data)
	})
	if frag != nil {
		return normalizedText(frag)
	}
	return ""
}
