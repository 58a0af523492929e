package pulse

import (
	"net/url"
	"unicode/utf8"
)

// Field limits shared by the extractors and record validation.
const (
	MaxSymbolLen   = 10
	MinTitleLen    = 10
	MaxNewsRecords = 20
)

// MarketRecord is one ticker card: a symbol with its position and change.
// StockPosition and ChangePct are free text and may be empty.
type MarketRecord struct {
	Symbol        string `json:"symbol"`
	StockPosition string `json:"stockPosition"`
	ChangePct     string `json:"changePct"`
}

// MarketKey identifies a MarketRecord for deduplication.
type MarketKey struct {
	Symbol        string
	StockPosition string
	ChangePct     string
}

// Key returns the deduplication key of the record.
func (r MarketRecord) Key() MarketKey {
	return MarketKey(r)
}

// Validate returns an error if the record contains invalid fields.
func (r MarketRecord) Validate() error {
	if r.Symbol == "" {
		return Errorf(EINVALID, "market symbol required")
	}
	if n := utf8.RuneCountInString(r.Symbol); n > MaxSymbolLen {
		return Errorf(EINVALID, "market symbol %q too long (%d > %d)", r.Symbol, n, MaxSymbolLen)
	}
	return nil
}

// NewsRecord is one "latest news" item. Timestamp is free text and may be
// empty; Link is absolute and identifies the record.
type NewsRecord struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
	Link      string `json:"link"`
}

// Validate returns an error if the record contains invalid fields.
func (r NewsRecord) Validate() error {
	if n := utf8.RuneCountInString(r.Title); n < MinTitleLen {
		return Errorf(EINVALID, "news title %q too short (%d < %d)", r.Title, n, MinTitleLen)
	}
	if r.Link == "" {
		return Errorf(EINVALID, "news link required")
	}
	u, err := url.Parse(r.Link)
	if err != nil || !u.IsAbs() {
		return Errorf(EINVALID, "news link %q is not absolute", r.Link)
	}
	return nil
}

// Extraction holds both record sets projected from one snapshot.
// It holds no references into the parsed markup.
type Extraction struct {
	Market []MarketRecord `json:"market"`
	News   []NewsRecord   `json:"news"`
}

// Extractor turns a decoded snapshot into records.
type Extractor interface {
	// Extract parses html once and runs both the market and the news
	// extraction over the parsed tree.
	// Returns EMISSING if html is empty. Finding no records is not an error.
	Extract(html string) (*Extraction, error)
}
