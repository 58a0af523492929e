package pulse

import (
	"net/url"
	"regexp"
)

// DefaultBaseURL is the origin the portal snapshot is fetched from.
const DefaultBaseURL = "https://www.cnbc.com"

// Signal detects one field of interest in markup of unknown shape.
// Detection is fuzzy: a signal matches class names and text fragments
// rather than fixed selectors.
type Signal interface {
	// MatchClass reports whether an element's class attribute carries the signal.
	MatchClass(class string) bool

	// MatchText reports whether a text fragment carries the signal.
	MatchText(text string) bool
}

// PatternSignal is a Signal backed by regular expressions.
// A nil pattern never matches.
type PatternSignal struct {
	Class *regexp.Regexp
	Text  *regexp.Regexp
}

// MatchClass implements Signal.
func (s PatternSignal) MatchClass(class string) bool {
	return s.Class != nil && class != "" && s.Class.MatchString(class)
}

// MatchText implements Signal.
func (s PatternSignal) MatchText(text string) bool {
	return s.Text != nil && s.Text.MatchString(text)
}

// Rules is the fixed configuration of the extraction engine: signals per
// field, link resolution, noise filters and traversal bounds.
// Rules is treated as an immutable value once handed to an extractor.
type Rules struct {
	// BaseURL resolves relative news links. Must be absolute.
	BaseURL string

	// Symbol finds ticker candidates. Its class pattern selects elements;
	// its text pattern selects short all-caps text fragments.
	Symbol Signal

	// MaxSeedLen bounds the length of text fragments used as symbol seeds.
	MaxSeedLen int

	// Position and Change decide whether a subtree is a complete card and
	// locate the field element by class.
	Position Signal
	Change   Signal

	// PositionValue and ChangeValue are the text fallbacks used when no
	// element in the card carries the field class.
	PositionValue *regexp.Regexp
	ChangeValue   *regexp.Regexp

	// NewsHeading lists terms that must all appear in a news section heading.
	NewsHeading []string

	// NewsContainer matches the class of container-like elements used as
	// the structural fallback for the news region.
	NewsContainer *regexp.Regexp

	// MinHeadingLinks and MinContainerLinks are exclusive lower bounds on
	// the number of links a news region candidate must contain.
	MinHeadingLinks   int
	MinContainerLinks int

	// LinkDenylist holds href substrings marking navigation or social chrome.
	LinkDenylist []string

	// Timestamp locates the time of a news item near its anchor.
	Timestamp Signal

	// MinTitleLen and MaxNews bound the emitted news records.
	MinTitleLen int
	MaxNews     int

	// Climb bounds.
	CardDepth      int
	RegionDepth    int
	TimestampDepth int
}

// DefaultRules returns the rules tuned for the portal snapshot.
func DefaultRules() Rules {
	return Rules{
		BaseURL: DefaultBaseURL,
		Symbol: PatternSignal{
			Class: regexp.MustCompile(`(?i)symbol|ticker`),
			Text:  regexp.MustCompile(`^[A-Z]+$`),
		},
		MaxSeedLen: 5,
		Position: PatternSignal{
			Class: regexp.MustCompile(`(?i)stockposition|price|value`),
			Text:  regexp.MustCompile(`(?i)stockposition|price|value`),
		},
		Change: PatternSignal{
			Class: regexp.MustCompile(`(?i)changepct|change|percentage`),
			Text:  regexp.MustCompile(`(?i)changepct|change|percentage`),
		},
		PositionValue:     regexp.MustCompile(`\$?\d+\.?\d*`),
		ChangeValue:       regexp.MustCompile(`[+-]?\d+\.?\d*%`),
		NewsHeading:       []string{"latest", "news"},
		NewsContainer:     regexp.MustCompile(`(?i)news|latest|article|feed`),
		MinHeadingLinks:   3,
		MinContainerLinks: 2,
		LinkDenylist:      []string{"login", "register", "facebook", "twitter", "instagram", "linkedin"},
		Timestamp: PatternSignal{
			Class: regexp.MustCompile(`(?i)timestamp|time|date`),
			Text:  regexp.MustCompile(`\d+:\d+|hours?|minutes?|AM|PM`),
		},
		MinTitleLen:    MinTitleLen,
		MaxNews:        MaxNewsRecords,
		CardDepth:      20,
		RegionDepth:    5,
		TimestampDepth: 3,
	}
}

// Validate returns an error if the rules cannot drive an extraction.
func (r Rules) Validate() error {
	u, err := url.Parse(r.BaseURL)
	if err != nil || !u.IsAbs() {
		return Errorf(EINVALID, "base URL %q must be absolute", r.BaseURL)
	}
	if r.Symbol == nil || r.Position == nil || r.Change == nil || r.Timestamp == nil {
		return Errorf(EINVALID, "symbol, position, change and timestamp signals required")
	}
	if r.PositionValue == nil || r.ChangeValue == nil {
		return Errorf(EINVALID, "position and change value patterns required")
	}
	if r.NewsContainer == nil {
		return Errorf(EINVALID, "news container pattern required")
	}
	if len(r.NewsHeading) == 0 {
		return Errorf(EINVALID, "at least one news heading term required")
	}
	if r.MaxSeedLen <= 0 || r.MaxNews <= 0 || r.MinTitleLen < 0 {
		return Errorf(EINVALID, "seed length and news cap must be positive")
	}
	if r.CardDepth <= 0 || r.RegionDepth <= 0 || r.TimestampDepth <= 0 {
		return Errorf(EINVALID, "climb depths must be positive")
	}
	if r.MinHeadingLinks < 0 || r.MinContainerLinks < 0 {
		return Errorf(EINVALID, "link thresholds must not be negative")
	}
	return nil
}
