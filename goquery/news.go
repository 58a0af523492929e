package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pulse"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractLatestNews returns up to rules.MaxNews news items from the news
// region in document order. Items are unique by resolved link; the first
// occurrence wins.
func (e *Extractor) ExtractLatestNews(doc *goquery.Document) []pulse.NewsRecord {
	records := []pulse.NewsRecord{}
	seen := make(map[string]struct{})

	FindNewsRegion(doc, e.rules).Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		anchor := sel.Get(0)
		title := normalizedText(anchor)
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if title == "" || href == "" {
			return true
		}
		if e.denied(href) || isNonHTTPLink(href) {
			return true
		}
		if utf8.RuneCountInString(title) < e.rules.MinTitleLen {
			return true
		}

		link := resolveURL(e.base, href)
		if link == "" {
			return true
		}
		if _, ok := seen[link]; ok {
			return true
		}
		seen[link] = struct{}{}

		records = append(records, pulse.NewsRecord{
			Timestamp: e.resolveTimestamp(anchor),
			Title:     title,
			Link:      link,
		})
		return len(records) < e.rules.MaxNews
	})

	return records
}

// denied reports whether href points at navigation or social chrome.
func (e *Extractor) denied(href string) bool {
	href = strings.ToLower(href)
	for _, s := range e.rules.LinkDenylist {
		if strings.Contains(href, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// resolveTimestamp searches the anchor's neighbourhood, up to
// rules.TimestampDepth ancestors, for a time element, then a timestamp
// class, then time-like text.
func (e *Extractor) resolveTimestamp(anchor *html.Node) string {
	byClass, byText := classSignal(e.rules.Timestamp), textSignal(e.rules.Timestamp)
	// Markers without text are placeholders filled in by scripts.
	isTime := withText(isTimeElement)
	byClass = withText(byClass)

	n := anchor.Parent
	for hops := 0; hops < e.rules.TimestampDepth && n != nil; hops++ {
		if el := findFirst(n, isTime); el != nil {
			return normalizedText(el)
		}
		if el := findFirst(n, byClass); el != nil {
			return normalizedText(el)
		}
		if frag := findFirst(n, byText); frag != nil {
			return strings.TrimSpace(frag.Data)
		}
		n = n.Parent
	}
	return ""
}

func isTimeElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Time
}

// withText narrows match to nodes with non-empty normalized text.
func withText(match func(*html.Node) bool) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return match(n) && normalizedText(n) != ""
	}
}

// resolveURL resolves href against base.
// Returns empty string if href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
