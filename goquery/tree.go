// Package goquery implements the heuristic extraction engine of pulse on top
// of the goquery markup tree.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pulse"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse builds the markup tree of a decoded snapshot.
// Malformed markup is recovered by the HTML5 parsing algorithm.
func Parse(src string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, pulse.Errorf(pulse.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// classOf returns the class attribute of an element node.
func classOf(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

// isInvisible reports whether the text below n is not page text.
func isInvisible(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

// next returns the node after n in a pre-order walk of the subtree at root,
// or nil when the walk is done. Invisible subtrees are not entered.
func next(root, n *html.Node) *html.Node {
	if n.FirstChild != nil && !isInvisible(n) {
		return n.FirstChild
	}
	for n != root {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
		if n == nil {
			return nil
		}
	}
	return nil
}

// findFirst returns the first descendant of root, in document order, for
// which match returns true. root itself is not tested.
func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root.FirstChild == nil || isInvisible(root) {
		return nil
	}
	for n := root.FirstChild; n != nil; n = next(root, n) {
		if match(n) {
			return n
		}
	}
	return nil
}

// each calls fn for every descendant of root in document order.
func each(root *html.Node, fn func(*html.Node)) {
	findFirst(root, func(n *html.Node) bool {
		fn(n)
		return false
	})
}

// classSignal matches elements whose class carries the signal.
func classSignal(s pulse.Signal) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && s.MatchClass(classOf(n))
	}
}

// textSignal matches text fragments carrying the signal.
func textSignal(s pulse.Signal) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.TextNode && s.MatchText(n.Data)
	}
}

// anySignal matches elements by class or text fragments by content.
func anySignal(s pulse.Signal) func(*html.Node) bool {
	byClass, byText := classSignal(s), textSignal(s)
	return func(n *html.Node) bool {
		return byClass(n) || byText(n)
	}
}

// normalizedText returns the page text below n: every text fragment with
// whitespace collapsed, joined by single spaces and trimmed.
func normalizedText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.Join(strings.Fields(n.Data), " ")
	}
	var b strings.Builder
	each(n, func(c *html.Node) {
		if c.Type != html.TextNode {
			return
		}
		for _, f := range strings.Fields(c.Data) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f)
		}
	})
	return b.String()
}

// selectionText returns the normalized text of every node in sel.
func selectionText(sel *goquery.Selection) string {
	parts := make([]string, 0, len(sel.Nodes))
	for _, n := range sel.Nodes {
		if t := normalizedText(n); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
