package goquery

import (
	"github.com/fwojciec/pulse"
	"golang.org/x/net/html"
)

// FindCardRoot climbs from seed to the smallest enclosing subtree holding
// both a position and a change signal. Symbol, price and change usually
// share one repeated card template even when its class names are unknown.
//
// At most rules.CardDepth nodes are tested. When none qualifies the seed's
// parent is returned, or the seed itself if it has no parent.
func FindCardRoot(seed *html.Node, rules pulse.Rules) *html.Node {
	hasPosition, hasChange := anySignal(rules.Position), anySignal(rules.Change)

	cur := seed
	for hops := 0; hops < rules.CardDepth && cur != nil; hops++ {
		if cur.Type != html.ElementNode && cur.Type != html.DocumentNode {
			break
		}
		if findFirst(cur, hasPosition) != nil && findFirst(cur, hasChange) != nil {
			return cur
		}
		cur = cur.Parent
	}

	if seed.Parent != nil {
		return seed.Parent
	}
	return seed
}
