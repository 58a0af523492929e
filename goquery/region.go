package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pulse"
)

// FindNewsRegion returns the subtree most likely to hold the "latest news"
// feed. The first heading naming the feed wins when one of its ancestors
// holds enough links; otherwise the first news-like container with enough
// links; otherwise the whole document.
func FindNewsRegion(doc *goquery.Document, rules pulse.Rules) *goquery.Selection {
	if region := headingRegion(doc, rules); region != nil {
		return region
	}
	if region := containerRegion(doc, rules); region != nil {
		return region
	}
	return doc.Selection
}

// headingRegion climbs from the first news heading to the first ancestor
// holding more than rules.MinHeadingLinks links.
func headingRegion(doc *goquery.Document, rules pulse.Rules) *goquery.Selection {
	var heading *goquery.Selection
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if containsAll(strings.ToLower(selectionText(sel)), rules.NewsHeading) {
			heading = sel
			return false
		}
		return true
	})
	if heading == nil {
		return nil
	}

	// A bare heading rarely holds the links itself.
	parent := heading.Parent()
	for hops := 0; hops < rules.RegionDepth && parent.Length() > 0; hops++ {
		if parent.Find("a[href]").Length() > rules.MinHeadingLinks {
			return parent
		}
		parent = parent.Parent()
	}
	return nil
}

// containerRegion returns the first container-like element whose class
// reads as a news feed and which holds more than rules.MinContainerLinks links.
func containerRegion(doc *goquery.Document, rules pulse.Rules) *goquery.Selection {
	var region *goquery.Selection
	doc.Find("section, div, ul").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		return class != "" && rules.NewsContainer.MatchString(class)
	}).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.Find("a[href]").Length() > rules.MinContainerLinks {
			region = sel
			return false
		}
		return true
	})
	return region
}

func containsAll(s string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(s, strings.ToLower(term)) {
			return false
		}
	}
	return true
}
