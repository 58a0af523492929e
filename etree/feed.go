// Package etree renders extracted news records as an RSS 2.0 feed.
package etree

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/pulse"
)

// Ensure FeedWriter implements pulse.RecordSink at compile time.
var _ pulse.RecordSink = (*FeedWriter)(nil)

// FeedWriter writes the news records of an extraction to an RSS file.
// Market records are not part of the feed.
type FeedWriter struct {
	path string

	// Channel metadata.
	Title       string
	Link        string
	Description string

	// Now returns the build time of the feed. Defaults to time.Now.
	Now func() time.Time
}

// NewFeedWriter creates a FeedWriter that writes to path. link is the
// portal the records were extracted from.
func NewFeedWriter(path, link string) *FeedWriter {
	return &FeedWriter{
		path:        path,
		Title:       "Latest News",
		Link:        link,
		Description: "Latest news extracted from " + link,
		Now:         time.Now,
	}
}

// WriteExtraction renders the feed and writes it to the configured path.
func (w *FeedWriter) WriteExtraction(ctx context.Context, ex *pulse.Extraction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	doc := w.Render(ex.News)
	doc.Indent(2)
	return doc.WriteToFile(w.path)
}

// Render builds the RSS document for records. Items keep record order.
// The relative timestamp shown on the portal goes to the item description.
func (w *FeedWriter) Render(records []pulse.NewsRecord) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(w.Title)
	channel.CreateElement("link").SetText(w.Link)
	channel.CreateElement("description").SetText(w.Description)
	channel.CreateElement("lastBuildDate").SetText(w.Now().UTC().Format(time.RFC1123Z))

	for _, r := range records {
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(r.Title)
		item.CreateElement("link").SetText(r.Link)
		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "true")
		guid.SetText(r.Link)
		if r.Timestamp != "" {
			item.CreateElement("description").SetText(r.Timestamp)
		}
	}

	return doc
}

// ReadFeed parses an RSS file written by FeedWriter back into news records.
func ReadFeed(path string) ([]pulse.NewsRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, err
	}

	channel := doc.FindElement("/rss/channel")
	if channel == nil {
		return nil, pulse.Errorf(pulse.EINVALID, "feed %s has no channel", path)
	}

	var records []pulse.NewsRecord
	for _, item := range channel.SelectElements("item") {
		r := pulse.NewsRecord{}
		if el := item.SelectElement("title"); el != nil {
			r.Title = el.Text()
		}
		if el := item.SelectElement("link"); el != nil {
			r.Link = el.Text()
		}
		if el := item.SelectElement("description"); el != nil {
			r.Timestamp = el.Text()
		}
		records = append(records, r)
	}
	return records, nil
}
