package pulse

import "context"

// RecordSink accepts the ordered records of one extraction.
type RecordSink interface {
	WriteExtraction(ctx context.Context, ex *Extraction) error
}

// Column headers of the flat tabular output. Order is fixed.
var (
	MarketColumns = []string{"symbol", "stockPosition", "changePct"}
	NewsColumns   = []string{"timestamp", "title", "link"}
)

// Row returns the record's fields in MarketColumns order.
func (r MarketRecord) Row() []string {
	return []string{r.Symbol, r.StockPosition, r.ChangePct}
}

// Row returns the record's fields in NewsColumns order.
func (r NewsRecord) Row() []string {
	return []string{r.Timestamp, r.Title, r.Link}
}
