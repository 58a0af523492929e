package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pulse"
	main "github.com/fwojciec/pulse/cmd/pulse"
	"github.com/fwojciec/pulse/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portal = `<html><body>
<div class="MarketsBanner">
	<a class="MarketCard-container" href="/quotes/.DJI">
		<span class="MarketCard-symbol">DOW</span>
		<span class="MarketCard-stockPosition">39,112.16</span>
		<span class="MarketCard-changePct">+0.40%</span>
	</a>
</div>
<section>
	<h3>Latest News</h3>
	<ul>
		<li><time>32 Min Ago</time><a href="/2024/03/28/stocks-rally.html">Stocks rally as investors weigh inflation data</a></li>
		<li><time>1 Hour Ago</time><a href="/2024/03/28/oil-slips.html">Oil slips as traders eye supply outlook</a></li>
		<li><time>2 Hours Ago</time><a href="/2024/03/28/fed.html">Fed speakers signal patience on cuts</a></li>
		<li><time>3 Hours Ago</time><a href="/2024/03/28/retail.html">Retail sales surprise economists</a></li>
	</ul>
</section>
</body></html>`

// Story: Fetch then Extract
// A user fetches the portal once and extracts records from the snapshot.

func TestMain_FetchThenExtract(t *testing.T) {
	t.Parallel()

	// Given a portal server and an empty data directory
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(portal))
	}))
	defer srv.Close()
	data := t.TempDir()
	rss := filepath.Join(data, "news.xml")

	// When I fetch the portal
	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"--data", data, "fetch", srv.URL}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "to "+filepath.Join(data, "raw_data", "web_data.html"))

	// And extract records with an RSS feed
	stdout.Reset()
	err = main.NewMain().Run(context.Background(), []string{"--data", data, "extract", "--rss", rss}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	// Then both CSV tables are written
	assert.Contains(t, stdout.String(), "Market entries found: 1")
	assert.Contains(t, stdout.String(), "Latest News entries found: 4")
	market, err := os.ReadFile(filepath.Join(data, "processed_data", "market_data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "symbol,stockPosition,changePct\nDOW,\"39,112.16\",+0.40%\n", string(market))
	news, err := os.ReadFile(filepath.Join(data, "processed_data", "news_data.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(news), "32 Min Ago,Stocks rally as investors weigh inflation data,https://www.cnbc.com/2024/03/28/stocks-rally.html\n")

	// And the feed holds the news records
	items, err := etree.ReadFeed(rss)
	require.NoError(t, err)
	assert.Len(t, items, 4)

	// And the run is listed in the history
	stdout.Reset()
	err = main.NewMain().Run(context.Background(), []string{"--data", data, "runs"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "HASH")
}

func TestMain_ExtractWithoutSnapshot(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--data", t.TempDir(), "extract", "--no-history"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, pulse.EMISSING, pulse.ErrorCode(err))
	assert.Contains(t, stderr.String(), "run 'pulse fetch' first")
}

func TestMain_ExtractWithRulesFile(t *testing.T) {
	t.Parallel()

	data := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(data, "raw_data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "raw_data", "web_data.html"), []byte(portal), 0644))
	rules := filepath.Join(data, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("max_news: 2\n"), 0644))
	stdout := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--data", data, "extract", "--no-history", "--rules", rules}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Latest News entries found: 2")
	_, err = os.Stat(filepath.Join(data, "pulse.db"))
	assert.True(t, os.IsNotExist(err), "history database should not be created")
}

func TestMain_VerboseLogsPipeline(t *testing.T) {
	t.Parallel()

	data := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(data, "raw_data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(data, "raw_data", "web_data.html"), []byte(portal), 0644))
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--data", data, "-v", "extract", "--no-history"}, &bytes.Buffer{}, stderr)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "msg=extract")
	assert.Contains(t, stderr.String(), "sink=csv")
}

func TestMain_NoCommand(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
