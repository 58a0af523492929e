package pulse_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/pulse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, pulse.DefaultRules().Validate())
}

func TestRules_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(r *pulse.Rules)
	}{
		{name: "relative base URL", modify: func(r *pulse.Rules) { r.BaseURL = "/news" }},
		{name: "missing symbol signal", modify: func(r *pulse.Rules) { r.Symbol = nil }},
		{name: "missing value pattern", modify: func(r *pulse.Rules) { r.ChangeValue = nil }},
		{name: "missing container pattern", modify: func(r *pulse.Rules) { r.NewsContainer = nil }},
		{name: "no heading terms", modify: func(r *pulse.Rules) { r.NewsHeading = nil }},
		{name: "zero news cap", modify: func(r *pulse.Rules) { r.MaxNews = 0 }},
		{name: "zero card depth", modify: func(r *pulse.Rules) { r.CardDepth = 0 }},
		{name: "negative link threshold", modify: func(r *pulse.Rules) { r.MinHeadingLinks = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rules := pulse.DefaultRules()
			tt.modify(&rules)

			err := rules.Validate()

			require.Error(t, err)
			assert.Equal(t, pulse.EINVALID, pulse.ErrorCode(err))
		})
	}
}

func TestPatternSignal(t *testing.T) {
	t.Parallel()

	t.Run("matches class case-insensitively", func(t *testing.T) {
		t.Parallel()

		rules := pulse.DefaultRules()

		assert.True(t, rules.Symbol.MatchClass("MarketCard-Symbol"))
		assert.True(t, rules.Position.MatchClass("QuoteStockPosition"))
		assert.True(t, rules.Change.MatchClass("changePct up"))
		assert.False(t, rules.Symbol.MatchClass("headline"))
	})

	t.Run("empty class never matches", func(t *testing.T) {
		t.Parallel()

		s := pulse.PatternSignal{Class: regexp.MustCompile(`.*`)}

		assert.False(t, s.MatchClass(""))
	})

	t.Run("nil patterns never match", func(t *testing.T) {
		t.Parallel()

		var s pulse.PatternSignal

		assert.False(t, s.MatchClass("symbol"))
		assert.False(t, s.MatchText("AAPL"))
	})

	t.Run("symbol text requires only uppercase letters", func(t *testing.T) {
		t.Parallel()

		rules := pulse.DefaultRules()

		assert.True(t, rules.Symbol.MatchText("AAPL"))
		assert.False(t, rules.Symbol.MatchText("Aapl"))
		assert.False(t, rules.Symbol.MatchText("S&P"))
	})

	t.Run("timestamp text matches clock and relative times", func(t *testing.T) {
		t.Parallel()

		rules := pulse.DefaultRules()

		assert.True(t, rules.Timestamp.MatchText("10:42"))
		assert.True(t, rules.Timestamp.MatchText("2 hours ago"))
		assert.True(t, rules.Timestamp.MatchText("35 minutes ago"))
		assert.True(t, rules.Timestamp.MatchText("Mon 9 AM"))
		assert.False(t, rules.Timestamp.MatchText("yesterday"))
	})
}
