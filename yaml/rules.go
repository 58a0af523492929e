// Package yaml loads extraction rule overrides from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"

	"github.com/fwojciec/pulse"
	"gopkg.in/yaml.v3"
)

// rulesFile mirrors pulse.Rules. Every field is optional; nil fields keep
// the default value.
type rulesFile struct {
	BaseURL           *string     `yaml:"base_url"`
	Symbol            *signalFile `yaml:"symbol"`
	MaxSeedLen        *int        `yaml:"max_seed_len"`
	Position          *signalFile `yaml:"position"`
	Change            *signalFile `yaml:"change"`
	PositionValue     *string     `yaml:"position_value"`
	ChangeValue       *string     `yaml:"change_value"`
	NewsHeading       []string    `yaml:"news_heading"`
	NewsContainer     *string     `yaml:"news_container"`
	MinHeadingLinks   *int        `yaml:"min_heading_links"`
	MinContainerLinks *int        `yaml:"min_container_links"`
	LinkDenylist      []string    `yaml:"link_denylist"`
	Timestamp         *signalFile `yaml:"timestamp"`
	MinTitleLen       *int        `yaml:"min_title_len"`
	MaxNews           *int        `yaml:"max_news"`
	CardDepth         *int        `yaml:"card_depth"`
	RegionDepth       *int        `yaml:"region_depth"`
	TimestampDepth    *int        `yaml:"timestamp_depth"`
}

type signalFile struct {
	Class *string `yaml:"class"`
	Text  *string `yaml:"text"`
}

// LoadRules reads rule overrides from path and applies them to
// pulse.DefaultRules. Returns EINVALID for unknown keys, bad patterns or
// rules that fail validation.
func LoadRules(path string) (pulse.Rules, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return pulse.Rules{}, pulse.Errorf(pulse.ENOTFOUND, "rules file %s not found", path)
	}
	if err != nil {
		return pulse.Rules{}, err
	}
	return ParseRules(data)
}

// ParseRules applies YAML rule overrides to pulse.DefaultRules.
func ParseRules(data []byte) (pulse.Rules, error) {
	var f rulesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return pulse.Rules{}, pulse.Errorf(pulse.EINVALID, "invalid rules file: %v", err)
	}

	rules := pulse.DefaultRules()
	if err := f.apply(&rules); err != nil {
		return pulse.Rules{}, err
	}
	if err := rules.Validate(); err != nil {
		return pulse.Rules{}, err
	}
	return rules, nil
}

func (f *rulesFile) apply(r *pulse.Rules) error {
	var err error

	if f.BaseURL != nil {
		r.BaseURL = *f.BaseURL
	}
	if r.Symbol, err = f.Symbol.apply("symbol", r.Symbol); err != nil {
		return err
	}
	if r.Position, err = f.Position.apply("position", r.Position); err != nil {
		return err
	}
	if r.Change, err = f.Change.apply("change", r.Change); err != nil {
		return err
	}
	if r.Timestamp, err = f.Timestamp.apply("timestamp", r.Timestamp); err != nil {
		return err
	}
	if r.PositionValue, err = compile("position_value", f.PositionValue, r.PositionValue); err != nil {
		return err
	}
	if r.ChangeValue, err = compile("change_value", f.ChangeValue, r.ChangeValue); err != nil {
		return err
	}
	if r.NewsContainer, err = compile("news_container", f.NewsContainer, r.NewsContainer); err != nil {
		return err
	}
	if f.NewsHeading != nil {
		r.NewsHeading = f.NewsHeading
	}
	if f.LinkDenylist != nil {
		r.LinkDenylist = f.LinkDenylist
	}

	setInt(&r.MaxSeedLen, f.MaxSeedLen)
	setInt(&r.MinHeadingLinks, f.MinHeadingLinks)
	setInt(&r.MinContainerLinks, f.MinContainerLinks)
	setInt(&r.MinTitleLen, f.MinTitleLen)
	setInt(&r.MaxNews, f.MaxNews)
	setInt(&r.CardDepth, f.CardDepth)
	setInt(&r.RegionDepth, f.RegionDepth)
	setInt(&r.TimestampDepth, f.TimestampDepth)
	return nil
}

// apply overrides the patterns of def that s sets. An empty pattern
// disables that side of the signal.
func (s *signalFile) apply(name string, def pulse.Signal) (pulse.Signal, error) {
	if s == nil {
		return def, nil
	}
	sig, _ := def.(pulse.PatternSignal)

	var err error
	if sig.Class, err = compile(name+".class", s.Class, sig.Class); err != nil {
		return nil, err
	}
	if sig.Text, err = compile(name+".text", s.Text, sig.Text); err != nil {
		return nil, err
	}
	return sig, nil
}

func compile(name string, expr *string, def *regexp.Regexp) (*regexp.Regexp, error) {
	if expr == nil {
		return def, nil
	}
	if *expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile(*expr)
	if err != nil {
		return nil, pulse.Errorf(pulse.EINVALID, "invalid %s pattern: %v", name, err)
	}
	return re, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
