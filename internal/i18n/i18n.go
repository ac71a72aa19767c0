// Package i18n holds the user-facing strings of the interviewer in every
// supported language.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported lists the languages with a locale file, default first.
var Supported = []language.Tag{language.English, language.Russian}

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = fmt.Errorf("read locales dir: %w", err)
			return
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			data, err := localeFS.ReadFile("locales/" + e.Name())
			if err != nil {
				bundleErr = fmt.Errorf("read locale file %s: %w", e.Name(), err)
				return
			}
			if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
				bundleErr = fmt.Errorf("parse locale file %s: %w", e.Name(), err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

var matcher = language.NewMatcher(Supported)

// Catalog translates messages for one language.
type Catalog struct {
	tag language.Tag
	loc *i18n.Localizer
}

// New returns a catalog for lang, matched to the closest supported
// language. Unknown or malformed tags fall back to English.
func New(lang string) (*Catalog, error) {
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	tag, _ := language.MatchStrings(matcher, lang)
	base, _ := tag.Base()
	tag = language.Make(base.String())
	return &Catalog{
		tag: tag,
		loc: i18n.NewLocalizer(b, tag.String()),
	}, nil
}

// Lang returns the matched language code, e.g. "en" or "ru".
func (c *Catalog) Lang() string { return c.tag.String() }

// T translates a message by ID.
func (c *Catalog) T(id string) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: id})
}

// Td translates a message by ID with template data.
func (c *Catalog) Td(id string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Tp translates a pluralized message by ID.
func (c *Catalog) Tp(id string, count int) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (c *Catalog) localize(cfg *i18n.LocalizeConfig) string {
	s, err := c.loc.Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return s
}

// IsStopWord reports whether input asks to end the interview.
func (c *Catalog) IsStopWord(input string) bool {
	fold := cases.Fold()
	in := fold.String(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(input), ".!")))
	if in == "" {
		return false
	}
	for _, w := range strings.Split(c.T("StopWords"), "|") {
		if in == fold.String(strings.TrimSpace(w)) {
			return true
		}
	}
	return false
}
