// Package i18n holds the immutable message tables of the logbook and resolves
// (locale, key) pairs against them.
package i18n

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Fallback is the locale used when a requested locale or key is unknown.
const Fallback = "nl_NL"

// Catalog is a read-only set of message tables keyed by locale ("nl_NL").
// It is safe for concurrent use.
type Catalog struct {
	tables  map[string]map[string]string
	locales []string // index-aligned with the matcher's supported tags
	matcher language.Matcher
}

// New builds a catalog from tables. The fallback table must be present.
// Tables are copied, so later changes to the arguments are not observed.
func New(tables map[string]map[string]string) *Catalog {
	if _, ok := tables[Fallback]; !ok {
		panic("i18n: catalog without " + Fallback + " table")
	}

	// The fallback goes first: the matcher returns its first tag when nothing
	// matches.
	locales := []string{Fallback}
	for _, l := range slices.Sorted(maps.Keys(tables)) {
		if l != Fallback {
			locales = append(locales, l)
		}
	}

	c := &Catalog{tables: make(map[string]map[string]string, len(tables)), locales: locales}
	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		c.tables[l] = maps.Clone(tables[l])
		tags = append(tags, language.Make(toBCP47(l)))
	}
	c.matcher = language.NewMatcher(tags)
	return c
}

var builtin = New(map[string]map[string]string{
	"nl_NL": nlNL,
	"en_US": enUS,
})

// Default returns the catalog with the built-in Dutch and English tables.
func Default() *Catalog {
	return builtin
}

// Locales returns the supported locales, fallback first.
func (c *Catalog) Locales() []string {
	return slices.Clone(c.locales)
}

// Supported reports whether locale names one of the tables exactly.
func (c *Catalog) Supported(locale string) bool {
	_, ok := c.tables[locale]
	return ok
}

// Resolve maps a requested locale onto a supported one. Exact names win;
// otherwise the closest language match is used ("en", "en-GB" -> en_US), and
// anything unrecognised resolves to Fallback.
func (c *Catalog) Resolve(locale string) string {
	if c.Supported(locale) {
		return locale
	}
	tag, err := language.Parse(toBCP47(locale))
	if err != nil {
		return Fallback
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return Fallback
	}
	return c.locales[idx]
}

// Lookup returns the message for key in locale, falling back to the
// Fallback table and finally to key itself.
func (c *Catalog) Lookup(locale, key string) string {
	if msg, ok := c.tables[c.Resolve(locale)][key]; ok {
		return msg
	}
	if msg, ok := c.tables[Fallback][key]; ok {
		return msg
	}
	return key
}

// Table returns the resolved locale and a copy of its messages. Keys missing
// from that table are filled in from the fallback table.
func (c *Catalog) Table(locale string) (string, map[string]string) {
	resolved := c.Resolve(locale)
	out := maps.Clone(c.tables[Fallback])
	maps.Copy(out, c.tables[resolved])
	return resolved, out
}

func toBCP47(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}
