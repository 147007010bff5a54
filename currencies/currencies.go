// Package currencies holds the static metadata for every currency the
// calculator knows how to display: human-readable labels, flag glyphs, and
// the per-100-unit quirk some market sources have for JPY/VND.
package currencies

// Meta describes one supported currency.
type Meta struct {
	Code  string
	Label string
	Flag  string
	// SourceUnit is the unit size the upstream market page quotes the
	// currency in (JPY and VND are quoted per 100 units). Snapshot rates are
	// already normalized to 1 unit; this only matters to the scraper.
	SourceUnit int
}

// Ordered is the display order for selectors. KRW first since it is the
// pivot, then the order the upstream market page lists them in.
var Ordered = []string{
	"KRW", "USD", "CNY", "PHP", "TWD", "JPY", "VND", "THB", "EUR", "AUD",
}

var all = map[string]Meta{
	"KRW": {Code: "KRW", Label: "Korean Won (KRW)", Flag: "🇰🇷", SourceUnit: 1},
	"USD": {Code: "USD", Label: "US Dollar (USD)", Flag: "🇺🇸", SourceUnit: 1},
	"CNY": {Code: "CNY", Label: "Chinese Yuan (CNY)", Flag: "🇨🇳", SourceUnit: 1},
	"PHP": {Code: "PHP", Label: "Philippine Peso (PHP)", Flag: "🇵🇭", SourceUnit: 1},
	"TWD": {Code: "TWD", Label: "Taiwan Dollar (TWD)", Flag: "🇹🇼", SourceUnit: 1},
	"JPY": {Code: "JPY", Label: "Japanese Yen (JPY)", Flag: "🇯🇵", SourceUnit: 100},
	"VND": {Code: "VND", Label: "Vietnamese Dong (VND)", Flag: "🇻🇳", SourceUnit: 100},
	"THB": {Code: "THB", Label: "Thai Baht (THB)", Flag: "🇹🇭", SourceUnit: 1},
	"EUR": {Code: "EUR", Label: "Euro (EUR)", Flag: "🇪🇺", SourceUnit: 1},
	"AUD": {Code: "AUD", Label: "Australian Dollar (AUD)", Flag: "🇦🇺", SourceUnit: 1},
}

// Get returns the metadata for a code. Unknown codes get a usable fallback
// (the code itself as the label) instead of a zero value, so a snapshot that
// carries a currency this build doesn't know about still renders.
func Get(code string) Meta {
	m, ok := all[code]
	if !ok {
		return Meta{Code: code, Label: code, Flag: "🏳", SourceUnit: 1}
	}

	return m
}

// Known reports whether the code is one of the built-in currencies.
func Known(code string) bool {
	_, ok := all[code]
	return ok
}

// Label is shorthand for Get(code).Label.
func Label(code string) string {
	return Get(code).Label
}
