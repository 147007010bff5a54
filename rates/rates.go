// Package rates models the exchange-rate snapshot the calculator runs on:
// per-type rate tables keyed by currency code, each value expressed in units
// of the pivot currency (KRW) per one unit of the code. Tables are immutable
// once parsed.
package rates

import (
	"errors"
	"fmt"
	"math"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"

	"github.com/tidwall/gjson"
)

// Table is one rate-type variant of the snapshot.
type Table struct {
	Type  string
	Rates map[string]float64
}

// Currency is the per-currency metadata carried by the snapshot.
type Currency struct {
	Code       string
	Label      string
	SourceUnit int
}

// Snapshot is a fully parsed rates.json document.
type Snapshot struct {
	FetchedAt  string
	Source     string
	BuildSHA   string
	Tables     map[string]Table
	Currencies []Currency
}

var errNoRateTables = errors.New("snapshot contains no rate tables")

// Select returns the table for the requested rate type, falling back to the
// default type when the requested key is absent from the snapshot.
func (s Snapshot) Select(rateType string) Table {
	if t, ok := s.Tables[rateType]; ok {
		return t
	}

	return s.Tables[c.DefaultRateType]
}

// Convert re-expresses amount from one currency in another via the pivot.
// Identity when the codes match. Callers must have established via
// CanConvert that both rates are usable; Convert does not degrade
// gracefully on a missing or zero rate.
func Convert(amount float64, fromCode, toCode string, t Table) float64 {
	if fromCode == toCode {
		return amount
	}

	return amount * t.Rates[fromCode] / t.Rates[toCode]
}

// CanConvert reports whether every given code maps to a finite, strictly
// positive rate in the table.
func CanConvert(t Table, codes ...string) bool {
	for _, code := range codes {
		r, ok := t.Rates[code]
		if !ok || r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return false
		}
	}

	return true
}

// ParseSnapshot decodes a rates.json document. Both levels of rates_by_type
// carry open-ended keys (new rate types or currencies may appear in newer
// snapshots), so this walks the JSON rather than binding to a fixed struct.
func ParseSnapshot(b []byte) (Snapshot, error) {
	s := Snapshot{Tables: make(map[string]Table)}

	if !gjson.ValidBytes(b) {
		return s, errors.New("snapshot is not valid json")
	}

	root := gjson.ParseBytes(b)

	byType := root.Get("rates_by_type")
	if !byType.IsObject() {
		return s, errNoRateTables
	}

	byType.ForEach(func(key, value gjson.Result) bool {
		t := Table{Type: key.String(), Rates: make(map[string]float64)}

		value.ForEach(func(code, rate gjson.Result) bool {
			t.Rates[code.String()] = rate.Float()
			return true
		})

		s.Tables[t.Type] = t

		return true
	})

	if len(s.Tables) == 0 {
		return s, errNoRateTables
	}

	if _, ok := s.Tables[c.DefaultRateType]; !ok {
		return s, fmt.Errorf("snapshot is missing the %q rate table", c.DefaultRateType)
	}

	s.FetchedAt = root.Get("fetched_at").String()
	s.Source = root.Get("source").String()
	s.BuildSHA = root.Get("build_sha").String()

	root.Get("currencies").ForEach(func(_, cur gjson.Result) bool {
		s.Currencies = append(s.Currencies, Currency{
			Code:       cur.Get("code").String(),
			Label:      cur.Get("label").String(),
			SourceUnit: int(cur.Get("source_unit").Int()),
		})

		return true
	})

	return s, nil
}
