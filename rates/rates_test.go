package rates_test

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
	"git.cmcode.dev/cmcode/exchange-rate-tui/rates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSnapshot = `{
  "fetched_at": "2026-08-01T00:00:00+00:00",
  "source": "https://finance.naver.com/marketindex/exchangeList.naver",
  "build_sha": "abc1234",
  "rates_by_type": {
    "sale": {"KRW": 1, "USD": 1300, "EUR": 1450, "JPY": 9.1},
    "buy":  {"KRW": 1, "USD": 1322.7, "EUR": 1478.8, "JPY": 9.25}
  },
  "currencies": [
    {"code": "KRW", "label": "Korean Won (KRW)", "source_unit": 1},
    {"code": "JPY", "label": "Japanese Yen (JPY)", "source_unit": 100}
  ]
}`

func sampleTable(t *testing.T) rates.Table {
	t.Helper()

	s, err := rates.ParseSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)

	return s.Select(c.RateTypeSale)
}

func TestParseSnapshot(t *testing.T) {
	s, err := rates.ParseSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01T00:00:00+00:00", s.FetchedAt)
	assert.Equal(t, "abc1234", s.BuildSHA)
	assert.Len(t, s.Tables, 2)
	assert.InDelta(t, 1322.7, s.Tables[c.RateTypeBuy].Rates["USD"], 1e-9)

	require.Len(t, s.Currencies, 2)
	assert.Equal(t, 100, s.Currencies[1].SourceUnit)
}

func TestParseSnapshotErrors(t *testing.T) {
	_, err := rates.ParseSnapshot([]byte("{not json"))
	assert.Error(t, err)

	_, err = rates.ParseSnapshot([]byte(`{"fetched_at": "x"}`))
	assert.Error(t, err)

	_, err = rates.ParseSnapshot([]byte(`{"rates_by_type": {"buy": {"KRW": 1}}}`))
	assert.Error(t, err, "a snapshot without the default table is unusable")
}

func TestSelectFallsBackToDefault(t *testing.T) {
	s, err := rates.ParseSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)

	assert.Equal(t, c.RateTypeBuy, s.Select(c.RateTypeBuy).Type)
	assert.Equal(t, c.RateTypeSale, s.Select("nonsense").Type)
	assert.Equal(t, c.RateTypeSale, s.Select("").Type)
}

func TestConvertIdentity(t *testing.T) {
	table := sampleTable(t)

	for _, amount := range []float64{0, 1, 100, 1234.56} {
		assert.Equal(t, amount, rates.Convert(amount, "USD", "USD", table))
	}
}

func TestConvertThroughPivot(t *testing.T) {
	table := sampleTable(t)

	// 100 USD at 1300 KRW/USD is 130,000 KRW, or about 89.66 EUR at 1450.
	assert.InDelta(t, 130000, rates.Convert(100, "USD", "KRW", table), 1e-9)
	assert.InDelta(t, 89.6551724, rates.Convert(100, "USD", "EUR", table), 1e-6)
}

func TestConvertConsistency(t *testing.T) {
	table := sampleTable(t)

	direct := rates.Convert(250, "USD", "JPY", table)
	viaEUR := rates.Convert(rates.Convert(250, "USD", "EUR", table), "EUR", "JPY", table)

	assert.InEpsilon(t, direct, viaEUR, 1e-9)
}

func TestCanConvert(t *testing.T) {
	table := sampleTable(t)

	assert.True(t, rates.CanConvert(table, "KRW", "USD", "EUR", "JPY"))
	assert.False(t, rates.CanConvert(table, "USD", "XXX"))

	table.Rates["BAD"] = 0
	assert.False(t, rates.CanConvert(table, "BAD"))

	table.Rates["BAD"] = math.Inf(1)
	assert.False(t, rates.CanConvert(table, "BAD"))

	table.Rates["BAD"] = math.NaN()
	assert.False(t, rates.CanConvert(table, "BAD"))
}

func TestFetch(t *testing.T) {
	var gotPath, gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery

		_, _ = w.Write([]byte(sampleSnapshot))
	}))
	defer srv.Close()

	s, err := rates.Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "/data/rates.json", gotPath)
	assert.Contains(t, gotQuery, "ts=")
	assert.InDelta(t, 1300, s.Select(c.RateTypeSale).Rates["USD"], 1e-9)
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := rates.Fetch(context.Background(), srv.Client(), srv.URL)
	assert.Error(t, err)
}
