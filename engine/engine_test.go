package engine_test

import (
	"testing"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
	"git.cmcode.dev/cmcode/exchange-rate-tui/engine"
	"git.cmcode.dev/cmcode/exchange-rate-tui/history"
	"git.cmcode.dev/cmcode/exchange-rate-tui/rates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleTable() rates.Table {
	return rates.Table{
		Type: c.RateTypeSale,
		Rates: map[string]float64{
			"KRW": 1,
			"USD": 1300,
			"EUR": 1450,
			"JPY": 9.1,
			"CNY": 180,
		},
	}
}

// newSession returns a three-field KRW/USD/EUR session, the shape most of
// the scenarios below use.
func newSession(t *testing.T) *engine.Session {
	t.Helper()

	s := engine.NewSession(saleTable())
	require.NoError(t, s.FieldCountChanged(1))
	require.NoError(t, s.CurrencySelected(2, "EUR"))

	require.Equal(t, 3, s.ActiveCount)

	return s
}

func TestEditPropagatesThroughPivot(t *testing.T) {
	s := newSession(t)

	// USD is field 1; 100 USD is 130,000 KRW and about 89.66 EUR.
	require.NoError(t, s.FieldEdited(1, "100", 3))

	assert.Equal(t, "100", s.Fields[1].Text)
	assert.Equal(t, "130,000.00", s.Fields[0].Text)
	assert.Equal(t, "89.66", s.Fields[2].Text)
	assert.Equal(t, 1, s.LastEdited)
}

func TestEditReformatsSourcePreservingCaret(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.FieldEdited(1, "1234567", 7))

	assert.Equal(t, "1,234,567", s.Fields[1].Text)
	assert.Equal(t, 9, s.Fields[1].Caret)
}

func TestEmptyEditClearsPeersOnly(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.FieldEdited(1, "100", 3))
	require.NoError(t, s.FieldEdited(1, "", 0))

	assert.Equal(t, "", s.Fields[1].Text)
	assert.Equal(t, "", s.Fields[0].Text)
	assert.Equal(t, "", s.Fields[2].Text)
}

func TestEmptyEditKeepsSourceTextUntouched(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.FieldEdited(1, "100", 3))

	// malformed text is treated as empty, but the edited field keeps it
	require.NoError(t, s.FieldEdited(1, "12abc", 5))

	assert.Equal(t, "12abc", s.Fields[1].Text)
	assert.Equal(t, "", s.Fields[0].Text)
}

func TestSourceCurrencyChangePreservesValue(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.FieldEdited(1, "100", 3))
	require.NoError(t, s.CurrencySelected(1, "EUR"))

	// 100 USD re-expressed in EUR is 89.66; the represented value must not
	// change just because the unit did. Peers recompute from the committed
	// (rounded) source amount, so KRW lands on 89.66 * 1450.
	assert.Equal(t, "89.66", s.Fields[1].Text)
	assert.Equal(t, "130,007.00", s.Fields[0].Text)
}

func TestPeerCurrencyChangeResyncsFromSource(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.FieldEdited(1, "100", 3))
	require.NoError(t, s.CurrencySelected(2, "JPY"))

	// the source still holds 100 USD; field 2 now shows it in JPY
	assert.Equal(t, "100", s.Fields[1].Text)
	assert.Equal(t, "14,285.71", s.Fields[2].Text)
}

func TestUnusableRateDisablesActiveInputs(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.FieldEdited(1, "100", 3))
	require.NoError(t, s.CurrencySelected(2, "XXX"))

	assert.False(t, s.CanConvertSelected())

	for i := 0; i < s.ActiveCount; i++ {
		assert.False(t, s.Fields[i].Enabled, "field %v", i)
	}

	// the selection is kept and nothing was recomputed
	assert.Equal(t, "XXX", s.Fields[2].Code)
	assert.Equal(t, "100", s.Fields[1].Text)

	// fixing the selection re-enables and re-syncs
	require.NoError(t, s.CurrencySelected(2, "EUR"))
	assert.True(t, s.Fields[2].Enabled)
	assert.Equal(t, "89.66", s.Fields[2].Text)
}

func TestRateTypeChangeResyncs(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.FieldEdited(1, "100", 3))

	buy := saleTable()
	buy.Type = c.RateTypeBuy
	buy.Rates["USD"] = 1400

	require.NoError(t, s.RateTypeChanged(buy))

	assert.Equal(t, "140,000.00", s.Fields[0].Text)
	assert.Equal(t, c.RateTypeBuy, s.Table().Type)
}

func TestFieldCountChange(t *testing.T) {
	s := engine.NewSession(saleTable())
	require.Equal(t, c.DefaultFields, s.ActiveCount)

	require.NoError(t, s.FieldEdited(1, "100", 3))

	// growing recomputes the newly active field
	require.NoError(t, s.FieldCountChanged(1))
	assert.Equal(t, 3, s.ActiveCount)
	assert.Equal(t, "14,285.71", s.Fields[2].Text) // 100 USD in JPY at 9.1
	assert.True(t, s.Fields[2].Enabled)
	assert.False(t, s.Fields[3].Enabled)

	// shrinking below the source clamps it
	require.NoError(t, s.FieldEdited(2, "50", 2))
	require.NoError(t, s.FieldCountChanged(-1))
	require.NoError(t, s.FieldCountChanged(-1))
	assert.Equal(t, 1, s.ActiveCount)
	assert.Equal(t, 0, s.LastEdited)
}

func TestFieldCountChangeNoOpAtBounds(t *testing.T) {
	s := engine.NewSession(saleTable())

	for i := 0; i < 10; i++ {
		require.NoError(t, s.FieldCountChanged(1))
	}

	assert.Equal(t, c.MaxFields, s.ActiveCount)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.FieldCountChanged(-1))
	}

	assert.Equal(t, c.MinFields, s.ActiveCount)
}

func TestStateReturnsToIdleAfterEveryPass(t *testing.T) {
	s := newSession(t)

	require.Equal(t, engine.StateIdle, s.State())

	require.NoError(t, s.FieldEdited(0, "1", 1))
	assert.Equal(t, engine.StateIdle, s.State())

	require.NoError(t, s.CurrencySelected(2, "JPY"))
	assert.Equal(t, engine.StateIdle, s.State())

	require.NoError(t, s.RateTypeChanged(saleTable()))
	assert.Equal(t, engine.StateIdle, s.State())
}

func TestInactiveFieldEditRejected(t *testing.T) {
	s := engine.NewSession(saleTable())

	assert.Error(t, s.FieldEdited(4, "1", 1))
	assert.Error(t, s.FieldEdited(-1, "1", 1))
	assert.Error(t, s.CurrencySelected(4, "EUR"))
}

func TestSnapshotAndRestore(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.FieldEdited(1, "100", 3))

	snap := s.Snapshot()
	assert.Equal(t, c.RateTypeSale, snap.RateType)
	assert.Equal(t, 3, snap.ActiveCount)
	assert.Equal(t, 1, snap.SourceIndex)
	require.Len(t, snap.Rows, 3)
	assert.InDelta(t, 100, snap.Rows[1].Amount, 1e-9)
	assert.InDelta(t, 130000, snap.Rows[0].Amount, 1e-9)

	fresh := engine.NewSession(saleTable())
	require.NoError(t, fresh.Restore(snap))

	assert.Equal(t, 3, fresh.ActiveCount)
	assert.Equal(t, 1, fresh.LastEdited)
	assert.Equal(t, "100", fresh.Fields[1].Text)
	assert.Equal(t, "130,000.00", fresh.Fields[0].Text)
	assert.Equal(t, "89.66", fresh.Fields[2].Text)
}

func TestRestoreSkipsUnknownCurrency(t *testing.T) {
	s := engine.NewSession(saleTable())

	snap := history.Snapshot{
		RateType:    c.RateTypeSale,
		ActiveCount: 2,
		SourceIndex: 0,
		Rows: []history.Row{
			{Code: "KRW", Text: "1,300"},
			{Code: "ZZZ", Text: ""},
		},
	}

	require.NoError(t, s.Restore(snap))

	// ZZZ is not a supported currency, so the slot keeps its prior code
	assert.Equal(t, "USD", s.Fields[1].Code)
	assert.Equal(t, "1.00", s.Fields[1].Text)
	assert.Equal(t, "1,300", s.Fields[0].Text)
}

func TestRestoreClampsOutOfRangeIndexes(t *testing.T) {
	s := engine.NewSession(saleTable())

	snap := history.Snapshot{
		RateType:    c.RateTypeSale,
		ActiveCount: 99,
		SourceIndex: 42,
		Rows:        []history.Row{{Code: "KRW", Text: "5"}},
	}

	require.NoError(t, s.Restore(snap))

	assert.Equal(t, c.MaxFields, s.ActiveCount)
	assert.Equal(t, c.MaxFields-1, s.LastEdited)
}
