package engine

import (
	"testing"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
	"git.cmcode.dev/cmcode/exchange-rate-tui/rates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// White-box coverage of the Idle/Syncing guard: a pass started while one is
// mid-flight must be rejected, and the session must stay usable afterwards.
func TestNestedPassRejectedWhileSyncing(t *testing.T) {
	s := NewSession(rates.Table{
		Type:  c.RateTypeSale,
		Rates: map[string]float64{"KRW": 1, "USD": 1300},
	})

	require.NoError(t, s.beginSync())
	assert.Equal(t, StateSyncing, s.State())

	assert.ErrorIs(t, s.FieldEdited(0, "1", 1), ErrSyncInProgress)
	assert.ErrorIs(t, s.beginSync(), ErrSyncInProgress)

	s.endSync()
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.FieldEdited(1, "100", 3))
	assert.Equal(t, "130,000.00", s.Fields[0].Text)
}
