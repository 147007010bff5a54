// Package engine keeps a set of (currency, amount) fields mutually
// consistent under a shared rate table. One field, the source, drives every
// other active field: edits, currency changes, rate-type changes and
// add/remove-field actions all funnel into a single synchronization pass.
//
// All state lives on a Session so multiple independent calculators can
// coexist and tests need no global setup.
package engine

import (
	"errors"
	"fmt"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
	"git.cmcode.dev/cmcode/exchange-rate-tui/currencies"
	"git.cmcode.dev/cmcode/exchange-rate-tui/history"
	"git.cmcode.dev/cmcode/exchange-rate-tui/numtext"
	"git.cmcode.dev/cmcode/exchange-rate-tui/rates"
)

// State is the synchronization state machine. The only legal transitions are
// Idle -> Syncing -> Idle; a pass started while another is in progress is an
// illegal transition and is rejected with ErrSyncInProgress. This guards
// against logically nested passes (a programmatic write re-triggering the
// engine mid-pass), not against concurrent threads.
type State int

const (
	StateIdle State = iota
	StateSyncing
)

// ErrSyncInProgress is returned when a synchronization pass is requested
// while one is already running.
var ErrSyncInProgress = errors.New("synchronization pass already in progress")

// DefaultCodes are the currencies assigned to the five slots on a fresh
// session, pivot first.
var DefaultCodes = [c.MaxFields]string{"KRW", "USD", "JPY", "CNY", "EUR"}

// Field is one (currency, amount) slot. Text is the exact string shown in
// the field's input; Caret is the desired cursor position after the last
// reformat of the source field, counted in runes.
type Field struct {
	Index   int
	Code    string
	Text    string
	Enabled bool
	Caret   int
}

// Session owns the full calculator state: the fixed field array, how many
// leading fields are active, which field was last edited (the source), the
// selected rate table, and the sync guard.
type Session struct {
	Fields      [c.MaxFields]Field
	ActiveCount int
	LastEdited  int

	state State
	table rates.Table
}

// NewSession builds a session over the given table with the default
// currencies and enabled state derived.
func NewSession(table rates.Table) *Session {
	s := &Session{
		ActiveCount: c.DefaultFields,
		table:       table,
	}

	for i := range s.Fields {
		s.Fields[i] = Field{Index: i, Code: DefaultCodes[i]}
	}

	s.deriveEnabled()

	return s
}

// Table returns the currently selected rate table.
func (s *Session) Table() rates.Table {
	return s.table
}

// State returns the current synchronization state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) beginSync() error {
	if s.state != StateIdle {
		return ErrSyncInProgress
	}

	s.state = StateSyncing

	return nil
}

func (s *Session) endSync() {
	s.state = StateIdle
}

// FieldEdited runs a synchronization pass from field i, whose input now
// holds raw with the cursor at caret. Empty input is a valid transient
// state: every other active field is cleared and the edited field keeps
// whatever the user typed. Otherwise the source text is reformatted in
// place (caret preserved) and every other active field receives the
// converted amount in committed two-decimal form.
func (s *Session) FieldEdited(i int, raw string, caret int) error {
	if i < 0 || i >= s.ActiveCount {
		return fmt.Errorf("field %v is not active (%v active)", i, s.ActiveCount)
	}

	if err := s.beginSync(); err != nil {
		return err
	}
	defer s.endSync()

	s.LastEdited = i
	src := &s.Fields[i]

	p := numtext.Parse(raw)
	if p.Empty {
		src.Text = raw
		src.Caret = caret

		for j := 0; j < s.ActiveCount; j++ {
			if j != i {
				s.Fields[j].Text = ""
			}
		}

		return nil
	}

	formatted := numtext.Format(p.Cleaned)
	src.Caret = numtext.CaretAfterReformat(raw, formatted, caret)
	src.Text = formatted

	for j := 0; j < s.ActiveCount; j++ {
		if j == i {
			continue
		}

		amount := rates.Convert(p.Number, src.Code, s.Fields[j].Code, s.table)
		s.Fields[j].Text = numtext.DisplayValue(amount)
	}

	return nil
}

// CurrencySelected records a new currency for field i and reacts to it.
// Enabled state is re-derived first; if any active field now lacks a usable
// rate, the new code is kept but no amounts are recomputed. When the changed
// field is the source, its existing amount is re-expressed in the new
// currency so the real-world value it represents is unchanged; any other
// field keeps its text and synchronization re-runs from the source.
func (s *Session) CurrencySelected(i int, newCode string) error {
	if i < 0 || i >= s.ActiveCount {
		return fmt.Errorf("field %v is not active (%v active)", i, s.ActiveCount)
	}

	f := &s.Fields[i]
	oldCode := f.Code
	f.Code = newCode

	if !s.deriveEnabled() {
		return nil
	}

	if i == s.LastEdited {
		p := numtext.Parse(f.Text)
		if !p.Empty {
			f.Text = numtext.DisplayValue(rates.Convert(p.Number, oldCode, newCode, s.table))
		}

		return s.FieldEdited(i, f.Text, len([]rune(f.Text)))
	}

	return s.resync()
}

// RateTypeChanged swaps in a different rate table and re-runs
// synchronization from the source field, provided every active currency is
// still convertible under the new table.
func (s *Session) RateTypeChanged(table rates.Table) error {
	s.table = table

	if !s.deriveEnabled() {
		return nil
	}

	return s.resync()
}

// FieldCountChanged grows or shrinks the active prefix by delta, clamped to
// the configured bounds; at either bound it is a no-op. The source index is
// clamped into the new active range before re-synchronizing.
func (s *Session) FieldCountChanged(delta int) error {
	n := s.ActiveCount + delta
	if n < c.MinFields || n > c.MaxFields {
		return nil
	}

	s.ActiveCount = n

	if !s.deriveEnabled() {
		return nil
	}

	return s.resync()
}

// Restore applies a saved snapshot: active count, source index, and each
// row's currency (only when this build still knows the code) and text, then
// re-synchronizes from the restored source. The caller is responsible for
// selecting the snapshot's rate table first via RateTypeChanged.
func (s *Session) Restore(snap history.Snapshot) error {
	s.ActiveCount = clamp(snap.ActiveCount, c.MinFields, c.MaxFields)
	s.LastEdited = clamp(snap.SourceIndex, 0, s.ActiveCount-1)

	for k, row := range snap.Rows {
		if k >= c.MaxFields {
			break
		}

		if currencies.Known(row.Code) {
			s.Fields[k].Code = row.Code
		}

		s.Fields[k].Text = row.Text
	}

	if !s.deriveEnabled() {
		return nil
	}

	return s.resync()
}

// Snapshot captures the active fields as a history record. Amounts are the
// parsed value of each field's text; empty fields record 0.
func (s *Session) Snapshot() history.Snapshot {
	snap := history.Snapshot{
		RateType:    s.table.Type,
		ActiveCount: s.ActiveCount,
		SourceIndex: s.LastEdited,
	}

	for i := 0; i < s.ActiveCount; i++ {
		f := s.Fields[i]
		snap.Rows = append(snap.Rows, history.Row{
			Code:   f.Code,
			Text:   f.Text,
			Amount: numtext.Parse(f.Text).Number,
		})
	}

	return snap
}

// CanConvertSelected reports whether every active field's currency has a
// usable rate under the current table.
func (s *Session) CanConvertSelected() bool {
	return rates.CanConvert(s.table, s.activeCodes()...)
}

// resync re-runs synchronization from the source field, clamped into the
// active range, using its current text.
func (s *Session) resync() error {
	s.LastEdited = clamp(s.LastEdited, 0, s.ActiveCount-1)
	src := s.Fields[s.LastEdited]

	return s.FieldEdited(s.LastEdited, src.Text, len([]rune(src.Text)))
}

// deriveEnabled recomputes every field's Enabled flag: when any active
// field's currency lacks a usable rate, all active amount inputs are
// disabled (selectors stay usable so the selection can be fixed); fields
// beyond the active prefix are always disabled. Returns whether conversion
// is possible.
func (s *Session) deriveEnabled() bool {
	ok := s.CanConvertSelected()

	for j := range s.Fields {
		s.Fields[j].Enabled = ok && j < s.ActiveCount
	}

	return ok
}

func (s *Session) activeCodes() []string {
	codes := make([]string, 0, s.ActiveCount)
	for i := 0; i < s.ActiveCount; i++ {
		codes = append(codes, s.Fields[i].Code)
	}

	return codes
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
