package main

import (
	"errors"
	"fmt"
	"strings"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
	"git.cmcode.dev/cmcode/exchange-rate-tui/engine"
	"git.cmcode.dev/cmcode/exchange-rate-tui/history"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func setHistoryStatus(msg string) {
	EC.HistoryStatusText.SetText(fmt.Sprintf("%v%v%v",
		EC.Colors["StatusTextPassive"], msg, c.ResetStyle))
}

func setHistoryError(msg string) {
	EC.HistoryStatusText.SetText(fmt.Sprintf("%v%v%v",
		EC.Colors["StatusTextError"], msg, c.ResetStyle))
}

// restoreSnapshot loads a saved calculation back into the session and jumps
// to the calculator page. The snapshot's rate table is selected first so the
// restored amounts recompute against the rates the user expects.
func restoreSnapshot(snap history.Snapshot) {
	if EC.Session == nil {
		return
	}

	err := EC.Session.RateTypeChanged(EC.Snapshot.Select(snap.RateType))
	if err != nil && !errors.Is(err, engine.ErrSyncInProgress) {
		setHistoryError(err.Error())

		return
	}

	if err := EC.Session.Restore(snap); err != nil {
		setHistoryError(err.Error())

		return
	}

	repaintCalculator()
	EC.Pages.SwitchToPage(PageCalculator)
	setBottomPageNavText()
	setStatusMessage(EC.T["HistoryRestored"])
}

func deleteSelectedSnapshot() {
	if len(EC.Store.List()) == 0 {
		return
	}

	i := EC.HistoryList.GetCurrentItem()

	if err := EC.Store.Delete(i); err != nil {
		setHistoryError(err.Error())

		return
	}

	populateHistoryPage()
	setHistoryStatus(EC.T["HistoryDeleted"])
}

func clearAllSnapshots() {
	if err := EC.Store.Clear(); err != nil {
		setHistoryError(err.Error())

		return
	}

	populateHistoryPage()
	setHistoryStatus(EC.T["HistoryCleared"])
}

// historyEntryText renders the two lines shown per saved calculation: a
// timestamp header and the amounts joined into a single readable line, with
// the source field marked.
func historyEntryText(snap history.Snapshot) (string, string) {
	main := fmt.Sprintf("%v  %v  %v",
		snap.At.Format("2006-01-02 15:04"),
		rateTypeLabel(snap.RateType),
		fmt.Sprintf(EC.T["HistoryEntryFields"], snap.ActiveCount),
	)

	parts := make([]string, 0, len(snap.Rows))

	for i, row := range snap.Rows {
		if i >= snap.ActiveCount {
			break
		}

		text := row.Text
		if text == "" {
			text = "0"
		}

		part := fmt.Sprintf("%v %v", text, row.Code)
		if i == snap.SourceIndex {
			part = "*" + part
		}

		parts = append(parts, part)
	}

	return main, strings.Join(parts, "  |  ")
}

func populateHistoryPage() {
	if EC.HistoryList == nil {
		return
	}

	EC.HistoryList.Clear()

	list := EC.Store.List()
	if len(list) == 0 {
		EC.HistoryList.AddItem(EC.T["HistoryEmpty"], "", 0, nil)
		setHistoryStatus(EC.T["HistoryPageHelp"])

		return
	}

	for _, snap := range list {
		snap := snap
		main, secondary := historyEntryText(snap)

		EC.HistoryList.AddItem(main, secondary, 0, func() {
			restoreSnapshot(snap)
		})
	}

	setHistoryStatus(EC.T["HistoryPageHelp"])
}

// returns the history page: the saved-calculation list plus a status line.
// Enter restores the highlighted entry; 'd' deletes it; 'c' clears all.
func getHistoryPage() *tview.Flex {
	EC.HistoryList = tview.NewList()
	EC.HistoryList.ShowSecondaryText(true)
	EC.HistoryList.SetBorder(true)
	EC.HistoryList.SetTitle(EC.T["HistoryPageTitle"])

	EC.HistoryList.SetInputCapture(func(e *tcell.EventKey) *tcell.EventKey {
		switch e.Rune() {
		case 'd':
			deleteSelectedSnapshot()

			return nil
		case 'c':
			clearAllSnapshots()

			return nil
		}

		return e
	})

	EC.HistoryStatusText = tview.NewTextView().SetDynamicColors(true)

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(EC.HistoryList, 0, 1, true).
		AddItem(EC.HistoryStatusText, 1, 0, false)
}
