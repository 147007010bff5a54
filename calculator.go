package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
	"git.cmcode.dev/cmcode/exchange-rate-tui/currencies"
	"git.cmcode.dev/cmcode/exchange-rate-tui/engine"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rivo/tview"
)

// currencyLabel returns the localized display label for a currency code,
// falling back to the built-in English label for codes the translation
// table doesn't cover.
func currencyLabel(code string) string {
	if l, ok := EC.T["Currency"+code]; ok {
		return l
	}

	return currencies.Label(code)
}

// currencyOptionFor renders the selector text for a code, e.g.
// "🇺🇸 US Dollar (USD)".
func currencyOptionFor(code string) string {
	return fmt.Sprintf("%v %v", currencies.Get(code).Flag, currencyLabel(code))
}

// currencyOptions returns every selectable option in display order.
func currencyOptions() []string {
	opts := make([]string, 0, len(currencies.Ordered))
	for _, code := range currencies.Ordered {
		opts = append(opts, currencyOptionFor(code))
	}

	return opts
}

// resolveCurrency maps selector text back to a currency code. Exact option
// text and bare codes are accepted directly; otherwise a fuzzy match is
// accepted only when it is unambiguous.
func resolveCurrency(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if currencies.Known(strings.ToUpper(text)) {
		return strings.ToUpper(text), true
	}

	for _, code := range currencies.Ordered {
		if text == currencyOptionFor(code) {
			return code, true
		}
	}

	matches := fuzzy.RankFindFold(text, currencyOptions())
	if len(matches) != 1 {
		return "", false
	}

	for _, code := range currencies.Ordered {
		if matches[0].Target == currencyOptionFor(code) {
			return code, true
		}
	}

	return "", false
}

func rateTypeLabel(rateType string) string {
	if rateType == "" {
		return ""
	}

	key := "RateType" + strings.ToUpper(rateType[:1]) + rateType[1:]
	if l, ok := EC.T[key]; ok {
		return l
	}

	return rateType
}

func setStatusMessage(msg string) {
	EC.StatusText.SetText(fmt.Sprintf("%v%v%v",
		EC.Colors["StatusTextPassive"], msg, c.ResetStyle))
}

func setStatusError(msg string) {
	EC.StatusText.SetText(fmt.Sprintf("%v%v%v",
		EC.Colors["StatusTextError"], msg, c.ResetStyle))
}

// onAmountEdited is the changed-callback for amount field i. Programmatic
// writes during repaint are filtered by EC.applying; anything else is a
// genuine user edit and drives a synchronization pass.
func onAmountEdited(i int, text string) {
	if EC.applying || EC.Session == nil {
		return
	}

	err := EC.Session.FieldEdited(i, text, len([]rune(text)))
	if err != nil {
		if errors.Is(err, engine.ErrSyncInProgress) {
			return
		}

		setStatusError(err.Error())

		return
	}

	repaintCalculator()
}

// commitCurrencyField resolves whatever is typed in currency selector i and
// applies it to the session, reverting the text when it doesn't resolve.
func commitCurrencyField(i int) {
	if EC.applying || EC.Session == nil {
		return
	}

	code, ok := resolveCurrency(EC.CurrencyFields[i].GetText())
	if ok && code != EC.Session.Fields[i].Code {
		if err := EC.Session.CurrencySelected(i, code); err != nil &&
			!errors.Is(err, engine.ErrSyncInProgress) {
			setStatusError(err.Error())
		}
	}

	repaintCalculator()
}

func onRateTypeSelected(index int) {
	if EC.applying || EC.Session == nil {
		return
	}

	if index < 0 || index >= len(c.RateTypes) {
		return
	}

	table := EC.Snapshot.Select(c.RateTypes[index])
	if err := EC.Session.RateTypeChanged(table); err != nil &&
		!errors.Is(err, engine.ErrSyncInProgress) {
		setStatusError(err.Error())
	}

	repaintCalculator()
}

func addField() {
	if EC.Session == nil {
		return
	}

	if err := EC.Session.FieldCountChanged(1); err != nil &&
		!errors.Is(err, engine.ErrSyncInProgress) {
		setStatusError(err.Error())
	}

	repaintCalculator()
}

func removeField() {
	if EC.Session == nil {
		return
	}

	if err := EC.Session.FieldCountChanged(-1); err != nil &&
		!errors.Is(err, engine.ErrSyncInProgress) {
		setStatusError(err.Error())
	}

	repaintCalculator()
}

// saveSnapshot persists the current field set to the history store.
func saveSnapshot() {
	if EC.Session == nil {
		return
	}

	if err := EC.Store.Save(EC.Session.Snapshot()); err != nil {
		setStatusError(fmt.Sprintf("%v: %v", EC.T["HistorySaveFailed"], err.Error()))

		return
	}

	setStatusMessage(EC.T["StatusSaved"])
	populateHistoryPage()
}

// getCurrencyField builds the autocompleting currency selector for slot i.
func getCurrencyField(i int) *tview.InputField {
	f := tview.NewInputField()
	f.SetFieldWidth(30)
	f.SetFieldBackgroundColor(tcell.NewRGBColor(40, 40, 40))

	f.SetAutocompleteFunc(func(currentText string) []string {
		if EC.applying || currentText == "" {
			return nil
		}

		matches := fuzzy.RankFindFold(currentText, currencyOptions())
		sort.Sort(matches)

		entries := make([]string, 0, len(matches))
		for _, m := range matches {
			entries = append(entries, m.Target)
		}

		return entries
	})

	f.SetAutocompletedFunc(func(text string, _, source int) bool {
		if source != tview.AutocompletedNavigate {
			f.SetText(text)
			commitCurrencyField(i)
		}

		return source == tview.AutocompletedEnter || source == tview.AutocompletedClick
	})

	f.SetDoneFunc(func(_ tcell.Key) {
		commitCurrencyField(i)
	})

	return f
}

// getAmountField builds the amount input for slot i.
func getAmountField(i int) *tview.InputField {
	f := tview.NewInputField()
	f.SetFieldBackgroundColor(tcell.NewRGBColor(40, 40, 40))

	f.SetChangedFunc(func(text string) {
		onAmountEdited(i, text)
	})

	return f
}

// returns the calculator page: rate-type row on top, one row per field
// slot, then status, inline error, and snapshot metadata.
func getCalculatorPage() *tview.Flex {
	EC.RateTypeDropDown = tview.NewDropDown()
	EC.RateTypeDropDown.SetLabel(fmt.Sprintf("%v ", EC.T["RateTypeLabel"]))

	labels := make([]string, 0, len(c.RateTypes))
	for _, rt := range c.RateTypes {
		labels = append(labels, rateTypeLabel(rt))
	}

	EC.RateTypeDropDown.SetOptions(labels, func(_ string, index int) {
		onRateTypeSelected(index)
	})

	addButton := tview.NewButton(EC.T["ButtonAddField"]).SetSelectedFunc(addField)
	removeButton := tview.NewButton(EC.T["ButtonRemoveField"]).SetSelectedFunc(removeField)
	saveButton := tview.NewButton(EC.T["ButtonSave"]).SetSelectedFunc(saveSnapshot)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(EC.RateTypeDropDown, 0, 2, false).
		AddItem(addButton, 0, 1, false).
		AddItem(removeButton, 0, 1, false).
		AddItem(saveButton, 0, 1, false)

	fieldRows := tview.NewFlex().SetDirection(tview.FlexRow)

	for i := 0; i < c.MaxFields; i++ {
		EC.CurrencyFields[i] = getCurrencyField(i)
		EC.AmountFields[i] = getAmountField(i)

		row := tview.NewFlex().SetDirection(tview.FlexColumn).
			AddItem(EC.CurrencyFields[i], 32, 0, i == 0).
			AddItem(EC.AmountFields[i], 0, 1, false)

		fieldRows.AddItem(row, 1, 0, i == 0)
	}

	EC.StatusText = tview.NewTextView().SetDynamicColors(true)
	EC.ErrorText = tview.NewTextView().SetDynamicColors(true)
	EC.MetaText = tview.NewTextView().SetDynamicColors(true)

	setMetaText()

	page := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 1, 0, false).
		AddItem(fieldRows, c.MaxFields, 0, true).
		AddItem(EC.StatusText, 1, 0, false).
		AddItem(EC.ErrorText, 1, 0, false).
		AddItem(EC.MetaText, 1, 0, false)

	page.SetBorder(true)
	page.SetTitle(EC.T["CalculatorPageTitle"])

	return page
}

// setMetaText renders the snapshot metadata readout. The display version is
// cosmetic: config/flag override first, then the snapshot's build sha, then
// a default label.
func setMetaText() {
	version := EC.Config.DisplayVersion
	if version == "" {
		version = EC.Snapshot.BuildSHA
	}

	if version == "" {
		version = EC.T["MetaVersionDefault"]
	}

	fetched := EC.Snapshot.FetchedAt
	if fetched == "" {
		fetched = "-"
	}

	source := EC.Snapshot.Source
	if source == "" {
		source = "-"
	}

	EC.MetaText.SetText(fmt.Sprintf("%v%v: %v | %v: %v | %v: %v%v",
		EC.Colors["MetaText"],
		EC.T["MetaFetchedAt"], fetched,
		EC.T["MetaSource"], source,
		EC.T["MetaVersion"], version,
		c.ResetStyle,
	))
}

// repaintCalculator pushes the session's state into the widgets. All writes
// happen with EC.applying held so the widgets' changed-callbacks don't loop
// back into the engine.
func repaintCalculator() {
	if EC.Session == nil || EC.StatusText == nil {
		return
	}

	EC.applying = true
	defer func() { EC.applying = false }()

	s := EC.Session

	for idx, rt := range c.RateTypes {
		if rt == s.Table().Type {
			EC.RateTypeDropDown.SetCurrentOption(idx)
		}
	}

	for i := 0; i < c.MaxFields; i++ {
		f := s.Fields[i]
		cf := EC.CurrencyFields[i]
		af := EC.AmountFields[i]

		opt := currencyOptionFor(f.Code)
		if cf.GetText() != opt {
			cf.SetText(opt)
		}

		// selectors stay usable on active fields even when a rate is
		// missing, so the user can fix the selection
		cf.SetDisabled(i >= s.ActiveCount)
		af.SetDisabled(!f.Enabled)

		if af.GetText() != f.Text {
			af.SetText(f.Text)
		}
	}

	setStatusMessage(fmt.Sprintf(EC.T["StatusActiveFields"], s.ActiveCount, c.MaxFields))

	if !s.CanConvertSelected() {
		EC.ErrorText.SetText(fmt.Sprintf("%v%v%v",
			EC.Colors["StatusTextError"], EC.T["StatusRateUnavailable"], c.ResetStyle))
	} else {
		EC.ErrorText.SetText("")
	}
}
