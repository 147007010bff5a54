package main

import (
	"bytes"
	"log"
	"text/template"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"

	"github.com/rivo/tview"
)

const HelpTextTemplate = `[lightgreen::b]Exchange Rate Calculator[-:-:-:-]

[gold]
        _____         _
       | ____|_  ____| |__   __ _ _ __   __ _  ___
       |  _| \ \/ / __| '_ \ / _  | '_ \ / _  |/ _ \
       | |___ >  < (__| | | | (_| | | | | (_| |  __/
       |_____/_/\_\___|_| |_|\__,_|_| |_|\__, |\___|
                                         |___/[-:-:-:-]


[lightgreen::b]General information[-:-:-:-]

[white]Type an amount into any active field and every other field updates with the
equivalent amount in its own currency. The rates come from a snapshot fetched
once at startup; if the fetch fails, restart the program to try again.

[lightgreen::b]Currencies[-:-:-:-]

[white]Each row has a currency selector and an amount field. Start typing in the
selector to fuzzy-search the available currencies, then press enter to apply.
All conversions route through [gold]KRW[white], the snapshot's base currency. If a
selected currency has no usable rate in the current table, every amount field
is disabled until the selection is fixed; the selectors stay usable for that.

[lightgreen::b]Rate types[-:-:-:-]

[white]The drop-down at the top switches between rate table variants ([gold]sale[white] is
the default; banks also publish buy/sell cash and send/receive wire rates).
Variants missing from the snapshot fall back to the default table.

[lightgreen::b]History[-:-:-:-]

[white]Saving stores the current set of fields, newest first, capped at a
configurable maximum. On the history page, enter restores the highlighted
entry, [gold]d[white] deletes it, and [gold]c[white] clears everything.

[lightgreen::b]Keyboard Shortcuts[-:-:-:-]

[white]- switch to the calculator page: [gold]{{ index .Keys "` + c.ActionCalculator + `" }}[white]
- switch to the history page: [gold]{{ index .Keys "` + c.ActionHistory + `" }}[white]
- show this help page: [gold]{{ index .Keys "` + c.ActionGlobalHelp + `" }}[white]
- save the current calculation: [gold]{{ index .Keys "` + c.ActionSave + `" }}[white]
- add a field: [gold]{{ index .Keys "` + c.ActionAddField + `" }}[white]
- remove a field: [gold]{{ index .Keys "` + c.ActionRemoveField + `" }}[white]
- go back / exit: [gold]{{ index .Keys "` + c.ActionEsc + `" }}[white]
- quit: [gold]{{ index .Keys "` + c.ActionQuit + `" }}[white]
`

func getHelpText() string {
	type tmplDataShape struct {
		Keys map[string]string
	}

	tmplData := tmplDataShape{Keys: make(map[string]string)}

	for _, action := range []string{
		c.ActionQuit, c.ActionSave, c.ActionAddField, c.ActionRemoveField,
		c.ActionCalculator, c.ActionHistory, c.ActionGlobalHelp, c.ActionEsc,
	} {
		tmplData.Keys[action] = keysFor(action)
	}

	tmpl, err := template.New("help").Parse(HelpTextTemplate)
	if err != nil {
		log.Fatalf("failed to parse help text template: %v", err.Error())
	}

	var b bytes.Buffer

	err = tmpl.Execute(&b, tmplData)
	if err != nil {
		log.Fatalf("failed to render help text: %v", err.Error())
	}

	return b.String()
}

func getHelpPage() {
	EC.HelpTextView = tview.NewTextView()
	EC.HelpTextView.SetDynamicColors(true)
	EC.HelpTextView.SetBorder(true)
	EC.HelpTextView.SetTitle(EC.T["HelpPageTitle"])
	EC.HelpTextView.SetText(getHelpText())
}
