package main

import (
	"fmt"
	"sort"
	"strings"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"

	"github.com/gdamore/tcell/v2"
)

func actionQuit() *tcell.EventKey {
	promptExit()

	return nil
}

func actionSave() *tcell.EventKey {
	saveSnapshot()

	return nil
}

func actionAddField(e *tcell.EventKey) *tcell.EventKey {
	p, _ := EC.Pages.GetFrontPage()
	if p != PageCalculator {
		return e
	}

	addField()

	return nil
}

func actionRemoveField(e *tcell.EventKey) *tcell.EventKey {
	p, _ := EC.Pages.GetFrontPage()
	if p != PageCalculator {
		return e
	}

	removeField()

	return nil
}

func actionCalculator() *tcell.EventKey {
	p, _ := EC.Pages.GetFrontPage()
	alreadyOnPage := p == PageCalculator

	EC.Pages.SwitchToPage(PageCalculator)
	setBottomPageNavText()

	if alreadyOnPage {
		EC.App.SetFocus(EC.AmountFields[0])
	}

	return nil
}

func actionHistory() *tcell.EventKey {
	populateHistoryPage()
	EC.Pages.SwitchToPage(PageHistory)
	setBottomPageNavText()
	EC.App.SetFocus(EC.HistoryList)

	return nil
}

func actionGlobalHelp() *tcell.EventKey {
	EC.Pages.SwitchToPage(PageHelp)
	setBottomPageNavText()

	return nil
}

// actionEsc walks backwards: secondary pages return to the calculator, and
// the calculator itself prompts for exit.
func actionEsc(e *tcell.EventKey) *tcell.EventKey {
	p, _ := EC.Pages.GetFrontPage()

	switch p {
	case PageHelp:
		fallthrough
	case PageHistory:
		EC.Pages.SwitchToPage(PageCalculator)
		setBottomPageNavText()

		return nil
	case PageCalculator:
		promptExit()

		return nil
	default:
		return e
	}
}

// action is the primary decision tree that is triggered when a key event
// is triggered. Please ensure that every case statement has a return or
// fallthrough.
func action(action string, e *tcell.EventKey) *tcell.EventKey {
	switch action {
	case c.ActionQuit:
		return actionQuit()
	case c.ActionSave:
		return actionSave()
	case c.ActionAddField:
		return actionAddField(e)
	case c.ActionRemoveField:
		return actionRemoveField(e)
	case c.ActionCalculator:
		return actionCalculator()
	case c.ActionHistory:
		return actionHistory()
	case c.ActionGlobalHelp:
		return actionGlobalHelp()
	case c.ActionEsc:
		return actionEsc(e)
	default:
		return e
	}
}

// getCombinedKeybindings merges the user's keybindings on top of the
// defaults: a binding in the config fully replaces the default action for
// that key.
func getCombinedKeybindings(k map[string][]string, d map[string]string) map[string][]string {
	r := make(map[string][]string, len(k)+len(d))

	for binding, action := range d {
		r[binding] = []string{action}
	}

	for binding, actions := range k {
		r[binding] = actions
	}

	return r
}

// getAllBoundActions inverts the combined keybindings: for every action, the
// list of keys that trigger it. Used for rendering help and nav text.
func getAllBoundActions(k map[string][]string, d map[string]string) map[string][]string {
	r := make(map[string][]string)

	bound := make(map[string]bool, len(k))
	for binding := range k {
		bound[binding] = true
	}

	for binding, action := range d {
		if bound[binding] {
			continue
		}

		r[action] = append(r[action], binding)
	}

	for binding, actions := range k {
		for _, a := range actions {
			r[a] = append(r[a], binding)
		}
	}

	for a := range r {
		sort.Strings(r[a])
	}

	return r
}

// keysFor renders the keys bound to an action, e.g. "F2".
func keysFor(action string) string {
	keys, ok := EC.ActionBindings[action]
	if !ok || len(keys) == 0 {
		return "?"
	}

	return strings.Join(keys, "/")
}

// setBottomPageNavText renders the one-line navigation hint shown under
// every page.
func setBottomPageNavText() {
	if EC.BottomPageNavText == nil {
		return
	}

	EC.BottomPageNavText.SetText(fmt.Sprintf(
		" [gold]%v: %v[-] | [gold]%v: %v[-] | [gold]%v: %v[-] | [gold]%v: %v[-]",
		keysFor(c.ActionCalculator), EC.T["NavCalculator"],
		keysFor(c.ActionHistory), EC.T["NavHistory"],
		keysFor(c.ActionGlobalHelp), EC.T["NavHelp"],
		keysFor(c.ActionQuit), EC.T["NavQuit"],
	))
}
