package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
	"git.cmcode.dev/cmcode/exchange-rate-tui/engine"
	"git.cmcode.dev/cmcode/exchange-rate-tui/history"
	"git.cmcode.dev/cmcode/exchange-rate-tui/rates"
	"git.cmcode.dev/cmcode/exchange-rate-tui/translations"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

//go:embed translations/*.yml
var AllTranslations embed.FS

//go:embed themes/*.yml
var AllThemes embed.FS

//go:embed example.yml
var ExampleConfig embed.FS

const (
	// PageCalculator is not shown to the user ever, and is only used in the
	// code. Its primary purpose is for use in switch/case statements to
	// determine the current page.
	PageCalculator = "Calculator"
	// PageHistory is not shown to the user ever, and is only used in the
	// code. Its primary purpose is for use in switch/case statements to
	// determine the current page.
	PageHistory = "History"
	// PageHelp is not shown to the user ever, and is only used in the code.
	PageHelp = "Help"
	// PagePrompt is not shown to the user ever, and is only used in the code.
	PagePrompt = "Prompt"
)

type ExchangeCalculator struct {
	// The tview/tcell terminal application.
	App *tview.Application

	// The currently loaded configuration.
	Config Config

	// The resolved path that config changes would be saved to.
	ConfigFile string

	// Translations that are loaded at runtime.
	T map[string]string

	// All default & custom colors are stored in here at runtime.
	Colors map[string]string

	// The primary primitive that the app uses as its root in the terminal.
	Layout *tview.Flex

	// The primary page-switching primitive.
	Pages *tview.Pages

	// The previously shown page (via the primary pages primitive).
	PrevPage string

	// Always shown on every page - renders the keyboard shortcuts for
	// all supported pages.
	BottomPageNavText *tview.TextView

	// The rate snapshot fetched once at startup. Immutable afterwards.
	Snapshot rates.Snapshot

	// The calculator session: fields, active count, source index, and the
	// sync guard all live here rather than in globals.
	Session *engine.Session

	// The persisted saved-calculation store.
	Store *history.Store

	// Calculator page widgets. One currency selector and one amount input
	// per field slot; slots beyond the active count are disabled.
	RateTypeDropDown *tview.DropDown
	CurrencyFields   [c.MaxFields]*tview.InputField
	AmountFields     [c.MaxFields]*tview.InputField

	// Status/count readout under the fields.
	StatusText *tview.TextView

	// Snapshot metadata readout (fetched_at, source, build, version).
	MetaText *tview.TextView

	// Inline error readout (e.g. a selected currency without a usable rate).
	ErrorText *tview.TextView

	// History page widgets.
	HistoryList       *tview.List
	HistoryStatusText *tview.TextView

	// Shows the help text on the help page.
	HelpTextView *tview.TextView

	// There is a hidden fourth page that only shows a modal, typically shown
	// only for exiting.
	PromptBox *tview.Modal

	// All activated key bindings: the user's bindings merged on top of the
	// defaults.
	KeyBindings map[string][]string

	// All activated action bindings: for each action, the keys bound to it.
	ActionBindings map[string][]string

	FlagConfigFile     string
	FlagRatesURL       string
	FlagTheme          string
	FlagDisplayVersion string

	// True while repaint pushes session state into the widgets, so that the
	// resulting SetText callbacks don't masquerade as user edits.
	applying bool
}

// EC contains all shared data in a global. The calculator's own mutable
// state lives on EC.Session; this global only wires widgets together, the
// same way a host page would hold references to its DOM elements.
//
//nolint:gochecknoglobals
var EC ExchangeCalculator

// For an input keybinding (straight from event.Name()), an output action
// will be returned, for example - "Ctrl+S" will return "save".
func getDefaultKeybind(name string) string {
	m, ok := c.DefaultMappings[name]
	if !ok {
		return ""
	}

	return m
}

// capture is the primary input capture handler for the app, and should be
// used like: app.SetInputCapture(capture)
func capture(e *tcell.EventKey) *tcell.EventKey {
	n := e.Name()

	var final *tcell.EventKey
	final = e

	foundBinding := false

	for binding, actions := range EC.Config.Keybindings {
		if n != binding {
			continue
		}

		foundBinding = true

		for i := range actions {
			final = action(actions[i], final)
		}
	}

	if !foundBinding {
		// execute default action
		return action(getDefaultKeybind(n), e)
	}

	return final
}

// bootstrap is the initialization function for the app, including
// initializing globals. This function should only ever be run once.
func bootstrap() {
	EC.KeyBindings = getCombinedKeybindings(EC.Config.Keybindings, c.DefaultMappings)
	EC.ActionBindings = getAllBoundActions(EC.Config.Keybindings, c.DefaultMappings)

	EC.App = tview.NewApplication()
	EC.Pages = tview.NewPages()

	getHelpPage()

	EC.PromptBox = tview.NewModal()

	EC.Pages.AddPage(PageCalculator, getCalculatorPage(), true, true).
		AddPage(PageHistory, getHistoryPage(), true, true).
		AddPage(PageHelp, EC.HelpTextView, true, true).
		AddPage(PagePrompt, EC.PromptBox, true, true)

	EC.Pages.SwitchToPage(PageCalculator)

	EC.BottomPageNavText = tview.NewTextView()
	EC.BottomPageNavText.SetDynamicColors(true)
	setBottomPageNavText()

	EC.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(EC.Pages, 0, 1, true).
		AddItem(EC.BottomPageNavText, 1, 0, false)

	repaintCalculator()
	populateHistoryPage()

	EC.App.SetFocus(EC.AmountFields[0])
	EC.App.SetInputCapture(capture)
}

// bootstrapRatesError builds the terminal error-display state used when the
// startup rate fetch fails: no calculator surface ever activates, and the
// only way out is restarting the program.
func bootstrapRatesError(err error) {
	EC.App = tview.NewApplication()

	errText := tview.NewTextView().SetDynamicColors(true)
	errText.SetBorder(true)
	errText.SetTitle(EC.T["AppName"])
	errText.SetText(fmt.Sprintf(
		"%v%v:\n\n%v\n\n%v%v",
		EC.Colors["ErrorText"],
		EC.T["ErrorRatesFetchFailed"],
		err.Error(),
		EC.T["ErrorReloadToRecover"],
		c.ResetStyle,
	))

	EC.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(errText, 0, 1, true)
}

// parseFlags parses the command line flags, using t as the translation map.
func parseFlags(t map[string]string) {
	flag.StringVar(&EC.FlagConfigFile, t["FlagConfigFileFlag"], "", t["FlagConfigFileDesc"])
	flag.StringVar(&EC.FlagRatesURL, t["FlagRatesURLFlag"], "", t["FlagRatesURLDesc"])
	flag.StringVar(&EC.FlagTheme, t["FlagThemeFlag"], "", t["FlagThemeDesc"])
	flag.StringVar(&EC.FlagDisplayVersion, t["FlagDisplayVersionFlag"], "", t["FlagDisplayVersionDesc"])
	flag.Parse()
}

func main() {
	var err error

	EC.T, err = translations.Load(AllTranslations, "")
	if err != nil {
		log.Fatalf("failed to load translations: %v", err.Error())
	}

	parseFlags(EC.T)

	EC.Config, EC.ConfigFile, err = loadConfig(EC.FlagConfigFile, EC.T, ExampleConfig)
	if err != nil {
		log.Fatalf("%v: %v", EC.T["ErrorFailedToLoadConfig"], err.Error())
	}

	processConfig(&EC.Config)

	if EC.Config.Language != "" {
		EC.T, err = translations.Load(AllTranslations, EC.Config.Language)
		if err != nil {
			log.Fatalf("failed to load translations: %v", err.Error())
		}
	}

	if EC.FlagRatesURL != "" {
		EC.Config.RatesURL = EC.FlagRatesURL
	}

	if EC.FlagDisplayVersion != "" {
		EC.Config.DisplayVersion = EC.FlagDisplayVersion
	}

	theme := EC.Config.Theme
	if EC.FlagTheme != "" {
		theme = EC.FlagTheme
	}

	EC.Colors, err = loadThemes(AllThemes, theme)
	if err != nil {
		log.Fatalf("%v: %v", EC.T["ErrorFailedToLoadThemes"], err.Error())
	}

	EC.Store = history.NewStore(history.DefaultPath(), EC.Config.HistoryMax)

	// the one-shot startup fetch; the calculator surface stays absent until
	// it resolves, and a failure is terminal for this session
	EC.Snapshot, err = rates.Fetch(context.Background(), http.DefaultClient, EC.Config.RatesURL)
	if err != nil {
		bootstrapRatesError(err)
	} else {
		EC.Session = engine.NewSession(EC.Snapshot.Select(EC.Config.DefaultRateType))
		bootstrap()
	}

	if err := EC.App.SetRoot(EC.Layout, true).EnableMouse(true).Run(); err != nil {
		panic(err)
	}
}
