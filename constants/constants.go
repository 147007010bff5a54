package constants

const (
	// MinFields and MaxFields bound how many (currency, amount) slots can be
	// active at once. Slots past the active count exist but stay disabled.
	MinFields = 1
	MaxFields = 5

	// DefaultFields is the number of slots shown on a fresh start.
	DefaultFields = 2

	// MaxHistory caps the persisted saved-calculation list. Saving past the
	// cap drops the oldest entries.
	MaxHistory = 20
)

const (
	// RateTypeSale is the default rate table variant; snapshots that lack a
	// requested variant fall back to it.
	RateTypeSale    = "sale"
	RateTypeBuy     = "buy"
	RateTypeSell    = "sell"
	RateTypeSend    = "send"
	RateTypeReceive = "receive"

	DefaultRateType = RateTypeSale
)

// RateTypes is the display order for the rate-type selector.
var RateTypes = []string{
	RateTypeSale,
	RateTypeBuy,
	RateTypeSell,
	RateTypeSend,
	RateTypeReceive,
}

const (
	// PivotCode is the implicit base currency; every snapshot rate is
	// expressed as pivot units per one foreign unit.
	PivotCode = "KRW"

	DefaultRatesURL = "https://ccalc.cmcode.dev"
	RatesPath       = "/data/rates.json"

	HistoryFileName        = "history.json"
	DefaultConfig          = "config.yml"
	DefaultConfigParentDir = "exchange-rate-tui"
)

const (
	ActionQuit        = "quit"
	ActionSave        = "save"
	ActionAddField    = "addfield"
	ActionRemoveField = "removefield"
	ActionCalculator  = "calculator"
	ActionHistory     = "history"
	ActionGlobalHelp  = "globalhelp"
	ActionEsc         = "esc"
)

// DefaultMappings defines the baseline keybindings; user keybindings from the
// config are merged on top of these.
var DefaultMappings = map[string]string{
	"Ctrl+C": ActionQuit,
	"Ctrl+S": ActionSave,
	"Ctrl+A": ActionAddField,
	"Ctrl+D": ActionRemoveField,
	"F1":     ActionCalculator,
	"F2":     ActionHistory,
	"F3":     ActionGlobalHelp,
	"Esc":    ActionEsc,
}

const (
	Reset      = "[-]"
	ResetStyle = "[-:-:-:-]"
)

const ConfigVersion = "1"
