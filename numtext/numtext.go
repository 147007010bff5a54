// Package numtext interprets the free-form text a user types into an amount
// field. It cleans raw input down to a plain decimal string, parses it, and
// re-formats it with grouping separators without disturbing whatever partial
// fraction the user is mid-way through typing.
package numtext

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// cleanPattern accepts digits with at most one decimal point, including a
// lone "." while the user is still typing.
var cleanPattern = regexp.MustCompile(`^\d*(\.\d*)?$`)

// Parsed is the result of interpreting one field's raw text. Empty is a
// distinct state from zero: a field with no usable text is empty, not 0.
type Parsed struct {
	Empty   bool
	Cleaned string
	Number  float64
}

// Clean strips grouping separators and whitespace from raw input. It returns
// "" for empty input, and also "" when the stripped text contains a sign or
// anything that is not "digits, optional single decimal point, digits".
func Clean(text string) string {
	var b strings.Builder

	for _, r := range text {
		switch r {
		case ',', ' ', '\t', '\u00a0':
			continue
		default:
			b.WriteRune(r)
		}
	}

	s := b.String()
	if s == "" {
		return ""
	}

	if strings.ContainsRune(s, '-') || !cleanPattern.MatchString(s) {
		return ""
	}

	return s
}

// Parse cleans and interprets raw text. A lone decimal point is read as
// "0.". Negative or non-finite parses coerce Number to 0 while still
// reporting the text as non-empty; this is the calculator's long-standing
// behavior and is pinned by tests, so do not change it here.
func Parse(text string) Parsed {
	cleaned := Clean(text)
	if cleaned == "" {
		return Parsed{Empty: true}
	}

	if cleaned == "." {
		cleaned = "0."
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		n = 0
	}

	return Parsed{Cleaned: cleaned, Number: n}
}

// Format inserts grouping separators into a cleaned numeric string. The
// integer part is grouped in threes from the right with leading zeros
// stripped (a bare fraction keeps a single "0"), and a trailing decimal
// point or partial fraction is preserved exactly as typed. The committed
// two-decimal form is DisplayValue's job, not Format's.
func Format(cleaned string) string {
	if cleaned == "" {
		return ""
	}

	intPart := cleaned
	fracPart := ""
	hasDot := false

	if idx := strings.IndexByte(cleaned, '.'); idx >= 0 {
		intPart = cleaned[:idx]
		fracPart = cleaned[idx+1:]
		hasDot = true
	}

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}

	out := group(intPart)
	if hasDot {
		out += "." + fracPart
	}

	return out
}

// DisplayValue renders the canonical committed form of an amount: grouped
// integer part and always exactly two decimal places. Negative or
// non-finite amounts render as "0.00".
func DisplayValue(number float64) string {
	if number < 0 || math.IsNaN(number) || math.IsInf(number, 0) {
		number = 0
	}

	s := strconv.FormatFloat(number, 'f', 2, 64)
	idx := strings.IndexByte(s, '.')

	return group(s[:idx]) + s[idx:]
}

// CaretAfterReformat maps a caret position from oldText to the equivalent
// position in newText, counting position in non-separator characters so that
// separators inserted or removed by Format don't visually move the cursor
// relative to its surrounding digits.
func CaretAfterReformat(oldText, newText string, oldCaret int) int {
	old := []rune(oldText)
	if oldCaret < 0 {
		oldCaret = 0
	}

	if oldCaret > len(old) {
		oldCaret = len(old)
	}

	n := 0

	for _, r := range old[:oldCaret] {
		if !isSeparator(r) {
			n++
		}
	}

	seen := 0

	for i, r := range []rune(newText) {
		if isSeparator(r) {
			continue
		}

		if seen == n {
			return i
		}

		seen++
	}

	return len([]rune(newText))
}

func isSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\u00a0'
}

// group inserts a comma between every group of three digits, counting from
// the right.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder

	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}

	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
