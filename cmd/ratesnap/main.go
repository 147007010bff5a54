// Command ratesnap fetches exchange rates from Naver and writes the snapshot
// served to the calculator at /data/rates.json.
//
// The Naver page provides columns: mid-market, cash buy/sell, remit
// send/receive. JPY/VND are shown per 100 units and are normalized to 1 unit.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
	"git.cmcode.dev/cmcode/exchange-rate-tui/currencies"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/transform"
)

const naverExchangeListURL = "https://finance.naver.com/marketindex/exchangeList.naver"

var (
	rowPattern  = regexp.MustCompile(`(?s)<tr>\s*.*?</tr>`)
	cellPattern = regexp.MustCompile(`(?s)<td[^>]*>\s*([^<]+?)\s*</td>`)
)

// snapshotOut is the wire shape of rates.json.
type snapshotOut struct {
	FetchedAt   string                        `json:"fetched_at"`
	Source      string                        `json:"source"`
	BuildSHA    string                        `json:"build_sha"`
	RatesByType map[string]map[string]float64 `json:"rates_by_type"`
	Currencies  []currencyOut                 `json:"currencies"`
}

type currencyOut struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	SourceUnit int    `json:"source_unit"`
}

// marketCode returns the Naver market index code for a currency, e.g.
// FX_USDKRW. The pivot currency has no row of its own.
func marketCode(code string) string {
	if code == c.PivotCode {
		return ""
	}

	return fmt.Sprintf("FX_%vKRW", code)
}

// findRow locates the exchange list row for one market code. Every currency
// appears twice on the page; the row carrying the tit-classed name cell is
// the one with the rates.
func findRow(rows []string, market string) (string, error) {
	for _, row := range rows {
		if strings.Contains(row, "marketindexCd="+market) &&
			strings.Contains(row, `class="tit"`) {
			return row, nil
		}
	}

	return "", fmt.Errorf("row not found: %v", market)
}

// parseRowNumbers extracts every numeric cell from a row, skipping empty and
// dash placeholders.
func parseRowNumbers(row string) []float64 {
	var numbers []float64

	for _, m := range cellPattern.FindAllStringSubmatch(row, -1) {
		cleaned := strings.ReplaceAll(strings.TrimSpace(m[1]), ",", "")
		if cleaned == "" || cleaned == "-" {
			continue
		}

		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}

		numbers = append(numbers, n)
	}

	return numbers
}

// fetchPage downloads the exchange list and transcodes it from EUC-KR.
func fetchPage(client *http.Client, url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %v: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %v from %v", resp.Status, url)
	}

	b, err := io.ReadAll(transform.NewReader(resp.Body, korean.EUCKR.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", url, err)
	}

	return string(b), nil
}

// buildSnapshot scrapes all five rate variants for every known currency out
// of the page HTML. The pivot currency is 1.0 in every table.
func buildSnapshot(html string) (snapshotOut, error) {
	out := snapshotOut{
		FetchedAt:   time.Now().UTC().Format(time.RFC3339),
		Source:      naverExchangeListURL,
		BuildSHA:    buildSHA(),
		RatesByType: make(map[string]map[string]float64, len(c.RateTypes)),
	}

	for _, rt := range c.RateTypes {
		out.RatesByType[rt] = map[string]float64{c.PivotCode: 1.0}
	}

	rows := rowPattern.FindAllString(html, -1)

	for _, code := range currencies.Ordered {
		meta := currencies.Get(code)
		out.Currencies = append(out.Currencies, currencyOut{
			Code:       meta.Code,
			Label:      meta.Label,
			SourceUnit: meta.SourceUnit,
		})

		market := marketCode(code)
		if market == "" {
			continue
		}

		row, err := findRow(rows, market)
		if err != nil {
			return out, err
		}

		cols := parseRowNumbers(row)
		if len(cols) < len(c.RateTypes) {
			return out, fmt.Errorf("not enough columns for %v: %v", code, cols)
		}

		unit := float64(meta.SourceUnit)
		for i, rt := range c.RateTypes {
			out.RatesByType[rt][code] = cols[i] / unit
		}
	}

	return out, nil
}

// buildSHA returns the short commit hash when running in CI, empty otherwise.
func buildSHA() string {
	sha := os.Getenv("GITHUB_SHA")
	if len(sha) > 7 {
		sha = sha[:7]
	}

	return sha
}

func main() {
	var (
		outPath string
		url     string
		timeout time.Duration
	)

	flag.StringVar(&outPath, "out", filepath.Join("docs", "data", "rates.json"), "the file to write the snapshot to")
	flag.StringVar(&url, "url", naverExchangeListURL, "the exchange list page to scrape")
	flag.DurationVar(&timeout, "timeout", 20*time.Second, "the request timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	html, err := fetchPage(client, url)
	if err != nil {
		log.Fatalf("failed to fetch exchange list: %v", err.Error())
	}

	snap, err := buildSnapshot(html)
	if err != nil {
		log.Fatalf("failed to build snapshot: %v", err.Error())
	}

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal snapshot: %v", err.Error())
	}

	err = os.MkdirAll(filepath.Dir(outPath), 0o755)
	if err != nil {
		log.Fatalf("failed to create output directory: %v", err.Error())
	}

	err = os.WriteFile(outPath, b, 0o644) //nolint:gosec
	if err != nil {
		log.Fatalf("failed to write %v: %v", outPath, err.Error())
	}

	p := message.NewPrinter(language.English)
	p.Printf("wrote %v currencies across %v rate tables to %v\n",
		len(snap.Currencies), len(snap.RatesByType), outPath)
}
