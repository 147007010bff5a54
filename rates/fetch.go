package rates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"
)

// Fetch performs the one-shot startup request for the rate snapshot. There
// is deliberately no retry and no internal timeout: the calculator either
// starts with rates or shows its terminal error page, and any deadline
// belongs to the caller's context.
func Fetch(ctx context.Context, client *http.Client, baseURL string) (Snapshot, error) {
	url := fmt.Sprintf("%v%v?ts=%v",
		strings.TrimRight(baseURL, "/"),
		c.RatesPath,
		time.Now().Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch rates from %v: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("unexpected status %v fetching rates from %v", resp.Status, url)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read rates response: %w", err)
	}

	s, err := ParseSnapshot(b)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse rates snapshot: %w", err)
	}

	return s, nil
}
