package documents

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	fetchTimeout = 30 * time.Second
	// userAgent mirrors a desktop browser; many job boards reject default
	// Go client strings.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// ExtractURL fetches a job posting page and returns its visible text with
// script and style content removed.
func ExtractURL(ctx context.Context, url string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", &ExtractionError{Source: url, Reason: "invalid URL", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", &ExtractionError{Source: url, Reason: "fetch failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &ExtractionError{
			Source: url,
			Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", &ExtractionError{Source: url, Reason: "unparseable HTML", Cause: err}
	}

	doc.Find("script, style, noscript").Remove()

	var lines []string
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		for _, line := range strings.Split(s.Text(), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	})
	if len(lines) == 0 {
		return "", &ExtractionError{Source: url, Reason: "no visible text"}
	}

	return strings.Join(lines, "\n"), nil
}
