package linkedin

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"linkscout-engine/internal/session"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// transportFunc adapts a function to the Transport interface so tests can
// script responses.
type transportFunc func(ctx context.Context, rawURL string, params url.Values) (*session.Response, error)

func (f transportFunc) Get(ctx context.Context, rawURL string, params url.Values) (*session.Response, error) {
	return f(ctx, rawURL, params)
}

// testConfig keeps every delay negligible so tests don't sleep.
func testConfig() Config {
	return Config{
		PageDelay:           time.Nanosecond,
		PageDelayBand:       time.Nanosecond,
		DetailRetryDelay:    time.Nanosecond,
		DirectURLRetryDelay: time.Nanosecond,
	}
}

func testScraper(tr Transport) *Scraper {
	return New(tr, testConfig(), zerolog.Nop())
}

// cardHTML builds one result-card fragment the way the search endpoint
// renders them.
func cardHTML(id, title, company, location string) string {
	return fmt.Sprintf(`
<div class="base-search-card">
  <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/%s-at-%s-%s?refId=abc">link</a>
  <span class="sr-only">%s</span>
  <h4 class="base-search-card__subtitle">
    <a href="https://www.linkedin.com/company/%s?trk=public">%s</a>
  </h4>
  <div class="base-search-card__metadata">
    <span class="job-search-card__location">%s</span>
    <time class="job-search-card__listdate" datetime="2024-05-01">3 days ago</time>
  </div>
</div>`,
		slugify(title), slugify(company), id, title, slugify(company), company, location)
}

func slugify(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

func searchPage(cards ...string) []byte {
	return []byte("<html><body>" + strings.Join(cards, "\n") + "</body></html>")
}

func okResponse(body []byte, finalURL string) *session.Response {
	return &session.Response{StatusCode: 200, Body: body, FinalURL: finalURL}
}
