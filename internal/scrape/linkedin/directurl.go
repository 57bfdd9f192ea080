package linkedin

import (
	"bytes"
	"context"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Patterns tried in turn against apply-URL carrier text: query-parameter
// capture, quoted-URL capture, then a bare-URL sweep.
var directURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\?url=([^"]+)`),
	regexp.MustCompile(`url=([^"&\s]+)`),
	regexp.MustCompile(`"(https?://[^"]+)"`),
	regexp.MustCompile(`https?://[^\s"<>]+`),
}

var htmlCommentRe = regexp.MustCompile(`(?s)<!--(.*?)-->`)

// urlStrategy is one way of digging an external apply URL out of a detail
// document. Strategies run in priority order; first non-internal hit wins.
type urlStrategy struct {
	name string
	fn   func(doc *goquery.Document) string
}

var directURLStrategies = []urlStrategy{
	{"apply-url-element", fromApplyURLElement},
	{"inline-script", fromInlineScripts},
	{"data-attribute", fromDataAttribute},
	{"external-anchor", fromExternalAnchor},
}

// extractDirectURL runs the strategy chain once. Empty string when no
// strategy yields an external candidate.
func extractDirectURL(doc *goquery.Document) string {
	for _, st := range directURLStrategies {
		if u := st.fn(doc); u != "" {
			return u
		}
	}
	return ""
}

// resolveDirectURL runs the chain, and on a miss re-fetches the detail page
// a bounded number of times before giving up: the page occasionally renders
// without its dynamic content on first load.
func (s *Scraper) resolveDirectURL(ctx context.Context, doc *goquery.Document, jobID string) string {
	if u := extractDirectURL(doc); u != "" {
		return u
	}

	const retries = 2
	for attempt := 1; attempt <= retries; attempt++ {
		time.Sleep(s.cfg.DirectURLRetryDelay)

		res, err := s.tr.Get(ctx, s.jobViewURL(jobID), nil)
		if err != nil || !res.OK() || isAuthRedirect(res.FinalURL) {
			continue
		}
		d, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
		if err != nil {
			continue
		}
		if u := extractDirectURL(d); u != "" {
			s.log.Debug().Str("job_id", jobID).Int("attempt", attempt).Msg("direct url found on retry")
			return u
		}
	}
	return ""
}

// isInternalURL flags site-domain, signup, and login candidates that must
// never be reported as an external apply URL.
func isInternalURL(u string) bool {
	lu := strings.ToLower(u)
	return strings.Contains(lu, "linkedin.com") ||
		strings.Contains(lu, "signup") ||
		strings.Contains(lu, "login")
}

// matchPatterns tries the pattern set against carrier text and cleans the
// first viable candidate: percent-decoded, internal hash parameter trimmed.
func matchPatterns(content string) string {
	for _, re := range directURLPatterns {
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		candidate := m[0]
		if len(m) > 1 {
			candidate = m[1]
		}
		if decoded, err := url.QueryUnescape(candidate); err == nil {
			candidate = decoded
		}
		if isInternalURL(candidate) {
			continue
		}
		if i := strings.Index(candidate, "&urlHash="); i >= 0 {
			candidate = candidate[:i]
		}
		return candidate
	}
	return ""
}

// fromApplyURLElement reads the dedicated apply-URL element. Its content is
// frequently wrapped in an HTML comment, so the raw serialization is
// unwrapped before pattern matching. Serializing re-escapes entities, which
// would turn query-parameter separators into "&amp;"; unescaping restores
// the URL as it appears in the page source.
func fromApplyURLElement(doc *goquery.Document) string {
	sel := doc.Find(applyURLSelector).First()
	if sel.Length() == 0 {
		return ""
	}
	content, err := sel.Html()
	if err != nil {
		return ""
	}
	content = strings.TrimSpace(content)
	if content == "" || strings.HasPrefix(content, "<!--") {
		raw, err := goquery.OuterHtml(sel)
		if err != nil {
			return ""
		}
		if m := htmlCommentRe.FindStringSubmatch(raw); m != nil {
			content = strings.TrimSpace(m[1])
		} else {
			content = raw
		}
	}
	return matchPatterns(html.UnescapeString(content))
}

func fromInlineScripts(doc *goquery.Document) string {
	var out string
	doc.Find("script").EachWithBreak(func(_ int, sc *goquery.Selection) bool {
		text := sc.Text()
		if !strings.Contains(text, "applyUrl") {
			return true
		}
		out = matchPatterns(text)
		return out == ""
	})
	return out
}

func fromDataAttribute(doc *goquery.Document) string {
	return doc.Find("[data-apply-url]").First().AttrOr("data-apply-url", "")
}

// fromExternalAnchor is the last resort: any hyperlink that leaves the site,
// isn't a legal/auth path, and mentions "apply" in its target or text.
func fromExternalAnchor(doc *goquery.Document) string {
	var out string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if isExternalApplyLink(href, a.Text()) {
			out = href
			return false
		}
		return true
	})
	return out
}

func isExternalApplyLink(href, text string) bool {
	if href == "" {
		return false
	}
	lh := strings.ToLower(href)
	if strings.HasPrefix(href, "/") {
		// Relative targets stay on the site by definition.
		return false
	}
	if strings.Contains(lh, "linkedin.com") ||
		strings.Contains(lh, "user-agreement") ||
		strings.Contains(lh, "sign-in") ||
		strings.Contains(lh, "auth-button") {
		return false
	}
	return strings.Contains(lh, "apply") || strings.Contains(strings.ToLower(text), "apply")
}
