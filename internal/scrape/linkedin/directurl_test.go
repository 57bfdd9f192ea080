package linkedin

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"linkscout-engine/internal/session"
)

func TestMatchPatternsQueryParameter(t *testing.T) {
	content := `window.applyUrl = "?url=https%3A%2F%2Fboards.greenhouse.io%2Facme%2Fjobs%2F42&urlHash=AbC"`
	got := matchPatterns(content)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/42", got)
}

func TestMatchPatternsQuotedURL(t *testing.T) {
	got := matchPatterns(`"https://jobs.lever.co/acme/1234"`)
	assert.Equal(t, "https://jobs.lever.co/acme/1234", got)
}

func TestMatchPatternsSkipsInternalCandidates(t *testing.T) {
	assert.Empty(t, matchPatterns(`"https://www.linkedin.com/signup"`))
	assert.Empty(t, matchPatterns(`"https://example.com/login"`))
}

func TestMatchPatternsIdempotent(t *testing.T) {
	content := `"https://jobs.lever.co/acme/1234"`
	first := matchPatterns(content)
	assert.Equal(t, first, matchPatterns(content))
}

func TestFromApplyURLElementCommentWrapped(t *testing.T) {
	doc := mustDoc(t, `<code id="applyUrl"><!--"https://boards.greenhouse.io/acme/jobs/42"--></code>`)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/42", fromApplyURLElement(doc))
}

func TestFromApplyURLElementKeepsQuerySeparators(t *testing.T) {
	// Serialization turns "&" into "&amp;"; the extracted URL must carry
	// the real separators and still get its urlHash tail trimmed.
	doc := mustDoc(t, `<code id="applyUrl"><!--"https://boards.greenhouse.io/acme/jobs/42?src=li&ref=card&urlHash=xyz"--></code>`)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/42?src=li&ref=card", fromApplyURLElement(doc))
}

func TestFromApplyURLElementAbsent(t *testing.T) {
	doc := mustDoc(t, `<p>no marker here</p>`)
	assert.Empty(t, fromApplyURLElement(doc))
}

func TestFromInlineScripts(t *testing.T) {
	doc := mustDoc(t, `
<script>var unrelated = 1;</script>
<script>var applyUrl = "https://apply.workable.com/acme/j/1";</script>`)
	assert.Equal(t, "https://apply.workable.com/acme/j/1", fromInlineScripts(doc))
}

func TestFromDataAttribute(t *testing.T) {
	doc := mustDoc(t, `<div data-apply-url="https://jobs.acme.com/apply/9"></div>`)
	assert.Equal(t, "https://jobs.acme.com/apply/9", fromDataAttribute(doc))
}

func TestFromExternalAnchor(t *testing.T) {
	doc := mustDoc(t, `
<a href="/jobs/view/123">internal relative</a>
<a href="https://www.linkedin.com/jobs/apply/1">Apply</a>
<a href="https://www.linkedin.com/sign-in">Sign in to apply</a>
<a href="https://careers.acme.com/openings/42">Apply now</a>`)
	assert.Equal(t, "https://careers.acme.com/openings/42", fromExternalAnchor(doc))
}

func TestIsExternalApplyLinkNeedsApplyMention(t *testing.T) {
	assert.False(t, isExternalApplyLink("https://careers.acme.com/about", "Company story"))
	assert.True(t, isExternalApplyLink("https://careers.acme.com/apply", "Go"))
	assert.True(t, isExternalApplyLink("https://careers.acme.com/openings/42", "Apply now"))
	assert.False(t, isExternalApplyLink("", "Apply"))
	assert.False(t, isExternalApplyLink("/apply", "Apply"))
}

func TestExtractDirectURLStrategyOrder(t *testing.T) {
	doc := mustDoc(t, `
<div data-apply-url="https://jobs.acme.com/apply/9"></div>
<a href="https://careers.acme.com/openings/42">Apply now</a>`)
	assert.Equal(t, "https://jobs.acme.com/apply/9", extractDirectURL(doc))
}

func TestExtractDirectURLIdempotent(t *testing.T) {
	doc := mustDoc(t, `<code id="applyUrl"><!--"https://boards.greenhouse.io/acme/jobs/42"--></code>`)
	first := extractDirectURL(doc)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, extractDirectURL(doc))
}

func TestResolveDirectURLFindsOnRetry(t *testing.T) {
	calls := 0
	tr := transportFunc(func(_ context.Context, rawURL string, _ url.Values) (*session.Response, error) {
		calls++
		body := []byte(`<html><body><code id="applyUrl"><!--"https://boards.greenhouse.io/acme/jobs/42"--></code></body></html>`)
		return okResponse(body, rawURL), nil
	})
	s := testScraper(tr)

	empty := mustDoc(t, `<p>not rendered yet</p>`)
	got := s.resolveDirectURL(context.Background(), empty, "42")
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/42", got)
	assert.Equal(t, 1, calls)
}

func TestResolveDirectURLGivesUp(t *testing.T) {
	calls := 0
	tr := transportFunc(func(_ context.Context, rawURL string, _ url.Values) (*session.Response, error) {
		calls++
		return okResponse([]byte(`<html><body><p>still nothing</p></body></html>`), rawURL), nil
	})
	s := testScraper(tr)

	empty := mustDoc(t, `<p>not rendered yet</p>`)
	assert.Empty(t, s.resolveDirectURL(context.Background(), empty, "42"))
	assert.Equal(t, 2, calls)
}

func TestResolveDirectURLNoRefetchWhenPresent(t *testing.T) {
	tr := transportFunc(func(_ context.Context, _ string, _ url.Values) (*session.Response, error) {
		t.Fatal("transport should not be called when the document already has a url")
		return nil, nil
	})
	s := testScraper(tr)

	doc := mustDoc(t, `<div data-apply-url="https://jobs.acme.com/apply/9"></div>`)
	assert.Equal(t, "https://jobs.acme.com/apply/9", s.resolveDirectURL(context.Background(), doc, "42"))
}
