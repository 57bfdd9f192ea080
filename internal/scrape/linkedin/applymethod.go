package linkedin

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkscout-engine/internal/domain"
)

// verdict is one rule's answer: decisively easy-apply, decisively not, or
// no opinion (fall through to the next rule).
type verdict int

const (
	verdictNone verdict = iota
	verdictEasy
	verdictNotEasy
)

// applySignals is everything the rules look at, computed once per document.
type applySignals struct {
	doc            *goquery.Document
	pageText       string // lowercased visible text
	rawHTML        string // full serialization, for the exhaustive URL scan
	hasApplyMarker bool
	directURL      string // already-resolved external apply URL, if any
}

type applyRule struct {
	name string
	eval func(sig applySignals) verdict
}

// Ordered chain; the first decisive verdict wins. The ordering encodes a
// conservative bias: a listing is only called easy-apply on strong or
// corroborated evidence, so ambiguous pages are kept.
var applyRules = []applyRule{
	{"explicit-ui-marker", ruleExplicitMarker},
	{"external-apply-url", ruleExternalApplyURL},
	{"explicit-page-text", ruleExplicitText},
	{"auth-gate", ruleAuthGate},
	{"apply-button-no-marker", ruleApplyButtonNoMarker},
}

// classifyApplyMethod is total: any well-formed document maps to easy-apply
// or external, and no decisive signal means "do not filter" (external).
func classifyApplyMethod(doc *goquery.Document, directURL string) domain.ApplyMethod {
	rawHTML, err := doc.Html()
	if err != nil {
		rawHTML = ""
	}
	sig := applySignals{
		doc:            doc,
		pageText:       strings.ToLower(doc.Text()),
		rawHTML:        rawHTML,
		hasApplyMarker: doc.Find(applyURLSelector).Length() > 0,
		directURL:      directURL,
	}

	for _, r := range applyRules {
		switch r.eval(sig) {
		case verdictEasy:
			return domain.ApplyEasy
		case verdictNotEasy:
			return domain.ApplyExternal
		}
	}
	return domain.ApplyExternal
}

// ruleExplicitMarker: a button, class, or data attribute naming easy/quick
// apply is the strongest signal there is.
func ruleExplicitMarker(sig applySignals) verdict {
	if sig.doc.Find(`[data-easy-apply]`).Length() > 0 {
		return verdictEasy
	}

	easy := false
	sig.doc.Find("button, [class]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if cls, ok := el.Attr("class"); ok && strings.Contains(strings.ToLower(cls), "easy-apply") {
			easy = true
			return false
		}
		if goquery.NodeName(el) == "button" {
			text := strings.ToLower(strings.TrimSpace(el.Text()))
			if strings.Contains(text, "easy apply") || strings.Contains(text, "quick apply") {
				easy = true
				return false
			}
		}
		return true
	})
	if easy {
		return verdictEasy
	}
	return verdictNone
}

// ruleExternalApplyURL: a resolved external apply URL overrides weaker
// textual signals; the employer clearly wants candidates off-site.
func ruleExternalApplyURL(sig applySignals) verdict {
	if sig.directURL != "" {
		return verdictNotEasy
	}
	if u := fromApplyURLElement(sig.doc); u != "" {
		return verdictNotEasy
	}
	if u := fromInlineScripts(sig.doc); u != "" {
		return verdictNotEasy
	}
	if u := fromExternalAnchor(sig.doc); u != "" {
		return verdictNotEasy
	}
	return verdictNone
}

var explicitEasyPhrases = []string{
	"easy apply",
	"quick apply",
	"one-click apply",
	"apply with linkedin",
	"linkedin apply",
}

func ruleExplicitText(sig applySignals) verdict {
	for _, p := range explicitEasyPhrases {
		if strings.Contains(sig.pageText, p) {
			return verdictEasy
		}
	}
	return verdictNone
}

var authGatePhrases = []string{
	"join or sign in to find your next job",
	"sign in to find your next job",
	"join to apply for",
	"security verification",
	"already on linkedin? sign in",
}

// ruleAuthGate: sign-in phrasing alone is weak. It only counts when an
// exhaustive scan finds no external URL that could be an apply target.
func ruleAuthGate(sig applySignals) verdict {
	gated := false
	for _, p := range authGatePhrases {
		if strings.Contains(sig.pageText, p) {
			gated = true
			break
		}
	}
	if !gated {
		return verdictNone
	}
	if anyExternalSurvivor(sig.rawHTML) {
		return verdictNone
	}
	return verdictEasy
}

var applyLabelRe = regexp.MustCompile(`(?i)apply`)

// ruleApplyButtonNoMarker: apply-labelled controls with no apply-URL marker
// anywhere, and no surviving external URL, point at an in-platform flow.
func ruleApplyButtonNoMarker(sig applySignals) verdict {
	if sig.hasApplyMarker {
		return verdictNone
	}
	labelled := false
	sig.doc.Find("button, a").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if applyLabelRe.MatchString(el.Text()) {
			labelled = true
			return false
		}
		return true
	})
	if !labelled {
		return verdictNone
	}
	if anyExternalSurvivor(sig.rawHTML) {
		return verdictNone
	}
	return verdictEasy
}

var externalURLRe = regexp.MustCompile(`https://[^"\s<>]+`)

// Denylist of URLs that can never be an apply target: site infrastructure,
// CDN assets, static file types, and legal/marketing paths.
var nonApplyRe = []*regexp.Regexp{
	regexp.MustCompile(`linkedin\.com/in/`),
	regexp.MustCompile(`linkedin\.com/feed/`),
	regexp.MustCompile(`linkedin\.com/messaging/`),
	regexp.MustCompile(`linkedin\.com/notifications/`),
	regexp.MustCompile(`media\.licdn\.com`),
	regexp.MustCompile(`static\.licdn\.com`),
	regexp.MustCompile(`cdn\.linkedin\.com`),
	regexp.MustCompile(`\.(css|js|png|jpg|jpeg|gif|svg|ico|pdf|zip|mp4|mp3)$`),
	regexp.MustCompile(`/legal/`),
	regexp.MustCompile(`/privacy`),
	regexp.MustCompile(`/terms`),
	regexp.MustCompile(`/(about|contact|news|blog|press|investors|help|support)$`),
}

var socialHosts = []string{"facebook.com", "twitter.com", "youtube.com", "instagram.com"}

// survivesDenylist reports whether a URL could plausibly be an apply
// target. Social-network links only survive when they point at a careers or
// jobs page.
func survivesDenylist(u string) bool {
	lu := strings.ToLower(u)
	if strings.HasPrefix(lu, "https://www.linkedin.com") {
		return false
	}
	for _, re := range nonApplyRe {
		if re.MatchString(lu) {
			return false
		}
	}
	for _, host := range socialHosts {
		if strings.Contains(lu, host) &&
			!strings.Contains(lu, "career") &&
			!strings.Contains(lu, "job") &&
			!strings.Contains(lu, "work") {
			return false
		}
	}
	return true
}

func anyExternalSurvivor(rawHTML string) bool {
	for _, u := range externalURLRe.FindAllString(rawHTML, -1) {
		if survivesDenylist(u) {
			return true
		}
	}
	return false
}
