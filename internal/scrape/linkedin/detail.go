package linkedin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkscout-engine/internal/domain"
	"linkscout-engine/internal/render"
	"linkscout-engine/internal/scrape/util"
)

// ErrExcluded marks a listing filtered out by the post-hoc apply-method
// check. It is a filtering outcome, not a failure.
var ErrExcluded = errors.New("listing excluded by apply-method filter")

var (
	errAuthRedirect  = errors.New("redirected to signup page")
	errNoApplyMarker = errors.New("apply url marker not present")
)

const (
	detailAttempts   = 3
	applyURLSelector = "code#applyUrl"
)

type jobDetails struct {
	description string
	jobType     domain.JobType
	jobLevel    string
	jobFunction string
	industry    string
	logoURL     string
	directURL   string
	applyVia    domain.ApplyMethod
}

// fetchDetails retrieves and validates one job's detail document with
// bounded retry, then extracts the enrichment bundle. A redirect to the
// signup page and a missing apply-URL marker are soft failures worth a
// retry; the document from the last attempt is accepted even without the
// marker.
func (s *Scraper) fetchDetails(ctx context.Context, jobID string, in domain.SearchCriteria) (*jobDetails, error) {
	log := s.log.With().Str("job_id", jobID).Logger()

	var doc *goquery.Document
	var lastErr error
	for attempt := 1; attempt <= detailAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(s.cfg.DetailRetryDelay)
		}

		res, err := s.tr.Get(ctx, s.jobViewURL(jobID), nil)
		if err != nil {
			lastErr = err
			log.Warn().Err(err).Int("attempt", attempt).Msg("detail fetch failed")
			continue
		}
		if !res.OK() {
			lastErr = fmt.Errorf("detail page status %d", res.StatusCode)
			log.Warn().Err(lastErr).Int("attempt", attempt).Msg("detail fetch failed")
			continue
		}
		if isAuthRedirect(res.FinalURL) {
			lastErr = errAuthRedirect
			log.Warn().Int("attempt", attempt).Msg("redirected to signup page")
			continue
		}

		d, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
		if err != nil {
			lastErr = fmt.Errorf("parse detail page: %w", err)
			continue
		}

		if d.Find(applyURLSelector).Length() == 0 && attempt < detailAttempts {
			lastErr = errNoApplyMarker
			log.Warn().Int("attempt", attempt).Msg("apply url marker missing, retrying")
			continue
		}

		// Accept the document, marker or not.
		doc = d
		break
	}
	if doc == nil {
		return nil, fmt.Errorf("detail fetch exhausted %d attempts: %w", detailAttempts, lastErr)
	}

	det := &jobDetails{
		jobLevel:    criteriaText(doc, "Seniority level"),
		industry:    criteriaText(doc, "Industries"),
		jobFunction: criteriaText(doc, "Job function"),
		jobType:     domain.ParseJobType(criteriaText(doc, "Employment type")),
		logoURL:     doc.Find("img.artdeco-entity-image").First().AttrOr("data-delayed-url", ""),
	}

	if desc, err := s.extractDescription(doc, in.Format); err != nil {
		log.Warn().Err(err).Msg("description render failed")
	} else {
		det.description = desc
	}

	det.directURL = s.resolveDirectURL(ctx, doc, jobID)
	det.applyVia = classifyApplyMethod(doc, det.directURL)

	if in.EasyApply != nil && !*in.EasyApply && det.applyVia == domain.ApplyEasy {
		return nil, ErrExcluded
	}

	return det, nil
}

func isAuthRedirect(finalURL string) bool {
	return strings.Contains(finalURL, "linkedin.com/signup")
}

// extractDescription pulls the description container, strips its
// attributes, and renders it in the requested format.
func (s *Scraper) extractDescription(doc *goquery.Document, format domain.DescriptionFormat) (string, error) {
	sel := doc.Find(`div[class*="show-more-less-html__markup"]`).First()
	if sel.Length() == 0 {
		return "", nil
	}
	render.StripAttributes(sel)
	htmlText, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", fmt.Errorf("serialize description: %w", err)
	}
	return render.Description(htmlText, format)
}

// criteriaText reads the value span that follows a criteria subheader whose
// text contains label ("Seniority level", "Industries", ...).
func criteriaText(doc *goquery.Document, label string) string {
	var out string
	doc.Find("h3.description__job-criteria-subheader").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.Contains(util.CleanText(h.Text()), label) {
			return true
		}
		out = util.CleanText(h.NextAllFiltered("span.description__job-criteria-text").First().Text())
		return false
	})
	return out
}
