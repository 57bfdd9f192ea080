package linkedin

import (
	"context"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkscout-engine/internal/domain"
	"linkscout-engine/internal/scrape/util"
)

// listingID derives the site-scoped id from a card's canonical link: strip
// the query string, take what follows the last dash.
func listingID(href string) string {
	return util.TailSegment(util.StripQuery(href), "-")
}

// buildRecord extracts one provisional JobRecord from a result card and,
// when requested, enriches it from the detail page. A nil return means the
// listing was filtered out by the apply-method exclusion.
func (s *Scraper) buildRecord(ctx context.Context, card *goquery.Selection, jobID string, in domain.SearchCriteria) *domain.JobRecord {
	rec := &domain.JobRecord{
		ID:       "li-" + jobID,
		JobURL:   s.jobViewURL(jobID),
		ApplyVia: domain.ApplyUnknown,
	}

	rec.Title = util.CleanText(card.Find("span.sr-only").First().Text())
	if rec.Title == "" {
		rec.Title = "N/A"
	}

	companyLink := card.Find("h4.base-search-card__subtitle a").First()
	rec.CompanyName = util.CleanText(companyLink.Text())
	if rec.CompanyName == "" {
		rec.CompanyName = "N/A"
	}
	if href, ok := companyLink.Attr("href"); ok {
		rec.CompanyURL = util.StripQuery(href)
	}

	rec.Comp = parseSalary(card.Find("span.job-search-card__salary-info").First().Text())

	metadata := card.Find("div.base-search-card__metadata").First()
	rec.Location = parseLocation(metadata, in.Country)
	rec.PostedAt = parsePostedAt(metadata, s.now())

	if in.FetchDescription {
		det, err := s.fetchDetails(ctx, jobID, in)
		switch {
		case errors.Is(err, ErrExcluded):
			return nil
		case err != nil:
			// Recoverable for the crawl: keep the card-level record and
			// mark why enrichment is missing.
			rec.DetailError = err.Error()
		default:
			rec.Description = det.description
			rec.JobType = det.jobType
			rec.JobLevel = strings.ToLower(det.jobLevel)
			rec.JobFunction = det.jobFunction
			rec.CompanyIndustry = det.industry
			rec.CompanyLogoURL = det.logoURL
			rec.DirectURL = det.directURL
			rec.ApplyVia = det.applyVia
			rec.Emails = util.ExtractEmails(det.description)
		}
	}

	rec.IsRemote = in.IsRemote || isJobRemote(rec.Title, rec.Description, rec.Location)

	return rec
}

var remoteKeywords = []string{"remote", "work from home", "telecommute"}

func isJobRemote(title, description string, loc domain.Location) bool {
	blob := strings.ToLower(strings.Join([]string{title, description, loc.String()}, " "))
	for _, kw := range remoteKeywords {
		if strings.Contains(blob, kw) {
			return true
		}
	}
	return false
}
