// Package linkedin crawls the public guest search and job-view pages,
// turning semi-structured markup into JobRecords.
package linkedin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"linkscout-engine/internal/domain"
	"linkscout-engine/internal/session"
)

const (
	defaultBaseURL = "https://www.linkedin.com"
	searchPath     = "/jobs-guest/jobs/api/seeMoreJobPostings/search"

	// Offset ceiling the search endpoint honors; paging past it returns junk.
	maxOffset = 1000
)

// Transport is the "issue GET, get status+body+final URL" capability the
// crawler consumes. session.Client satisfies it.
type Transport interface {
	Get(ctx context.Context, rawURL string, params url.Values) (*session.Response, error)
}

type Config struct {
	BaseURL string

	// Inter-page throttle: sleep a random duration in
	// [PageDelay, PageDelay+PageDelayBand] between result pages.
	PageDelay     time.Duration
	PageDelayBand time.Duration

	// Fixed delays inside the detail-fetch and direct-URL retry loops.
	DetailRetryDelay    time.Duration
	DirectURLRetryDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.PageDelay == 0 {
		c.PageDelay = 3 * time.Second
	}
	if c.PageDelayBand == 0 {
		c.PageDelayBand = 4 * time.Second
	}
	if c.DetailRetryDelay == 0 {
		c.DetailRetryDelay = time.Second
	}
	if c.DirectURLRetryDelay == 0 {
		c.DirectURLRetryDelay = 500 * time.Millisecond
	}
	return c
}

type Scraper struct {
	tr  Transport
	cfg Config
	log zerolog.Logger
	now func() time.Time
}

func New(tr Transport, cfg Config, log zerolog.Logger) *Scraper {
	return &Scraper{
		tr:  tr,
		cfg: cfg.withDefaults(),
		log: log.With().Str("component", "linkedin").Logger(),
		now: time.Now,
	}
}

// crawlState lives for one Search call and is discarded on return.
type crawlState struct {
	jobs     []domain.JobRecord
	seen     map[string]bool
	offset   int
	requests int
}

// keepSearching is the single stopping condition shared by the page loop and
// the mid-page early stop.
func keepSearching(collected, wanted, offset int) bool {
	return collected < wanted && offset < maxOffset
}

// Search runs one crawl. On a crawl-fatal condition the records collected so
// far are returned alongside the error.
func (s *Scraper) Search(ctx context.Context, in domain.SearchCriteria) ([]domain.JobRecord, error) {
	if in.Country.Name == "" {
		in.Country = domain.CountryWorldwide
	}

	st := &crawlState{
		seen:   map[string]bool{},
		offset: in.Offset / 10 * 10,
	}

	for keepSearching(len(st.jobs), in.ResultsWanted, st.offset) {
		st.requests++
		s.log.Info().
			Int("page", st.requests).
			Int("offset", st.offset).
			Int("found", len(st.jobs)).
			Msg("fetching search page")

		res, err := s.tr.Get(ctx, s.cfg.BaseURL+searchPath, searchParams(in, st.offset))
		if err != nil {
			s.log.Error().Err(err).Msg("search page fetch failed")
			return truncated(st.jobs, in.ResultsWanted), err
		}
		if !res.OK() {
			if res.StatusCode == http.StatusTooManyRequests {
				err = errors.New("blocked for too many requests (429)")
			} else {
				err = fmt.Errorf("search page status %d", res.StatusCode)
			}
			s.log.Error().Err(err).Msg("search page rejected")
			return truncated(st.jobs, in.ResultsWanted), err
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
		if err != nil {
			return truncated(st.jobs, in.ResultsWanted), fmt.Errorf("parse search page: %w", err)
		}

		cards := doc.Find("div.base-search-card")
		if cards.Length() == 0 {
			break
		}

		cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
			href, ok := card.Find("a.base-card__full-link").Attr("href")
			if !ok {
				return true
			}
			jobID := listingID(href)
			if jobID == "" || st.seen[jobID] {
				return true
			}
			st.seen[jobID] = true

			rec := s.buildRecord(ctx, card, jobID, in)
			if rec == nil {
				s.log.Debug().Str("job_id", jobID).Msg("listing filtered out")
				return true
			}
			st.jobs = append(st.jobs, *rec)
			return keepSearching(len(st.jobs), in.ResultsWanted, st.offset)
		})

		// Advance by what the server actually returned so a short page
		// doesn't drift the cursor.
		st.offset += cards.Length()

		if keepSearching(len(st.jobs), in.ResultsWanted, st.offset) {
			s.pageSleep()
		}
	}

	return truncated(st.jobs, in.ResultsWanted), nil
}

func truncated(jobs []domain.JobRecord, wanted int) []domain.JobRecord {
	if wanted >= 0 && len(jobs) > wanted {
		return jobs[:wanted]
	}
	return jobs
}

func (s *Scraper) pageSleep() {
	d := s.cfg.PageDelay
	if s.cfg.PageDelayBand > 0 {
		d += time.Duration(rand.Int63n(int64(s.cfg.PageDelayBand)))
	}
	time.Sleep(d)
}

func (s *Scraper) jobViewURL(jobID string) string {
	return s.cfg.BaseURL + "/jobs/view/" + jobID
}

func searchParams(in domain.SearchCriteria, offset int) url.Values {
	p := url.Values{}
	p.Set("keywords", in.SearchTerm)
	p.Set("location", in.Location)
	if in.Distance > 0 {
		p.Set("distance", strconv.Itoa(in.Distance))
	}
	p.Set("pageNum", "0")
	p.Set("start", strconv.Itoa(offset))

	if in.IsRemote {
		p.Set("f_WT", "2")
	}
	if code := in.JobType.FilterCode(); code != "" {
		p.Set("f_JT", code)
	}
	if in.EasyApply != nil {
		p.Set("f_AL", strconv.FormatBool(*in.EasyApply))
	}
	if len(in.CompanyIDs) > 0 {
		ids := make([]string, len(in.CompanyIDs))
		for i, id := range in.CompanyIDs {
			ids[i] = strconv.Itoa(id)
		}
		p.Set("f_C", strings.Join(ids, ","))
	}
	if in.ExperienceLevel > 0 {
		p.Set("f_E", strconv.Itoa(in.ExperienceLevel))
	}
	if in.MaxAgeSeconds > 0 {
		p.Set("f_TPR", fmt.Sprintf("r%d", in.MaxAgeSeconds))
	}
	return p
}
