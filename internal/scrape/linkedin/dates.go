package linkedin

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkscout-engine/internal/scrape/util"
)

// Accepted machine-readable timestamp layouts, tried in order.
var datetimeLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05Z",
}

var (
	daysAgoRe   = regexp.MustCompile(`(\d+)\s+days?\s+ago`)
	weeksAgoRe  = regexp.MustCompile(`(\d+)\s+weeks?\s+ago`)
	monthsAgoRe = regexp.MustCompile(`(\d+)\s+months?\s+ago`)
	yearsAgoRe  = regexp.MustCompile(`(\d+)\s+years?\s+ago`)
)

// parsePostedAt finds a posting date inside a card's metadata node: a
// datetime attribute first (several selector fallbacks), then human
// relative-date text. Nil when nothing parses.
func parsePostedAt(metadata *goquery.Selection, now time.Time) *time.Time {
	if metadata == nil || metadata.Length() == 0 {
		return nil
	}

	tag := metadata.Find("time.job-search-card__listdate").First()
	if _, ok := tag.Attr("datetime"); !ok {
		tag = metadata.Find("time[datetime]").First()
	}
	if _, ok := tag.Attr("datetime"); !ok {
		tag = metadata.Find("[datetime]").First()
	}

	if raw, ok := tag.Attr("datetime"); ok {
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return &t
			}
		}
	}

	return parseRelativeDate(util.CleanText(metadata.Text()), now)
}

// parseRelativeDate normalizes phrases like "3 days ago" or "yesterday"
// into a calendar date relative to now. Months and years are approximated
// as 30 and 365 days.
func parseRelativeDate(text string, now time.Time) *time.Time {
	text = strings.ToLower(text)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	back := func(days int) *time.Time {
		t := today.AddDate(0, 0, -days)
		return &t
	}

	if m := daysAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return back(n)
	}
	if m := weeksAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return back(n * 7)
	}
	if m := monthsAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return back(n * 30)
	}
	if m := yearsAgoRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return back(n * 365)
	}
	if strings.Contains(text, "yesterday") {
		return back(1)
	}
	if strings.Contains(text, "today") {
		return back(0)
	}
	return nil
}
