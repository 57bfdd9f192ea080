package linkedin

import (
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.May, 15, 13, 37, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseRelativeDate(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"3 days ago", day(2024, time.May, 12)},
		{"1 day ago", day(2024, time.May, 14)},
		{"1 week ago", day(2024, time.May, 8)},
		{"2 weeks ago", day(2024, time.May, 1)},
		{"1 month ago", day(2024, time.April, 15)},
		{"2 years ago", day(2022, time.May, 16)},
		{"Yesterday", day(2024, time.May, 14)},
		{"Posted today", day(2024, time.May, 15)},
	}
	for _, c := range cases {
		got := parseRelativeDate(c.text, testNow)
		require.NotNil(t, got, "input %q", c.text)
		assert.Equal(t, c.want, *got, "input %q", c.text)
	}
}

func TestParseRelativeDateUnparseable(t *testing.T) {
	assert.Nil(t, parseRelativeDate("a while back", testNow))
	assert.Nil(t, parseRelativeDate("", testNow))
}

func TestParsePostedAtPrefersDatetimeAttribute(t *testing.T) {
	md := metadataHTML(t, `<time class="job-search-card__listdate" datetime="2024-04-30">2 weeks ago</time>`)
	got := parsePostedAt(md, testNow)
	require.NotNil(t, got)
	assert.Equal(t, day(2024, time.April, 30), got.UTC())
}

func TestParsePostedAtDatetimeLayouts(t *testing.T) {
	for _, raw := range []string{
		"2024-04-30",
		"2024-04-30T09:15:00",
		"2024-04-30T09:15:00.000",
		"2024-04-30T09:15:00Z",
	} {
		md := metadataHTML(t, `<time datetime="`+raw+`">ignored</time>`)
		got := parsePostedAt(md, testNow)
		require.NotNil(t, got, "datetime %q", raw)
		assert.Equal(t, 30, got.Day(), "datetime %q", raw)
	}
}

func TestParsePostedAtFallsBackToRelativeText(t *testing.T) {
	md := metadataHTML(t, `<span>3 days ago</span>`)
	got := parsePostedAt(md, testNow)
	require.NotNil(t, got)
	assert.Equal(t, day(2024, time.May, 12), *got)
}

func TestParsePostedAtBadDatetimeThenNoText(t *testing.T) {
	md := metadataHTML(t, `<time datetime="soon">soon</time>`)
	assert.Nil(t, parsePostedAt(md, testNow))
}

func metadataHTML(t *testing.T, inner string) *goquery.Selection {
	t.Helper()
	doc := mustDoc(t, `<div class="base-search-card__metadata">`+inner+`</div>`)
	return doc.Find("div.base-search-card__metadata").First()
}
