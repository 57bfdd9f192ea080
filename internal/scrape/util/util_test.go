package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Staff Engineer", CleanText("  Staff\n\t Engineer  "))
	assert.Equal(t, "a b", CleanText("a b"))
	assert.Empty(t, CleanText("   "))
}

func TestStripQuery(t *testing.T) {
	assert.Equal(t,
		"https://example.com/jobs/view/engineer-42",
		StripQuery("https://example.com/jobs/view/engineer-42?refId=x&trk=y#frag"))
	assert.Equal(t, "https://example.com/a", StripQuery("https://example.com/a"))
	assert.Empty(t, StripQuery("  "))
}

func TestTailSegment(t *testing.T) {
	assert.Equal(t, "42", TailSegment("engineer-at-acme-42", "-"))
	assert.Equal(t, "whole", TailSegment("whole", "-"))
	assert.Empty(t, TailSegment("trailing-", "-"))
}

func TestExtractEmails(t *testing.T) {
	got := ExtractEmails("reach hiring@acme.com or jobs+eu@acme.co.uk for details")
	assert.Equal(t, []string{"hiring@acme.com", "jobs+eu@acme.co.uk"}, got)

	assert.Nil(t, ExtractEmails(""))
	assert.Empty(t, ExtractEmails("no contact given"))
}
