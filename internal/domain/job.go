package domain

import "time"

// ApplyMethod says how a listing expects candidates to apply.
type ApplyMethod string

const (
	ApplyEasy     ApplyMethod = "easy_apply"
	ApplyExternal ApplyMethod = "external"
	ApplyUnknown  ApplyMethod = "unknown"
)

// DescriptionFormat selects how detail-page descriptions are rendered.
type DescriptionFormat string

const (
	FormatHTML     DescriptionFormat = "html"
	FormatMarkdown DescriptionFormat = "markdown"
	FormatPlain    DescriptionFormat = "plain"
)

type Compensation struct {
	MinAmount float64
	MaxAmount float64
	Currency  string
	Interval  string // yearly/hourly/etc; empty when the source doesn't say
}

// JobRecord is one assembled listing. Built from a result card, optionally
// enriched from the detail page, never mutated after assembly.
type JobRecord struct {
	ID          string // site-scoped, e.g. "li-3811051337"
	Title       string
	CompanyName string
	CompanyURL  string
	JobURL      string

	Location  Location
	IsRemote  bool
	PostedAt  *time.Time
	Comp      *Compensation
	ApplyVia  ApplyMethod
	DirectURL string // employer-side apply URL, empty if none resolved

	// Detail-page enrichments; zero values mean the detail page was not
	// fetched or didn't carry the field.
	Description     string
	JobType         JobType
	JobLevel        string
	JobFunction     string
	CompanyIndustry string
	CompanyLogoURL  string
	Emails          []string

	// DetailError records a detail fetch that exhausted its retries.
	DetailError string
}
