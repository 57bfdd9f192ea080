package domain

// SearchCriteria is the immutable input for one crawl.
type SearchCriteria struct {
	SearchTerm string
	Location   string
	Distance   int // miles

	IsRemote        bool
	JobType         JobType
	EasyApply       *bool // nil = any, true = require, false = exclude
	CompanyIDs      []int
	ExperienceLevel int // site's 1..6 scale, 0 = unset
	MaxAgeSeconds   int // 0 = unset

	ResultsWanted int
	Offset        int

	FetchDescription bool
	Format           DescriptionFormat
	Country          Country // default country for 2-part locations
}
