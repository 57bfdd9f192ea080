package domain

import "strings"

// JobType is the employment-type taxonomy used by the search filter and the
// detail-page "Employment type" criteria row.
type JobType string

const (
	JobTypeFullTime   JobType = "fulltime"
	JobTypePartTime   JobType = "parttime"
	JobTypeInternship JobType = "internship"
	JobTypeContract   JobType = "contract"
	JobTypeTemporary  JobType = "temporary"
)

// FilterCode returns the single-letter search filter value for the type, or
// "" for a type the search endpoint has no code for.
func (t JobType) FilterCode() string {
	switch t {
	case JobTypeFullTime:
		return "F"
	case JobTypePartTime:
		return "P"
	case JobTypeInternship:
		return "I"
	case JobTypeContract:
		return "C"
	case JobTypeTemporary:
		return "T"
	}
	return ""
}

// ParseJobType maps free text like "Full-time" or "PART TIME" onto the
// taxonomy. Returns "" when no entry matches.
func ParseJobType(s string) JobType {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	switch JobType(s) {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract, JobTypeTemporary:
		return JobType(s)
	}
	return ""
}
