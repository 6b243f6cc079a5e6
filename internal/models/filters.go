package models

import "strings"

// JobFilters is the transient client-side query applied over the in-memory
// job collection. A zero value matches everything. Active fields combine
// with logical AND.
type JobFilters struct {
	Search   string
	Location string
	Skills   []string
	JobType  string
}

// IsZero reports whether no filter field is active.
func (f JobFilters) IsZero() bool {
	return f.Search == "" && f.Location == "" && len(f.Skills) == 0 && f.JobType == ""
}

// Match reports whether job passes every active filter field:
//
//   - Search matches case-insensitively as a substring of the title,
//     description, or company name.
//   - Location matches case-insensitively as a substring.
//   - Skills match when any requested skill equals any job skill,
//     case-insensitively.
//   - JobType matches exactly.
func (f JobFilters) Match(job Job) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(job.Title), term) &&
			!strings.Contains(strings.ToLower(job.Description), term) &&
			!strings.Contains(strings.ToLower(job.CompanyName), term) {
			return false
		}
	}

	if f.Location != "" {
		if !strings.Contains(strings.ToLower(job.Location), strings.ToLower(f.Location)) {
			return false
		}
	}

	if len(f.Skills) > 0 {
		found := false
	outer:
		for _, want := range f.Skills {
			for _, have := range job.Skills {
				if strings.EqualFold(want, have) {
					found = true
					break outer
				}
			}
		}
		if !found {
			return false
		}
	}

	if f.JobType != "" && job.JobType != f.JobType {
		return false
	}

	return true
}
