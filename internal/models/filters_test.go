package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleJob() Job {
	return Job{
		ID:          "j1",
		Title:       "Backend Engineer",
		Description: "Build REST services in Go",
		Location:    "Berlin, Germany",
		Skills:      []string{"Go", "PostgreSQL", "Docker"},
		EmployerID:  "e1",
		CompanyName: "Acme Labs",
		JobType:     "Full-time",
	}
}

func TestJobFilters_Match(t *testing.T) {
	job := sampleJob()

	tests := []struct {
		name    string
		filters JobFilters
		want    bool
	}{
		{"zero filters match everything", JobFilters{}, true},
		{"search in title, case-insensitive", JobFilters{Search: "backend"}, true},
		{"search in description", JobFilters{Search: "rest services"}, true},
		{"search in company name", JobFilters{Search: "acme"}, true},
		{"search miss", JobFilters{Search: "frontend"}, false},
		{"location substring", JobFilters{Location: "berlin"}, true},
		{"location miss", JobFilters{Location: "london"}, false},
		{"any skill equals, case-insensitive", JobFilters{Skills: []string{"rust", "go"}}, true},
		{"no skill overlap", JobFilters{Skills: []string{"rust", "c++"}}, false},
		{"job type exact", JobFilters{JobType: "Full-time"}, true},
		{"job type is exact, not substring", JobFilters{JobType: "full-time"}, false},
		{"all fields AND-combined", JobFilters{Search: "go", Location: "germany", Skills: []string{"docker"}, JobType: "Full-time"}, true},
		{"one failing field fails the whole match", JobFilters{Search: "go", Location: "london"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.filters.Match(job))
		})
	}
}

// Filters must be order-independent: applying search and location together
// yields the same set as applying one after the other.
func TestJobFilters_Commutative(t *testing.T) {
	jobs := []Job{
		sampleJob(),
		{ID: "j2", Title: "Go Developer", Description: "APIs", Location: "Remote", Skills: []string{"Go"}},
		{ID: "j3", Title: "Designer", Description: "Figma work", Location: "Berlin", Skills: []string{"Figma"}},
	}

	combined := JobFilters{Search: "go", Location: "berlin"}
	searchOnly := JobFilters{Search: "go"}
	locationOnly := JobFilters{Location: "berlin"}

	apply := func(f JobFilters, in []Job) []Job {
		var out []Job
		for _, j := range in {
			if f.Match(j) {
				out = append(out, j)
			}
		}
		return out
	}

	require.Equal(t, apply(combined, jobs), apply(locationOnly, apply(searchOnly, jobs)))
	require.Equal(t, apply(combined, jobs), apply(searchOnly, apply(locationOnly, jobs)))
}

func TestSession_Valid(t *testing.T) {
	u := &User{ID: "u1", Email: "a@b.c", Role: RoleJobseeker}

	require.True(t, Session{User: u, Token: "tok"}.Valid())
	require.False(t, Session{User: u}.Valid())
	require.False(t, Session{Token: "tok"}.Valid())
	require.False(t, Session{}.Valid())
}

func TestValidStatus(t *testing.T) {
	require.True(t, ValidStatus(StatusPending))
	require.True(t, ValidStatus(StatusAccepted))
	require.True(t, ValidStatus(StatusRejected))
	require.False(t, ValidStatus("archived"))
	require.False(t, ValidStatus(""))
}
