package services

import (
	"time"

	"github.com/apetrenko/jobport/internal/models"
)

// fallbackJobs returns the demo dataset shown when the backend is
// unreachable, so the application keeps working in a degraded mode. The
// entries are clearly labelled as demo content.
func fallbackJobs() []models.Job {
	now := time.Now()
	return []models.Job{
		{
			ID:          "fallback-1",
			Title:       "Frontend Developer (Demo)",
			Description: "This is a demo job listing shown when database connection fails. In a real environment, you would see actual job postings here.",
			Location:    "Remote",
			Skills:      []string{"React", "TypeScript", "Tailwind CSS"},
			EmployerID:  "demo-employer",
			CompanyName: "Demo Company",
			CreatedAt:   now,
			Salary:      "$80,000 - $120,000",
			JobType:     "Full-time",
		},
		{
			ID:          "fallback-2",
			Title:       "Backend Engineer (Demo)",
			Description: "This is a demo job listing shown when database connection fails. In a real environment, you would see actual job postings here.",
			Location:    "New York, NY",
			Skills:      []string{"Node.js", "PostgreSQL", "Express"},
			EmployerID:  "demo-employer",
			CompanyName: "Demo Tech",
			CreatedAt:   now,
			Salary:      "$90,000 - $140,000",
			JobType:     "Full-time",
		},
		{
			ID:          "fallback-3",
			Title:       "UI/UX Designer (Demo)",
			Description: "This is a demo job listing shown when database connection fails. In a real environment, you would see actual job postings here.",
			Location:    "San Francisco, CA",
			Skills:      []string{"Figma", "User Research", "Prototyping"},
			EmployerID:  "demo-employer",
			CompanyName: "Demo Design Co",
			CreatedAt:   now,
			Salary:      "$75,000 - $110,000",
			JobType:     "Full-time",
		},
	}
}
