package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apetrenko/jobport/internal/models"
)

// Jobs lists the filtered job view. When the demo dataset is active a
// warning banner is printed first.
func (a *App) Jobs(ctx context.Context) error {
	if a.jobs.UsingFallback() {
		printlnFn("!", a.jobs.LastError(), "(showing demo data)")
	}

	jobs := a.jobs.Filtered()
	if len(jobs) == 0 {
		printlnFn("No jobs match the current filters")
		return nil
	}
	for _, job := range jobs {
		printlnFn(formatJobLine(job))
	}
	if f := a.jobs.Filters(); !f.IsZero() {
		printlnFn(fmt.Sprintf("(%d of %d jobs shown, filters active)", len(jobs), len(a.jobs.Jobs())))
	}
	return nil
}

func formatJobLine(job models.Job) string {
	parts := []string{job.ID, job.Title}
	if job.CompanyName != "" {
		parts = append(parts, job.CompanyName)
	}
	if job.Location != "" {
		parts = append(parts, job.Location)
	}
	if job.JobType != "" {
		parts = append(parts, job.JobType)
	}
	return strings.Join(parts, " | ")
}

// Filter prompts for the four filter dimensions and installs them. Empty
// answers leave a dimension unconstrained.
func (a *App) Filter(ctx context.Context) error {
	search, err := getSimpleText(a.reader, "Search text (title/description/company, empty for any)", os.Stdout)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location (empty for any)", os.Stdout)
	if err != nil {
		return err
	}
	skills, err := getSimpleText(a.reader, "Skills, comma-separated (empty for any)", os.Stdout)
	if err != nil {
		return err
	}
	jobType, err := getSimpleText(a.reader, "Job type (empty for any)", os.Stdout)
	if err != nil {
		return err
	}

	a.jobs.SetFilters(models.JobFilters{
		Search:   search,
		Location: location,
		Skills:   splitCSV(skills),
		JobType:  jobType,
	})
	printlnFn(fmt.Sprintf("%d jobs match", len(a.jobs.Filtered())))
	return nil
}

// NoFilter clears the active filters.
func (a *App) NoFilter(ctx context.Context) error {
	a.jobs.SetFilters(models.JobFilters{})
	printlnFn("Filters cleared")
	return nil
}

// ShowJob prints one posting in full. Logged-in jobseekers also get a hint
// when they have already applied.
func (a *App) ShowJob(ctx context.Context, id string) error {
	job, ok := a.jobs.JobByID(id)
	if !ok {
		printlnFn("Job not found:", id)
		return nil
	}

	printlnFn(job.Title)
	if job.CompanyName != "" {
		printlnFn("Company: ", job.CompanyName)
	}
	printlnFn("Location:", job.Location)
	if job.JobType != "" {
		printlnFn("Type:    ", job.JobType)
	}
	if job.Salary != "" {
		printlnFn("Salary:  ", job.Salary)
	}
	printlnFn("Skills:  ", strings.Join(job.Skills, ", "))
	printlnFn(job.Description)

	if st := a.auth.State(); st.IsAuthenticated && st.User.Role == models.RoleJobseeker {
		if a.apps.HasApplied(job.ID, st.User.ID) {
			printlnFn("You have already applied to this job")
		}
	}
	return nil
}

// Post creates a new job posting. Employer and admin only.
func (a *App) Post(ctx context.Context) error {
	if !a.guard(models.RoleEmployer, models.RoleAdmin) {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location", os.Stdout)
	if err != nil {
		return err
	}
	skills, err := getSimpleText(a.reader, "Skills, comma-separated", os.Stdout)
	if err != nil {
		return err
	}
	company, err := getSimpleText(a.reader, "Company (optional)", os.Stdout)
	if err != nil {
		return err
	}
	salary, err := getSimpleText(a.reader, "Salary (optional)", os.Stdout)
	if err != nil {
		return err
	}
	jobType, err := getSimpleText(a.reader, "Job type (optional)", os.Stdout)
	if err != nil {
		return err
	}

	job, err := a.jobs.Create(ctx, models.JobDraft{
		Title:       title,
		Description: description,
		Location:    location,
		Skills:      splitCSV(skills),
		CompanyName: company,
		Salary:      salary,
		JobType:     jobType,
	})
	if err != nil {
		printlnFn("Failed to create job:", err.Error())
		return err
	}
	printlnFn("Job created:", job.ID)
	return nil
}

// Edit updates a posting field by field; an empty answer keeps the current
// value. Ownership is checked by the job directory before any request.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.guard(models.RoleEmployer, models.RoleAdmin) {
		return nil
	}

	job, ok := a.jobs.JobByID(id)
	if !ok {
		printlnFn("Job not found:", id)
		return nil
	}

	var update models.JobUpdate

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", job.Title), os.Stdout)
	if err != nil {
		return err
	}
	if title != "" {
		update.Title = &title
	}
	location, err := getSimpleText(a.reader, fmt.Sprintf("Location [%s]", job.Location), os.Stdout)
	if err != nil {
		return err
	}
	if location != "" {
		update.Location = &location
	}
	skills, err := getSimpleText(a.reader, fmt.Sprintf("Skills [%s]", strings.Join(job.Skills, ", ")), os.Stdout)
	if err != nil {
		return err
	}
	if skills != "" {
		update.Skills = splitCSV(skills)
	}
	description, err := getMultiline(a.reader, "Description (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if description != "" {
		update.Description = &description
	}

	updated, err := a.jobs.Update(ctx, id, update)
	if err != nil {
		printlnFn("Failed to update job:", err.Error())
		return err
	}
	printlnFn("Job updated:", updated.ID)
	return nil
}

// Delete removes a posting. Ownership is checked by the job directory.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.guard(models.RoleEmployer, models.RoleAdmin) {
		return nil
	}

	if err := a.jobs.Delete(ctx, id); err != nil {
		printlnFn("Failed to delete job:", err.Error())
		return err
	}
	printlnFn("Job deleted:", id)
	return nil
}

// ReloadAll re-fetches both collections on demand.
func (a *App) ReloadAll(ctx context.Context) error {
	if err := a.jobs.Reload(ctx); err != nil {
		printlnFn("Job reload failed:", err.Error())
		return err
	}
	if err := a.apps.Reload(ctx); err != nil {
		printlnFn("Application reload failed:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Reloaded: %d jobs, %d applications", len(a.jobs.Jobs()), len(a.apps.Applications())))
	return nil
}
