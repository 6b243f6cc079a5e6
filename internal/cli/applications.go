package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apetrenko/jobport/internal/models"
)

// openFile is a test seam so Apply can be exercised without a real resume
// on disk.
var openFile = func(path string) (io.ReadCloser, error) { return os.Open(path) }

// Apply uploads a PDF resume, asks for an optional cover letter, and
// submits an application for jobID. Jobseeker only.
func (a *App) Apply(ctx context.Context, jobID string) error {
	if !a.guard(models.RoleJobseeker) {
		return nil
	}
	st := a.auth.State()

	job, ok := a.jobs.JobByID(jobID)
	if !ok {
		printlnFn("Job not found:", jobID)
		return nil
	}
	if a.apps.HasApplied(job.ID, st.User.ID) {
		// A hint, not a refusal: duplicates are the backend's call.
		printlnFn("Note: you have already applied to this job")
	}

	path, err := getSimpleText(a.reader, "Path to resume (PDF)", os.Stdout)
	if err != nil {
		return err
	}
	f, err := openFile(path)
	if err != nil {
		printlnFn("Cannot open resume:", err.Error())
		return err
	}
	defer f.Close()

	resumeURL, err := a.client.UploadResume(ctx, filepath.Base(path), f)
	if err != nil {
		printlnFn("Resume upload failed:", err.Error())
		return err
	}
	printlnFn("Resume uploaded:", resumeURL)

	coverLetter, err := getMultiline(a.reader, "Cover letter (optional)", os.Stdout)
	if err != nil {
		return err
	}

	name := st.User.Name
	if name == "" {
		name = st.User.Email
	}
	app, err := a.apps.Create(ctx, models.ApplicationDraft{
		JobID:         job.ID,
		UserID:        st.User.ID,
		ResumeURL:     resumeURL,
		CoverLetter:   coverLetter,
		ApplicantName: name,
		JobTitle:      job.Title,
	})
	if err != nil {
		printlnFn("Failed to submit application:", err.Error())
		return err
	}
	printlnFn("Application submitted:", app.ID)
	return nil
}

// Apps lists the current user's applications.
func (a *App) Apps(ctx context.Context) error {
	if !a.guard() {
		return nil
	}
	st := a.auth.State()

	apps := a.apps.ByUser(st.User.ID)
	if len(apps) == 0 {
		printlnFn("No applications yet")
		return nil
	}
	for _, app := range apps {
		printlnFn(formatApplicationLine(app))
	}
	return nil
}

// Review lists the applications submitted for one of the employer's jobs.
func (a *App) Review(ctx context.Context, jobID string) error {
	if !a.guard(models.RoleEmployer, models.RoleAdmin) {
		return nil
	}

	apps := a.apps.ByJob(jobID)
	if len(apps) == 0 {
		printlnFn("No applications for job", jobID)
		return nil
	}
	for _, app := range apps {
		printlnFn(formatApplicationLine(app))
		if app.CoverLetter != "" {
			printlnFn("  cover letter:", app.CoverLetter)
		}
	}
	return nil
}

func formatApplicationLine(app models.Application) string {
	title := app.JobTitle
	if title == "" {
		title = app.JobID
	}
	who := app.ApplicantName
	if who == "" {
		who = app.UserID
	}
	return fmt.Sprintf("%s | %s | %s | %s", app.ID, title, who, app.Status)
}

// SetStatus moves an application to a new status. Employer and admin only;
// whether the caller owns the parent job is the backend's check.
func (a *App) SetStatus(ctx context.Context, appID, status string) error {
	if !a.guard(models.RoleEmployer, models.RoleAdmin) {
		return nil
	}

	app, err := a.apps.UpdateStatus(ctx, appID, models.ApplicationStatus(status))
	if err != nil {
		printlnFn("Failed to update status:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Application %s is now %s", app.ID, app.Status))
	return nil
}

// Withdraw removes one of the user's own applications.
func (a *App) Withdraw(ctx context.Context, appID string) error {
	if !a.guard() {
		return nil
	}

	if err := a.apps.Delete(ctx, appID); err != nil {
		printlnFn("Failed to withdraw application:", err.Error())
		return err
	}
	printlnFn("Application withdrawn:", appID)
	return nil
}
