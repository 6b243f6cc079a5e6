package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"

	"github.com/apetrenko/jobport/internal/api"
	"github.com/apetrenko/jobport/internal/common"
	"github.com/apetrenko/jobport/internal/logging"
	"github.com/apetrenko/jobport/internal/models"
)

// reloadRetries is the number of retries after the first failed attempt,
// spaced by reloadRetryDelay. Reload is the only operation that retries.
const reloadRetries = 2

// reloadRetryDelay is a var so tests can shrink the fixed delay.
var reloadRetryDelay = time.Second

// authSource is the slice of AuthManager the collections need: a current
// state snapshot for permission checks.
type authSource interface {
	State() AuthState
}

// JobDirectory owns the full job collection fetched from the backend, the
// derived filtered view, and CRUD with local cache reconciliation. The
// collection is mutated only here, strictly after remote confirmation;
// accessors hand out copies.
type JobDirectory struct {
	api      api.Client
	auth     authSource
	log      logging.Logger
	validate *validator.Validate

	mu            sync.RWMutex
	jobs          []models.Job
	filtered      []models.Job
	filters       models.JobFilters
	usingFallback bool
	lastErr       string
	loading       bool
}

func NewJobDirectory(client api.Client, auth authSource, log logging.Logger) *JobDirectory {
	return &JobDirectory{
		api:      client,
		auth:     auth,
		log:      log.With("component", "jobs"),
		validate: validator.New(),
	}
}

// Reload fetches the whole collection: one attempt plus up to two retries
// at a fixed one-second delay, retrying only network failures and 5xx
// responses. When every attempt fails the error is deliberately swallowed
// in favor of the built-in demo dataset: UsingFallback flips to true and
// the message stays available for a warning banner. Only context
// cancellation propagates as an error.
func (d *JobDirectory) Reload(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.lastErr = ""
	d.mu.Unlock()

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(reloadRetryDelay), reloadRetries), ctx)

	jobs, err := backoff.RetryWithData(func() ([]models.Job, error) {
		jobs, err := d.api.ListJobs(ctx)
		if err != nil && !api.Retriable(err) {
			return nil, backoff.Permanent(err)
		}
		return jobs, err
	}, policy)

	if err != nil {
		if ctx.Err() != nil {
			d.mu.Lock()
			d.loading = false
			d.mu.Unlock()
			return fmt.Errorf("reload jobs: %w", ctx.Err())
		}

		msg := reloadMessage(err)
		d.log.Warn(ctx, "jobs fetch failed, serving demo dataset", "error", err)

		d.mu.Lock()
		d.jobs = fallbackJobs()
		d.usingFallback = true
		d.lastErr = msg
		d.loading = false
		d.refilterLocked()
		d.mu.Unlock()
		return nil
	}

	d.mu.Lock()
	d.jobs = jobs
	d.usingFallback = false
	d.lastErr = ""
	d.loading = false
	d.refilterLocked()
	d.mu.Unlock()

	d.log.Debug(ctx, "jobs reloaded", "count", len(jobs))
	return nil
}

func reloadMessage(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) {
		if se.Status == http.StatusInternalServerError {
			return "Database connection issue. Please try again later."
		}
		return api.ErrorDetail(err, fmt.Sprintf("Failed to fetch jobs: %s", http.StatusText(se.Status)))
	}
	return "Failed to fetch jobs. Please check your connection."
}

// Jobs returns a copy of the raw collection.
func (d *JobDirectory) Jobs() []models.Job {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Job, len(d.jobs))
	copy(out, d.jobs)
	return out
}

// Filtered returns a copy of the derived view under the active filters.
func (d *JobDirectory) Filtered() []models.Job {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Job, len(d.filtered))
	copy(out, d.filtered)
	return out
}

// SetFilters replaces the active filter query and recomputes the derived
// view. Filters are transient: they live in memory only.
func (d *JobDirectory) SetFilters(f models.JobFilters) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = f
	d.refilterLocked()
}

func (d *JobDirectory) Filters() models.JobFilters {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filters
}

func (d *JobDirectory) refilterLocked() {
	d.filtered = d.filtered[:0]
	for _, job := range d.jobs {
		if d.filters.Match(job) {
			d.filtered = append(d.filtered, job)
		}
	}
}

// JobByID is a pure lookup over the in-memory collection.
func (d *JobDirectory) JobByID(id string) (models.Job, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, job := range d.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return models.Job{}, false
}

// JobsByEmployer is a pure filter over the in-memory collection.
func (d *JobDirectory) JobsByEmployer(employerID string) []models.Job {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []models.Job
	for _, job := range d.jobs {
		if job.EmployerID == employerID {
			out = append(out, job)
		}
	}
	return out
}

// UsingFallback reports whether the collection currently holds the demo
// dataset instead of backend data.
func (d *JobDirectory) UsingFallback() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.usingFallback
}

// LastError returns the last recorded failure message, "" when clean.
func (d *JobDirectory) LastError() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastErr
}

func (d *JobDirectory) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

func (d *JobDirectory) setErr(msg string) {
	d.mu.Lock()
	d.lastErr = msg
	d.mu.Unlock()
}

// Create posts a new job. Requires an authenticated employer or admin;
// the check is a UX affordance, the backend enforces for real. On success
// the server's representation (with assigned id and createdAt) is
// appended to the collection.
func (d *JobDirectory) Create(ctx context.Context, draft models.JobDraft) (models.Job, error) {
	st := d.auth.State()
	if !st.IsAuthenticated || st.User == nil {
		return models.Job{}, fmt.Errorf("you must be logged in to create a job: %w", common.ErrNotAuthenticated)
	}
	if st.User.Role != models.RoleEmployer && st.User.Role != models.RoleAdmin {
		return models.Job{}, fmt.Errorf("only employers and admins can create jobs: %w", common.ErrPermissionDenied)
	}
	if draft.EmployerID == "" {
		draft.EmployerID = st.User.ID
	}
	if err := d.validate.Struct(draft); err != nil {
		return models.Job{}, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	job, err := d.api.CreateJob(ctx, draft)
	if err != nil {
		d.setErr(api.ErrorDetail(err, "Failed to create job"))
		return models.Job{}, fmt.Errorf("create job: %w", err)
	}

	d.mu.Lock()
	d.jobs = append(d.jobs, job)
	d.refilterLocked()
	d.mu.Unlock()

	d.log.Info(ctx, "job created", "job", job.ID)
	return job, nil
}

// Update sends a partial update. Requires ownership of the job or the
// admin role; a failed check issues no network request. On success the
// in-memory entry is replaced with the server's representation.
func (d *JobDirectory) Update(ctx context.Context, id string, update models.JobUpdate) (models.Job, error) {
	if err := d.checkOwnership(id, "update"); err != nil {
		return models.Job{}, err
	}

	job, err := d.api.UpdateJob(ctx, id, update)
	if err != nil {
		d.setErr(api.ErrorDetail(err, "Failed to update job"))
		return models.Job{}, fmt.Errorf("update job: %w", err)
	}

	d.mu.Lock()
	for i := range d.jobs {
		if d.jobs[i].ID == id {
			d.jobs[i] = job
			break
		}
	}
	d.refilterLocked()
	d.mu.Unlock()

	d.log.Info(ctx, "job updated", "job", id)
	return job, nil
}

// Delete removes a job. Same ownership rule as Update.
func (d *JobDirectory) Delete(ctx context.Context, id string) error {
	if err := d.checkOwnership(id, "delete"); err != nil {
		return err
	}

	if err := d.api.DeleteJob(ctx, id); err != nil {
		d.setErr(api.ErrorDetail(err, "Failed to delete job"))
		return fmt.Errorf("delete job: %w", err)
	}

	d.mu.Lock()
	for i := range d.jobs {
		if d.jobs[i].ID == id {
			d.jobs = append(d.jobs[:i], d.jobs[i+1:]...)
			break
		}
	}
	d.refilterLocked()
	d.mu.Unlock()

	d.log.Info(ctx, "job deleted", "job", id)
	return nil
}

func (d *JobDirectory) checkOwnership(id, verb string) error {
	st := d.auth.State()
	if !st.IsAuthenticated || st.User == nil {
		return fmt.Errorf("you must be logged in to %s a job: %w", verb, common.ErrNotAuthenticated)
	}
	job, ok := d.JobByID(id)
	if !ok {
		return fmt.Errorf("job not found: %w", common.ErrNotFound)
	}
	if job.EmployerID != st.User.ID && st.User.Role != models.RoleAdmin {
		return fmt.Errorf("you do not have permission to %s this job: %w", verb, common.ErrPermissionDenied)
	}
	return nil
}
