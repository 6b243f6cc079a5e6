package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/apetrenko/jobport/internal/api"
	"github.com/apetrenko/jobport/internal/common"
	"github.com/apetrenko/jobport/internal/logging"
	"github.com/apetrenko/jobport/internal/models"
)

// ApplicationLedger owns the application collection scoped to the current
// session. Unlike the job directory there is no demo fallback: a failed
// fetch surfaces as an explicit error and leaves the collection unchanged.
type ApplicationLedger struct {
	api      api.Client
	auth     authSource
	log      logging.Logger
	validate *validator.Validate

	mu      sync.RWMutex
	apps    []models.Application
	lastErr string
	loading bool
}

func NewApplicationLedger(client api.Client, auth authSource, log logging.Logger) *ApplicationLedger {
	return &ApplicationLedger{
		api:      client,
		auth:     auth,
		log:      log.With("component", "applications"),
		validate: validator.New(),
	}
}

// Reload fetches the caller-visible applications. When not authenticated
// the collection is emptied and no network call happens: the backend
// scopes the listing to the bearer token, so there is nothing to ask for.
func (l *ApplicationLedger) Reload(ctx context.Context) error {
	st := l.auth.State()
	if !st.IsAuthenticated {
		l.mu.Lock()
		l.apps = nil
		l.lastErr = ""
		l.loading = false
		l.mu.Unlock()
		return nil
	}

	l.mu.Lock()
	l.loading = true
	l.lastErr = ""
	l.mu.Unlock()

	apps, err := l.api.ListApplications(ctx)
	if err != nil {
		msg := api.ErrorDetail(err, "Failed to fetch applications")
		l.mu.Lock()
		l.lastErr = msg
		l.loading = false
		l.mu.Unlock()
		l.log.Warn(ctx, "applications fetch failed", "error", err)
		return fmt.Errorf("reload applications: %w", err)
	}

	l.mu.Lock()
	l.apps = apps
	l.loading = false
	l.mu.Unlock()

	l.log.Debug(ctx, "applications reloaded", "count", len(apps))
	return nil
}

// Applications returns a copy of the collection.
func (l *ApplicationLedger) Applications() []models.Application {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Application, len(l.apps))
	copy(out, l.apps)
	return out
}

// ByUser is a pure filter over the in-memory collection.
func (l *ApplicationLedger) ByUser(userID string) []models.Application {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.Application
	for _, app := range l.apps {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	return out
}

// ByJob is a pure filter over the in-memory collection.
func (l *ApplicationLedger) ByJob(jobID string) []models.Application {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []models.Application
	for _, app := range l.apps {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out
}

// HasApplied reports whether the collection already holds an application
// by userID for jobID. Purely a UI hint: duplicate prevention is the
// backend's call, Create does not refuse on it.
func (l *ApplicationLedger) HasApplied(jobID, userID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, app := range l.apps {
		if app.JobID == jobID && app.UserID == userID {
			return true
		}
	}
	return false
}

func (l *ApplicationLedger) LastError() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

func (l *ApplicationLedger) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

func (l *ApplicationLedger) setErr(msg string) {
	l.mu.Lock()
	l.lastErr = msg
	l.mu.Unlock()
}

// Create submits an application. Requires authentication; the resume URL
// is mandatory. The backend assigns id, pending status, and appliedAt; on
// success its representation is appended locally.
func (l *ApplicationLedger) Create(ctx context.Context, draft models.ApplicationDraft) (models.Application, error) {
	st := l.auth.State()
	if !st.IsAuthenticated {
		return models.Application{}, fmt.Errorf("you must be logged in to submit an application: %w", common.ErrNotAuthenticated)
	}
	if err := l.validate.Struct(draft); err != nil {
		return models.Application{}, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	app, err := l.api.CreateApplication(ctx, draft)
	if err != nil {
		l.setErr(api.ErrorDetail(err, "Failed to create application"))
		return models.Application{}, fmt.Errorf("create application: %w", err)
	}

	l.mu.Lock()
	l.apps = append(l.apps, app)
	l.mu.Unlock()

	l.log.Info(ctx, "application submitted", "application", app.ID, "job", app.JobID)
	return app, nil
}

// UpdateStatus moves an application to a new status. Requires
// authentication; ownership of the parent job is enforced by the backend,
// not re-checked here. The in-memory entry is replaced with the server's
// returned representation.
func (l *ApplicationLedger) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	st := l.auth.State()
	if !st.IsAuthenticated {
		return models.Application{}, fmt.Errorf("you must be logged in to update application status: %w", common.ErrNotAuthenticated)
	}
	if !models.ValidStatus(status) {
		return models.Application{}, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}

	app, err := l.api.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		l.setErr(api.ErrorDetail(err, "Failed to update application status"))
		return models.Application{}, fmt.Errorf("update application status: %w", err)
	}

	l.mu.Lock()
	for i := range l.apps {
		if l.apps[i].ID == id {
			l.apps[i] = app
			break
		}
	}
	l.mu.Unlock()

	l.log.Info(ctx, "application status updated", "application", id, "status", status)
	return app, nil
}

// Delete withdraws an application. Requires authentication; whether the
// caller owns the application is the backend's check.
func (l *ApplicationLedger) Delete(ctx context.Context, id string) error {
	st := l.auth.State()
	if !st.IsAuthenticated {
		return fmt.Errorf("you must be logged in to withdraw an application: %w", common.ErrNotAuthenticated)
	}

	if err := l.api.DeleteApplication(ctx, id); err != nil {
		l.setErr(api.ErrorDetail(err, "Failed to delete application"))
		return fmt.Errorf("delete application: %w", err)
	}

	l.mu.Lock()
	for i := range l.apps {
		if l.apps[i].ID == id {
			l.apps = append(l.apps[:i], l.apps[i+1:]...)
			break
		}
	}
	l.mu.Unlock()

	l.log.Info(ctx, "application withdrawn", "application", id)
	return nil
}
