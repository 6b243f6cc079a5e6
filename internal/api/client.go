// Package api implements the typed HTTP client for the job-board backend.
// It is the single place that knows the wire format: JSON bodies, the
// form-encoded login, the multipart resume upload, and the backend's
// {"detail": "..."} error convention.
package api

import (
	"context"
	"io"

	"github.com/apetrenko/jobport/internal/models"
)

// TokenSource supplies the current bearer token, or "" when anonymous.
// Authenticated endpoints read it per request so a re-login is picked up
// without rebuilding the client.
type TokenSource func() string

// Client is the transport boundary of the application. Services depend on
// this interface; tests substitute fakes.
type Client interface {
	// Jobs. ListJobs is the only unauthenticated read.
	ListJobs(ctx context.Context) ([]models.Job, error)
	CreateJob(ctx context.Context, draft models.JobDraft) (models.Job, error)
	UpdateJob(ctx context.Context, id string, update models.JobUpdate) (models.Job, error)
	DeleteJob(ctx context.Context, id string) error

	// Applications, scoped server-side to the bearer token's owner.
	ListApplications(ctx context.Context) ([]models.Application, error)
	CreateApplication(ctx context.Context, draft models.ApplicationDraft) (models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error)
	DeleteApplication(ctx context.Context, id string) error

	// Auth. Login is form-encoded per the backend contract; Register only
	// creates the account; establishing a session is a separate Login.
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Register(ctx context.Context, email, password string, role models.Role) (models.User, error)

	// ListUsers returns every account. Admin-only server-side; the bearer
	// token decides.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UploadResume posts a PDF through the backend's multipart endpoint and
	// returns the absolute URL to reference in an application.
	UploadResume(ctx context.Context, filename string, r io.Reader) (string, error)
}
