package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/apetrenko/jobport/internal/logging"
	"github.com/apetrenko/jobport/internal/models"
)

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeAuth is a fixed-state authSource for collection tests that do not
// need the full state machine.
type fakeAuth struct {
	st AuthState
}

func (f *fakeAuth) State() AuthState { return f.st }

func authedAs(user models.User) *fakeAuth {
	return &fakeAuth{st: AuthState{
		User:            &user,
		Token:           "tok",
		IsAuthenticated: true,
	}}
}

func anonymous() *fakeAuth {
	return &fakeAuth{st: AuthState{}}
}

// fakeClient implements api.Client with scripted results and call
// counters, in the spirit of the hand-written fakes used across the
// client service tests.
type fakeClient struct {
	mu sync.Mutex

	ListJobsRet   []models.Job
	ListJobsErr   error
	ListJobsCalls int

	CreateJobRet   models.Job
	CreateJobErr   error
	CreateJobCalls int
	LastJobDraft   models.JobDraft

	UpdateJobRet   models.Job
	UpdateJobErr   error
	UpdateJobCalls int

	DeleteJobErr   error
	DeleteJobCalls int

	ListAppsRet   []models.Application
	ListAppsErr   error
	ListAppsCalls int

	CreateAppRet models.Application
	CreateAppErr error
	LastAppDraft models.ApplicationDraft

	UpdateStatusRet   models.Application
	UpdateStatusErr   error
	UpdateStatusCalls int

	DeleteAppErr   error
	DeleteAppCalls int

	LoginUser  models.User
	LoginToken string
	LoginErr   error
	LoginCalls int

	RegisterRet   models.User
	RegisterErr   error
	RegisterCalls int

	UploadRet string
	UploadErr error

	ListUsersRet   []models.User
	ListUsersErr   error
	ListUsersCalls int
}

func (f *fakeClient) ListJobs(ctx context.Context) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListJobsCalls++
	return append([]models.Job(nil), f.ListJobsRet...), f.ListJobsErr
}

func (f *fakeClient) CreateJob(ctx context.Context, draft models.JobDraft) (models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateJobCalls++
	f.LastJobDraft = draft
	return f.CreateJobRet, f.CreateJobErr
}

func (f *fakeClient) UpdateJob(ctx context.Context, id string, update models.JobUpdate) (models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateJobCalls++
	return f.UpdateJobRet, f.UpdateJobErr
}

func (f *fakeClient) DeleteJob(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteJobCalls++
	return f.DeleteJobErr
}

func (f *fakeClient) ListApplications(ctx context.Context) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListAppsCalls++
	return append([]models.Application(nil), f.ListAppsRet...), f.ListAppsErr
}

func (f *fakeClient) CreateApplication(ctx context.Context, draft models.ApplicationDraft) (models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastAppDraft = draft
	return f.CreateAppRet, f.CreateAppErr
}

func (f *fakeClient) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateStatusCalls++
	return f.UpdateStatusRet, f.UpdateStatusErr
}

func (f *fakeClient) DeleteApplication(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteAppCalls++
	return f.DeleteAppErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (models.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	return f.LoginUser, f.LoginToken, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, email, password string, role models.Role) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) UploadResume(ctx context.Context, filename string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.UploadRet, f.UploadErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListUsersCalls++
	return append([]models.User(nil), f.ListUsersRet...), f.ListUsersErr
}
