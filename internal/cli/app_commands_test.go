package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apetrenko/jobport/internal/logging"
	"github.com/apetrenko/jobport/internal/models"
	"github.com/apetrenko/jobport/internal/services"
	"github.com/apetrenko/jobport/internal/session"
)

// stubClient implements api.Client with scripted results, just enough to
// drive the command handlers end to end.
type stubClient struct {
	mu sync.Mutex

	jobs []models.Job
	apps []models.Application

	loginUser  models.User
	loginToken string
	loginErr   error

	createdApp models.Application
	lastDraft  models.ApplicationDraft

	uploadURL   string
	uploadErr   error
	uploadName  string
	uploadCalls int

	users          []models.User
	listUsersCalls int
}

func (s *stubClient) ListJobs(ctx context.Context) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Job(nil), s.jobs...), nil
}

func (s *stubClient) CreateJob(ctx context.Context, draft models.JobDraft) (models.Job, error) {
	return models.Job{ID: "new-job", Title: draft.Title, EmployerID: draft.EmployerID}, nil
}

func (s *stubClient) UpdateJob(ctx context.Context, id string, update models.JobUpdate) (models.Job, error) {
	return models.Job{ID: id}, nil
}

func (s *stubClient) DeleteJob(ctx context.Context, id string) error { return nil }

func (s *stubClient) ListApplications(ctx context.Context) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Application(nil), s.apps...), nil
}

func (s *stubClient) CreateApplication(ctx context.Context, draft models.ApplicationDraft) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDraft = draft
	return s.createdApp, nil
}

func (s *stubClient) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	return models.Application{ID: id, Status: status}, nil
}

func (s *stubClient) DeleteApplication(ctx context.Context, id string) error { return nil }

func (s *stubClient) Login(ctx context.Context, email, password string) (models.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginUser, s.loginToken, s.loginErr
}

func (s *stubClient) Register(ctx context.Context, email, password string, role models.Role) (models.User, error) {
	return s.loginUser, nil
}

func (s *stubClient) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listUsersCalls++
	return append([]models.User(nil), s.users...), nil
}

func (s *stubClient) UploadResume(ctx context.Context, filename string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadCalls++
	s.uploadName = filename
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	_, _ = io.Copy(io.Discard, r)
	return s.uploadURL, nil
}

func newTestApp(t *testing.T, client *stubClient) *App {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	auth := services.NewAuthManager(client, session.NewMemoryStore(), log)
	jobs := services.NewJobDirectory(client, auth, log)
	apps := services.NewApplicationLedger(client, auth, log)
	return &App{
		log:    log,
		client: client,
		auth:   auth,
		jobs:   jobs,
		apps:   apps,
		reader: bufio.NewReader(strings.NewReader("")),
	}
}

func stubInputs(t *testing.T, lines []string, password string) {
	t.Helper()
	origST, origGP, origGM := getSimpleText, getPassword, getMultiline
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(lines) {
			return "", nil
		}
		line := lines[i]
		i++
		return line, nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
		getMultiline = origGM
	})
}

func TestLogin_Success(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{
		loginUser:  models.User{ID: "u1", Email: "jane@example.com", Role: models.RoleJobseeker},
		loginToken: "tok",
	}
	a := newTestApp(t, client)
	stubInputs(t, []string{"jane@example.com"}, "pw")

	require.NoError(t, a.Login(context.Background()))
	require.True(t, a.isLoggedIn())
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{}
	a := newTestApp(t, client)
	stubInputs(t, []string{"jane@example.com", "manager"}, "pw")

	require.NoError(t, a.Register(context.Background()))
	require.False(t, a.isLoggedIn())
}

func TestApply_RequiresLogin(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{}
	a := newTestApp(t, client)

	require.NoError(t, a.Apply(context.Background(), "j1"))
	require.Zero(t, client.uploadCalls)
}

func TestApply_UploadsAndSubmits(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{
		jobs:       []models.Job{{ID: "j1", Title: "Go Engineer", EmployerID: "e1"}},
		loginUser:  models.User{ID: "u1", Email: "jane@example.com", Role: models.RoleJobseeker, Name: "Jane"},
		loginToken: "tok",
		uploadURL:  "http://localhost:8000/uploads/resume.pdf",
		createdApp: models.Application{ID: "app-1", JobID: "j1", UserID: "u1", Status: models.StatusPending},
	}
	a := newTestApp(t, client)
	ctx := context.Background()

	stubInputs(t, []string{"jane@example.com"}, "pw")
	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.jobs.Reload(ctx))

	origOpen := openFile
	openFile = func(path string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("%PDF-1.4")), nil
	}
	t.Cleanup(func() { openFile = origOpen })

	stubInputs(t, []string{"/tmp/resume.pdf", "Hello"}, "")
	require.NoError(t, a.Apply(ctx, "j1"))

	require.Equal(t, 1, client.uploadCalls)
	require.Equal(t, "resume.pdf", client.uploadName)
	require.Equal(t, "j1", client.lastDraft.JobID)
	require.Equal(t, "u1", client.lastDraft.UserID)
	require.Equal(t, "http://localhost:8000/uploads/resume.pdf", client.lastDraft.ResumeURL)
	require.Equal(t, "Hello", client.lastDraft.CoverLetter)
	require.Equal(t, "Jane", client.lastDraft.ApplicantName)
	require.Equal(t, "Go Engineer", client.lastDraft.JobTitle)

	require.True(t, a.apps.HasApplied("j1", "u1"))
}

func TestApply_UnknownJob(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{
		loginUser:  models.User{ID: "u1", Email: "jane@example.com", Role: models.RoleJobseeker},
		loginToken: "tok",
	}
	a := newTestApp(t, client)
	ctx := context.Background()

	stubInputs(t, []string{"jane@example.com"}, "pw")
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Apply(ctx, "ghost"))
	require.Zero(t, client.uploadCalls)
}

func TestPost_RequiresEmployer(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{
		loginUser:  models.User{ID: "u1", Email: "jane@example.com", Role: models.RoleJobseeker},
		loginToken: "tok",
	}
	a := newTestApp(t, client)
	ctx := context.Background()

	stubInputs(t, []string{"jane@example.com"}, "pw")
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Post(ctx))
	require.Empty(t, a.jobs.Jobs())
}

func TestUsers_RequiresAdmin(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{
		loginUser:  models.User{ID: "u1", Email: "jane@example.com", Role: models.RoleEmployer},
		loginToken: "tok",
		users:      []models.User{{ID: "u2", Email: "bob@example.com"}},
	}
	a := newTestApp(t, client)
	ctx := context.Background()

	// Anonymous callers are refused before any request.
	require.NoError(t, a.Users(ctx))
	require.Zero(t, client.listUsersCalls)

	// So are non-admin roles.
	stubInputs(t, []string{"jane@example.com"}, "pw")
	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.Users(ctx))
	require.Zero(t, client.listUsersCalls)
}

func TestUsers_AdminListsAccounts(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{
		loginUser:  models.User{ID: "u1", Email: "root@example.com", Role: models.RoleAdmin},
		loginToken: "tok",
		users: []models.User{
			{ID: "u2", Email: "bob@example.com", Role: models.RoleJobseeker},
			{ID: "u3", Email: "acme@example.com", Role: models.RoleEmployer, Company: "Acme"},
		},
	}
	a := newTestApp(t, client)
	ctx := context.Background()

	stubInputs(t, []string{"root@example.com"}, "pw")
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Users(ctx))
	require.Equal(t, 1, client.listUsersCalls)
}

func TestGetStatus_ShowsIdentityAndFallback(t *testing.T) {
	stubPrintln(t)
	client := &stubClient{
		loginUser:  models.User{ID: "u1", Email: "jane@example.com", Role: models.RoleEmployer},
		loginToken: "tok",
	}
	a := newTestApp(t, client)

	require.Equal(t, "", a.getStatus())

	stubInputs(t, []string{"jane@example.com"}, "pw")
	require.NoError(t, a.Login(context.Background()))
	require.Equal(t, "(jane@example.com employer)", a.getStatus())
}
