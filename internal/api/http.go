package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apetrenko/jobport/internal/common"
	"github.com/apetrenko/jobport/internal/models"
)

// HTTPClient is the production Client over net/http. baseURL is the REST
// API root; uploadBaseURL is the file endpoint root (the backend returns
// relative resume paths that are composed onto it).
type HTTPClient struct {
	baseURL       string
	uploadBaseURL string
	hc            *http.Client
	token         TokenSource
}

func NewHTTPClient(baseURL, uploadBaseURL string, timeout time.Duration, token TokenSource) *HTTPClient {
	if token == nil {
		token = func() string { return "" }
	}
	return &HTTPClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		uploadBaseURL: strings.TrimRight(uploadBaseURL, "/"),
		hc:            &http.Client{Timeout: timeout},
		token:         token,
	}
}

// do sends a JSON request and decodes a JSON response into out (skipped
// when out is nil). Non-2xx responses become *StatusError with the
// backend's "detail" message when the body holds one; an unparseable body
// is tolerated and treated as an empty payload.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	// Absence of a parseable body is fine; Detail stays "".
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return &StatusError{Status: resp.StatusCode, Detail: payload.Detail}
}

func (c *HTTPClient) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *HTTPClient) CreateJob(ctx context.Context, draft models.JobDraft) (models.Job, error) {
	var job models.Job
	if err := c.do(ctx, http.MethodPost, "/jobs", draft, &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

func (c *HTTPClient) UpdateJob(ctx context.Context, id string, update models.JobUpdate) (models.Job, error) {
	var job models.Job
	if err := c.do(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), update, &job); err != nil {
		return models.Job{}, err
	}
	return job, nil
}

func (c *HTTPClient) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *HTTPClient) CreateApplication(ctx context.Context, draft models.ApplicationDraft) (models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPost, "/applications", draft, &app); err != nil {
		return models.Application{}, err
	}
	return app, nil
}

func (c *HTTPClient) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.Application, error) {
	body := struct {
		Status models.ApplicationStatus `json:"status"`
	}{Status: status}

	var app models.Application
	if err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(id)+"/status", body, &app); err != nil {
		return models.Application{}, err
	}
	return app, nil
}

func (c *HTTPClient) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), nil, nil)
}

// Login authenticates with form-encoded credentials. The backend speaks
// the OAuth2 password-flow dialect: fields are named username/password
// even though the username is an email address.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.User, string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return models.User{}, "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return models.User{}, "", fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.User{}, "", statusError(resp)
	}

	var payload struct {
		User        models.User `json:"user"`
		AccessToken string      `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.User{}, "", fmt.Errorf("decode login response: %w", err)
	}
	return payload.User, payload.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string, role models.Role) (models.User, error) {
	body := struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}{Email: email, Password: password, Role: role}

	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UploadResume posts the file as multipart form data. Only PDFs are
// accepted and the payload must be non-empty; both checks happen before
// any network I/O.
func (c *HTTPClient) UploadResume(ctx context.Context, filename string, r io.Reader) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return "", fmt.Errorf("%w: resume must be a PDF file", common.ErrValidation)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: resume file is empty", common.ErrValidation)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadBaseURL+"/upload-resume/", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload resume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp)
	}

	var payload struct {
		ResumeURL string `json:"resume_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return c.uploadBaseURL + payload.ResumeURL, nil
}
