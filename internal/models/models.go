// Package models defines the domain types of the jobport client: users,
// jobs, applications, sessions, and the transient job filter query.
//
// All types mirror the backend's JSON representation; timestamps travel as
// RFC 3339 strings and are rehydrated into time.Time by encoding/json.
package models

import "time"

// Role is the access role issued to a user by the backend.
type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// User is the backend's representation of an account. Immutable on the
// client once issued, except via re-login.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name,omitempty"`
	Company   string    `json:"company,omitempty"`
}

// Job is a posting owned by exactly one employer (EmployerID). Admins have
// override authority over every job.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Skills      []string  `json:"skills"`
	EmployerID  string    `json:"employerId"`
	CompanyName string    `json:"companyName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Salary      string    `json:"salary,omitempty"`
	JobType     string    `json:"jobType,omitempty"`
}

// ApplicationStatus is the lifecycle state of an application. It starts at
// StatusPending and moves only via employer/admin action on the parent job.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application links a jobseeker to a job. ApplicantName and JobTitle are
// denormalized display fields filled in at creation time.
type Application struct {
	ID            string            `json:"id"`
	JobID         string            `json:"jobId"`
	UserID        string            `json:"userId"`
	ResumeURL     string            `json:"resumeUrl"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     time.Time         `json:"appliedAt"`
	CoverLetter   string            `json:"coverLetter,omitempty"`
	ApplicantName string            `json:"applicantName,omitempty"`
	JobTitle      string            `json:"jobTitle,omitempty"`
}

// Session is the (user, token) pair representing an authenticated actor.
type Session struct {
	User  *User
	Token string
}

// Valid reports whether the session carries both halves of the pair.
// This is the authentication invariant: a session with only one half
// must never count as authenticated.
func (s Session) Valid() bool {
	return s.User != nil && s.Token != ""
}
