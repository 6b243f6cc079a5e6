package models

// JobDraft is the payload for creating a job. The backend assigns ID and
// CreatedAt. EmployerID defaults to the calling user when left empty.
type JobDraft struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Skills      []string `json:"skills" validate:"required,min=1,dive,required"`
	EmployerID  string   `json:"employerId" validate:"required"`
	CompanyName string   `json:"companyName,omitempty"`
	Salary      string   `json:"salary,omitempty"`
	JobType     string   `json:"jobType,omitempty"`
}

// JobUpdate is a partial job payload for PUT /jobs/{id}. Nil pointers are
// omitted from the wire representation so the backend only touches the
// fields the caller set.
type JobUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	CompanyName *string  `json:"companyName,omitempty"`
	Salary      *string  `json:"salary,omitempty"`
	JobType     *string  `json:"jobType,omitempty"`
}

// ApplicationDraft is the payload for applying to a job. The backend
// assigns ID, Status (pending), and AppliedAt. ResumeURL is mandatory:
// an application without an uploaded resume is rejected before any
// network call.
type ApplicationDraft struct {
	JobID         string `json:"jobId" validate:"required"`
	UserID        string `json:"userId" validate:"required"`
	ResumeURL     string `json:"resumeUrl" validate:"required,url"`
	CoverLetter   string `json:"coverLetter,omitempty"`
	ApplicantName string `json:"applicantName,omitempty"`
	JobTitle      string `json:"jobTitle,omitempty"`
}
