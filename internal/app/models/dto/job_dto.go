package dto

import (
	"time"

	"github.com/itcommunity/platform/internal/app/models"
)

// CreateJobRequest represents a job posting creation request
type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=200"`
	Company      string   `json:"company" binding:"required,min=2,max=200"`
	Description  string   `json:"description" binding:"required,min=10,max=10000"`
	Requirements []string `json:"requirements" binding:"required,min=1,max=30,dive,min=1,max=300"`
	Location     string   `json:"location" binding:"required,min=2,max=300"`
	Type         string   `json:"type" binding:"required,oneof=FULL_TIME PART_TIME INTERNSHIP CONTRACT"`
	SalaryMin    *int     `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax    *int     `json:"salaryMax" binding:"omitempty,min=0"`
	Remote       bool     `json:"remote"`
}

// UpdateJobRequest represents a job posting update request
type UpdateJobRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=200"`
	Company      string   `json:"company" binding:"required,min=2,max=200"`
	Description  string   `json:"description" binding:"required,min=10,max=10000"`
	Requirements []string `json:"requirements" binding:"required,min=1,max=30,dive,min=1,max=300"`
	Location     string   `json:"location" binding:"required,min=2,max=300"`
	Type         string   `json:"type" binding:"required,oneof=FULL_TIME PART_TIME INTERNSHIP CONTRACT"`
	SalaryMin    *int     `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax    *int     `json:"salaryMax" binding:"omitempty,min=0"`
	Remote       bool     `json:"remote"`
}

// UpdateJobStatusRequest changes a job's lifecycle status
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT PUBLISHED CLOSED ARCHIVED"`
}

// JobResponse represents a job posting in API responses
type JobResponse struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	Company          string        `json:"company"`
	Description      string        `json:"description"`
	Requirements     []string      `json:"requirements"`
	Location         string        `json:"location"`
	Type             string        `json:"type"`
	Status           string        `json:"status"`
	SalaryMin        *int          `json:"salaryMin,omitempty"`
	SalaryMax        *int          `json:"salaryMax,omitempty"`
	Remote           bool          `json:"remote"`
	PostedBy         *UserResponse `json:"postedBy,omitempty"`
	ApplicationCount int           `json:"applicationCount"`
	HasApplied       bool          `json:"hasApplied"`
	CreatedAt        string        `json:"createdAt"`
	UpdatedAt        string        `json:"updatedAt"`
}

// FromJob converts a job model to its response representation
func FromJob(j *models.Job) JobResponse {
	if j == nil {
		return JobResponse{}
	}
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	resp := JobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Description:      j.Description,
		Requirements:     reqs,
		Location:         j.Location,
		Type:             string(j.Type),
		Status:           string(j.Status),
		SalaryMin:        j.SalaryMin,
		SalaryMax:        j.SalaryMax,
		Remote:           j.Remote,
		ApplicationCount: j.ApplicationCount,
		CreatedAt:        j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        j.UpdatedAt.Format(time.RFC3339),
	}
	if j.PostedBy != nil {
		postedBy := FromUser(j.PostedBy)
		resp.PostedBy = &postedBy
	}
	return resp
}

// FromJobs converts a slice of job models
func FromJobs(jobs []*models.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}

// JobListResponse represents a paginated list of jobs
type JobListResponse struct {
	Jobs       []JobResponse  `json:"jobs"`
	Pagination PaginationInfo `json:"pagination"`
}

// ApplyJobRequest represents a job application submission. Applications are
// accepted as JSON or as a multipart form carrying a resume file.
type ApplyJobRequest struct {
	CoverLetter *string `json:"coverLetter" form:"coverLetter" binding:"omitempty,max=5000"`
	ResumeURL   *string `json:"resumeUrl" form:"resumeUrl" binding:"omitempty,url"`
}

// UpdateApplicationStatusRequest changes an application's review status.
// Rejection reason and recruiter notes are only honored for the job owner.
type UpdateApplicationStatusRequest struct {
	Status          string  `json:"status" binding:"required,oneof=PENDING REVIEWING SHORTLISTED INTERVIEWED OFFERED ACCEPTED REJECTED WITHDRAWN"`
	RejectionReason *string `json:"rejectionReason" binding:"omitempty,max=2000"`
	RecruiterNotes  *string `json:"recruiterNotes" binding:"omitempty,max=5000"`
}

// ApplicationResponse represents a job application in API responses
type ApplicationResponse struct {
	ID               int64         `json:"id"`
	JobID            int64         `json:"jobId"`
	Status           string        `json:"status"`
	CoverLetter      *string       `json:"coverLetter,omitempty"`
	ResumeURL        *string       `json:"resumeUrl,omitempty"`
	SkillsMatchScore *int          `json:"skillsMatchScore,omitempty"`
	RejectionReason  *string       `json:"rejectionReason,omitempty"`
	RecruiterNotes   *string       `json:"recruiterNotes,omitempty"`
	Job              *JobResponse  `json:"job,omitempty"`
	Applicant        *UserResponse `json:"applicant,omitempty"`
	CreatedAt        string        `json:"createdAt"`
	UpdatedAt        string        `json:"updatedAt"`
}

// FromApplication converts an application model to its response representation
func FromApplication(a *models.JobApplication) ApplicationResponse {
	if a == nil {
		return ApplicationResponse{}
	}
	resp := ApplicationResponse{
		ID:               a.ID,
		JobID:            a.JobID,
		Status:           string(a.Status),
		CoverLetter:      a.CoverLetter,
		ResumeURL:        a.ResumeURL,
		SkillsMatchScore: a.SkillsMatchScore,
		RejectionReason:  a.RejectionReason,
		RecruiterNotes:   a.RecruiterNotes,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Job != nil {
		job := FromJob(a.Job)
		resp.Job = &job
	}
	if a.Applicant != nil {
		applicant := FromUser(a.Applicant)
		resp.Applicant = &applicant
	}
	return resp
}

// FromApplications converts a slice of application models
func FromApplications(apps []*models.JobApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, FromApplication(a))
	}
	return out
}

// ApplicationListResponse represents a paginated list of applications
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Pagination   PaginationInfo        `json:"pagination"`
}
