package models

import "time"

// JobType classifies job postings
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeContract   JobType = "CONTRACT"
)

// ValidJobType reports whether the type is a known job type.
func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract:
		return true
	}
	return false
}

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusPublished JobStatus = "PUBLISHED"
	JobStatusClosed    JobStatus = "CLOSED"
	JobStatusArchived  JobStatus = "ARCHIVED"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:     {JobStatusPublished},
	JobStatusPublished: {JobStatusClosed, JobStatusArchived},
	JobStatusClosed:    {JobStatusArchived, JobStatusPublished},
	JobStatusArchived:  {},
}

// CanTransitionTo reports whether the job status may move to target.
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Job defines the job posting model based on the 'jobs' table
type Job struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Company          string    `json:"company" db:"company"`
	Description      string    `json:"description" db:"description"`
	Requirements     []string  `json:"requirements" db:"requirements"`
	Location         string    `json:"location" db:"location"`
	Type             JobType   `json:"type" db:"type"`
	Status           JobStatus `json:"status" db:"status"`
	SalaryMin        *int      `json:"salaryMin,omitempty" db:"salary_min"`
	SalaryMax        *int      `json:"salaryMax,omitempty" db:"salary_max"`
	Remote           bool      `json:"remote" db:"remote"`
	PostedByID       int64     `json:"postedById" db:"posted_by_id"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
	PostedBy         *User     `json:"postedBy,omitempty"`
	ApplicationCount int       `json:"applicationCount"`
}

// ApplicationStatus represents the review state of a job application
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusReviewing   ApplicationStatus = "REVIEWING"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusInterviewed ApplicationStatus = "INTERVIEWED"
	ApplicationStatusOffered     ApplicationStatus = "OFFERED"
	ApplicationStatusAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:     {ApplicationStatusReviewing, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusReviewing:   {ApplicationStatusShortlisted, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusShortlisted: {ApplicationStatusInterviewed, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusInterviewed: {ApplicationStatusOffered, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusOffered:     {ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn},
	ApplicationStatusAccepted:    {},
	ApplicationStatusRejected:    {},
	ApplicationStatusWithdrawn:   {},
}

// CanTransitionTo reports whether the application status may move to target.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the application status is final.
func (s ApplicationStatus) IsTerminal() bool {
	return len(applicationTransitions[s]) == 0
}

// JobApplication defines a candidate's application to a job posting
type JobApplication struct {
	ID               int64             `json:"id" db:"id"`
	JobID            int64             `json:"jobId" db:"job_id"`
	ApplicantID      int64             `json:"applicantId" db:"applicant_id"`
	Status           ApplicationStatus `json:"status" db:"status"`
	CoverLetter      *string           `json:"coverLetter,omitempty" db:"cover_letter"`
	ResumeURL        *string           `json:"resumeUrl,omitempty" db:"resume_url"`
	SkillsMatchScore *int              `json:"skillsMatchScore,omitempty" db:"skills_match_score"`
	RejectionReason  *string           `json:"rejectionReason,omitempty" db:"rejection_reason"`
	RecruiterNotes   *string           `json:"recruiterNotes,omitempty" db:"recruiter_notes"`
	CreatedAt        time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time         `json:"updatedAt" db:"updated_at"`
	Job              *Job              `json:"job,omitempty"`
	Applicant        *User             `json:"applicant,omitempty"`
}
