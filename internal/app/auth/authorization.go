package auth

import (
	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
)

// IsAdmin reports whether the role is the admin role
func IsAdmin(role models.RoleType) bool {
	return role == models.RoleAdmin
}

// CanPostJobs reports whether the role may create job postings
func CanPostJobs(role models.RoleType) bool {
	return role == models.RoleCompany || role == models.RoleAdmin
}

// ValidateProjectOwner allows the project's author or an admin
func ValidateProjectOwner(actorID int64, role models.RoleType, project *models.Project) error {
	if IsAdmin(role) || project.AuthorID == actorID {
		return nil
	}
	return apperrors.NewForbiddenError("you do not own this project")
}

// ValidateEventOrganizer allows the event's organizer or an admin
func ValidateEventOrganizer(actorID int64, role models.RoleType, event *models.Event) error {
	if IsAdmin(role) || event.OrganizerID == actorID {
		return nil
	}
	return apperrors.NewForbiddenError("you do not organize this event")
}

// ValidateJobOwner allows the job's poster or an admin
func ValidateJobOwner(actorID int64, role models.RoleType, job *models.Job) error {
	if IsAdmin(role) || job.PostedByID == actorID {
		return nil
	}
	return apperrors.NewForbiddenError("you do not own this job posting")
}

// ValidateSuggestionOwner allows the suggestion's author or an admin
func ValidateSuggestionOwner(actorID int64, role models.RoleType, suggestion *models.Suggestion) error {
	if IsAdmin(role) || suggestion.AuthorID == actorID {
		return nil
	}
	return apperrors.NewForbiddenError("you do not own this suggestion")
}

// ValidateApplicationAccess allows the applicant, the job's poster or an
// admin to read an application.
func ValidateApplicationAccess(actorID int64, role models.RoleType, app *models.JobApplication, job *models.Job) error {
	if IsAdmin(role) || app.ApplicantID == actorID || job.PostedByID == actorID {
		return nil
	}
	return apperrors.NewForbiddenError("you do not have access to this application")
}

// CanViewUnpublishedProject allows the author or an admin to see a project
// that is not published yet.
func CanViewUnpublishedProject(actorID int64, role models.RoleType, project *models.Project) bool {
	if project.Status == models.ProjectStatusPublished {
		return true
	}
	return IsAdmin(role) || project.AuthorID == actorID
}
