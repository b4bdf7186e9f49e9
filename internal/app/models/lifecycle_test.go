package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ProjectStatus
		to      ProjectStatus
		allowed bool
	}{
		{ProjectStatusDraft, ProjectStatusPublished, true},
		{ProjectStatusDraft, ProjectStatusRejected, true},
		{ProjectStatusDraft, ProjectStatusArchived, false},
		{ProjectStatusPublished, ProjectStatusArchived, true},
		{ProjectStatusPublished, ProjectStatusDraft, false},
		{ProjectStatusPublished, ProjectStatusRejected, false},
		{ProjectStatusRejected, ProjectStatusPublished, true},
		{ProjectStatusRejected, ProjectStatusArchived, false},
		{ProjectStatusArchived, ProjectStatusPublished, false},
		{ProjectStatusArchived, ProjectStatusDraft, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestEventStatusTransitions(t *testing.T) {
	cases := []struct {
		from    EventStatus
		to      EventStatus
		allowed bool
	}{
		{EventStatusDraft, EventStatusPublished, true},
		{EventStatusDraft, EventStatusCancelled, true},
		{EventStatusDraft, EventStatusCompleted, false},
		{EventStatusPublished, EventStatusCancelled, true},
		{EventStatusPublished, EventStatusCompleted, true},
		{EventStatusPublished, EventStatusDraft, false},
		{EventStatusCancelled, EventStatusPublished, false},
		{EventStatusCompleted, EventStatusPublished, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestJobStatusTransitions(t *testing.T) {
	cases := []struct {
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{JobStatusDraft, JobStatusPublished, true},
		{JobStatusDraft, JobStatusClosed, false},
		{JobStatusPublished, JobStatusClosed, true},
		{JobStatusPublished, JobStatusArchived, true},
		{JobStatusPublished, JobStatusDraft, false},
		{JobStatusClosed, JobStatusArchived, true},
		{JobStatusClosed, JobStatusPublished, true},
		{JobStatusArchived, JobStatusPublished, false},
		{JobStatusArchived, JobStatusClosed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestApplicationStatusPipeline(t *testing.T) {
	cases := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{ApplicationStatusPending, ApplicationStatusReviewing, true},
		{ApplicationStatusReviewing, ApplicationStatusShortlisted, true},
		{ApplicationStatusShortlisted, ApplicationStatusInterviewed, true},
		{ApplicationStatusInterviewed, ApplicationStatusOffered, true},
		{ApplicationStatusOffered, ApplicationStatusAccepted, true},
		// Skipping pipeline stages is not allowed
		{ApplicationStatusPending, ApplicationStatusShortlisted, false},
		{ApplicationStatusPending, ApplicationStatusOffered, false},
		{ApplicationStatusReviewing, ApplicationStatusInterviewed, false},
		{ApplicationStatusReviewing, ApplicationStatusAccepted, false},
		// Any non-terminal state can be rejected or withdrawn
		{ApplicationStatusPending, ApplicationStatusRejected, true},
		{ApplicationStatusPending, ApplicationStatusWithdrawn, true},
		{ApplicationStatusReviewing, ApplicationStatusRejected, true},
		{ApplicationStatusInterviewed, ApplicationStatusWithdrawn, true},
		{ApplicationStatusOffered, ApplicationStatusRejected, true},
		// Terminal states are frozen
		{ApplicationStatusAccepted, ApplicationStatusRejected, false},
		{ApplicationStatusRejected, ApplicationStatusReviewing, false},
		{ApplicationStatusWithdrawn, ApplicationStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestApplicationStatusIsTerminal(t *testing.T) {
	assert.True(t, ApplicationStatusAccepted.IsTerminal())
	assert.True(t, ApplicationStatusRejected.IsTerminal())
	assert.True(t, ApplicationStatusWithdrawn.IsTerminal())
	assert.False(t, ApplicationStatusPending.IsTerminal())
	assert.False(t, ApplicationStatusOffered.IsTerminal())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleStudent))
	assert.True(t, ValidRole(RoleProfessional))
	assert.True(t, ValidRole(RoleCompany))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(RoleType("MODERATOR")))
	assert.False(t, ValidRole(RoleType("")))
}
