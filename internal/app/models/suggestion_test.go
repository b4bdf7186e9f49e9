package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSuggestionStatus(t *testing.T) {
	for _, s := range []SuggestionStatus{
		SuggestionStatusPending, SuggestionStatusUnderReview,
		SuggestionStatusApproved, SuggestionStatusImplemented,
		SuggestionStatusRejected,
	} {
		assert.True(t, ValidSuggestionStatus(s), string(s))
	}

	assert.False(t, ValidSuggestionStatus("archived"))
	assert.False(t, ValidSuggestionStatus(""))
}

func TestValidSuggestionPriority(t *testing.T) {
	for _, p := range []SuggestionPriority{
		SuggestionPriorityLow, SuggestionPriorityMedium,
		SuggestionPriorityHigh, SuggestionPriorityCritical,
	} {
		assert.True(t, ValidSuggestionPriority(p), string(p))
	}

	assert.False(t, ValidSuggestionPriority("urgent"))
	assert.False(t, ValidSuggestionPriority(""))
}
