package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animabing/animabing/internal/models"
)

func TestValidateReport(t *testing.T) {
	base := models.Report{
		AnimeID:     "a1",
		IssueType:   models.IssueWrongEpisode,
		Description: "Episode 4 plays episode 5",
	}

	tests := []struct {
		name      string
		mutate    func(r *models.Report)
		wantField string
		wantMsg   string
	}{
		{
			name:   "valid",
			mutate: func(r *models.Report) {},
		},
		{
			name:   "valid with email",
			mutate: func(r *models.Report) { r.Email = " user@example.com " },
		},
		{
			name:      "missing anime",
			mutate:    func(r *models.Report) { r.AnimeID = "" },
			wantField: "animeId",
			wantMsg:   "animeId is required",
		},
		{
			name:      "missing issue type",
			mutate:    func(r *models.Report) { r.IssueType = "" },
			wantField: "issueType",
		},
		{
			name:      "description too short after trimming",
			mutate:    func(r *models.Report) { r.Description = "   too short   " },
			wantField: "description",
			wantMsg:   "description must be at least 10 characters",
		},
		{
			name:      "bad email",
			mutate:    func(r *models.Report) { r.Email = "not-an-email" },
			wantField: "email",
			wantMsg:   "Please enter a valid email address",
		},
		{
			name:      "negative episode number",
			mutate:    func(r *models.Report) { r.EpisodeNumber = -1 },
			wantField: "episodeNumber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := base
			tt.mutate(&report)

			err := ValidateReport(report)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			require.NotEmpty(t, valErr.Fields)
			assert.Equal(t, tt.wantField, valErr.Fields[0].Field)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, valErr.UserMessage())
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, genericNetworkMessage, UserMessage(errors.New("boom")))
	assert.Equal(t, "Content not found", UserMessage(&NotFoundError{ID: "x"}))
	assert.Equal(t, "Content not found", UserMessage(&LoadError{ID: "x", Err: &NotFoundError{ID: "x"}}))
	assert.Equal(t, "bad", UserMessage(&NetworkError{Op: "op", StatusCode: 400, Message: "bad"}))
	assert.Equal(t, "Invalid input", UserMessage(&ValidationError{}))
}

func TestNetworkError_Error(t *testing.T) {
	err := &NetworkError{Op: "fetch page", StatusCode: 500}
	assert.Equal(t, "fetch page: HTTP 500", err.Error())

	err = &NetworkError{Op: "fetch page", StatusCode: 404, Message: "missing"}
	assert.Equal(t, "fetch page: HTTP 404: missing", err.Error())

	cause := errors.New("connection refused")
	err = &NetworkError{Op: "search", Err: cause}
	assert.ErrorIs(t, err, cause)
}
