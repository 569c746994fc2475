package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animabing/animabing/internal/detail"
	"github.com/animabing/animabing/internal/models"
)

func TestFindEpisode(t *testing.T) {
	sessions := detail.GroupBySession([]models.Episode{
		{ID: "e1", Number: 1, Session: 1},
		{ID: "e2", Number: 2, Session: 1},
		{ID: "s2e1", Number: 1, Session: 2},
		{ID: "legacy", Number: 3},
	})

	tests := []struct {
		name    string
		session int
		number  int
		wantID  string
		wantOK  bool
	}{
		{"first season", 1, 2, "e2", true},
		{"second season", 2, 1, "s2e1", true},
		{"session zero counts as one", 0, 3, "legacy", true},
		{"missing number", 1, 9, "", false},
		{"missing season", 5, 1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, ok := findEpisode(sessions, tt.session, tt.number)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, ep.ID)
		})
	}
}

func TestCheckChoice(t *testing.T) {
	assert.NoError(t, checkChoice("type", "All", contentTypeChoices()))
	assert.NoError(t, checkChoice("type", "Manga", contentTypeChoices()))
	assert.NoError(t, checkChoice("filter", "Hindi Dub", subDubChoices()))

	err := checkChoice("type", "Cartoon", contentTypeChoices())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --type "Cartoon"`)
}

func TestIssueTypes(t *testing.T) {
	assert.True(t, validIssueType("Broken Link"))
	assert.False(t, validIssueType("broken link"))
	assert.Len(t, issueTypeChoices(), len(models.IssueTypes))
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "1, 2, 10", joinInts([]int{1, 2, 10}))
	assert.Empty(t, joinInts(nil))
}
