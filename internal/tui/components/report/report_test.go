package report

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/models"
	"github.com/animabing/animabing/internal/tui/common"
	"github.com/animabing/animabing/internal/tui/tuitest"
)

type fakeSubmitter struct {
	got []models.Report
	err error
}

func (f *fakeSubmitter) SubmitReport(ctx context.Context, r models.Report) error {
	f.got = append(f.got, r)
	return f.err
}

var bebop = models.ContentItem{ID: "a9", Title: "Cowboy Bebop", Type: models.ContentTypeAnime}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestValues_Report(t *testing.T) {
	v := Values{
		IssueType:   string(models.IssueWrongEpisode),
		Description: "  plays episode 4 instead  ",
		Email:       " fan@example.com ",
	}

	r := v.Report(bebop, &models.Episode{ID: "e5", Number: 5})
	assert.Equal(t, models.Report{
		AnimeID:       "a9",
		EpisodeID:     "e5",
		EpisodeNumber: 5,
		IssueType:     models.IssueWrongEpisode,
		Description:   "plays episode 4 instead",
		Email:         "fan@example.com",
	}, r)

	r = v.Report(bebop, nil)
	assert.Empty(t, r.EpisodeID)
	assert.Zero(t, r.EpisodeNumber)
}

func TestValidateDescription(t *testing.T) {
	assert.Error(t, validateDescription("too short"))
	assert.Error(t, validateDescription("   short    "))
	assert.NoError(t, validateDescription("long enough text"))
}

func TestValidateDescription_CountsCharacters(t *testing.T) {
	item := models.ContentItem{ID: "a1", Title: "Naruto"}
	tests := []struct {
		description string
		wantErr     bool
	}{
		{"लिंक टूटा", true},     // 9 characters, 25 bytes
		{"लिंक टूट गया", false}, // 12 characters
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			formErr := validateDescription(tt.description)
			apiErr := api.ValidateReport(Values{IssueType: string(models.IssueBrokenLink), Description: tt.description}.Report(item, nil))
			assert.Equal(t, tt.wantErr, formErr != nil, "form")
			assert.Equal(t, tt.wantErr, apiErr != nil, "api")
		})
	}
}

func TestNewForm_DefaultsIssueType(t *testing.T) {
	v := &Values{}
	NewForm(v, bebop, nil)
	assert.Equal(t, string(models.IssueBrokenLink), v.IssueType)
}

func TestModel_SubmitSuccess(t *testing.T) {
	sub := &fakeSubmitter{}
	m := New(bebop, nil, sub)
	m.values.Description = "The first link is dead"

	msgs := collect(m.submit())
	require.Len(t, msgs, 1)
	require.Len(t, sub.got, 1)
	assert.Equal(t, "a9", sub.got[0].AnimeID)
	assert.Equal(t, models.IssueBrokenLink, sub.got[0].IssueType)

	m, cmd := m.Update(msgs[0])
	assert.NoError(t, m.Err())
	assert.Contains(t, collect(cmd), common.CloseReportMsg{Submitted: true})
}

func TestModel_SubmitFailureKeepsValues(t *testing.T) {
	tuitest.PlainRendering(t)
	sub := &fakeSubmitter{err: &api.ValidationError{Fields: []api.FieldError{
		{Field: "email", Message: "Please enter a valid email address"},
	}}}
	m := New(bebop, nil, sub)
	m.values.Description = "The first link is dead"
	m.values.Email = "not-an-email"

	m, _ = m.Update(collect(m.submit())[0])
	require.Error(t, m.Err())
	assert.False(t, m.Submitting())
	assert.Equal(t, "not-an-email", m.values.Email)
	assert.Contains(t, m.View(), "Please enter a valid email address")
}

func TestModel_EscCancels(t *testing.T) {
	m := New(bebop, nil, &fakeSubmitter{})
	m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []tea.Msg{common.CloseReportMsg{}}, collect(cmd))
}

func TestErrorText(t *testing.T) {
	err := &api.ValidationError{Fields: []api.FieldError{
		{Field: "description", Message: "description must be at least 10 characters"},
		{Field: "email", Message: "Please enter a valid email address"},
	}}
	assert.Equal(t, "• description must be at least 10 characters\n• Please enter a valid email address", errorText(err))
	assert.Equal(t, "Anime does not exist", errorText(&api.NetworkError{StatusCode: 400, Message: "Anime does not exist"}))
}
