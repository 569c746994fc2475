package detailview

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/detail"
	"github.com/animabing/animabing/internal/models"
	"github.com/animabing/animabing/internal/tui/common"
	"github.com/animabing/animabing/internal/tui/tuitest"
)

type loaderFunc func(ctx context.Context, id string) (detail.Page, error)

func (f loaderFunc) Load(ctx context.Context, id string) (detail.Page, error) {
	return f(ctx, id)
}

var naruto = models.ContentItem{
	ID:          "a1",
	Title:       "Naruto",
	Type:        models.ContentTypeAnime,
	Status:      models.StatusComplete,
	SubDub:      models.SubDubHindiDub,
	ReleaseYear: 2002,
	Genres:      []string{"Action"},
	Description: "A ninja story.",
}

func pageOf(item models.ContentItem, eps ...models.Episode) detail.Page {
	return detail.Page{Item: item, Sessions: detail.GroupBySession(eps)}
}

func loaded(t *testing.T, loader Loader) Model {
	t.Helper()
	m := New("a1", loader)
	m.SetSize(80, 40)
	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, k string) (Model, tea.Msg) {
	m, cmd := m.Update(keyMsg(k))
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestDetail_SessionsAndDownload(t *testing.T) {
	tuitest.PlainRendering(t)
	m := loaded(t, loaderFunc(func(ctx context.Context, id string) (detail.Page, error) {
		return pageOf(naruto,
			models.Episode{ID: "e1", Number: 1, Session: 1, Link: "https://dl/1"},
			models.Episode{ID: "e2", Number: 2, Session: 1, Link: "https://dl/2"},
			models.Episode{ID: "s2e1", Number: 1, Session: 2, Title: "Return", Link: "https://dl/s2"},
		), nil
	}))

	assert.Equal(t, 1, m.Session())
	view := m.View()
	assert.Contains(t, view, "Naruto")
	assert.Contains(t, view, "Season 2")
	assert.Contains(t, view, "Episode 2")

	m, _ = send(m, "]")
	assert.Equal(t, 2, m.Session())
	assert.Contains(t, m.View(), "Return")

	m, _ = send(m, "]")
	assert.Equal(t, 1, m.Session(), "wraps around")

	m, _ = send(m, "j")
	m, msg := send(m, "enter")
	require.IsType(t, common.DownloadMsg{}, msg)
	assert.Equal(t, "e2", msg.(common.DownloadMsg).Episode.ID)

	m, _ = m.Update(common.DownloadEventMsg{Event: detail.Event{Stage: detail.StagePreparing, Item: naruto, Episode: models.Episode{Number: 2}}})
	assert.Contains(t, m.View(), "Preparing Episode 2")

	_, again := send(m, "enter")
	assert.Nil(t, again, "one download at a time")

	m, _ = m.Update(common.DownloadEventMsg{Event: detail.Event{Stage: detail.StageOpened, Item: naruto, Episode: models.Episode{Number: 2}}})
	assert.Contains(t, m.View(), "opened in your browser")

	m, _ = m.Update(common.DownloadEventMsg{Event: detail.Event{Stage: detail.StageDone, Item: naruto}})
	assert.NotContains(t, m.View(), "opened in your browser")
}

func TestDetail_CopyAndReport(t *testing.T) {
	m := loaded(t, loaderFunc(func(ctx context.Context, id string) (detail.Page, error) {
		return pageOf(naruto,
			models.Episode{ID: "e1", Number: 1, Link: "https://dl/1"},
			models.Episode{ID: "e2", Number: 2},
		), nil
	}))

	_, msg := send(m, "y")
	assert.Equal(t, common.CopyLinkMsg{Label: "Naruto - Episode 1", Link: "https://dl/1"}, msg)

	m, _ = send(m, "j")
	_, msg = send(m, "y")
	assert.Equal(t, common.StatusMsg{Text: "No link to copy", Error: true}, msg)

	_, msg = send(m, "r")
	report, ok := msg.(common.OpenReportMsg)
	require.True(t, ok)
	assert.Equal(t, "a1", report.Item.ID)
	require.NotNil(t, report.Episode)
	assert.Equal(t, "e2", report.Episode.ID)
}

func TestDetail_NotFound(t *testing.T) {
	tuitest.PlainRendering(t)
	m := loaded(t, loaderFunc(func(ctx context.Context, id string) (detail.Page, error) {
		return detail.Page{}, &api.NotFoundError{ID: id}
	}))

	assert.True(t, m.NotFound())
	assert.Contains(t, m.View(), "Content not found")

	m, msg := send(m, "r")
	assert.Nil(t, msg, "nothing to retry")

	_, msg = send(m, "esc")
	assert.Equal(t, common.BackMsg{}, msg)
}

func TestDetail_ErrorAndRetry(t *testing.T) {
	tuitest.PlainRendering(t)
	calls := 0
	m := loaded(t, loaderFunc(func(ctx context.Context, id string) (detail.Page, error) {
		calls++
		if calls == 1 {
			return detail.Page{}, &api.LoadError{ID: id, Err: errors.New("boom")}
		}
		return pageOf(naruto), nil
	}))

	assert.False(t, m.NotFound())
	assert.Contains(t, m.View(), "Could not load this title")

	m, msg := send(m, "r")
	assert.True(t, m.Loading(), "retry state is on the returned model")
	require.IsType(t, LoadedMsg{}, msg)
	m, _ = m.Update(msg)

	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), "No episodes available yet")
}

func TestDetail_StaleLoadDropped(t *testing.T) {
	m := New("a1", loaderFunc(func(ctx context.Context, id string) (detail.Page, error) {
		return pageOf(naruto), nil
	}))
	m.Init()

	m, _ = m.Update(LoadedMsg{Gen: -1, Err: errors.New("late")})
	assert.True(t, m.Loading())
}
