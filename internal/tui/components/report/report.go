// Package report holds the issue report form, used embedded in the TUI and
// standalone by the report command.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/animabing/animabing/internal/api"
	"github.com/animabing/animabing/internal/models"
	"github.com/animabing/animabing/internal/tui/common"
	"github.com/animabing/animabing/internal/tui/styles"
)

const minDescription = 10

// Submitter sends a finished report
type Submitter interface {
	SubmitReport(ctx context.Context, report models.Report) error
}

// SubmittedMsg carries the outcome of a submission
type SubmittedMsg struct {
	Err error
}

// Values are the form fields. Forms bind to them by pointer.
type Values struct {
	IssueType   string
	Description string
	Email       string
	Username    string
}

// Report builds the report for item and, when set, one of its episodes
func (v Values) Report(item models.ContentItem, ep *models.Episode) models.Report {
	r := models.Report{
		AnimeID:     item.ID,
		IssueType:   models.IssueType(v.IssueType),
		Description: strings.TrimSpace(v.Description),
		Email:       strings.TrimSpace(v.Email),
		Username:    strings.TrimSpace(v.Username),
	}
	if ep != nil {
		r.EpisodeID = ep.ID
		r.EpisodeNumber = ep.Number
	}
	return r
}

// Theme is the form theme
func Theme() *huh.Theme {
	return huh.ThemeCatppuccin()
}

// KeyMap maps esc to quit so the form can be left without submitting
func KeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit.SetKeys("esc", "ctrl+c")
	km.Quit.SetHelp("esc", "cancel")
	km.Input.Submit.SetHelp("enter", "submit • esc: cancel")
	return km
}

// NewForm builds the report form bound to v
func NewForm(v *Values, item models.ContentItem, ep *models.Episode) *huh.Form {
	if v.IssueType == "" {
		v.IssueType = string(models.IssueBrokenLink)
	}

	options := make([]huh.Option[string], len(models.IssueTypes))
	for i, it := range models.IssueTypes {
		options[i] = huh.NewOption(string(it), string(it))
	}

	subject := item.Title
	if ep != nil {
		subject += " - " + ep.DisplayTitle(item.HasChapters())
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Report an issue").
				Description(subject),
			huh.NewSelect[string]().
				Title("Issue type").
				Options(options...).
				Value(&v.IssueType),
			huh.NewText().
				Title("Description").
				Description("What went wrong? At least 10 characters.").
				CharLimit(1000).
				Value(&v.Description).
				Validate(validateDescription),
			huh.NewInput().
				Title("Email (optional)").
				Value(&v.Email),
			huh.NewInput().
				Title("Username (optional)").
				Value(&v.Username),
		),
	).WithTheme(Theme()).WithKeyMap(KeyMap()).WithShowHelp(true)
}

func validateDescription(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) < minDescription {
		return fmt.Errorf("description must be at least %d characters", minDescription)
	}
	return nil
}

// Model embeds the report form in the TUI
type Model struct {
	item      models.ContentItem
	episode   *models.Episode
	submitter Submitter
	values    *Values
	form      *huh.Form

	submitting bool
	err        error
	width      int
}

// New creates the form for item and, optionally, one episode
func New(item models.ContentItem, ep *models.Episode, submitter Submitter) Model {
	values := &Values{}
	return Model{
		item:      item,
		episode:   ep,
		submitter: submitter,
		values:    values,
		form:      NewForm(values, item, ep),
	}
}

// Init initializes the form
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Err returns the last submission error
func (m Model) Err() error { return m.err }

// Submitting reports whether a submission is in flight
func (m Model) Submitting() bool { return m.submitting }

// SetWidth sets the form width
func (m *Model) SetWidth(width int) {
	m.width = width
	m.form = m.form.WithWidth(min(width-4, 80))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmittedMsg:
		m.submitting = false
		if msg.Err == nil {
			return m, tea.Batch(
				func() tea.Msg { return common.CloseReportMsg{Submitted: true} },
				func() tea.Msg { return common.StatusMsg{Text: "Report submitted. Thank you!"} },
			)
		}
		// keep what was typed and let the user fix it
		m.err = msg.Err
		m.form = NewForm(m.values, m.item, m.episode)
		if m.width > 0 {
			m.form = m.form.WithWidth(min(m.width-4, 80))
		}
		cmd := m.form.Init()
		return m, cmd
	}

	if m.submitting {
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m, func() tea.Msg { return common.CloseReportMsg{} }
	case huh.StateCompleted:
		m.submitting = true
		m.err = nil
		submit := m.submit()
		return m, submit
	}
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	report := m.values.Report(m.item, m.episode)
	submitter := m.submitter
	return func() tea.Msg {
		return SubmittedMsg{Err: submitter.SubmitReport(context.Background(), report)}
	}
}

// View renders the form
func (m Model) View() string {
	var b strings.Builder
	if m.submitting {
		b.WriteString(styles.AccentStyle.Render("Submitting report..."))
		return b.String()
	}

	b.WriteString(m.form.View())
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(errorText(m.err)))
	}
	return b.String()
}

func errorText(err error) string {
	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		lines := make([]string, 0, len(valErr.Fields))
		for _, f := range valErr.Fields {
			lines = append(lines, "• "+f.Message)
		}
		return strings.Join(lines, "\n")
	}
	return api.UserMessage(err)
}
