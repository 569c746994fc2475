package clipboard

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// CopiedMsg reports the outcome of a copy
type CopiedMsg struct {
	Text string
	Err  error
}

// Service copies text to the system clipboard
type Service interface {
	// Copy copies text synchronously
	Copy(text string) error
	// CopyCmd copies text in the background and reports a CopiedMsg
	CopyCmd(text string) tea.Cmd
}

// Logger interface for clipboard operations
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

type clipboardService struct {
	logger   Logger
	command  string // user-configured fallback command
	writeAll func(string) error
	run      func(name string, args []string, stdin string) error
}

// NewService creates a clipboard service. command, when set, is used if
// the native clipboard is unavailable.
func NewService(logger Logger, command string) Service {
	return &clipboardService{
		logger:   logger,
		command:  command,
		writeAll: clipboard.WriteAll,
		run:      runWithStdin,
	}
}

func (s *clipboardService) CopyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: s.Copy(text)}
	}
}

func (s *clipboardService) Copy(text string) error {
	err := s.writeAll(text)
	if err == nil {
		s.logger.Debug("copied to clipboard", "text_length", len(text))
		return nil
	}
	s.logger.Warn("native clipboard unavailable, trying fallback", "error", err)

	name, args := s.fallback()
	if name == "" {
		return fmt.Errorf("no clipboard tool found (install xclip, xsel, or wl-clipboard): %w", err)
	}

	if runErr := s.run(name, args, text); runErr != nil {
		s.logger.Error("fallback clipboard command failed", "command", name, "error", runErr)
		return fmt.Errorf("failed to copy with %s: %w", name, runErr)
	}

	s.logger.Debug("copied to clipboard", "command", name, "text_length", len(text))
	return nil
}

// fallback picks the configured command or a platform default
func (s *clipboardService) fallback() (string, []string) {
	if parts := parseCommand(s.command); len(parts) > 0 {
		return parts[0], parts[1:]
	}

	switch runtime.GOOS {
	case "windows":
		return "clip.exe", nil
	case "darwin":
		return "pbcopy", nil
	case "linux":
		if isWSL() {
			return "clip.exe", nil
		}
		switch {
		case commandExists("wl-copy"):
			return "wl-copy", nil
		case commandExists("xclip"):
			return "xclip", []string{"-selection", "clipboard"}
		case commandExists("xsel"):
			return "xsel", []string{"--clipboard", "--input"}
		}
	}
	return "", nil
}

func runWithStdin(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}

// parseCommand splits a command line on spaces, respecting quotes
func parseCommand(command string) []string {
	var parts []string
	var current strings.Builder
	var quote rune

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, r := range command {
		switch {
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && r == ' ':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return parts
}

// isWSL checks for Windows Subsystem for Linux
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
