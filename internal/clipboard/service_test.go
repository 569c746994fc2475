package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger implements the Logger interface for testing
type MockLogger struct{}

func (m *MockLogger) Debug(msg string, keyvals ...interface{}) {}

func (m *MockLogger) Warn(msg string, keyvals ...interface{}) {}

func (m *MockLogger) Error(msg string, keyvals ...interface{}) {}

func TestCopy_Native(t *testing.T) {
	var got string
	s := &clipboardService{
		logger:   &MockLogger{},
		writeAll: func(text string) error { got = text; return nil },
		run: func(string, []string, string) error {
			t.Error("fallback should not run")
			return nil
		},
	}

	require.NoError(t, s.Copy("https://dl/1"))
	assert.Equal(t, "https://dl/1", got)
}

func TestCopy_ConfiguredFallback(t *testing.T) {
	var name, stdin string
	var args []string
	s := &clipboardService{
		logger:   &MockLogger{},
		command:  `my-copy --sel "primary clip"`,
		writeAll: func(string) error { return errors.New("no display") },
		run: func(n string, a []string, in string) error {
			name, args, stdin = n, a, in
			return nil
		},
	}

	require.NoError(t, s.Copy("link"))
	assert.Equal(t, "my-copy", name)
	assert.Equal(t, []string{"--sel", "primary clip"}, args)
	assert.Equal(t, "link", stdin)
}

func TestCopy_FallbackFails(t *testing.T) {
	s := &clipboardService{
		logger:   &MockLogger{},
		command:  "broken",
		writeAll: func(string) error { return errors.New("no display") },
		run:      func(string, []string, string) error { return errors.New("exit 1") },
	}

	err := s.Copy("link")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestCopyCmd(t *testing.T) {
	s := &clipboardService{
		logger:   &MockLogger{},
		writeAll: func(string) error { return nil },
	}

	msg := s.CopyCmd("abc")()
	assert.Equal(t, CopiedMsg{Text: "abc"}, msg)
}

func TestParseCommand(t *testing.T) {
	assert.Nil(t, parseCommand(""))
	assert.Equal(t, []string{"xclip", "-selection", "clipboard"}, parseCommand("xclip  -selection clipboard"))
	assert.Equal(t, []string{"sh", "-c", "cat > /tmp/x"}, parseCommand(`sh -c 'cat > /tmp/x'`))
}

func TestNewService(t *testing.T) {
	var _ Service = NewService(&MockLogger{}, "")
}
