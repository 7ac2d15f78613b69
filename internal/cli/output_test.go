package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(CacheResult{Key: "courses", Cleared: true}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"key": "courses", "cleared": true}, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeRequest, "failed to load courses", "status 503"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeRequest, resp.Error.Code)
	assert.Equal(t, "failed to load courses", resp.Error.Message)
	assert.Equal(t, "status 503", resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error(ErrCodeUsage, "courseWorks needs --course", "details"))
			assert.Contains(t, buf.String(), "Error [E001]: courseWorks needs --course")
			assert.Equal(t, tt.wantDetails, strings.Contains(buf.String(), "Details: details"))
		})
	}
}

func TestOutputFormatter_VerboseLogGoesToErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("%s: %d item(s)", "courses", 3)
	assert.Empty(t, out.String())
	assert.Equal(t, "courses: 3 item(s)\n", errOut.String())

	formatter.Verbose = false
	formatter.VerboseLog("hidden")
	assert.Equal(t, "courses: 3 item(s)\n", errOut.String())
}

func TestOutputFormatter_Table(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Table(
		[]string{"ID", "TITLE"},
		[][]string{{"w1", "Essay"}, {"w200", "Quiz"}},
	))
	assert.Equal(t, "ID    TITLE\nw1    Essay\nw200  Quiz\n", buf.String())
}

func TestOutputFormatter_TableTruncatesToWidth(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Width: 12}

	require.NoError(t, formatter.Table(
		[]string{"ID", "TITLE"},
		[][]string{{"w1", "A very long course work title"}},
	))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID  TITLE", lines[0])
	assert.Equal(t, "w1  A ver...", lines[1])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "résu...", truncate("résumé writing", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestTerminalWidth_NotATerminal(t *testing.T) {
	assert.Equal(t, 0, terminalWidth(&bytes.Buffer{}))
}

func TestExitError(t *testing.T) {
	base := errors.New("connection refused")
	err := WrapExitError(ExitFailure, "failed to load courses", base)

	assert.Equal(t, "failed to load courses: connection refused", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.False(t, Reported(err))
	assert.False(t, Reported(errors.New("plain")))
}

func TestOutputError_MarksReported(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errOut}

	err := outputError(f, ErrCodeRequest, ExitFailure, "failed to load courses", errors.New("503"))
	assert.True(t, Reported(err))
	assert.True(t, Reported(fmt.Errorf("run: %w", err)))
	assert.Equal(t, ExitFailure, GetExitCode(err))

	err = usageError(f, "missing --course")
	assert.True(t, Reported(err))
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	assert.Equal(t, "Error [E003]: failed to load courses\nError [E001]: missing --course\n", out.String())
	assert.Empty(t, errOut.String())
}
