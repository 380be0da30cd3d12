package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-guard/internal/client"
	"github.com/MKhiriev/go-pass-guard/internal/generator"
	"github.com/MKhiriev/go-pass-guard/models"
)

type scriptedPrompter struct {
	answers []string
}

func (p *scriptedPrompter) ReadSecret(prompt string) (string, error) { return p.ReadLine(prompt) }

func (p *scriptedPrompter) ReadLine(string) (string, error) {
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type testCLI struct {
	*cli
	prompter *scriptedPrompter
	out      *bytes.Buffer
	dataDir  string
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	prompter := &scriptedPrompter{}
	out := &bytes.Buffer{}
	c := &cli{
		buildInfo: models.NewAppBuildInfo("1.2.3", "2026-10-19", "abc123"),
		prompter:  prompter,
		out:       out,
		errOut:    out,
	}
	t.Cleanup(func() { c.close() })
	return &testCLI{cli: c, prompter: prompter, out: out, dataDir: t.TempDir()}
}

// run executes one command line. answers are fed to the prompts it asks.
func (tc *testCLI) run(t *testing.T, answers []string, args ...string) (string, error) {
	t.Helper()
	tc.prompter.answers = answers
	tc.out.Reset()

	root := tc.newRootCmd()
	root.SetArgs(append(args, "--data-dir", tc.dataDir))
	err := root.ExecuteContext(context.Background())
	return tc.out.String(), err
}

func TestCLI_Version(t *testing.T) {
	tc := newTestCLI(t)

	out, err := tc.run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: 1.2.3")
	assert.Contains(t, out, "Build commit: abc123")
	assert.Nil(t, tc.app, "version must not open the vault")
}

func TestCLI_VaultCommandsNeedPin(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run(t, nil, "credential", "list")
	assert.ErrorIs(t, err, client.ErrNoPin)

	out, err := tc.run(t, nil, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "no_pin_set")
}

func TestCLI_CredentialLifecycle(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run(t, []string{"1234", "1234"}, "pin", "set")
	require.NoError(t, err)

	out, err := tc.run(t, []string{"1234"}, "category", "add", "Work", "stuff")
	require.NoError(t, err)
	assert.Contains(t, out, "Category 1 added.")

	out, err = tc.run(t, []string{"s3cret", "s3cret", "pin 9876"},
		"credential", "add", "--title", "Mail", "--username", "me", "--notes", "--category", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Password strength: weak")
	assert.Contains(t, out, "Credential 1 added.")
	assert.Empty(t, tc.prompter.answers, "notes must be read from the prompt")

	out, err = tc.run(t, nil, "credential", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "s3cret")

	out, err = tc.run(t, nil, "credential", "show", "1", "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "s3cret")
	assert.Contains(t, out, "pin 9876")

	out, err = tc.run(t, nil, "credential", "list", "--query", "9876")
	require.NoError(t, err)
	assert.Contains(t, out, "Mail")

	_, err = tc.run(t, nil, "credential", "edit", "1", "--title", "Mailbox")
	require.NoError(t, err)
	_, err = tc.run(t, nil, "credential", "favorite", "1")
	require.NoError(t, err)

	out, err = tc.run(t, nil, "credential", "list", "--favorites")
	require.NoError(t, err)
	assert.Contains(t, out, "Mailbox")

	out, err = tc.run(t, nil, "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Work stuff")

	_, err = tc.run(t, nil, "credential", "show", "x")
	assert.Error(t, err)

	_, err = tc.run(t, nil, "lock")
	require.NoError(t, err)
	assert.Equal(t, models.Locked, tc.app.Services.Lock.State())

	_, err = tc.run(t, []string{"0000", "0000", "0000"}, "credential", "list")
	assert.ErrorIs(t, err, client.ErrWrongPin)
}

func TestCLI_ExportImport(t *testing.T) {
	tc := newTestCLI(t)
	backup := filepath.Join(t.TempDir(), "backup.json")

	_, err := tc.run(t, []string{"1234", "1234"}, "pin", "set")
	require.NoError(t, err)
	_, err = tc.run(t, []string{"1234", "pw", "pw"}, "credential", "add", "--title", "A")
	require.NoError(t, err)

	out, err := tc.run(t, []string{"passphrase", "passphrase"}, "export", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written")

	_, err = tc.run(t, nil, "credential", "delete", "1")
	require.NoError(t, err)

	out, err = tc.run(t, []string{"n"}, "import", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	_, err = tc.run(t, []string{"wrong"}, "import", "--yes", backup)
	assert.Error(t, err)

	out, err = tc.run(t, []string{"passphrase"}, "import", "--yes", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 credentials and 0 categories.")

	out, err = tc.run(t, nil, "credential", "show", "1", "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "pw")
}

func TestCLI_Timeout(t *testing.T) {
	tc := newTestCLI(t)

	out, err := tc.run(t, nil, "timeout")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = tc.run(t, []string{"1234", "1234"}, "pin", "set")
	require.NoError(t, err)
	_, err = tc.run(t, []string{"1234"}, "timeout", "7")
	require.NoError(t, err)

	out, err = tc.run(t, nil, "timeout")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	_, err = tc.run(t, nil, "timeout", "soon")
	assert.Error(t, err)
}

func TestCLI_Shell(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run(t, []string{"1234", "1234"}, "pin", "set")
	require.NoError(t, err)

	out, err := tc.run(t, []string{"unlock", "1234", "status", "shell", "exit"}, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Unlocked.")
	assert.Contains(t, out, "State:           unlocked")
	assert.Contains(t, out, "Error: already in the shell")
	assert.False(t, tc.inShell)
}

func TestCLI_GeneratedPassword(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run(t, []string{"1234", "1234"}, "pin", "set")
	require.NoError(t, err)

	out, err := tc.run(t, []string{"1234"}, "credential", "add", "--title", "Shop", "--generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Password strength: very strong")
	assert.Contains(t, out, "Credential 1 added.")

	out, err = tc.run(t, nil, "credential", "show", "1", "--reveal")
	require.NoError(t, err)
	var password string
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "Password:"); ok {
			password = strings.TrimSpace(rest)
		}
	}
	assert.Len(t, password, generator.DefaultLength)

	_, err = tc.run(t, nil, "credential", "edit", "1", "--generate", "--password")
	assert.Error(t, err)

	out, err = tc.run(t, []string{"new notes"}, "credential", "edit", "1", "--generate", "--notes")
	require.NoError(t, err)
	assert.Contains(t, out, "Credential 1 updated.")

	out, err = tc.run(t, nil, "credential", "show", "1", "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "new notes")
	assert.NotContains(t, out, password)
}

func TestCLI_Generate(t *testing.T) {
	tc := newTestCLI(t)

	out, err := tc.run(t, nil, "generate", "--length", "24", "--no-symbols")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 24)
	assert.Contains(t, lines[1], "Strength: ")
	assert.Nil(t, tc.app, "generate must not open the vault")

	out, err = tc.run(t, nil, "generate", "-n", "3")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)

	_, err = tc.run(t, nil, "generate", "--length", "2")
	assert.ErrorIs(t, err, generator.ErrInvalidLength)

	_, err = tc.run(t, nil, "generate", "--no-lowercase", "--no-uppercase", "--no-digits", "--no-symbols")
	assert.ErrorIs(t, err, generator.ErrNoCharacterSets)
}
