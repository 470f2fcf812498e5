package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("FORMS_CONFIG", "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormsCommand(t *testing.T) {
	out, err := execute(t, "", "forms")
	require.NoError(t, err)
	assert.Contains(t, out, "admissions")
	assert.Contains(t, out, "student,family,parents")
}

func TestFormsCommandWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("forms:\n  - id: intake\n    name: Intake\n    create_student: true\n"), 0o600))

	out, err := execute(t, "", "forms", "--forms", path)
	require.NoError(t, err)
	assert.Contains(t, out, "intake")
	assert.NotContains(t, out, "admissions")
}

func TestSubmitCommand(t *testing.T) {
	stdin := `{"preferredName":"Alex","surname":"Lee","parent1preferredName":"Sam","parent1surname":"Lee","parent1relationship":"Guardian"}`
	out, err := execute(t, stdin, "submit", "--data", "-")
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, true, resp["success"])
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["parent1Linked"])
}

func TestSubmitCommandRejectsBadInput(t *testing.T) {
	_, err := execute(t, "[1,2]", "submit", "--data", "-")
	assert.Error(t, err)

	_, err = execute(t, "{}", "submit", "--form", "missing", "--data", "-")
	assert.Error(t, err)
}
