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

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("BRANDING_LOGO_PATH", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Web Development")
	assert.Contains(t, out, "warranty, ipRights")
	assert.Contains(t, out, "defaults")
}

func TestGenerateCommandWritesFiles(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "Design 3 logo options.\nTwo revisions.",
		"generate",
		"--provider", "Amit Kumar",
		"--client", "Tech Solutions",
		"--city", "Pune",
		"--fee", "40000",
		"--advance", "25",
		"--rate", "1500",
		"--category", "graphic design",
		"--scope-file", "-",
		"--out", dir,
	)
	require.NoError(t, err, out)
	assert.Contains(t, out, "advance 10000, balance 30000")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var exts []string
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Name(), "Freelance_Agreement_Tech_Solutions_"), e.Name())
		exts = append(exts, filepath.Ext(e.Name()))
	}
	assert.ElementsMatch(t, []string{".pdf", ".docx", ".xlsx"}, exts)
}

func TestGenerateCommandRejectsBadTerms(t *testing.T) {
	_, err := run(t, "", "generate", "--provider", "A", "--client", "B", "--advance", "120", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "advance percent")
}

func TestGenerateCommandRequiresParties(t *testing.T) {
	_, err := run(t, "", "generate", "--provider", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client")
}

func TestESignCommandPrintsPayload(t *testing.T) {
	out, err := run(t, "", "esign", "--provider", "A", "--client", "Beta Corp", "--fee", "1000", "--email", "beta@example.com")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "sent", payload["status"])
	signer := payload["recipients"].(map[string]any)["signers"].([]any)[0].(map[string]any)
	assert.Equal(t, "Beta Corp", signer["name"])
}

func TestEmailCommandNeedsSMTP(t *testing.T) {
	_, err := run(t, "", "email", "--provider", "A", "--client", "B", "--email", "b@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "cli-secret")
	out, err := run(t, "", "token", "--user", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))
}
