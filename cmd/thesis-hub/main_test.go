package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/thesis-hub/internal/config"
	"github.com/ashwinyue/thesis-hub/internal/testutil"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestKeywordsCmd(t *testing.T) {
	fs := testutil.NewFakeServer(t, testutil.JSONHandler(http.StatusOK,
		testutil.GeminiResponse(`["Học máy", "học máy", "Xử lý ảnh"]`)))

	t.Setenv(config.GeminiAPIKeyEnv, "")
	t.Setenv("THESIS_HUB_GEMINI_APIKEY", "test-key")
	t.Setenv("THESIS_HUB_GEMINI_BASEURL", fs.URL)

	out, err := runCmd(t, "--config", "", "keywords", "--title", "Nhận diện ảnh y tế", "--max", "5")
	require.NoError(t, err)
	assert.JSONEq(t, `["Học máy","Xử lý ảnh"]`, out)
	assert.Equal(t, 1, fs.Calls())
}

func TestKeywordsCmd_NoKey(t *testing.T) {
	t.Setenv(config.GeminiAPIKeyEnv, "")

	out, err := runCmd(t, "--config", "", "keywords", "--title", "Hệ thống gợi ý")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestKeywordsCmd_MissingTitle(t *testing.T) {
	_, err := runCmd(t, "--config", "", "keywords")
	assert.EqualError(t, err, "--title is required")
}

func TestRootCmd_BadConfig(t *testing.T) {
	_, err := runCmd(t, "--config", "/nonexistent/config.yaml", "keywords", "--title", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
