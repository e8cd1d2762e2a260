package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, "stepreport.yaml", `
suiteName: nightly
logLevel: info
run:
  - AppTest
allureDir: build/allure-results
archiveFile: build/allure.tar.gz
servePort: 8111
`)
	c, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "nightly", c.SuiteName)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, []string{"AppTest"}, c.Run)
	assert.Equal(t, "build/allure-results", c.AllureDir)
	assert.Equal(t, 8111, c.ServePort)
	assert.Equal(t, "Log Entry", c.AttachmentTitle)
}

func TestLoadJSONFile(t *testing.T) {
	path := writeFile(t, "stepreport.json", `{"suiteName": "json suite", "debug": true}`)
	c, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "json suite", c.SuiteName)
	assert.True(t, c.Debug)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "stepreport.yaml", "suiteName: from-file\nlogLevel: debug\n")
	t.Setenv("STEPREPORT_SUITE_NAME", "from-env")
	t.Setenv("STEPREPORT_DEBUG_ALL", "true")
	t.Setenv("STEPREPORT_SKIP", "slow,flaky")

	c, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.SuiteName)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.DebugAll)
	assert.Equal(t, []string{"slow", "flaky"}, c.Skip)
}

func TestEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "STEPREPORT_ATTACHMENT_TITLE=Console Line\n")
	t.Cleanup(func() { _ = os.Unsetenv("STEPREPORT_ATTACHMENT_TITLE") })

	c, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "Console Line", c.AttachmentTitle)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeFile(t, "bad.yaml", "suiteName: [unclosed\n")
	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	c := Default()
	c.LogLevel = "loud"
	assert.Error(t, c.Validate())

	c = Default()
	c.SuiteName = ""
	assert.Error(t, c.Validate())

	c = Default()
	c.ArchiveFile = "out.tar.gz"
	assert.Error(t, c.Validate())
	c.AllureDir = "results"
	assert.NoError(t, c.Validate())

	c = Default()
	c.ServePort = 70000
	assert.Error(t, c.Validate())
}

func TestEnvironmentListsAreSplit(t *testing.T) {
	t.Setenv("STEPREPORT_RUN", "AppTest/someTest, AppTest/other,")
	t.Setenv("STEPREPORT_SUITE_NAME", "a,b")

	c, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"AppTest/someTest", "AppTest/other"}, c.Run)
	assert.Equal(t, "a,b", c.SuiteName)
}

func TestLogLevelIsCaseInsensitive(t *testing.T) {
	t.Setenv("STEPREPORT_LOG_LEVEL", "INFO")
	c, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "INFO", c.LogLevel)

	c = Default()
	c.LogLevel = "Warn"
	assert.NoError(t, c.Validate())
}
