package ldtest

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJUnitTestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junit.xml")
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("AppTest/^c$"))
	logger := NewJUnitTestLogger(path, "stepreport", filters)

	results := Run(TestConfiguration{TestLogger: logger, Filter: filters}, func(ldt *T) {
		ldt.Run("AppTest", func(ldt *T) {
			ldt.Run("passes", func(ldt *T) {
				ldt.Step("step", func() {
					ldt.Logger("org.example.Steps").Info("hello")
				})
			})
			ldt.Run("fails", func(ldt *T) { ldt.Errorf("bad thing") })
			ldt.Run("c", func(ldt *T) {})
		})
	})
	require.NoError(t, logger.EndLog(results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc jUnitXMLDocument
	require.NoError(t, xml.Unmarshal(data, &doc))

	require.Len(t, doc.Suites, 1)
	suite := doc.Suites[0]
	assert.Equal(t, "stepreport: AppTest", suite.Name)
	assert.Equal(t, 4, suite.Tests)
	assert.Equal(t, 1, suite.Failures)
	assert.Equal(t, 1, suite.Skipped)

	cases := make(map[string]jUnitXMLTestCase)
	for _, c := range suite.TestCases {
		cases[c.Name] = c
	}
	assert.Equal(t, "[INFO] org.example.Steps - hello", cases["AppTest/passes"].SystemOut)
	require.NotNil(t, cases["AppTest/fails"].Failure)
	assert.Contains(t, cases["AppTest/fails"].Failure.Message, "bad thing")
	require.NotNil(t, cases["AppTest/c"].SkipMessage)
	assert.Equal(t, "excluded by filter parameters", cases["AppTest/c"].SkipMessage.Message)
}

func TestAllureTestLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "allure-results")
	logger, err := NewAllureTestLogger(dir)
	require.NoError(t, err)

	results := Run(TestConfiguration{TestLogger: logger}, func(ldt *T) {
		ldt.Run("a", func(ldt *T) {
			ldt.Logger("s").Info("m")
		})
		ldt.Run("b", func(ldt *T) { ldt.Skip() })
	})
	require.NoError(t, logger.EndLog(results))

	for _, r := range results.Reports() {
		_, err := os.Stat(filepath.Join(dir, r.UUID+"-result.json"))
		assert.NoError(t, err, r.FullName)
	}
	attachments, err := filepath.Glob(filepath.Join(dir, "*-attachment.txt"))
	require.NoError(t, err)
	assert.Len(t, attachments, 1)
}
