package constants

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTemplateConstants(t *testing.T) {
	t.Run("TemplatePattern matches the example suffix", func(t *testing.T) {
		assert.Equal(t, "*.yml.example", TemplatePattern)
		assert.True(t, strings.HasSuffix(TemplatePattern, TemplateSuffix))
	})

	t.Run("database config is a yml file", func(t *testing.T) {
		assert.Equal(t, "database.yml", DatabaseConfigName)
	})
}

func TestArtifactDefaults(t *testing.T) {
	t.Run("mainline alias", func(t *testing.T) {
		assert.Equal(t, "master", DefaultMainlineBranch)
		assert.Equal(t, "trunk", DefaultMainlineAlias)
	})

	t.Run("settle delay is short", func(t *testing.T) {
		assert.Equal(t, 2*time.Second, DefaultDeleteSettleDelay)
	})

	t.Run("spec command writes the JUnit report", func(t *testing.T) {
		assert.Contains(t, SpecCommand, "--out "+TestReportFile)
		assert.Contains(t, SpecCommand, "--tag ~js")
	})
}
