package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/railsci/internal/constants"
)

func TestParseFlagValue(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"false", false},
		{"true", true},
		{"", true},
		{"no", true},
		{"FALSE", true},
		{"0", true},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseFlagValue(tc.value))
		})
	}
}

func TestConfig_JobName(t *testing.T) {
	tests := []struct {
		name      string
		workspace string
		expected  string
	}{
		{"jenkins layout", "/var/lib/jenkins/.jenkins/jobs/calcentral/workspace", "calcentral"},
		{"trailing slash", "/home/ci/.jenkins/jobs/bear-facts/workspace/", "bear-facts"},
		{"nested job folder", "/home/ci/.jenkins/jobs/team/jobs/app/workspace", "team/jobs/app"},
		{"not a jenkins path", "/tmp/build/checkout", "myapp"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{AppName: "myapp", WorkspacePath: tc.workspace}
			assert.Equal(t, tc.expected, cfg.JobName())
		})
	}
}

func TestSCMConfig_NormalizedBranch(t *testing.T) {
	scm := SCMConfig{Branch: "origin/feature-x", RemoteBranchPrefix: "origin/"}
	assert.Equal(t, "feature-x", scm.NormalizedBranch())

	scm = SCMConfig{Branch: "feature-x", RemoteBranchPrefix: "origin/"}
	assert.Equal(t, "feature-x", scm.NormalizedBranch())

	scm = SCMConfig{Branch: "origin/master"}
	assert.Equal(t, "origin/master", scm.NormalizedBranch())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.RunSpecs)
	assert.True(t, cfg.CompileAssets)
	assert.Equal(t, constants.DefaultMainlineBranch, cfg.SCM.MainlineBranch)
	assert.Equal(t, constants.DefaultMainlineAlias, cfg.SCM.MainlineAlias)
	assert.Equal(t, constants.DefaultArtifactRoot, cfg.Artifact.Root)
	assert.Equal(t, constants.DefaultDeleteSettleDelay, cfg.Artifact.DeleteSettleDelay)
	assert.Zero(t, cfg.Commands.Timeout)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/ws/.railsci.yaml", ProjectConfigPath("/ws"))
	assert.Equal(t, "/home/ci/.railsci/logs", LogDir("/home/ci"))
	assert.Equal(t, "/home/ci/tmp/app", PersistentCachePath("/home/ci", "app"))
}
