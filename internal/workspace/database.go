package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/railsci/internal/constants"
)

// testAnchor is the YAML anchor shared by the test and ci environments.
const testAnchor = "test"

// DatabaseConfig renders the database.yml used by the test and ci
// environments. The ci environment inherits everything from test through a
// YAML merge key:
//
//	test: &test
//	  adapter: sqlite3
//	  database: <app>
//	  ...
//	ci:
//	  <<: *test
func DatabaseConfig(appName string) ([]byte, error) {
	testEnv := &yaml.Node{Kind: yaml.MappingNode, Anchor: testAnchor}
	for _, kv := range [][2]string{
		{"adapter", constants.DatabaseAdapter},
		{"database", appName},
		{"username", constants.DatabaseUser},
		{"password", constants.DatabaseUser},
		{"host", constants.DatabaseHost},
	} {
		testEnv.Content = append(testEnv.Content, strNode(kv[0]), strNode(kv[1]))
	}

	ciEnv := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!merge", Value: "<<"},
			{Kind: yaml.AliasNode, Alias: testEnv, Value: testAnchor},
		},
	}

	doc := &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{strNode("test"), testEnv, strNode("ci"), ciEnv},
		}},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode database config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode database config: %w", err)
	}
	return buf.Bytes(), nil
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// WriteDatabaseConfig writes config/database.yml for appName, replacing any
// existing file atomically. It returns the path written.
func WriteDatabaseConfig(workspace, appName string) (string, error) {
	content, err := DatabaseConfig(appName)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(workspace, constants.ConfigDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, constants.DatabaseConfigName)
	if err := renameio.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
