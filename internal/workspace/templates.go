package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/errors"
)

// Materialized records one template copied into place.
type Materialized struct {
	Template string
	Target   string
}

// TargetName derives the active file name from a template name by keeping the
// first two dot-separated parts: "a.yml.example" becomes "a.yml".
func TargetName(templateName string) string {
	parts := strings.Split(templateName, ".")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, ".")
}

// MaterializeTemplates copies every config/*.yml.example in workspace to its
// target name, overwriting existing files. database.yml is skipped because it
// is generated by WriteDatabaseConfig. A workspace without a config directory
// has nothing to materialize.
func MaterializeTemplates(ctx context.Context, workspace string) ([]Materialized, error) {
	log := zerolog.Ctx(ctx)
	dir := filepath.Join(workspace, constants.ConfigDir)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var copied []Materialized
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		matched, err := doublestar.Match(constants.TemplatePattern, name)
		if err != nil {
			return copied, fmt.Errorf("invalid template pattern: %w", err)
		}
		if !matched {
			continue
		}

		target := TargetName(name)
		if target == constants.DatabaseConfigName {
			log.Debug().Str("template", name).Msg("skipping database template; generated instead")
			continue
		}

		src := filepath.Join(dir, name)
		dst := filepath.Join(dir, target)
		if err := copyFile(src, dst); err != nil {
			return copied, errors.Wrapf(errors.ErrTemplateCopy, "%s -> %s: %v", name, target, err)
		}

		log.Info().Str("template", name).Str("target", target).Msg("materialized config file")
		copied = append(copied, Materialized{Template: src, Target: dst})
	}

	return copied, nil
}

// copyFile atomically replaces dst with the contents and permissions of src.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(src) // #nosec G304 -- path comes from a directory listing of the workspace
	if err != nil {
		return err
	}
	return renameio.WriteFile(dst, data, info.Mode().Perm())
}
