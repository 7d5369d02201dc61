package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/railsci/internal/constants"
)

// Clean removes stale local state left by earlier tooling. Currently that is
// the legacy .rvmrc, which would otherwise switch rubies under bundler.
func Clean(ctx context.Context, workspace string) error {
	path := filepath.Join(workspace, constants.LegacyVersionManagerFile)

	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return nil
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Msg("removed legacy version manager config")
	return nil
}
