package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/errors"
	"github.com/mrz1836/railsci/internal/shell"
)

// Packager runs the packaging tool and names its output after the artifact.
type Packager struct {
	exec    *shell.Executor
	command string
}

// NewPackager creates a packager that runs command through exec.
func NewPackager(exec *shell.Executor, command string) *Packager {
	return &Packager{exec: exec, command: command}
}

// BuiltArchivePath returns the war the packaging tool produces, which is named
// after the workspace directory.
func (p *Packager) BuiltArchivePath() string {
	ws := p.exec.WorkDir()
	return filepath.Join(ws, filepath.Base(ws)+constants.ArchiveExtension)
}

// Package runs the package command and renames the produced war to
// <name>.war in the workspace. It returns the path of the renamed war.
func (p *Packager) Package(ctx context.Context, name string) (string, error) {
	log := zerolog.Ctx(ctx)

	if _, err := p.exec.Run(ctx, p.command); err != nil {
		return "", err
	}

	built := p.BuiltArchivePath()
	if _, err := os.Stat(built); err != nil {
		return "", errors.Wrapf(errors.ErrArchiveMissing, "expected %s after %q", built, p.command)
	}

	dest := filepath.Join(p.exec.WorkDir(), name+constants.ArchiveExtension)
	if dest != built {
		if err := os.Rename(built, dest); err != nil {
			return "", fmt.Errorf("failed to rename %s to %s: %w", built, dest, err)
		}
	}

	log.Info().Str("archive", dest).Msg("packaged war")
	return dest, nil
}
