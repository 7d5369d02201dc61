package artifact

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/railsci/internal/clock"
	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/logging"
	"github.com/mrz1836/railsci/internal/shell"
)

// Store publishes wars to one application's folder in the artifact store.
type Store struct {
	exec        *shell.Executor
	root        string
	app         string
	settleDelay time.Duration
	clock       clock.Clock
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSettleDelay sets the wait between deleting and importing a war.
func WithSettleDelay(d time.Duration) StoreOption {
	return func(s *Store) { s.settleDelay = d }
}

// WithClock replaces the clock used for the settle delay (for testing).
func WithClock(c clock.Clock) StoreOption {
	return func(s *Store) { s.clock = c }
}

// NewStore creates a store for app under root.
func NewStore(exec *shell.Executor, root, app string, opts ...StoreOption) *Store {
	s := &Store{
		exec:        exec,
		root:        strings.TrimRight(root, "/"),
		app:         app,
		settleDelay: constants.DefaultDeleteSettleDelay,
		clock:       clock.RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FolderURL returns the application's folder, <root>/<app>/.
func (s *Store) FolderURL() string {
	return s.root + "/" + s.app + "/"
}

// FileURL returns the URL of the archive with the given file name.
func (s *Store) FileURL(file string) string {
	return s.FolderURL() + file
}

// List returns the entries of the application's folder.
func (s *Store) List(ctx context.Context) ([]string, error) {
	result, err := s.exec.Run(ctx, "svn list "+s.FolderURL())
	if err != nil {
		return nil, err
	}
	return parseListing(result.Output), nil
}

// Contains reports whether file is present in the application's folder.
func (s *Store) Contains(ctx context.Context, file string) (bool, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(entries, file), nil
}

// Delete removes file from the store.
func (s *Store) Delete(ctx context.Context, file string) error {
	cmd := fmt.Sprintf("svn rm %s -m 'removing war %s'", s.FileURL(file), file)
	_, err := s.exec.Run(ctx, cmd)
	return err
}

// Import uploads the local archive at path as file.
func (s *Store) Import(ctx context.Context, path, file string) error {
	cmd := fmt.Sprintf("svn import %s %s -m 'committing war %s'", path, s.FileURL(file), file)
	_, err := s.exec.Run(ctx, cmd)
	return err
}

// Publish imports the archive at path under file, first deleting an existing
// entry of the same name. path is relative to the workspace or absolute.
func (s *Store) Publish(ctx context.Context, path, file string) error {
	log := zerolog.Ctx(ctx)

	exists, err := s.Contains(ctx, file)
	if err != nil {
		return err
	}

	if exists {
		if err := s.Delete(ctx, file); err != nil {
			return err
		}

		// Known race: nothing confirms the delete has propagated before the
		// import below.
		log.Warn().
			Str("url", logging.SafeValue("url", s.FileURL(file))).
			Dur("settle_delay", s.settleDelay).
			Msg("waiting for artifact delete to settle before import; this is not a guarantee")

		if err := s.clock.Sleep(ctx, s.settleDelay); err != nil {
			return err
		}
	}

	if err := s.Import(ctx, path, file); err != nil {
		return err
	}

	log.Info().Str("url", logging.SafeValue("url", s.FileURL(file))).Bool("replaced", exists).Msg("published war")
	return nil
}

// parseListing splits svn list output into entry names.
func parseListing(output string) []string {
	var entries []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}
