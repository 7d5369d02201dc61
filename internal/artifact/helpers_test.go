package artifact_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/railsci/internal/clock"
	"github.com/mrz1836/railsci/internal/shell"
	"github.com/mrz1836/railsci/internal/testutil"
)

var (
	_ shell.Runner = (*testutil.MockRunner)(nil)
	_ clock.Clock  = (*testutil.FakeClock)(nil)
)

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func newExecutor(ws string, runner *testutil.MockRunner) *shell.Executor {
	return shell.NewExecutor(ws, shell.WithRunner(runner), shell.WithOutput(&bytes.Buffer{}))
}

func touch(path string) func() {
	return func() {
		_ = os.WriteFile(path, []byte("war"), 0o600)
	}
}

func workspaceDir(parent string) string {
	ws := filepath.Join(parent, "workspace")
	_ = os.MkdirAll(ws, 0o750)
	return ws
}
