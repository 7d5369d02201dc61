package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/railsci/internal/artifact"
	"github.com/mrz1836/railsci/internal/assets"
	"github.com/mrz1836/railsci/internal/clock"
	"github.com/mrz1836/railsci/internal/config"
	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/errors"
	"github.com/mrz1836/railsci/internal/report"
	"github.com/mrz1836/railsci/internal/scm"
	"github.com/mrz1836/railsci/internal/shell"
	"github.com/mrz1836/railsci/internal/workspace"
)

// Outcome collects what a build did, including the steps that ran before a
// failure.
type Outcome struct {
	Steps []StepRecord

	// Source is the resolved checkout; zero until the archive step starts.
	Source scm.Source

	// Archive is the local path of the packaged war.
	Archive string

	// Report summarizes results.xml when the spec step ran and the report
	// could be read.
	Report *report.Summary
}

// Driver runs the build steps for one configuration.
type Driver struct {
	cfg      *config.Config
	exec     *shell.Executor
	resolver scm.BranchResolver
	clock    clock.Clock
}

// Option configures a Driver.
type Option func(*Driver)

// WithExecutor replaces the command executor.
func WithExecutor(exec *shell.Executor) Option {
	return func(d *Driver) { d.exec = exec }
}

// WithBranchResolver replaces how the git branch is read when the
// configuration does not name one.
func WithBranchResolver(r scm.BranchResolver) Option {
	return func(d *Driver) { d.resolver = r }
}

// WithClock replaces the clock used for step timing and the settle delay.
func WithClock(c clock.Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// NewDriver creates a driver for cfg. Unless replaced, commands run in the
// workspace with the configured timeout and default env.
func NewDriver(cfg *config.Config, opts ...Option) (*Driver, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}

	d := &Driver{
		cfg:      cfg,
		resolver: scm.HeadResolver{},
		clock:    clock.RealClock{},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.exec == nil {
		d.exec = shell.NewExecutor(cfg.WorkspacePath,
			shell.WithTimeout(cfg.Commands.Timeout),
			shell.WithDefaultEnv(cfg.Commands.Env),
			shell.WithClock(d.clock),
		)
	}
	return d, nil
}

// Steps returns the names of the steps the configuration enables, in order.
func (d *Driver) Steps() []StepName {
	var names []StepName
	for _, s := range d.plan() {
		if s.enabled {
			names = append(names, s.name)
		}
	}
	return names
}

func (d *Driver) plan() []step {
	return []step{
		{name: StepClean, enabled: true, run: d.clean},
		{name: StepBundle, enabled: true, run: d.bundle},
		{name: StepConfigure, enabled: true, run: d.configure},
		{name: StepMigrate, enabled: d.cfg.RunSpecs, run: d.migrate},
		{name: StepSpecs, enabled: d.cfg.RunSpecs, run: d.specs},
		{name: StepCache, enabled: d.cfg.CompileAssets, run: d.cache},
		{name: StepAssets, enabled: d.cfg.CompileAssets, run: d.assets},
		{name: StepArchive, enabled: true, run: d.archive},
	}
}

// Run executes the build. It stops at the first failing step and returns a
// *StepError together with the outcome so far.
func (d *Driver) Run(ctx context.Context) (*Outcome, error) {
	log := zerolog.Ctx(ctx)
	outcome := &Outcome{}

	log.Info().
		Str("app", d.cfg.AppName).
		Str("workspace", d.cfg.WorkspacePath).
		Bool("run_specs", d.cfg.RunSpecs).
		Bool("compile_assets", d.cfg.CompileAssets).
		Msg("starting build")

	for _, s := range d.plan() {
		if !s.enabled {
			outcome.Steps = append(outcome.Steps, StepRecord{Name: s.name, Skipped: true})
			log.Debug().Str("step_name", string(s.name)).Msg("skipping step")
			continue
		}

		if err := ctx.Err(); err != nil {
			return outcome, &StepError{Step: s.name, Err: err}
		}

		log.Info().Str("step_name", string(s.name)).Msg("executing step")
		started := d.clock.Now()
		err := s.run(ctx, outcome)
		record := StepRecord{Name: s.name, Duration: d.clock.Now().Sub(started), Err: err}
		outcome.Steps = append(outcome.Steps, record)

		if err != nil {
			log.Error().Err(err).
				Str("step_name", string(s.name)).
				Int64("duration_ms", record.Duration.Milliseconds()).
				Msg("step execution failed")
			return outcome, &StepError{Step: s.name, Err: err}
		}

		log.Info().
			Str("step_name", string(s.name)).
			Int64("duration_ms", record.Duration.Milliseconds()).
			Msg("step completed")
	}

	log.Info().Str("archive", outcome.Source.ArchiveName()).Msg("build completed")
	return outcome, nil
}

func (d *Driver) clean(ctx context.Context, _ *Outcome) error {
	return workspace.Clean(ctx, d.cfg.WorkspacePath)
}

func (d *Driver) bundle(ctx context.Context, _ *Outcome) error {
	_, err := d.exec.Run(ctx, constants.BundleInstallCommand)
	return err
}

func (d *Driver) configure(ctx context.Context, _ *Outcome) error {
	path, err := workspace.WriteDatabaseConfig(d.cfg.WorkspacePath, d.cfg.AppName)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("path", path).Msg("generated database config")

	_, err = workspace.MaterializeTemplates(ctx, d.cfg.WorkspacePath)
	return err
}

func (d *Driver) migrate(ctx context.Context, _ *Outcome) error {
	_, err := d.exec.Run(ctx, constants.MigrateCommand, constants.TestRailsEnv)
	return err
}

func (d *Driver) specs(ctx context.Context, outcome *Outcome) error {
	if _, err := d.exec.Run(ctx, constants.SpecCommand, constants.TestRailsEnv); err != nil {
		return err
	}

	log := zerolog.Ctx(ctx)
	path := filepath.Join(d.cfg.WorkspacePath, constants.TestReportFile)
	summary, err := report.ParseFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("test report not found")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("failed to read test report")
		}
		return nil
	}

	outcome.Report = &summary
	log.Info().Object("report", summary).Msg("test report")
	return nil
}

func (d *Driver) cache(ctx context.Context, _ *Outcome) error {
	return assets.NewCache(d.cfg.WorkspacePath, d.cfg.HomeDir, d.cfg.JobName()).Setup(ctx)
}

func (d *Driver) assets(ctx context.Context, _ *Outcome) error {
	_, err := d.exec.Run(ctx, constants.AssetsCommand, constants.CIRailsEnv)
	return err
}

func (d *Driver) archive(ctx context.Context, outcome *Outcome) error {
	source, err := scm.Resolve(d.cfg.WorkspacePath, d.cfg.SCM, d.resolver)
	if err != nil {
		return err
	}
	outcome.Source = source
	zerolog.Ctx(ctx).Info().
		Str("scm", source.Kind.String()).
		Str("artifact", source.ArtifactName).
		Msg("resolved artifact name")

	path, err := artifact.NewPackager(d.exec, d.cfg.Artifact.PackageCommand).Package(ctx, source.ArtifactName)
	if err != nil {
		return err
	}
	outcome.Archive = path

	store := artifact.NewStore(d.exec, d.cfg.Artifact.Root, d.cfg.AppName,
		artifact.WithSettleDelay(d.cfg.Artifact.DeleteSettleDelay),
		artifact.WithClock(d.clock),
	)
	return store.Publish(ctx, source.ArchiveName(), source.ArchiveName())
}
