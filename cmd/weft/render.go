package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weft/internal/config"
	"github.com/vango-dev/weft/internal/demo"
	"github.com/vango-dev/weft/internal/errors"
	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/host"
	"github.com/vango-dev/weft/pkg/render"
	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/snapshot"
)

type renderOptions struct {
	pretty   bool
	snapshot bool
	budget   int
	stats    bool
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [app]",
		Short: "Render a demo app and print its HTML",
		Long: `Mount a demo app on an in-memory host, run the work loop until
nothing is left to do and print the committed HTML.

With --budget the loop is granted that many units per idle period, so the
render is spread over several slices as it would be in a browser.

Examples:
  weft render
  weft render todo --pretty
  weft render tictactoe --budget=3 --stats
  weft render playlist --snapshot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			name := cfg.Dev.App
			if len(args) == 1 {
				name = args[0]
			}
			return runRender(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, name, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "Indent the HTML output")
	cmd.Flags().BoolVar(&opts.snapshot, "snapshot", false, "Store a snapshot of every commit in the configured backend")
	cmd.Flags().IntVarP(&opts.budget, "budget", "b", -1, "Units per idle period (negative for unlimited)")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print commit statistics to stderr")

	return cmd
}

func runRender(out, errOut io.Writer, cfg *config.Config, name string, opts *renderOptions) error {
	app, err := demo.Lookup(name)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, errOut).With("app", app.Name)

	m := host.NewMemory()
	container := m.NewContainer("div")
	sched := scheduler.NewManual()

	rootOpts := []fiber.Option{
		fiber.WithLogger(logger),
		fiber.WithYieldThreshold(cfg.YieldThreshold()),
	}

	var recorder *snapshot.Recorder
	if opts.snapshot {
		store, err := snapshot.Open(cfg)
		if err != nil {
			return err
		}
		if store == nil {
			return errors.New("E122").
				WithDetail("--snapshot needs a snapshot backend").
				WithSuggestion(`Set "snapshot": {"backend": "bolt"} in weft.json`)
		}
		defer store.Close()
		recorder = snapshot.NewRecorder(store, func() string { return render.HTML(container) },
			snapshot.WithApp(app.Name), snapshot.WithLogger(logger))
		rootOpts = append(rootOpts, fiber.WithObserver(recorder))
	}

	if opts.stats {
		rootOpts = append(rootOpts, fiber.WithObserver(fiber.ObserverFuncs{
			Commit: func(s fiber.CommitStats) {
				info(errOut, "cycle %d: %d units in %d slices, %d inserts, %d updates, %d deletions, %d effects",
					s.Cycle, s.Units, s.Slices, s.Inserts, s.Updates, s.Deletions, s.Effects)
			},
		}))
	}

	root := fiber.NewRoot(container, m, sched, rootOpts...)
	root.Render(app.Build())

	steps := drain(sched, opts.budget)
	if sched.Pending() > 0 {
		logger.Warn("render did not settle", "steps", steps)
	}

	if recorder != nil {
		recorder.Close()
		if n := recorder.Dropped(); n > 0 {
			logger.Warn("snapshots dropped", "count", n)
		}
		success(errOut, "Stored %d snapshots", recorder.Written())
	}

	html := render.New(render.Config{Pretty: opts.pretty}).InnerHTML(container)
	_, err = fmt.Fprintln(out, html)
	logger.Debug("rendered", "steps", steps)
	return err
}

// maxSteps bounds the idle periods granted by drain.
const maxSteps = 10000

// drain grants idle periods of budget units until the scheduler is idle and
// returns how many were granted.
func drain(sched *scheduler.Manual, budget int) int {
	if budget < 0 {
		return sched.RunUntilIdle(maxSteps)
	}
	if budget == 0 {
		budget = 1
	}
	n := 0
	for n < maxSteps && sched.Step(budget) {
		n++
	}
	return n
}
