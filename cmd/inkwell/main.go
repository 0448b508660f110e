package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/inkwell-lang/inkwell/compile"
	"github.com/inkwell-lang/inkwell/config"
	"github.com/inkwell-lang/inkwell/diag"
)

// version is set by -ldflags at release build time; left at this
// placeholder for local/dev builds, mirroring the teacher's misc.GetVersion
// pattern without pulling in a VCS-stamping dependency this tree never
// needed for anything else.
var version = "dev"

type appEnv struct {
	cfg *config.Config
	log *zap.Logger
	rpt *config.Report
}

var env appEnv

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	configFile := cmd.String("config")
	if env.cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if env.log, err = env.cfg.Logging.Prepare(env.rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.log.Debug("program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.log.Info("using default configuration (no file given)")
	}
	return ctx, nil
}

func destroyAppContext(_ context.Context, _ *cli.Command) error {
	if env.log != nil {
		_ = env.log.Sync()
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "inkwell",
		Usage:           "a markup typesetting engine",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "compile",
				Usage:     "compiles a document to its realized page sequence",
				Action:    runCompile,
				ArgsUsage: "SOURCE",
			},
			{
				Name:  "dumpconfig",
				Usage: "dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				Action:    runDumpConfig,
				ArgsUsage: "DESTINATION",
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "inkwell: %v\n", err)
		os.Exit(1)
	}
}

func runCompile(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("compile: expected exactly one SOURCE argument")
	}
	path := cmd.Args().Get(0)

	c := compile.New(env.cfg, env.log)
	doc, err := c.Compile(path)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	// diag.Format can annotate a diagnostic with source context given the
	// Source it anchors to; compile.Document does not thread that back out
	// today (see DESIGN.md), so diagnostics print without the caret line.
	for _, d := range doc.Diags.All() {
		fmt.Fprint(os.Stderr, diag.Format(d, nil))
	}

	if env.log != nil {
		env.log.Info("compile finished", zap.String("source", path), zap.Int("pages", len(doc.Pages)), zap.Bool("had errors", doc.Diags.HasErrors()))
	}
	if doc.Diags.HasErrors() {
		return fmt.Errorf("compile: %s failed with %d error(s)", path, len(doc.Diags.Errors()))
	}
	fmt.Printf("compiled %s: %d page(s)\n", path, len(doc.Pages))
	return nil
}

func runDumpConfig(_ context.Context, cmd *cli.Command) error {
	var (
		data []byte
		err  error
	)
	if cmd.Bool("default") {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.cfg)
	}
	if err != nil {
		return fmt.Errorf("dumpconfig: %w", err)
	}

	out := os.Stdout
	if fname := cmd.Args().Get(0); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("dumpconfig: creating %s: %w", fname, err)
		}
		defer f.Close()
		out = f
	}
	_, err = out.Write(data)
	return err
}
