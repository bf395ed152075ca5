package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	harness "github.com/fpga-npu/infra/npu-harness"
	"github.com/fpga-npu/infra/npu-harness/exitcodes"
	"github.com/fpga-npu/infra/npu-harness/flags"
	"github.com/fpga-npu/infra/npu-harness/logging"
	"github.com/fpga-npu/infra/npu-harness/service"
)

var (
	Version   = "v0.2.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "npu-harness"
	app.Usage = "FPGA NPU Automated Testing Framework"
	app.Description = "npu-harness orchestrates the NPU project's test suites and reports the results"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			cli.HandleExitCoder(cli.Exit(err.Error(), errorExitCode(err)))
		}
	}

	// Start telemetry
	shutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up open telemetry: %v\n", err)
		os.Exit(exitcodes.RuntimeErr)
	}
	defer shutdown()

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		// ExitErrHandler has already mapped the exit code; anything left
		// here is an unexpected cli failure.
		fmt.Fprintf(os.Stderr, "application failed: %v\n", err)
		os.Exit(exitcodes.RuntimeErr)
	}
}

// errorExitCode maps an error to the process exit code. Only a test
// failure exits 1; everything else, usage and flag-parse errors included,
// is an operational error and exits 2.
func errorExitCode(err error) int {
	if harness.IsTestFailureError(err) {
		return exitcodes.TestFailure
	}
	return exitcodes.RuntimeErr
}

func run(ctx *cli.Context) error {
	fileLogger, err := logging.NewFileLogger(ctx.String(flags.LogFile.Name), ctx.Bool(flags.Verbose.Name))
	if err != nil {
		return harness.NewRuntimeError(fmt.Errorf("failed to set up logging: %w", err))
	}
	defer fileLogger.Close()
	log := fileLogger.Logger()

	cfg, err := harness.NewConfig(ctx, log)
	if err != nil {
		return harness.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}
	log.Debug("config loaded", "projectRoot", cfg.ProjectRoot, "reportsDir", cfg.ReportsDir)

	// Expose healthz and metrics for the duration of the run.
	svc := service.New(log)
	svc.Start(ctx.Context)
	defer svc.Shutdown()

	h, err := harness.New(cfg)
	if err != nil {
		return harness.NewRuntimeError(fmt.Errorf("failed to create harness: %w", err))
	}

	return h.Run(ctx.Context)
}
