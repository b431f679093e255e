package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/modelgen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError reports a command line that could not be understood. Every
// failure, usage included, exits with status 1.
func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 1, Message: fmt.Sprintf(format, args...)}
}

// commandArgs lists the positional arguments each command takes.
var commandArgs = map[string][]string{
	app.CommandGenerate: {"DESCRIPTION", "OUTPUT"},
	app.CommandInspect:  {"DESCRIPTION"},
	app.CommandValidate: {"DESCRIPTION"},
	app.CommandTypes:    nil,
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("modelgen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
modelgen - compiles a model description into kernel instantiations.

Usage:
  modelgen [options] generate DESCRIPTION OUTPUT
  modelgen [options] inspect DESCRIPTION
  modelgen [options] validate DESCRIPTION
  modelgen [options] types

Arguments:
  DESCRIPTION
    Path to a .hcl or .json model description.
  OUTPUT
    Path of the generated header, or - for standard output.

Options:
`)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	command := flagSet.Arg(0)
	rest := flagSet.Args()[1:]
	want, ok := commandArgs[command]
	if !ok {
		return nil, false, usageError("unknown command %q: must be one of generate, inspect, validate, types", command)
	}
	if len(rest) != len(want) {
		return nil, false, usageError("usage: modelgen %s", strings.TrimSpace(command+" "+strings.Join(want, " ")))
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	slog.Debug("CLI parameter validation complete.")

	cfg := app.Config{Command: command, LogFormat: logFormat, LogLevel: logLevel}
	if len(rest) > 0 {
		cfg.DescriptionPath = rest[0]
	}
	if len(rest) > 1 {
		cfg.OutputPath = rest[1]
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "command", config.Command)
	return config, false, nil
}
