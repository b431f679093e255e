package app

import (
	"errors"
	"fmt"
)

// Commands understood by App.Run.
const (
	CommandGenerate = "generate"
	CommandInspect  = "inspect"
	CommandValidate = "validate"
	CommandTypes    = "types"
)

// StdoutPath is the output path that selects standard output.
const StdoutPath = "-"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command         string
	DescriptionPath string // .hcl or .json
	OutputPath      string // generate only; "-" for stdout

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandGenerate:
		if cfg.OutputPath == "" {
			return nil, errors.New("generate requires an output path")
		}
		fallthrough
	case CommandInspect, CommandValidate:
		if cfg.DescriptionPath == "" {
			return nil, fmt.Errorf("%s requires a description path", cfg.Command)
		}
	case CommandTypes:
	case "":
		return nil, errors.New("no command given")
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	return &cfg, nil
}
