// Command rulecheck validates a record file against a rule set file and
// prints the result as JSON.
//
//	rulecheck -rules signup.yaml -record payload.json -all
//
// The record is read from stdin when -record is omitted. Exit status is 0
// for a valid record, 1 for an invalid one and 2 for usage or load errors.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/rulekit/pkg/config"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/rulefile"
	"github.com/dmitrymomot/rulekit/pkg/validator"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg settings
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(stderr, "rulecheck: %v\n", err)
		return exitError
	}

	fs := flag.NewFlagSet("rulecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rulesPath := fs.String("rules", "", "rule set file (YAML or JSON)")
	recordPath := fs.String("record", "", "record file (YAML or JSON); stdin when empty")
	fs.BoolVar(&cfg.CollectAll, "all", cfg.CollectAll, "report every failure instead of stopping at the first")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject rule sets that reference unknown rules")
	fs.BoolVar(&cfg.ExtraRules, "extra", cfg.ExtraRules, "register the extended rule table")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *rulesPath == "" {
		fmt.Fprintln(stderr, "rulecheck: -rules is required")
		fs.Usage()
		return exitError
	}

	log, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "rulecheck: %v\n", err)
		return exitError
	}

	var opts []validator.Option
	opts = append(opts, validator.WithLogger(log))
	if cfg.ExtraRules {
		opts = append(opts, validator.WithExtraRules())
	}
	engine := validator.New(opts...)

	parseOpts := []rulefile.Option{rulefile.WithMessageKey(cfg.MessageKey)}
	if cfg.Strict {
		parseOpts = append(parseOpts, rulefile.WithStrict(engine))
	}
	rules, err := rulefile.Load(ctx, *rulesPath, parseOpts...)
	if err != nil {
		log.Error("loading rule set", logger.Path(*rulesPath), logger.Error(err))
		return exitError
	}

	record, err := readRecord(ctx, *recordPath, stdin)
	if err != nil {
		log.Error("loading record", logger.Path(*recordPath), logger.Error(err))
		return exitError
	}

	valid := engine.Evaluate(rules, record, cfg.CollectAll)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(engine.Result()); err != nil {
		log.Error("writing result", logger.Error(err))
		return exitError
	}

	if !valid {
		return exitInvalid
	}
	return exitValid
}

// newLogger builds the command logger. An unknown format is reported as an
// error rather than the factory's panic.
func newLogger(cfg settings, w io.Writer) (*slog.Logger, error) {
	format := logger.Format(cfg.LogFormat)
	if format != logger.FormatJSON && format != logger.FormatText {
		return nil, errors.New("unsupported log format " + cfg.LogFormat)
	}
	return logger.New(
		logger.WithOutput(w),
		logger.WithFormat(format),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	), nil
}

func readRecord(ctx context.Context, path string, stdin io.Reader) (validator.Record, error) {
	if path != "" {
		return rulefile.LoadRecord(ctx, path)
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	return rulefile.ParseRecord(ctx, content)
}
