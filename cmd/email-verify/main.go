package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doziebest/email-verifier-application/internal/verify/common/clock"
	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/config"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
	"github.com/doziebest/email-verifier-application/internal/verify/gateways/export"
	"github.com/doziebest/email-verifier-application/internal/verify/gateways/ingest"
	"github.com/doziebest/email-verifier-application/internal/verify/services/classifier"
	"github.com/doziebest/email-verifier-application/internal/verify/setup"
)

const usage = `usage: email-verify [flags] [address ...]

Classifies addresses as valid, disposable or invalid_format and writes the
results to stdout. Addresses come from the arguments and/or -file ("-" reads
stdin; *.csv files need an "email" column).

`

func main() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("email-verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "read addresses from a CSV or line-oriented file (\"-\" for stdin)")
	format := fs.String("format", "csv", "output format: csv or json")
	status := fs.String("status", "", "comma-separated statuses to keep (valid, disposable, invalid_format)")
	limit := fs.Int("limit", 0, "maximum addresses to classify (default: configured bulk_limit)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	outFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	statuses, err := parseStatuses(*status)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	// Keep stdout clean for results; only warnings reach stderr.
	if err := log.Configure("dev", "warn"); err != nil {
		fmt.Fprintf(stderr, "Logging configuration error: %v\n", err)
		return 1
	}
	logger := log.GetLogger()

	addresses := fs.Args()
	if *file != "" {
		fromFile, err := readFile(*file, stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Input error: %v\n", err)
			return 1
		}
		addresses = append(addresses, fromFile...)
	}
	if len(addresses) == 0 {
		fs.Usage()
		return 2
	}

	clk := clock.RealClock{}
	repo, store, err := setup.BuildDisposableSet(cfg, clk, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Disposable list error: %v\n", err)
		return 1
	}
	defer store.Close()

	c := classifier.New(classifier.Options{Set: repo, Clock: clk, Logger: logger})
	if *limit <= 0 {
		*limit = cfg.BulkLimit
	}
	batch := c.ClassifyBatch(addresses, *limit)

	if err := export.Write(stdout, outFormat, batch.Verdicts.Filter(statuses...)); err != nil {
		fmt.Fprintf(stderr, "Output error: %v\n", err)
		return 1
	}

	counts := batch.Verdicts.Counts()
	fmt.Fprintf(stderr, "processed %d: %d valid, %d disposable, %d invalid_format\n",
		len(batch.Verdicts), counts[domain.StatusValid], counts[domain.StatusDisposable], counts[domain.StatusInvalidFormat])
	if batch.Truncated {
		fmt.Fprintf(stderr, "warning: only the first %d addresses were processed; %d were dropped\n", len(batch.Verdicts), batch.Dropped)
	}
	return 0
}

func readFile(path string, stdin io.Reader) ([]string, error) {
	if path == "-" {
		return ingest.ParseLines(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.Parse(path, f)
}

func parseStatuses(s string) ([]domain.Status, error) {
	var out []domain.Status
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		st, err := domain.ParseStatus(part)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}
