// check_rt is a Nagios plugin that counts tickets in a Request Tracker
// instance and classifies the count against warning/critical thresholds.
//
// Exit codes follow the plugin convention: 0 OK, 1 WARNING, 2 CRITICAL,
// 3 UNKNOWN. The single stdout line carries the count and perfdata;
// everything else (verbose logging included) goes to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/metrics"
	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/plugin"
	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/probe"
	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/rt"
	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/threshold"
	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/ticketdb"
	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/pkg/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		plugin.WriteUnknown(out, fmt.Sprintf("configuration error: %v", err))
		return threshold.Unknown.ExitCode()
	}

	logger := newLogger(cfg.Verbose)

	warning, critical, err := parseThresholds(cfg)
	if err != nil {
		plugin.WriteUnknown(out, err.Error())
		return threshold.Unknown.ExitCode()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	counter, cleanup, err := buildCounter(ctx, cfg, logger)
	if err != nil {
		plugin.WriteUnknown(out, err.Error())
		return threshold.Unknown.ExitCode()
	}
	defer cleanup()

	result, err := probe.Run(ctx, counter, cfg.Query, warning, critical)
	if err != nil {
		plugin.WriteUnknown(out, err.Error())
		return threshold.Unknown.ExitCode()
	}

	plugin.WriteResult(out, result.Severity, result.Count, cfg.Warning, cfg.Critical)

	if cfg.PushgatewayURL != "" {
		publisher := metrics.NewPublisher(cfg.PushgatewayURL, cfg.Instance)
		if err := publisher.Publish(result.Count, result.Severity.ExitCode()); err != nil {
			logger.Warn("metrics publishing failed", "error", err)
		}
	}

	return result.Severity.ExitCode()
}

// parseThresholds turns the raw -w/-c expressions into specs. Absent
// expressions stay nil; config validation already guaranteed at least one
// is present.
func parseThresholds(cfg *config.Config) (warning, critical *threshold.Spec, err error) {
	if cfg.Warning != "" {
		if warning, err = threshold.Parse(cfg.Warning); err != nil {
			return nil, nil, err
		}
	}
	if cfg.Critical != "" {
		if critical, err = threshold.Parse(cfg.Critical); err != nil {
			return nil, nil, err
		}
	}
	return warning, critical, nil
}

// buildCounter picks the collaborator that produces the measurement:
// direct database mode when a DSN is given, REST otherwise. Credentials
// are only read (and required) on the REST path.
func buildCounter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (probe.TicketCounter, func(), error) {
	if cfg.DSN != "" {
		counter, err := ticketdb.Open(ctx, cfg.DSN, cfg.TicketTable, logger)
		if err != nil {
			return nil, nil, err
		}
		return counter, func() { _ = counter.Close() }, nil
	}

	creds, err := config.LoadCredentials(cfg.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}

	client, err := rt.NewClient(cfg.ServerURL, creds.User, creds.Pass, cfg.Timeout, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() {}, nil
}

// newLogger builds the stderr logger. Stdout is reserved for the plugin
// status line.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
