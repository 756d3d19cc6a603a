// Package probe runs the single measure-then-classify cycle of the check.
package probe

import (
	"context"
	"fmt"

	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/threshold"
)

// TicketCounter is the collaborator that produces the measurement. The
// REST client and the direct database counter both satisfy it.
type TicketCounter interface {
	Count(ctx context.Context, query string) (int, error)
}

// Result is the outcome of one probe run.
type Result struct {
	Severity threshold.Severity
	Count    int
}

// Run executes the query once and classifies the count. An error from the
// counter is fatal for the run; classification itself cannot fail because
// threshold presence is validated before Run is called.
func Run(ctx context.Context, counter TicketCounter, query string, warning, critical *threshold.Spec) (Result, error) {
	count, err := counter.Count(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("probe: %w", err)
	}

	sev := threshold.Classify(float64(count), warning, critical)
	return Result{Severity: sev, Count: count}, nil
}
