// Package plugin renders check results in the Nagios plugin text protocol:
// one status line on stdout, an exit code between 0 and 3.
package plugin

import (
	"fmt"
	"io"

	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/threshold"
)

// ServiceLabel prefixes every status line so operators can tell which
// check produced it.
const ServiceLabel = "RT"

// WriteResult writes the check status line for a measured ticket count,
// including perfdata. The warning/critical arguments are the raw threshold
// expressions and may be empty when the corresponding threshold was not
// supplied.
func WriteResult(w io.Writer, sev threshold.Severity, count int, warning, critical string) {
	fmt.Fprintf(w, "%s %s - matching tickets was %d | tickets=%d;%s;%s;0\n",
		ServiceLabel, sev, count, count, warning, critical)
}

// WriteUnknown writes a status line for a failure that prevented the check
// from producing a measurement. No perfdata is emitted.
func WriteUnknown(w io.Writer, reason string) {
	fmt.Fprintf(w, "%s %s - %s\n", ServiceLabel, threshold.Unknown, reason)
}
