package plugin

import (
	"strings"
	"testing"

	"github.com/bart95130/nagios-plugin-requesttracker-ticketcount/internal/threshold"
)

func TestWriteResult(t *testing.T) {
	tests := []struct {
		name     string
		severity threshold.Severity
		count    int
		warning  string
		critical string
		want     string
	}{
		{
			name:     "critical with both thresholds",
			severity: threshold.Critical,
			count:    23,
			warning:  "10",
			critical: "18",
			want:     "RT CRITICAL - matching tickets was 23 | tickets=23;10;18;0\n",
		},
		{
			name:     "ok with warning only",
			severity: threshold.OK,
			count:    0,
			warning:  "10",
			want:     "RT OK - matching tickets was 0 | tickets=0;10;;0\n",
		},
		{
			name:     "warning with inverted critical",
			severity: threshold.Warning,
			count:    7,
			warning:  "5",
			critical: "@10:20",
			want:     "RT WARNING - matching tickets was 7 | tickets=7;5;@10:20;0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			WriteResult(&sb, tt.severity, tt.count, tt.warning, tt.critical)
			if sb.String() != tt.want {
				t.Fatalf("WriteResult() = %q, want %q", sb.String(), tt.want)
			}
		})
	}
}

func TestWriteUnknown(t *testing.T) {
	var sb strings.Builder
	WriteUnknown(&sb, "credentials file /etc/nagios/rtrc: no such file")

	got := sb.String()
	if !strings.HasPrefix(got, "RT UNKNOWN - ") {
		t.Fatalf("WriteUnknown() = %q, want RT UNKNOWN prefix", got)
	}
	if strings.Contains(got, "|") {
		t.Fatalf("WriteUnknown() = %q, want no perfdata section", got)
	}
}
