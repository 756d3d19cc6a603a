package threshold

import "testing"

func TestParseAlerts(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		value float64
		want  bool
	}{
		{name: "bare max above", spec: "10", value: 11, want: true},
		{name: "bare max at bound", spec: "10", value: 10, want: false},
		{name: "bare max below", spec: "10", value: 3, want: false},
		{name: "bare max negative value", spec: "10", value: -5, want: false},
		{name: "colon max above", spec: ":10", value: 11, want: true},
		{name: "colon max at bound", spec: ":10", value: 10, want: false},
		{name: "min only below", spec: "10:", value: 9, want: true},
		{name: "min only at bound", spec: "10:", value: 10, want: false},
		{name: "min only above", spec: "10:", value: 200, want: false},
		{name: "range below", spec: "4:18", value: 3, want: true},
		{name: "range above", spec: "4:18", value: 19, want: true},
		{name: "range inside", spec: "4:18", value: 10, want: false},
		{name: "range at lower", spec: "4:18", value: 4, want: false},
		{name: "range at upper", spec: "4:18", value: 18, want: false},
		{name: "inverted inside", spec: "@4:18", value: 10, want: true},
		{name: "inverted at lower", spec: "@4:18", value: 4, want: true},
		{name: "inverted at upper", spec: "@4:18", value: 18, want: true},
		{name: "inverted below", spec: "@4:18", value: 3, want: false},
		{name: "inverted above", spec: "@4:18", value: 19, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) returned unexpected error: %v", tt.spec, err)
			}
			if got := spec.Alerts(tt.value); got != tt.want {
				t.Fatalf("Parse(%q).Alerts(%v) = %v, want %v", tt.spec, tt.value, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{name: "non-numeric", spec: "abc"},
		{name: "non-numeric upper", spec: "4:abc"},
		{name: "min greater than max", spec: "18:4"},
		{name: "inverted min greater than max", spec: "@18:4"},
		{name: "empty", spec: ""},
		{name: "only whitespace", spec: "   "},
		{name: "bare colon", spec: ":"},
		{name: "bare at sign", spec: "@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.spec); err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.spec)
			}
		})
	}
}

func TestParseEquivalentMaxForms(t *testing.T) {
	bare, err := Parse("10")
	if err != nil {
		t.Fatalf("Parse(\"10\"): %v", err)
	}
	colon, err := Parse(":10")
	if err != nil {
		t.Fatalf("Parse(\":10\"): %v", err)
	}

	for _, value := range []float64{-1, 0, 9.5, 10, 10.5, 100} {
		if bare.Alerts(value) != colon.Alerts(value) {
			t.Fatalf("Alerts(%v) differs between \"10\" and \":10\"", value)
		}
	}
}

func TestClassify(t *testing.T) {
	warn := mustParse(t, "10")
	crit := mustParse(t, "18")

	tests := []struct {
		name     string
		value    float64
		warning  *Spec
		critical *Spec
		want     Severity
	}{
		{name: "critical dominates", value: 20, warning: warn, critical: crit, want: Critical},
		{name: "warning only", value: 12, warning: warn, critical: crit, want: Warning},
		{name: "ok", value: 5, warning: warn, critical: crit, want: OK},
		{name: "warning without critical", value: 12, warning: warn, want: Warning},
		{name: "critical without warning", value: 20, critical: crit, want: Critical},
		{name: "no thresholds", value: 12, want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.value, tt.warning, tt.critical); got != tt.want {
				t.Fatalf("Classify(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestAlertsIsIdempotent(t *testing.T) {
	spec := mustParse(t, "@4:18")
	first := spec.Alerts(7)
	for i := 0; i < 3; i++ {
		if spec.Alerts(7) != first {
			t.Fatal("Alerts changed its answer between identical calls")
		}
	}
}

func TestSeverityLabelsAndExitCodes(t *testing.T) {
	tests := []struct {
		severity Severity
		label    string
		code     int
	}{
		{OK, "OK", 0},
		{Warning, "WARNING", 1},
		{Critical, "CRITICAL", 2},
		{Unknown, "UNKNOWN", 3},
	}

	for _, tt := range tests {
		if tt.severity.String() != tt.label {
			t.Errorf("String() = %q, want %q", tt.severity.String(), tt.label)
		}
		if tt.severity.ExitCode() != tt.code {
			t.Errorf("ExitCode() = %d, want %d", tt.severity.ExitCode(), tt.code)
		}
	}
}

func mustParse(t *testing.T, text string) *Spec {
	t.Helper()
	spec, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return spec
}
