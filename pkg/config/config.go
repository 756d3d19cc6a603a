// Package config loads and validates probe configuration from command line
// flags and the credentials file.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the flag surface.
const (
	DefaultCredentialsFile = "/etc/nagios/rtrc"
	DefaultServerURL       = "https://localhost"
	DefaultQuery           = "Queue='general'"
	DefaultTimeout         = 10 * time.Second
	DefaultTicketTable     = "Tickets"
)

// Config stores one probe invocation's configuration. It is built once in
// main and passed down explicitly; nothing in the probe reads it from
// package-level state.
type Config struct {
	Warning  string
	Critical string

	CredentialsFile string
	ServerURL       string
	Query           string

	Timeout time.Duration
	Verbose bool

	// Direct database mode. When DSN is set the REST client is bypassed
	// and Query is a SQL WHERE clause over TicketTable.
	DSN         string
	TicketTable string

	// Optional Pushgateway publishing.
	PushgatewayURL string
	Instance       string
}

// Credentials holds the RT account read from the credentials file.
type Credentials struct {
	User string
	Pass string
}

// Load parses args (not including the program name) into a Config and
// validates it. Flag errors and validation failures are returned as plain
// errors so the caller can map them onto the UNKNOWN exit path.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("check_rt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var timeoutSeconds int
	fs.StringVar(&cfg.Warning, "w", "", "warning threshold range")
	fs.StringVar(&cfg.Warning, "warning", "", "warning threshold range")
	fs.StringVar(&cfg.Critical, "c", "", "critical threshold range")
	fs.StringVar(&cfg.Critical, "critical", "", "critical threshold range")
	fs.StringVar(&cfg.CredentialsFile, "f", DefaultCredentialsFile, "path to the credentials file")
	fs.StringVar(&cfg.CredentialsFile, "file", DefaultCredentialsFile, "path to the credentials file")
	fs.StringVar(&cfg.ServerURL, "u", DefaultServerURL, "RT server URL")
	fs.StringVar(&cfg.ServerURL, "url", DefaultServerURL, "RT server URL")
	fs.StringVar(&cfg.Query, "q", DefaultQuery, "ticket search query")
	fs.StringVar(&cfg.Query, "query", DefaultQuery, "ticket search query")
	fs.IntVar(&timeoutSeconds, "t", int(DefaultTimeout/time.Second), "connection timeout in seconds")
	fs.IntVar(&timeoutSeconds, "timeout", int(DefaultTimeout/time.Second), "connection timeout in seconds")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose logging on stderr")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose logging on stderr")
	fs.StringVar(&cfg.DSN, "dsn", "", "Postgres DSN for direct database mode")
	fs.StringVar(&cfg.TicketTable, "db-table", DefaultTicketTable, "ticket table for direct database mode")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway", "", "Pushgateway base URL for metrics publishing")
	fs.StringVar(&cfg.Instance, "instance", "", "instance label for pushed metrics (default: hostname)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Timeout = time.Duration(timeoutSeconds) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Instance == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "unknown"
		}
		cfg.Instance = host
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Warning == "" && c.Critical == "" {
		return fmt.Errorf("at least one of -w/--warning or -c/--critical is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("-t/--timeout must be positive")
	}
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("-u/--url must not be empty")
	}
	if strings.TrimSpace(c.Query) == "" {
		return fmt.Errorf("-q/--query must not be empty")
	}
	if c.DSN != "" && strings.TrimSpace(c.TicketTable) == "" {
		return fmt.Errorf("--db-table must not be empty in direct database mode")
	}
	return nil
}

// LoadCredentials reads the key=value credentials file and returns the RT
// account. Every failure here is a configuration error the caller must
// surface before any network activity.
func LoadCredentials(path string) (Credentials, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials file %s: %w", path, err)
	}

	creds := Credentials{
		User: strings.TrimSpace(values["user"]),
		Pass: strings.TrimSpace(values["pass"]),
	}
	if creds.User == "" {
		return Credentials{}, fmt.Errorf("credentials file %s: missing key %q", path, "user")
	}
	if creds.Pass == "" {
		return Credentials{}, fmt.Errorf("credentials file %s: missing key %q", path, "pass")
	}
	return creds, nil
}
