// Package ticketdb counts tickets straight out of the RT database. It is
// the fallback path for installations whose REST interface is not
// reachable from the monitoring host; the query text is a SQL WHERE clause
// over the ticket table instead of TicketSQL.
package ticketdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
)

// Counter counts tickets via a direct Postgres connection.
type Counter struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

// Open connects to the RT database. The connection is verified with a ping
// so authentication and reachability problems surface before the count.
func Open(ctx context.Context, dsn, table string, logger *slog.Logger) (*Counter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ticketdb: open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ticketdb: ping database: %w", err)
	}

	// One query per probe run.
	db.SetMaxOpenConns(1)

	return &Counter{db: db, table: table, logger: logger}, nil
}

// Count runs SELECT COUNT(*) with the operator-supplied WHERE clause. The
// clause comes from the probe's own command line, so it is trusted the
// same way a check_mysql_query argument is.
func (c *Counter) Count(ctx context.Context, where string) (int, error) {
	query := countQuery(c.table, where)
	c.logger.Debug("ticketdb query", "table", c.table, "where", where)

	var count int
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("ticketdb: count query failed: %w", err)
	}
	return count, nil
}

// Close releases the database connection.
func (c *Counter) Close() error {
	return c.db.Close()
}

func countQuery(table, where string) string {
	return fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, table, where)
}
