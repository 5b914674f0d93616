package telemetry

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// OpenPostgres opens an instrumented lib/pq pool whose connections all resolve
// unqualified table names in schema.
func OpenPostgres(dsn, schema string) (*sql.DB, error) {
	if schema != "" {
		var err error
		dsn, err = withSearchPath(dsn, schema)
		if err != nil {
			return nil, err
		}
	}

	return otelsql.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSpanOptions(otelsql.SpanOptions{OmitConnResetSession: true}),
	)
}

// withSearchPath sets search_path as a lib/pq run-time parameter, which is
// sent on every new connection rather than only the first one.
func withSearchPath(dsn, schema string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse postgres url: %w", err)
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	return strings.TrimSpace(dsn + " search_path=" + schema), nil
}
