package dbenv

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	// Register the pgx database/sql driver. The server speaks the Postgres
	// wire protocol, so any Postgres client works against it.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ExecOptions controls one Execute call.
type ExecOptions struct {
	// User is the username for the connection. Empty means the Server's
	// configured user.
	User string

	// Autocommit executes the statement outside an explicit transaction.
	// When false, the statement runs inside a transaction committed before
	// Execute returns.
	Autocommit bool

	// ExpectRows fetches and returns the statement's result rows. When
	// false, the statement is executed for effect and Execute returns nil
	// rows.
	ExpectRows bool
}

// DefaultExecOptions returns the options Execute is most commonly called
// with: autocommit on, rows expected, the Server's configured user.
func DefaultExecOptions() ExecOptions {
	return ExecOptions{Autocommit: true, ExpectRows: true}
}

// Execute opens a new connection to the running server and executes the
// supplied SQL. Each call is one-shot: the connection is opened for this
// statement and closed before returning, so no state is shared between
// calls.
//
// When opts.ExpectRows is set, all result rows are fetched and returned in
// order; otherwise the returned rows are nil. Any connection or execution
// failure is logged together with the offending statement and returned to
// the caller — never swallowed.
func (s *Server) Execute(ctx context.Context, statement string, opts ExecOptions) ([][]any, error) {
	rows, err := s.execute(ctx, statement, opts)
	if err != nil {
		s.log.Error("executing SQL failed", "statement", statement, "error", err)
		return nil, fmt.Errorf("execute SQL: %w", err)
	}
	return rows, nil
}

func (s *Server) execute(ctx context.Context, statement string, opts ExecOptions) ([][]any, error) {
	user := opts.User
	if user == "" {
		user = s.cfg.user
	}

	db, err := sql.Open("pgx", s.dsn(user))
	if err != nil {
		return nil, err
	}
	defer db.Close() //nolint:errcheck // one-shot connection teardown
	// One-shot semantics: a single connection, no idle pool left behind.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	if opts.Autocommit {
		return runStatement(ctx, db, statement, opts.ExpectRows)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	result, err := runStatement(ctx, tx, statement, opts.ExpectRows)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// querier is the common query surface of *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// runStatement executes the statement against q, fetching all rows when
// expectRows is set.
func runStatement(ctx context.Context, q querier, statement string, expectRows bool) ([][]any, error) {
	if !expectRows {
		_, err := q.ExecContext(ctx, statement)
		return nil, err
	}

	rows, err := q.QueryContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // drained below; Err checked
	return scanAll(rows)
}

// scanAll fetches every remaining row into a generic [][]any result.
func scanAll(rows *sql.Rows) ([][]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	return out, rows.Err()
}

// dsn builds the connection string for a one-shot connection as the given
// user. The test server runs without TLS.
func (s *Server) dsn(user string) string {
	return fmt.Sprintf("postgres://%s@%s/?sslmode=disable",
		user, net.JoinHostPort(s.cfg.host, strconv.Itoa(s.cfg.port)))
}
