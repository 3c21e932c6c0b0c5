package database_test

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"tshirt-studio-backend/internal/database"
)

// The stub driver answers each statement from a queue of canned replies, so
// the gateway's scan and error mapping code runs through the real
// database/sql machinery without a Postgres server.

type stubReply struct {
	columns []string
	rows    [][]driver.Value
	result  driver.Result
	err     error
}

type stubConn struct {
	mu      sync.Mutex
	replies []stubReply
}

func (c *stubConn) pop() (stubReply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.replies) == 0 {
		return stubReply{}, fmt.Errorf("no reply queued")
	}
	reply := c.replies[0]
	c.replies = c.replies[1:]
	return reply, nil
}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{conn: c}, nil
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return nil, fmt.Errorf("transactions not supported")
}

type stubStmt struct {
	conn *stubConn
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	reply, err := s.conn.pop()
	if err != nil {
		return nil, err
	}
	if reply.err != nil {
		return nil, reply.err
	}
	return reply.result, nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	reply, err := s.conn.pop()
	if err != nil {
		return nil, err
	}
	if reply.err != nil {
		return nil, reply.err
	}
	return &stubRows{columns: reply.columns, rows: reply.rows}, nil
}

type stubRows struct {
	columns []string
	rows    [][]driver.Value
	pos     int
}

func (r *stubRows) Columns() []string { return r.columns }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

type stubDriver struct{}

var (
	stubMu    sync.Mutex
	stubConns = map[string]*stubConn{}
	stubSeq   int
)

func (stubDriver) Open(name string) (driver.Conn, error) {
	stubMu.Lock()
	defer stubMu.Unlock()

	conn, ok := stubConns[name]
	if !ok {
		return nil, fmt.Errorf("unknown stub connection %q", name)
	}
	return conn, nil
}

func init() {
	sql.Register("stub", stubDriver{})
}

// openStub builds a gateway client whose statements consume the queued
// replies in order.
func openStub(t *testing.T, replies ...stubReply) *database.Client {
	t.Helper()

	stubMu.Lock()
	stubSeq++
	name := fmt.Sprintf("stub-%d", stubSeq)
	stubConns[name] = &stubConn{replies: replies}
	stubMu.Unlock()

	db, err := sql.Open("stub", name)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	client := database.NewClientWithDB(db)
	t.Cleanup(func() { client.Close() })
	return client
}
