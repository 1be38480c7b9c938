package logging

import (
	"bytes"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorCloser struct {
	err error
}

func (e *errorCloser) Close() error {
	return e.err
}

type mockTransaction struct {
	rollbackErr error
	rolledBack  bool
}

func (m *mockTransaction) Rollback() error {
	m.rolledBack = true
	return m.rollbackErr
}

func TestSafeClose(t *testing.T) {
	t.Run("closes response body without logging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)

		SafeCloseWithLogging(resp.Body, logger, "list_businesses_body")
		assert.Empty(t, buf.String())
	})

	t.Run("logs error when close fails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeCloseWithLogging(&errorCloser{err: assert.AnError}, logger, "seed_statement")

		output := buf.String()
		assert.Contains(t, output, `"level":"ERROR"`)
		assert.Contains(t, output, `"msg":"failed to close resource"`)
		assert.Contains(t, output, `"operation":"seed_statement"`)
		assert.Contains(t, output, `"component":"resource_management"`)
	})

	t.Run("ignores nil closer", func(t *testing.T) {
		var buf bytes.Buffer
		SafeCloseWithLogging(nil, NewStructuredLogger(&buf, slog.LevelInfo), "noop")
		assert.Empty(t, buf.String())
	})
}

func TestSafeRollback(t *testing.T) {
	t.Run("stays quiet after a commit", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		tx := &mockTransaction{rollbackErr: sql.ErrTxDone}
		SafeRollbackWithLogging(tx, logger, "seed_businesses")

		assert.True(t, tx.rolledBack)
		assert.Empty(t, buf.String())
	})

	t.Run("recognises a wrapped ErrTxDone", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		tx := &mockTransaction{rollbackErr: fmt.Errorf("driver: %w", sql.ErrTxDone)}
		SafeRollbackWithLogging(tx, logger, "seed_businesses")

		assert.Empty(t, buf.String())
	})

	t.Run("logs other rollback failures", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		SafeRollbackWithLogging(&mockTransaction{rollbackErr: assert.AnError}, logger, "seed_businesses")

		output := buf.String()
		assert.Contains(t, output, `"msg":"failed to rollback transaction"`)
		assert.Contains(t, output, `"operation":"seed_businesses"`)
		assert.Contains(t, output, `"component":"database"`)
	})
}

func TestHandleDeferredError(t *testing.T) {
	t.Run("reports deferred failure when the function succeeded", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		write := func() (err error) {
			defer HandleDeferredError(&err, func() error {
				return assert.AnError
			}, logger, "close_workbook")
			return nil
		}

		err := write()
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "close_workbook")
		assert.Contains(t, buf.String(), `"msg":"deferred operation failed"`)
	})

	t.Run("keeps the original error", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)
		original := fmt.Errorf("write rows failed")

		write := func() (err error) {
			defer HandleDeferredError(&err, func() error {
				return assert.AnError
			}, logger, "close_workbook")
			return original
		}

		err := write()
		assert.Same(t, original, err)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("does nothing when the deferred operation succeeds", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewStructuredLogger(&buf, slog.LevelInfo)

		write := func() (err error) {
			defer HandleDeferredError(&err, func() error { return nil }, logger, "close_workbook")
			return nil
		}

		assert.NoError(t, write())
		assert.Empty(t, buf.String())
	})
}
