package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// PanicRecovery recovers from panics in later handlers and passes the failure to
// Echo's HTTP error handler, which renders SYSTEM_001 and counts it.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				slog.Error("Panic recovered",
					"trace_id", traceID,
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)

				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				returnErr = fmt.Errorf("panic recovered: %w", err)
			}()

			return next(c)
		}
	}
}
