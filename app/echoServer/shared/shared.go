// Package shared holds the few helpers every controller needs: reading the
// actor id the middleware stashed, and the error-code → HTTP status table.
package shared

import (
	"net/http"

	branchsvc "libranet/service/branch"

	"github.com/labstack/echo/v4"
)

func Actor(c echo.Context) string {
	id, _ := c.Get("actor_id").(string)
	return id
}

// Status maps a service error code to an HTTP status. The second result is
// false for uncoded errors, which callers treat as internal.
func Status(code branchsvc.ErrCode) (int, bool) {
	switch code {
	case branchsvc.ErrUnauthorized:
		return http.StatusForbidden, true
	case branchsvc.ErrNotFound:
		return http.StatusNotFound, true
	case branchsvc.ErrNoStock, branchsvc.ErrTitleConflict:
		return http.StatusConflict, true
	case branchsvc.ErrPeerUnreachable:
		return http.StatusBadGateway, true
	default:
		return 0, false
	}
}
