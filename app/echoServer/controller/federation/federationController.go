// Package federation serves branch-to-branch calls: forwarded borrows and
// returns plus the unauthenticated read-only queries behind the federation
// fan-outs. Handlers act only on locally-owned items and never forward, so a
// request crosses the federation at most once.
package federation

import (
	"log/slog"
	"net/http"

	catalogrepo "libranet/repository/catalog"
	branchsvc "libranet/service/branch"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc     branchsvc.Service
	Catalog catalogrepo.Repo
	Log     *slog.Logger
}

type forwardReq struct {
	UserID string `json:"user_id"`
	Days   int    `json:"days"`
}

// POST /internal/items/:id/borrow
func (h *Controller) Borrow(c echo.Context) error {
	var req forwardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	}
	err := h.Svc.BorrowLocal(c.Request().Context(), req.UserID, c.Param("id"), req.Days)
	return c.JSON(http.StatusOK, echo.Map{"success": err == nil})
}

// POST /internal/items/:id/return
func (h *Controller) Return(c echo.Context) error {
	var req forwardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false})
	}
	err := h.Svc.ReturnLocal(c.Request().Context(), req.UserID, c.Param("id"))
	return c.JSON(http.StatusOK, echo.Map{"success": err == nil})
}

// GET /internal/items
func (h *Controller) List(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": h.Catalog.ListAll()})
}

// GET /internal/items/search?title=
func (h *Controller) Search(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": h.Catalog.Search(c.QueryParam("title"))})
}
