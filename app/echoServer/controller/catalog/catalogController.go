package catalog

import (
	"log/slog"
	"net/http"

	"libranet/app/echoServer/shared"
	branchsvc "libranet/service/branch"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Controller exposes the manager-only catalog mutations of one branch.
type Controller struct {
	Svc branchsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/items  (manager, own branch)
func (h *Controller) Add(c echo.Context) error {
	var req AddItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status": "error", "message": "validation error",
			"errors": echo.Map{"item_id": "AAA0000 format", "title": "required", "quantity": "gt 0"},
		})
	}
	err := h.Svc.AddItem(c.Request().Context(), shared.Actor(c), req.ItemID, req.Title, req.Quantity)
	if err != nil {
		return h.fail(c, "item add", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "message": "successfully added"})
}

// DELETE /v1/items/:id  (manager, own branch)
func (h *Controller) Remove(c echo.Context) error {
	var req RemoveItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"status": "error", "message": "validation error",
			"errors": echo.Map{"quantity": "positive, or -1 for all"},
		})
	}
	err := h.Svc.RemoveItem(c.Request().Context(), shared.Actor(c), c.Param("id"), req.Quantity)
	if err != nil {
		return h.fail(c, "item remove", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "successfully removed"})
}

// GET /v1/items  (manager, own branch)
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.ListItemAvailability(c.Request().Context(), shared.Actor(c))
	if err != nil {
		return h.fail(c, "item list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	code := branchsvc.Code(err)
	status, ok := shared.Status(code)
	if !ok {
		h.Log.Error(op+" error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "internal error"})
	}
	return c.JSON(status, echo.Map{"status": "error", "error": string(code)})
}
