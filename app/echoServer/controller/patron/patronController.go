package patron

import (
	"log/slog"
	"net/http"

	"libranet/app/echoServer/shared"
	branchsvc "libranet/service/branch"
	identitysvc "libranet/service/identity"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Controller exposes the patron-facing surface: identities, borrowing,
// returning, the waiting list and federation-wide reads.
type Controller struct {
	Svc branchsvc.Service
	Ids identitysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/identities
func (h *Controller) NewIdentity(c echo.Context) error {
	var req NewIdentityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"role": "user or manager"}})
	}
	marker := identitysvc.RoleUser
	if req.Role == "manager" {
		marker = identitysvc.RoleManager
	}
	id, err := h.Ids.Next(marker)
	if err != nil {
		h.Log.Error("identity issue error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"identity": id})
}

// POST /v1/items/:id/borrow  (user)
func (h *Controller) Borrow(c echo.Context) error {
	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"days": "gt 0"}})
	}
	err := h.Svc.BorrowItem(c.Request().Context(), shared.Actor(c), c.Param("id"), req.Days)
	return h.boolResult(c, "borrow", err)
}

// POST /v1/items/:id/return  (user)
func (h *Controller) Return(c echo.Context) error {
	err := h.Svc.ReturnItem(c.Request().Context(), shared.Actor(c), c.Param("id"))
	return h.boolResult(c, "return", err)
}

// POST /v1/waitlist  (user)
func (h *Controller) WaitlistAdd(c echo.Context) error {
	var req WaitlistAddReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"item_id": "AAA0000 format", "days": "gt 0"}})
	}
	err := h.Svc.AddToWaitingList(c.Request().Context(), shared.Actor(c), req.ItemID, req.Days)
	return h.boolResult(c, "waitlist add", err)
}

// GET /v1/waitlist/ready
func (h *Controller) WaitlistReady(c echo.Context) error {
	entry, err := h.Svc.CheckWaitingQueue(c.Request().Context(), shared.Actor(c))
	if err != nil {
		h.Log.Error("waitlist check error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": entry})
}

// DELETE /v1/waitlist/ready
func (h *Controller) WaitlistRemove(c echo.Context) error {
	var req WaitlistRemoveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"item_id": "AAA0000 format"}})
	}
	err := h.Svc.RemoveFromWaitingList(c.Request().Context(), shared.Actor(c), req.ItemID)
	return h.boolResult(c, "waitlist remove", err)
}

// GET /v1/catalog
func (h *Controller) ShowAll(c echo.Context) error {
	rows, err := h.Svc.ShowAllItems(c.Request().Context())
	if err != nil {
		return h.readFail(c, "show all", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/catalog/search?title=
func (h *Controller) Find(c echo.Context) error {
	rows, err := h.Svc.FindItem(c.Request().Context(), shared.Actor(c), c.QueryParam("title"))
	if err != nil {
		return h.readFail(c, "find", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// boolResult keeps the borrow/return/waitlist contract: every denial is the
// same negative answer; only an unreachable peer is surfaced separately.
func (h *Controller) boolResult(c echo.Context, op string, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}
	if code := branchsvc.Code(err); code == branchsvc.ErrPeerUnreachable {
		h.Log.Error(op+" peer unreachable", "err", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": string(code)})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": false})
}

func (h *Controller) readFail(c echo.Context, op string, err error) error {
	code := branchsvc.Code(err)
	status, ok := shared.Status(code)
	if !ok {
		h.Log.Error(op+" error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(status, echo.Map{"message": "upstream branch failed", "error": string(code)})
}
