package checkout

import (
	"log/slog"
	"net/http"
	"strconv"

	cs "pageflow/service/checkout"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cs.Service
	Sw  cs.Sweeper
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/checkouts
func (h *Controller) Create(c echo.Context) error {
	var req CreateCheckoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	dto, err := h.Svc.CheckoutBook(c.Request().Context(), uid, req.BookID)
	if err != nil {
		switch cs.Code(err) {
		case cs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		case cs.ErrBookUnavailable:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("checkout create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, dto)
}

// POST /v1/checkouts/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	dto, err := h.Svc.ReturnBook(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("checkout return", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if dto == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "checkout not found"})
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /v1/checkouts/my
func (h *Controller) My(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	out, err := h.Svc.GetUserCheckouts(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my checkouts", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/checkouts/active
func (h *Controller) Active(c echo.Context) error {
	out, err := h.Svc.GetAllActiveCheckouts(c.Request().Context())
	if err != nil {
		h.Log.Error("active checkouts", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/checkouts/overdue
func (h *Controller) Overdue(c echo.Context) error {
	out, err := h.Sw.Sweep(c.Request().Context())
	if err != nil {
		h.Log.Error("overdue checkouts", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

// GET /v1/checkouts/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	dto, err := h.Svc.GetCheckoutByID(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("checkout detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if dto == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "checkout not found"})
	}
	return c.JSON(http.StatusOK, dto)
}
