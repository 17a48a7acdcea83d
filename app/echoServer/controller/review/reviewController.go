package review

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"pageflow/model"
	rs "pageflow/service/review"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/books/:id/reviews
func (h *Controller) Create(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req model.CreateReviewReq
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

	id, err := h.Svc.Add(c.Request().Context(), uid, bookID, req)
	if err != nil {
		switch {
		case errors.Is(err, rs.ErrAlreadyReviewed):
			return c.JSON(http.StatusConflict, echo.Map{"message": "you already reviewed this book"})
		case errors.Is(err, rs.ErrBookMissing):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case errors.Is(err, rs.ErrBadRating):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("review create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/books/:id/reviews
func (h *Controller) ListByBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	out, err := h.Svc.ListByBook(c.Request().Context(), bookID)
	if err != nil {
		h.Log.Error("review list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
