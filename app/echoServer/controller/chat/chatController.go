package chat

import (
	"net/http"

	cs "pageflow/service/chat"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cs.Service
}

type messageReq struct {
	Message string `json:"message"`
}

// POST /v1/chat
func (h *Controller) Message(c echo.Context) error {
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	reply := h.Svc.GenerateResponse(c.Request().Context(), req.Message)
	return c.JSON(http.StatusOK, echo.Map{"reply": reply})
}
