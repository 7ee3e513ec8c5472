package payment

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"swiftride/app/echoServer/reply"
	paymentsvc "swiftride/service/payment"
)

type Controller struct {
	Svc paymentsvc.Service
	Log *slog.Logger
}

const maxWebhookBody = 1 << 20

// POST /v1/payment/webhook
func (h *Controller) Webhook(c echo.Context) error {
	token := c.Request().Header.Get("X-Callback-Token")
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable body"})
	}

	if err := h.Svc.HandleWebhook(c.Request().Context(), token, raw); err != nil {
		h.Log.Warn("payment callback rejected", "err", err)
		return reply.Error(c, h.Log, "payment callback", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}
