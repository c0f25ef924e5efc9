// Package posapi exposes the customer-facing ordering endpoints and the
// bank push listener.
package posapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/openkiosk/stallpos/internal/catalog"
	"github.com/openkiosk/stallpos/internal/domain"
	"github.com/openkiosk/stallpos/internal/ordering"
	"github.com/openkiosk/stallpos/internal/payment"
	"github.com/openkiosk/stallpos/internal/webserver"
	"go.uber.org/zap"
)

type Handler struct {
	catalog *catalog.Catalog
	orders  *ordering.Service
	ledger  *ordering.Ledger
	matcher *payment.Matcher
}

func NewHandler(cat *catalog.Catalog, orders *ordering.Service, ledger *ordering.Ledger, matcher *payment.Matcher) *Handler {
	return &Handler{catalog: cat, orders: orders, ledger: ledger, matcher: matcher}
}

func (h *Handler) Register(ws *webserver.WebServer) {
	ws.PubGET("/api/menu", h.getMenu)
	ws.PubPOST("/api/order", h.createOrder)
	ws.PubGET("/api/order/:id", h.getOrder)
	ws.PubPOST("/bank/hit", h.bankHit)
}

// getMenu lists menu items with live stock, then combos with derived stock.
func (h *Handler) getMenu(c echo.Context) error {
	entries, err := h.catalog.ListAll(c.Request().Context())
	if err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, entries)
}

type orderPayload struct {
	Name  string            `json:"name"`
	Table int               `json:"table"`
	Cart  []domain.CartLine `json:"cart"`
}

func (h *Handler) createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	receipt, err := h.orders.PlaceOrder(c.Request().Context(), payload.Name, payload.Table, payload.Cart)
	if err == nil {
		return c.JSON(http.StatusOK, receipt)
	}

	var soldOut *ordering.SoldOutError
	var invalid *ordering.InvalidItemError
	switch {
	case errors.As(err, &soldOut):
		return c.JSON(http.StatusConflict, echo.Map{
			"msg":      "soldout",
			"itemId":   soldOut.ItemID,
			"itemName": soldOut.ItemName,
			"remain":   soldOut.Remain,
		})
	case errors.As(err, &invalid):
		return c.NoContent(http.StatusBadRequest)
	case errors.Is(err, ordering.ErrInvalidInput):
		return c.NoContent(http.StatusBadRequest)
	}

	zap.L().Error("order transaction failed", zap.Error(err))
	return c.NoContent(http.StatusInternalServerError)
}

func (h *Handler) getOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	order, err := h.ledger.Get(c.Request().Context(), id)
	switch {
	case errors.Is(err, ordering.ErrOrderNotFound):
		return c.NoContent(http.StatusNotFound)
	case err != nil:
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, order)
}

type bankHitPayload struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// bankHit receives the bank's deposit push notification and reconciles it
// against pending orders.
func (h *Handler) bankHit(c echo.Context) error {
	var payload bankHitPayload
	if err := c.Bind(&payload); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	result, err := h.matcher.OnPaymentEvent(c.Request().Context(), payload.Name, payload.Amount)
	switch {
	case errors.Is(err, payment.ErrInvalidEvent):
		return c.NoContent(http.StatusBadRequest)
	case err != nil:
		zap.L().Error("payment matching failed", zap.Error(err))
		return c.NoContent(http.StatusInternalServerError)
	}

	if !result.Matched {
		return c.JSON(http.StatusOK, echo.Map{"ok": false, "msg": "no_match"})
	}
	resp := echo.Map{
		"ok":      true,
		"status":  result.Status,
		"orderId": result.OrderID,
	}
	if result.Duplicates > 1 {
		resp["duplicates"] = result.Duplicates
	}
	return c.JSON(http.StatusOK, resp)
}
