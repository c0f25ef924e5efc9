// Package adminapi exposes the staff endpoints: order overview, serve
// toggling and manual payment confirmation. All routes sit behind the
// shared-secret key gate in webserver.
package adminapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/openkiosk/stallpos/internal/catalog"
	"github.com/openkiosk/stallpos/internal/domain"
	"github.com/openkiosk/stallpos/internal/ordering"
	"github.com/openkiosk/stallpos/internal/webserver"
)

type Handler struct {
	ledger  *ordering.Ledger
	catalog *catalog.Catalog
}

func NewHandler(ledger *ordering.Ledger, cat *catalog.Catalog) *Handler {
	return &Handler{ledger: ledger, catalog: cat}
}

func (h *Handler) Register(ws *webserver.WebServer) {
	ws.AdminGET("/orders", h.listOrders)
	ws.AdminPOST("/order/:id/serve", h.setServed)
	ws.AdminPOST("/order/:id/pay", h.forcePay)
}

type orderRow struct {
	ID        int64  `json:"id"`
	TableNo   int    `json:"table_no"`
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Served    bool   `json:"served"`
	ItemsText string `json:"items_text"`
}

// listOrders returns every order, pending first, with a readable
// name×qty summary of the cart snapshot.
func (h *Handler) listOrders(c echo.Context) error {
	ctx := c.Request().Context()
	orders, err := h.ledger.List(ctx)
	if err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}
	names, err := h.catalog.NameIndex(ctx)
	if err != nil {
		return c.NoContent(http.StatusInternalServerError)
	}

	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{
			ID:        o.ID,
			TableNo:   o.TableNo,
			Name:      o.Name,
			Amount:    o.Amount,
			Status:    o.Status,
			Served:    o.Served,
			ItemsText: itemsText(o.Items, names),
		})
	}
	return c.JSON(http.StatusOK, rows)
}

type servePayload struct {
	Served bool `json:"served"`
}

func (h *Handler) setServed(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	var payload servePayload
	if err := c.Bind(&payload); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	err = h.ledger.SetServed(c.Request().Context(), id, payload.Served)
	switch {
	case errors.Is(err, ordering.ErrOrderNotFound):
		return c.NoContent(http.StatusNotFound)
	case errors.Is(err, ordering.ErrNotPaid):
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "msg": "not_paid"})
	case err != nil:
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *Handler) forcePay(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	already, err := h.ledger.ForcePay(c.Request().Context(), id)
	switch {
	case errors.Is(err, ordering.ErrOrderNotFound):
		return c.NoContent(http.StatusNotFound)
	case err != nil:
		return c.NoContent(http.StatusInternalServerError)
	}
	if already {
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "msg": "already"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// itemsText renders a cart snapshot as "Name×qty, Name×qty". A snapshot
// that no longer parses renders as "-".
func itemsText(items string, names map[int64]string) string {
	cart, err := domain.DecodeCartLines(items)
	if err != nil {
		return "-"
	}
	parts := make([]string, 0, len(cart))
	for _, line := range cart {
		name, ok := names[line.ID]
		if !ok {
			name = strconv.FormatInt(line.ID, 10)
		}
		parts = append(parts, fmt.Sprintf("%s×%d", name, line.Qty))
	}
	return strings.Join(parts, ", ")
}
