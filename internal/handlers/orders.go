package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/qazasd2518995/furhub/internal/models"
	"github.com/qazasd2518995/furhub/internal/store"
)

type OrderHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// Buy records an order for an item. The item id is not verified against the
// catalog; an order for a vanished item is simply invisible in the admin list.
func (h *OrderHandler) Buy(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Templates.NotFound(w)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)

	location := strings.TrimSpace(r.FormValue("location"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	email := strings.TrimSpace(r.FormValue("email"))

	if location == "" || phone == "" || email == "" {
		redirectWithFlash(w, r, session,
			FlashMessage{Type: "error", Message: "Please fill in all required fields."},
			"/item/"+strconv.Itoa(itemID))
		return
	}

	order := &models.Order{
		ItemID:        itemID,
		BuyerLocation: location,
		BuyerPhone:    phone,
		BuyerEmail:    email,
	}
	if err := h.Store.CreateOrder(order); err != nil {
		serverError(h.Templates, w, "Failed to create order", err)
		return
	}

	h.Templates.Render(w, http.StatusOK, "order_success.html", map[string]interface{}{
		"Order": order,
	})
}

// ListOrders shows every order joined with its current item data.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.ListOrdersWithItems()
	if err != nil {
		serverError(h.Templates, w, "Failed to fetch orders", err)
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Orders":  orders,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	h.Templates.Render(w, http.StatusOK, "orders.html", data)
}
