// Package api exposes the storefront over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/safar/rakhi-store/internal/cart"
	"github.com/safar/rakhi-store/internal/catalog"
	"github.com/safar/rakhi-store/internal/ledger"
	"github.com/safar/rakhi-store/internal/models"
	"github.com/safar/rakhi-store/internal/notify"
	"github.com/safar/rakhi-store/internal/session"
	"github.com/safar/rakhi-store/internal/store"
)

// Quantity bounds for a single add-to-cart request.
const (
	MinAddQuantity = 1
	MaxAddQuantity = 10
)

type Handler struct {
	sessions  session.Store
	ledger    ledger.Ledger
	catalog   *catalog.Catalog
	notifier  notify.Notifier
	recipient string
	logger    *slog.Logger
}

func NewHandler(
	sessions session.Store,
	l ledger.Ledger,
	c *catalog.Catalog,
	notifier notify.Notifier,
	recipient string,
	logger *slog.Logger,
) *Handler {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Handler{
		sessions:  sessions,
		ledger:    l,
		catalog:   c,
		notifier:  notifier,
		recipient: recipient,
		logger:    logger,
	}
}

type loginRequest struct {
	Phone string `json:"phone"`
}

type loginResponse struct {
	SessionID string `json:"session_id"`
	Phone     string `json:"phone"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	Lines []models.CartLine `json:"lines"`
	Total int64             `json:"total"`
}

type checkoutRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Pincode     string `json:"pincode"`
	ReferenceBy string `json:"reference_by"`
}

type checkoutResponse struct {
	*models.Receipt
	WhatsAppLink string `json:"whatsapp_link"`
}

func newCartResponse(c *cart.Cart) cartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return cartResponse{Lines: lines, Total: c.Total()}
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return store.NormalizePage(page, pageSize)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := store.Login(r.Context(), h.sessions, req.Phone)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, loginResponse{SessionID: s.ID, Phone: s.Phone})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	if err := store.Logout(r.Context(), h.sessions, s.ID); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	respondJSON(w, http.StatusOK, store.ListProducts(h.catalog, page, pageSize))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := store.GetProduct(h.catalog, chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	respondJSON(w, http.StatusOK, newCartResponse(s.Cart))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < MinAddQuantity || req.Quantity > MaxAddQuantity {
		respondError(w, http.StatusBadRequest, "quantity must be between 1 and 10")
		return
	}

	s := sessionFrom(r.Context())
	if err := store.AddToCart(r.Context(), h.sessions, h.catalog, s, req.ProductID, req.Quantity); err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, newCartResponse(s.Cart))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	s := sessionFrom(ctx)

	receipt, err := store.PlaceOrder(ctx, h.ledger, s.Cart, store.CheckoutRequest{
		Phone: s.Phone,
		Customer: models.Customer{
			Name:        req.Name,
			Address:     req.Address,
			Pincode:     req.Pincode,
			ReferenceBy: req.ReferenceBy,
		},
	})
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	log := h.logger.With(slog.String("order_id", receipt.OrderID))
	log.InfoContext(ctx, "order placed",
		slog.Int("lines", len(receipt.Lines)),
		slog.Int64("total", receipt.Total),
	)

	// the order is already in the ledger; failures below must not fail checkout
	if err := h.sessions.Save(ctx, s); err != nil {
		log.ErrorContext(ctx, "failed to save cleared cart", slog.Any("error", err))
	}
	if err := h.notifier.OrderPlaced(ctx, receipt); err != nil {
		log.WarnContext(ctx, "failed to publish order event", slog.Any("error", err))
	}

	respondJSON(w, http.StatusCreated, checkoutResponse{
		Receipt:      receipt,
		WhatsAppLink: notify.WhatsAppLink(h.recipient, receipt.Summary),
	})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	page, pageSize := pageParams(r)

	orders, err := store.ListOrderGroups(r.Context(), h.ledger, s.Phone, page, pageSize)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}
