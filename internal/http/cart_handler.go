package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/nikolayk812/cart-manager/internal/logger"
)

type CartService interface {
	AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (domain.Cart, error)
	RetrieveCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error)
	ClearCart(ctx context.Context, cartID uuid.UUID) error
	RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) (domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID int64, newQuantity int) (domain.Cart, error)
}

type CartHandler struct {
	carts   CartService
	timeout time.Duration
	log     logger.Logger
}

func NewCartHandler(carts CartService, timeout time.Duration, log logger.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
		log:     log,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.RetrieveCart(ctx, cartID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mapDomainToCartResponse(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(ctx, cartID); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	cart, err := h.carts.AddItem(ctx, cartID, req.ProductID, req.Quantity)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, mapDomainToCartResponse(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.UpdateItemQuantity(ctx, cartID, productID, req.Quantity)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mapDomainToCartResponse(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(ctx, cartID, productID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, mapDomainToCartResponse(cart))
}

func (h *CartHandler) cartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	cartID, err := uuid.Parse(chi.URLParam(r, "cartID"))
	if err != nil || cartID == uuid.Nil {
		h.respondError(w, http.StatusBadRequest, "invalid_cart_id", "cart ID must be a non-nil UUID")
		return uuid.Nil, false
	}

	return cartID, true
}

func (h *CartHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_product_id", "product ID must be a positive integer")
		return 0, false
	}

	return productID, true
}

func (h *CartHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *domain.StockUnavailableError

	switch {
	case errors.As(err, &stockErr):
		h.respondJSON(w, http.StatusConflict, errorResponse{
			Error:     stockErr.Error(),
			Code:      "stock_unavailable",
			Available: &stockErr.Available,
		})
	case errors.Is(err, domain.ErrCartNotFound):
		h.respondError(w, http.StatusNotFound, "cart_not_found", "cart not found")
	case errors.Is(err, domain.ErrProductNotFound):
		h.respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, domain.ErrInvalidQuantity):
		h.respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, domain.ErrInvalidCartID):
		h.respondError(w, http.StatusBadRequest, "invalid_cart_id", "cart ID must be a non-nil UUID")
	case errors.Is(err, domain.ErrCurrencyMismatch):
		h.respondError(w, http.StatusUnprocessableEntity, "currency_mismatch", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		h.log.Errorf("request %s %s failed: %v [%s]", r.Method, r.URL.Path, err, middleware.GetReqID(r.Context()))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (h *CartHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Warnf("failed to encode response: %v", err)
	}
}

func (h *CartHandler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, errorResponse{
		Error: message,
		Code:  code,
	})
}
