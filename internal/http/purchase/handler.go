package purchase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acuenca/tienda/internal/purchase"
)

type Handler struct {
	svc *purchase.Service
}

func NewHandler(svc *purchase.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type detailRequest struct {
	ProductID int64            `json:"product_id"`
	Quantity  *int             `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
}

type createPurchaseRequest struct {
	UserID  int64           `json:"user_id"`
	Status  purchase.Status `json:"status"`
	Details []detailRequest `json:"details"`
}

type writeResponse struct {
	ID        int64     `json:"id"`
	Reference uuid.UUID `json:"reference,omitzero"`
	Message   string    `json:"message"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), purchase.CreateParams{
		UserID:  req.UserID,
		Status:  req.Status,
		Details: toDetailParams(req.Details),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(writeResponse{
		ID:        p.ID,
		Reference: p.Reference,
		Message:   "purchase created successfully",
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(purchases)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePurchaseRequest struct {
	UserID  *int64           `json:"user_id,omitempty"`
	Status  *purchase.Status `json:"status,omitempty"`
	Details []detailRequest  `json:"details,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := purchase.UpdateParams{
		UserID: req.UserID,
		Status: req.Status,
	}

	// A missing details field means the line items stay as they are; only a
	// supplied list triggers the stock undo/redo cycle.
	if req.Details != nil {
		params.Details = toDetailParams(req.Details)
	}

	p, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(writeResponse{
		ID:        p.ID,
		Reference: p.Reference,
		Message:   "purchase updated successfully",
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(writeResponse{
		ID:      id,
		Message: "purchase deleted successfully",
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps engine failures to status codes: validation and business
// rule hits are the client's fault, the completed lock is a conflict, and
// anything else stays opaque.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *purchase.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Message, http.StatusBadRequest)
	case errors.Is(err, purchase.ErrNotFound):
		http.Error(w, "purchase not found", http.StatusNotFound)
	case errors.Is(err, purchase.ErrCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, purchase.ErrProductNotFound),
		errors.Is(err, purchase.ErrInsufficientStock),
		errors.Is(err, purchase.ErrTotalExceeded):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("purchase request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toDetailParams(details []detailRequest) []purchase.DetailParams {
	params := make([]purchase.DetailParams, len(details))
	for i, d := range details {
		params[i] = purchase.DetailParams{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			Price:     d.Price,
		}
	}

	return params
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
