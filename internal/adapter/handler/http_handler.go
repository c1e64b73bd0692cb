package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rl1809/stock-control/internal/core/domain"
	"github.com/rl1809/stock-control/internal/core/service"
)

type HTTPHandler struct {
	inventory *service.InventoryService
}

type StockHTTPRequest struct {
	Name     string      `json:"name"`
	Quantity json.Number `json:"quantity"`
	NewName  string      `json:"new_name"`
}

type StockHTTPResponse struct {
	Success    bool               `json:"success"`
	Outcome    domain.Outcome     `json:"outcome"`
	Message    string             `json:"message,omitempty"`
	Item       *domain.StockItem  `json:"item,omitempty"`
	Items      []domain.StockItem `json:"items,omitempty"`
	Withdrawal *domain.Withdrawal `json:"withdrawal,omitempty"`
}

func NewHTTPHandler(inventory *service.InventoryService) *HTTPHandler {
	return &HTTPHandler{inventory: inventory}
}

// Register mounts the JSON API under /api and the health check.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/items", h.ListItems)
	mux.HandleFunc("POST /api/items", h.AddItem)
	mux.HandleFunc("GET /api/items/{name}", h.SearchItem)
	mux.HandleFunc("PUT /api/items/{name}", h.EditItem)
	mux.HandleFunc("DELETE /api/items/{name}", h.RemoveItem)
	mux.HandleFunc("POST /api/items/{name}/withdraw", h.WithdrawItem)
	mux.HandleFunc("GET /api/items/{name}/code", h.ItemCode)
	mux.HandleFunc("GET /api/code/inventory", h.InventoryCode)
}

func (h *HTTPHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		h.writeFailure(w, r, ListNotice(err), err)
		return
	}
	writeJSON(w, http.StatusOK, StockHTTPResponse{
		Success: true,
		Outcome: domain.OutcomeSuccess,
		Items:   items,
	})
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	item, err := h.inventory.Add(r.Context(), service.StockForm{
		Name:     req.Name,
		Quantity: req.Quantity.String(),
	})
	notice := AddNotice(req.Name, item, err)
	if err != nil {
		h.writeFailure(w, r, notice, err)
		return
	}
	writeJSON(w, http.StatusCreated, StockHTTPResponse{
		Success: true,
		Outcome: domain.OutcomeSuccess,
		Message: notice.Message,
		Item:    &item,
	})
}

func (h *HTTPHandler) SearchItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	item, err := h.inventory.Search(r.Context(), name)
	notice := SearchNotice(name, item, err)
	if err != nil {
		h.writeFailure(w, r, notice, err)
		return
	}
	writeJSON(w, http.StatusOK, StockHTTPResponse{
		Success: true,
		Outcome: domain.OutcomeSuccess,
		Message: notice.Message,
		Item:    &item,
	})
}

func (h *HTTPHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	name := r.PathValue("name")

	e, err := h.inventory.Edit(r.Context(), service.StockForm{
		Name:     name,
		Quantity: req.Quantity.String(),
		NewName:  req.NewName,
	})
	notice := EditNotice(name, e, err)
	if err != nil {
		h.writeFailure(w, r, notice, err)
		return
	}
	writeJSON(w, http.StatusOK, StockHTTPResponse{
		Success: true,
		Outcome: domain.OutcomeSuccess,
		Message: notice.Message,
		Item:    &e.Item,
	})
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	_, err := h.inventory.Remove(r.Context(), name)
	notice := RemoveNotice(name, err)
	if err != nil {
		h.writeFailure(w, r, notice, err)
		return
	}
	writeJSON(w, http.StatusOK, StockHTTPResponse{
		Success: true,
		Outcome: domain.OutcomeSuccess,
		Message: notice.Message,
	})
}

func (h *HTTPHandler) WithdrawItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	name := r.PathValue("name")

	wd, err := h.inventory.Withdraw(r.Context(), service.StockForm{
		Name:     name,
		Quantity: req.Quantity.String(),
	})
	notice := WithdrawNotice(name, wd, err)
	if err != nil {
		h.writeFailure(w, r, notice, err)
		return
	}
	writeJSON(w, http.StatusOK, StockHTTPResponse{
		Success:    true,
		Outcome:    domain.OutcomeSuccess,
		Message:    notice.Message,
		Withdrawal: &wd,
	})
}

func (h *HTTPHandler) ItemCode(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	item, err := h.inventory.Search(r.Context(), name)
	if err != nil {
		h.writeFailure(w, r, SearchNotice(name, item, err), err)
		return
	}

	code, err := h.inventory.ItemCode(r.Context(), &item)
	if err != nil {
		h.writeFailure(w, r, CodeNotice("item", err), err)
		return
	}
	writePNG(w, code.PNG)
}

func (h *HTTPHandler) InventoryCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.inventory.InventoryCode(r.Context())
	if err != nil {
		h.writeFailure(w, r, CodeNotice("inventory", err), err)
		return
	}
	writePNG(w, code.PNG)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) writeFailure(w http.ResponseWriter, r *http.Request, notice Notice, err error) {
	if notice.Level == LevelError {
		log.Printf("%s: %v", RequestID(r.Context()), err)
	}
	writeJSON(w, statusFor(err), StockHTTPResponse{
		Success: false,
		Outcome: service.OutcomeOf(err),
		Message: notice.Message,
	})
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (StockHTTPRequest, bool) {
	var req StockHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, StockHTTPResponse{
			Success: false,
			Outcome: domain.OutcomeInvalidInput,
			Message: "invalid request body",
		})
		return req, false
	}
	return req, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidNumber), errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrMissingName), errors.Is(err, service.ErrNoSelection):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
