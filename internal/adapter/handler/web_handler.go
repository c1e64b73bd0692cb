package handler

import (
	"embed"
	"encoding/base64"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/rl1809/stock-control/internal/core/domain"
	"github.com/rl1809/stock-control/internal/core/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// WebHandler serves the inventory form: input fields, one button per
// operation and the item list, repainted after every submission.
type WebHandler struct {
	inventory *service.InventoryService
}

type indexView struct {
	Form    service.StockForm
	Notices []Notice
	Items   []domain.StockItem
}

type codeView struct {
	Title   string
	Notice  *Notice
	Image   template.URL
	Payload string
}

func NewWebHandler(inventory *service.InventoryService) *WebHandler {
	return &WebHandler{inventory: inventory}
}

func (h *WebHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /{$}", h.Submit)
	mux.HandleFunc("POST /code/item", h.ItemCode)
	mux.HandleFunc("POST /code/inventory", h.InventoryCode)
}

func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r, http.StatusOK, service.StockForm{}, nil)
}

func (h *WebHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := service.StockForm{
		Name:     r.PostFormValue("name"),
		Quantity: r.PostFormValue("quantity"),
		NewName:  r.PostFormValue("new_name"),
	}
	ctx := r.Context()

	var notice Notice
	switch r.PostFormValue("action") {
	case "add":
		item, err := h.inventory.Add(ctx, form)
		notice = AddNotice(form.Name, item, err)
	case "remove":
		_, err := h.inventory.Remove(ctx, form.Name)
		notice = RemoveNotice(form.Name, err)
	case "withdraw":
		wd, err := h.inventory.Withdraw(ctx, form)
		notice = WithdrawNotice(form.Name, wd, err)
	case "edit":
		e, err := h.inventory.Edit(ctx, form)
		notice = EditNotice(form.Name, e, err)
	case "search":
		item, err := h.inventory.Search(ctx, form.Name)
		notice = SearchNotice(form.Name, item, err)
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	h.logNotice(r, notice)
	h.renderIndex(w, r, http.StatusOK, form, []Notice{notice})
}

// ItemCode renders the code of the row selected in the list.
func (h *WebHandler) ItemCode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	view := codeView{Title: "Item Code"}

	selected, err := h.selectedItem(r)
	if err != nil {
		notice := ListNotice(err)
		view.Notice = &notice
		h.renderCode(w, r, view)
		return
	}

	code, err := h.inventory.ItemCode(r.Context(), selected)
	if err != nil {
		notice := CodeNotice("item", err)
		view.Notice = &notice
	} else {
		view.Image = pngDataURL(code.PNG)
		view.Payload = code.Payload
	}
	h.renderCode(w, r, view)
}

func (h *WebHandler) InventoryCode(w http.ResponseWriter, r *http.Request) {
	view := codeView{Title: "Inventory Code"}

	code, err := h.inventory.InventoryCode(r.Context())
	if err != nil {
		notice := CodeNotice("inventory", err)
		view.Notice = &notice
	} else {
		view.Image = pngDataURL(code.PNG)
		view.Payload = code.Payload
	}
	h.renderCode(w, r, view)
}

// selectedItem looks up the row whose radio button was checked. A missing
// or stale selection yields nil.
func (h *WebHandler) selectedItem(r *http.Request) (*domain.StockItem, error) {
	id, err := strconv.ParseInt(r.PostFormValue("selected"), 10, 64)
	if err != nil {
		return nil, nil
	}

	items, err := h.inventory.List(r.Context())
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (h *WebHandler) renderIndex(w http.ResponseWriter, r *http.Request, status int, form service.StockForm, notices []Notice) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		notice := ListNotice(err)
		h.logNotice(r, notice)
		notices = append(notices, notice)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, "index.html", indexView{Form: form, Notices: notices, Items: items}); err != nil {
		log.Printf("%s: render index: %v", RequestID(r.Context()), err)
	}
}

func (h *WebHandler) renderCode(w http.ResponseWriter, r *http.Request, view codeView) {
	if view.Notice != nil {
		h.logNotice(r, *view.Notice)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, "code.html", view); err != nil {
		log.Printf("%s: render code: %v", RequestID(r.Context()), err)
	}
}

func (h *WebHandler) logNotice(r *http.Request, notice Notice) {
	if notice.Level == LevelError {
		log.Printf("%s: %s", RequestID(r.Context()), notice.Message)
	}
}

func pngDataURL(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
