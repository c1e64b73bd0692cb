package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rl1809/stock-control/internal/core/domain"
	"github.com/rl1809/stock-control/internal/port"
)

var (
	ErrInvalidNumber     = errors.New("quantity is not a whole number")
	ErrInvalidInput      = errors.New("name is required and quantity must not be negative")
	ErrMissingName       = errors.New("name is required")
	ErrNotFound          = errors.New("stock item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNoSelection       = errors.New("no stock item selected")
	ErrStorage           = errors.New("storage failure")
	ErrRender            = errors.New("code rendering failed")
)

// StockForm holds the raw text of the input fields.
type StockForm struct {
	Name     string
	Quantity string
	NewName  string
}

type InventoryService struct {
	repo     port.StockRepository
	renderer port.CodeRenderer
	cache    port.CodeCache
	observer port.OperationObserver
	logf     func(format string, args ...any)
}

type Option func(*InventoryService)

// WithCodeCache enables caching of rendered codes.
func WithCodeCache(cache port.CodeCache) Option {
	return func(s *InventoryService) { s.cache = cache }
}

// WithObserver reports every operation outcome to o.
func WithObserver(o port.OperationObserver) Option {
	return func(s *InventoryService) { s.observer = o }
}

// WithLogf replaces the function used for non-fatal warnings.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *InventoryService) { s.logf = logf }
}

func NewInventoryService(repo port.StockRepository, renderer port.CodeRenderer, opts ...Option) *InventoryService {
	s := &InventoryService{
		repo:     repo,
		renderer: renderer,
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InventoryService) Add(ctx context.Context, form StockForm) (item domain.StockItem, err error) {
	defer s.observe("add", time.Now(), &err)

	quantity, err := parseForm(form.Name, form.Quantity)
	if err != nil {
		return domain.StockItem{}, err
	}

	item, err = s.repo.Insert(ctx, form.Name, quantity)
	if err != nil {
		return domain.StockItem{}, storageFault("insert", err)
	}
	return item, nil
}

func (s *InventoryService) Remove(ctx context.Context, name string) (removed int64, err error) {
	defer s.observe("remove", time.Now(), &err)

	if name == "" {
		return 0, ErrMissingName
	}

	removed, err = s.repo.DeleteByName(ctx, name)
	if err != nil {
		return 0, storageFault("delete", err)
	}
	if removed == 0 {
		return 0, ErrNotFound
	}
	return removed, nil
}

func (s *InventoryService) Withdraw(ctx context.Context, form StockForm) (w domain.Withdrawal, err error) {
	defer s.observe("withdraw", time.Now(), &err)

	quantity, err := parseForm(form.Name, form.Quantity)
	if err != nil {
		return domain.Withdrawal{}, err
	}

	current, err := s.repo.FindByName(ctx, form.Name)
	if err != nil {
		return domain.Withdrawal{}, storageFault("find", err)
	}
	if current == nil {
		return domain.Withdrawal{}, ErrNotFound
	}

	remaining := current.Quantity - quantity
	if remaining < 0 {
		return domain.Withdrawal{}, ErrInsufficientStock
	}

	// Not guarded against a concurrent writer between the read and the update.
	if _, err := s.repo.UpdateQuantity(ctx, form.Name, remaining); err != nil {
		return domain.Withdrawal{}, storageFault("update", err)
	}

	return domain.Withdrawal{
		Name:      form.Name,
		Withdrawn: quantity,
		Remaining: remaining,
	}, nil
}

func (s *InventoryService) Edit(ctx context.Context, form StockForm) (e domain.Edit, err error) {
	defer s.observe("edit", time.Now(), &err)

	quantity, err := parseForm(form.Name, form.Quantity)
	if err != nil {
		return domain.Edit{}, err
	}

	newName := form.NewName
	if newName == "" {
		newName = form.Name
	}

	updated, err := s.repo.UpdateNameAndQuantity(ctx, form.Name, newName, quantity)
	if err != nil {
		return domain.Edit{}, storageFault("update", err)
	}
	if updated == 0 {
		return domain.Edit{}, ErrNotFound
	}

	return domain.Edit{
		Name: form.Name,
		Item: domain.StockItem{Name: newName, Quantity: quantity},
	}, nil
}

func (s *InventoryService) Search(ctx context.Context, name string) (item domain.StockItem, err error) {
	defer s.observe("search", time.Now(), &err)

	if name == "" {
		return domain.StockItem{}, ErrMissingName
	}

	found, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return domain.StockItem{}, storageFault("find", err)
	}
	if found == nil {
		return domain.StockItem{}, ErrNotFound
	}
	return *found, nil
}

func (s *InventoryService) List(ctx context.Context) (items []domain.StockItem, err error) {
	defer s.observe("list", time.Now(), &err)

	items, err = s.repo.ListAll(ctx)
	if err != nil {
		return nil, storageFault("list", err)
	}
	return items, nil
}

// OutcomeOf classifies an error returned by InventoryService.
func OutcomeOf(err error) domain.Outcome {
	switch {
	case err == nil:
		return domain.OutcomeSuccess
	case errors.Is(err, ErrInvalidNumber), errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrMissingName), errors.Is(err, ErrNoSelection):
		return domain.OutcomeInvalidInput
	case errors.Is(err, ErrNotFound):
		return domain.OutcomeNotFound
	case errors.Is(err, ErrInsufficientStock):
		return domain.OutcomeInsufficientStock
	case errors.Is(err, ErrRender):
		return domain.OutcomeRenderFault
	default:
		return domain.OutcomeStorageFault
	}
}

func (s *InventoryService) observe(operation string, start time.Time, err *error) {
	if s.observer == nil {
		return
	}
	s.observer.Observe(operation, OutcomeOf(*err), time.Since(start))
}

// parseForm coerces the quantity text. A non-numeric quantity is reported
// before an empty name.
func parseForm(name, quantityText string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(quantityText))
	if err != nil {
		return 0, ErrInvalidNumber
	}
	if name == "" || quantity < 0 {
		return 0, ErrInvalidInput
	}
	return quantity, nil
}

func storageFault(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
