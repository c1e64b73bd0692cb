package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rl1809/stock-control/internal/core/domain"
)

const codeKeyPrefix = "code:"

// ItemPayload is the text encoded in a single item's code.
func ItemPayload(item domain.StockItem) string {
	return fmt.Sprintf("Item: %s\nQuantity: %d", item.Name, item.Quantity)
}

// InventoryPayload is the text encoded in the whole-inventory code.
func InventoryPayload(items []domain.StockItem) string {
	var b strings.Builder
	b.WriteString("Inventory:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s: %d units\n", item.Name, item.Quantity)
	}
	return b.String()
}

// ItemCode renders the code of a row picked from the list view. The row is
// taken as displayed; it is not read again from storage.
func (s *InventoryService) ItemCode(ctx context.Context, item *domain.StockItem) (code domain.Code, err error) {
	defer s.observe("item_code", time.Now(), &err)

	if item == nil {
		return domain.Code{}, ErrNoSelection
	}
	return s.render(ctx, ItemPayload(*item))
}

func (s *InventoryService) InventoryCode(ctx context.Context) (code domain.Code, err error) {
	defer s.observe("inventory_code", time.Now(), &err)

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return domain.Code{}, storageFault("list", err)
	}
	return s.render(ctx, InventoryPayload(items))
}

func (s *InventoryService) render(ctx context.Context, payload string) (domain.Code, error) {
	key := codeKey(s.renderer.Variant(), payload)

	if s.cache != nil {
		png, ok, err := s.cache.GetCode(ctx, key)
		if err != nil {
			s.logf("code cache get %s: %v", key, err)
		} else if ok {
			return domain.Code{Payload: payload, PNG: png}, nil
		}
	}

	png, err := s.renderer.Render(payload)
	if err != nil {
		return domain.Code{}, fmt.Errorf("%w: %w", ErrRender, err)
	}

	if s.cache != nil {
		if err := s.cache.SetCode(ctx, key, png); err != nil {
			s.logf("code cache set %s: %v", key, err)
		}
	}

	return domain.Code{Payload: payload, PNG: png}, nil
}

func codeKey(variant, payload string) string {
	sum := sha256.Sum256([]byte(variant + "\n" + payload))
	return codeKeyPrefix + hex.EncodeToString(sum[:])
}
