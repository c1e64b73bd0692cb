package handler

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rl1809/stock-control/internal/adapter/codegen"
	"github.com/rl1809/stock-control/internal/adapter/storage"
	"github.com/rl1809/stock-control/internal/core/service"
)

func newTestInventory(t *testing.T) (*service.InventoryService, *storage.SQLAdapter) {
	t.Helper()

	store, err := storage.Open(context.Background(), storage.DriverSQLite, filepath.Join(t.TempDir(), "estoque.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return service.NewInventoryService(store, codegen.NewQRRenderer(64)), store
}

func seed(t *testing.T, store *storage.SQLAdapter, name string, quantity int) {
	t.Helper()
	_, err := store.Insert(context.Background(), name, quantity)
	require.NoError(t, err)
}
