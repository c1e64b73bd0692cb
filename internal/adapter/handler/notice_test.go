package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rl1809/stock-control/internal/core/domain"
	"github.com/rl1809/stock-control/internal/core/service"
)

func TestNotices_Success(t *testing.T) {
	tests := []struct {
		name   string
		notice Notice
		want   string
	}{
		{"add", AddNotice("Widget", domain.StockItem{Name: "Widget"}, nil), "Item 'Widget' added successfully!"},
		{"remove", RemoveNotice("Widget", nil), "Item 'Widget' removed successfully!"},
		{"withdraw", WithdrawNotice("Widget", domain.Withdrawal{Name: "Widget", Withdrawn: 3, Remaining: 7}, nil),
			"3 units of item 'Widget' withdrawn successfully!"},
		{"edit", EditNotice("Widget", domain.Edit{Name: "Widget", Item: domain.StockItem{Name: "Sprocket", Quantity: 4}}, nil),
			"Item 'Widget' updated to 'Sprocket' with 4 units!"},
		{"search", SearchNotice("Widget", domain.StockItem{Name: "Widget", Quantity: 7}, nil),
			"Item 'Widget' has 7 units in stock."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, LevelInfo, tt.notice.Level)
			assert.Equal(t, tt.want, tt.notice.Message)
		})
	}
}

func TestNotices_Failures(t *testing.T) {
	storageErr := fmt.Errorf("insert: %w: %w", service.ErrStorage, errors.New("database is locked"))

	tests := []struct {
		name  string
		err   error
		level Level
		want  string
	}{
		{"invalid number", service.ErrInvalidNumber, LevelWarning, "Please enter a numeric value for the quantity."},
		{"invalid input", service.ErrInvalidInput, LevelWarning, "Please enter a valid name and a non-negative quantity."},
		{"missing name", service.ErrMissingName, LevelWarning, "Please enter an item name."},
		{"not found", service.ErrNotFound, LevelWarning, "Item 'Widget' not found."},
		{"insufficient", service.ErrInsufficientStock, LevelWarning, "Insufficient stock."},
		{"storage", storageErr, LevelError, "Error adding item: insert: storage failure: database is locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := AddNotice("Widget", domain.StockItem{}, tt.err)
			assert.Equal(t, tt.level, n.Level)
			assert.Equal(t, tt.want, n.Message)
		})
	}
}

func TestCodeNotice_NoSelection(t *testing.T) {
	n := CodeNotice("item", service.ErrNoSelection)
	assert.Equal(t, LevelWarning, n.Level)
	assert.Equal(t, "Please select an item in the list.", n.Message)
}

func TestNotices_MissingName(t *testing.T) {
	for _, n := range []Notice{
		RemoveNotice("", service.ErrMissingName),
		SearchNotice("", domain.StockItem{}, service.ErrMissingName),
	} {
		assert.Equal(t, LevelWarning, n.Level)
		assert.Equal(t, "Please enter an item name.", n.Message)
	}
}
