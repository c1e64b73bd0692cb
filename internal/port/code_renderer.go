package port

import (
	"time"

	"github.com/rl1809/stock-control/internal/core/domain"
)

type CodeRenderer interface {
	// Render encodes payload as a scannable PNG image
	Render(payload string) ([]byte, error)
	// Variant identifies the image settings; codes cached under one variant
	// are never served for another
	Variant() string
}

type OperationObserver interface {
	// Observe is called once per inventory operation
	Observe(operation string, outcome domain.Outcome, elapsed time.Duration)
}
