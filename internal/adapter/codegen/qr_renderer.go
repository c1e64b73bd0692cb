// Package codegen turns text payloads into QR codes.
package codegen

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const DefaultSize = 256

type QRRenderer struct {
	size  int
	level qrcode.RecoveryLevel
}

func NewQRRenderer(size int) *QRRenderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &QRRenderer{size: size, level: qrcode.Medium}
}

// Variant names the size and recovery level, e.g. "qr-256-1".
func (r *QRRenderer) Variant() string {
	return fmt.Sprintf("qr-%d-%d", r.size, r.level)
}

// Render returns a size x size PNG. Payloads beyond QR capacity fail.
func (r *QRRenderer) Render(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, r.level, r.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// Text renders the code with half-block characters for a terminal.
func (r *QRRenderer) Text(payload string) (string, error) {
	code, err := qrcode.New(payload, r.level)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return code.ToSmallString(false), nil
}
