package port

import "context"

type CodeCache interface {
	// GetCode returns a previously rendered image, ok is false on a miss
	GetCode(ctx context.Context, key string) (png []byte, ok bool, err error)

	// SetCode stores a rendered image under key
	SetCode(ctx context.Context, key string, png []byte) error
}
