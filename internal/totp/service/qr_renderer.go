package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	apperrors "github.com/allisson/aether/internal/errors"
	totpDomain "github.com/allisson/aether/internal/totp/domain"
)

// MaxQRImageWidth is the widest QR image, in pixels, that will be rendered.
const MaxQRImageWidth = 4096

type pngQRRenderer struct {
	level qrcode.RecoveryLevel
}

// NewQRRenderer creates a QRRenderer with medium error correction.
func NewQRRenderer() QRRenderer {
	return &pngQRRenderer{level: qrcode.Medium}
}

// Render encodes content and draws it as a PNG.
func (r *pngQRRenderer) Render(content string, pixelsPerModule int) ([]byte, error) {
	if pixelsPerModule <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidArgument, "pixels per module must be positive")
	}

	q, err := qrcode.New(content, r.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v, %s", apperrors.ErrQRGeneration, err, totpDomain.QRHint)
	}

	// The bitmap includes the quiet zone, so its width is the module count of the image.
	if width := len(q.Bitmap()) * pixelsPerModule; width > MaxQRImageWidth {
		return nil, fmt.Errorf("%w: %d px exceeds %d px", totpDomain.ErrQRTooLarge, width, MaxQRImageWidth)
	}

	png, err := q.PNG(-pixelsPerModule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v, %s", apperrors.ErrQRGeneration, err, totpDomain.QRHint)
	}
	return png, nil
}
