// Package upnqr renders UPN payment slips as scannable QR code PNG images.
package upnqr

import (
	"context"
	"errors"

	"github.com/skip2/go-qrcode"
	"github.com/soldoshop/upn-nalog/pkg/upn"
)

// UPN QR codes are fixed to version 15 with medium error correction.
const (
	qrVersion     = 15
	DefaultSize   = 256
	minSize       = 85 // 77 modules plus the quiet zone
	recoveryLevel = qrcode.Medium
)

var errEmptyImage = errors.New("upnqr: renderer produced an empty image")

// Renderer turns a payment slip into a PNG image.
type Renderer struct {
	size int
}

// NewRenderer creates a renderer producing size x size pixel images.
func NewRenderer(size int) *Renderer {
	if size < minSize {
		size = DefaultSize
	}
	return &Renderer{size: size}
}

// Render encodes the slip's UPN QR text and returns the PNG bytes.
// Every failure is returned as *upn.RenderError.
func (r *Renderer) Render(ctx context.Context, slip upn.PaymentSlip) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &upn.RenderError{Err: err}
	}

	payload, err := upn.EncodeQRText(slip)
	if err != nil {
		return nil, &upn.RenderError{Err: err}
	}

	code, err := qrcode.NewWithForcedVersion(string(payload), qrVersion, recoveryLevel)
	if err != nil {
		return nil, &upn.RenderError{Err: err}
	}

	png, err := code.PNG(r.size)
	if err != nil {
		return nil, &upn.RenderError{Err: err}
	}
	if len(png) == 0 {
		return nil, &upn.RenderError{Err: errEmptyImage}
	}
	return png, nil
}
