// Package qrimg renders the receipt QR payload as a PNG image and probes the
// local generation capabilities.
package qrimg

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/amr-devops/l10n-sa-edi-pos-direct/internal/application/pos"
)

// DefaultSize is the PNG edge length in pixels used by receipt printing.
const DefaultSize = 256

// Renderer turns a base64 TLV payload into a scannable PNG.
type Renderer struct {
	size int
}

// NewRenderer creates a renderer producing size×size PNGs. size <= 0 selects
// DefaultSize.
func NewRenderer(size int) *Renderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Renderer{size: size}
}

// PNG encodes the payload at medium error-correction level, matching the
// density expected by thermal receipt printers.
func (r *Renderer) PNG(payload string) ([]byte, error) {
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("create QR code: %w", err)
	}
	png, err := qr.PNG(r.size)
	if err != nil {
		return nil, fmt.Errorf("render QR PNG: %w", err)
	}
	return png, nil
}

// DataURL renders the payload as an inline image data URL for HTML receipts.
func (r *Renderer) DataURL(payload string) (string, error) {
	png, err := r.PNG(payload)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Prober implements pos.CapabilityProber against the local runtime: QR
// rendering is probed by actually encoding a short payload, the crypto
// capability by reading the system's secure random source. Probing never
// errors; a failed probe reports the capability as unavailable.
type Prober struct{}

// NewProber creates the runtime prober.
func NewProber() *Prober { return &Prober{} }

// Probe checks both capabilities.
func (p *Prober) Probe() pos.Capabilities {
	return pos.Capabilities{
		QRRendering: p.probeQR(),
		LocalCrypto: p.probeCrypto(),
	}
}

func (p *Prober) probeQR() bool {
	_, err := qrcode.Encode("probe", qrcode.Low, 64)
	return err == nil
}

func (p *Prober) probeCrypto() bool {
	var buf [16]byte
	_, err := rand.Read(buf[:])
	return err == nil
}
