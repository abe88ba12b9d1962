package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	SeatPNG(seat int) ([]byte, error)
}

// SeatQR encodes the ordering link printed on each table.
type SeatQR struct {
	BaseURL string
	Size    int
}

func (g SeatQR) URL(seat int) string {
	return fmt.Sprintf("%s/?seat=%d", g.BaseURL, seat)
}

func (g SeatQR) SeatPNG(seat int) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.URL(seat), qrcode.Medium, size)
}
