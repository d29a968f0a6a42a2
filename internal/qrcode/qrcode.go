package qrcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

var ErrEmptyRequestID = errors.New("request id is empty")

// Payload is what the code encodes, so shop staff can look the request up.
func Payload(requestID string) string {
	return "carmate:service-request:" + requestID
}

// RequestASCII renders the request's code with half-block characters, two
// bitmap rows per terminal line.
func RequestASCII(requestID string) (string, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return "", ErrEmptyRequestID
	}

	qr, err := qrcode.New(Payload(requestID), qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	bitmap := qr.Bitmap()

	var sb strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := 0; x < len(bitmap[y]); x++ {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
