package docgen

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize is the pixel size of the standalone QR tile before it is
// composited onto the ticket document.
const qrImageSize = 256

// EncodeQR renders text (the raw ticket_id) into a PNG QR image.
func EncodeQR(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// DecodeQR extracts the QR payload from a camera frame or document image.
// The returned string is exactly the text that was encoded.
func DecodeQR(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("decode qr: %w", err)
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("decode qr: %w", err)
	}

	return result.GetText(), nil
}
