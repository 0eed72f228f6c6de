package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// ErrEncode возвращается, если текст не удалось закодировать
var ErrEncode = errors.New("qrcode: failed to encode")

// Encoder рисует QR-коды в PNG
type Encoder struct {
	size int
}

// NewEncoder создает кодировщик с размером стороны size пикселей
func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = defaultSize
	}
	return &Encoder{size: size}
}

// Encode возвращает PNG с QR-кодом текста
func (e *Encoder) Encode(text string) ([]byte, error) {
	png, err := qr.Encode(text, qr.Medium, e.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return png, nil
}

// EncodeBase64 возвращает PNG в base64 (StdEncoding), пригодный для data: URI
func (e *Encoder) EncodeBase64(text string) (string, error) {
	png, err := e.Encode(text)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
