package attachment

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"
)

const PDFMediaType = "application/pdf"
const DataURLPrefix = "data:" + PDFMediaType + ";base64,"

var (
	ErrEmpty    = errors.New("файл пустой")
	ErrNotPDF   = errors.New("разрешены только PDF файлы")
	ErrTooLarge = errors.New("файл превышает допустимый размер")
	ErrBadURL   = errors.New("ссылка на вложение должна быть PDF data URL или http(s) адресом")
)

var pdfMagic = []byte("%PDF")

// EncodePDF читает PDF и возвращает его как data URL
func EncodePDF(r io.Reader, contentType string, maxSize int64) (string, error) {
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != PDFMediaType {
			return "", ErrNotPDF
		}
	}

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return "", fmt.Errorf("чтение файла: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > maxSize {
		return "", ErrTooLarge
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return "", ErrNotPDF
	}

	return DataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ValidateURL допускает пустую строку, PDF data URL и внешний http(s) адрес
func ValidateURL(s string) error {
	if s == "" {
		return nil
	}

	if IsDataURL(s) {
		if !strings.HasPrefix(s, DataURLPrefix) {
			return ErrBadURL
		}
		if _, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, DataURLPrefix)); err != nil {
			return ErrBadURL
		}
		return nil
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrBadURL
	}
	return nil
}
