package handler

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// toDecimal converts a float64 from a JSON body to a decimal.Decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

var errInvalidImageData = errors.New("invalid base64 image data")

// decodeBase64Image parses a base64 data URL ("data:image/png;base64,...")
// and returns the raw bytes together with the declared content type.
func decodeBase64Image(dataURL string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, "", errInvalidImageData
	}

	contentType, encoded, ok := strings.Cut(rest, ";base64,")
	if !ok || !strings.HasPrefix(contentType, "image/") {
		return nil, "", errInvalidImageData
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(data) == 0 {
		return nil, "", errInvalidImageData
	}

	return data, contentType, nil
}
