package vswhere

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/osdeverr/find-msvc/internal/model"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse decodes the JSON array printed by vswhere. A JSON null decodes to an
// empty list. Anything that is not an array of objects is an error.
func Parse(data []byte) ([]model.Installation, error) {
	var installs []model.Installation
	if err := json.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &installs); err != nil {
		return nil, fmt.Errorf("parsing vswhere output: %w", err)
	}
	return installs, nil
}
