// Package seed holds the compiled-in reference data: the default content
// bundle, the service catalog, the district directory and the starting wallet.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

//go:embed bundle.json
var bundleJSON []byte

func init() {
	b, err := decodeBundle()
	if err != nil {
		panic(fmt.Sprintf("seed: default bundle: %v", err))
	}
	if !b.Valid() {
		panic("seed: default bundle is missing a language section")
	}
}

// DefaultBundle returns a fresh copy of the compiled-in content bundle.
func DefaultBundle() models.ContentBundle {
	b, _ := decodeBundle()
	return b
}

func decodeBundle() (models.ContentBundle, error) {
	var b models.ContentBundle
	err := json.Unmarshal(bundleJSON, &b)
	return b, err
}
