package output

import (
	"encoding/json"

	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
)

// ToJSON serializes a street index.
func ToJSON(idx *models.StreetIndex, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(idx, "", "  ")
	}
	return json.Marshal(idx)
}
