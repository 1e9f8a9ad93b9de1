// Package parser reads street-name label rectangles from layout exports.
package parser

import "github.com/ukaji3/streetindex-go/pkg/streetindex/models"

// EMUPerMillimeter is the number of EMUs (English Metric Units) per millimetre.
// 1 inch = 914400 EMU = 25.4 mm, therefore 914400 / 25.4 = 36000.
const EMUPerMillimeter = 36000

// EMUToMillimeters converts EMU (English Metric Units) to millimetres.
// DrawingML stores shape offsets and extents in EMU.
func EMUToMillimeters(emu int64) models.Millimeter {
	return models.Millimeter(float64(emu) / EMUPerMillimeter)
}
