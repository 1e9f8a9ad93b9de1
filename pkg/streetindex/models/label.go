package models

// LabelRect is the footprint of one rendered street-name label.
// Offsets are measured from the top-left corner of the page.
type LabelRect struct {
	// StreetName is the text of the label.
	StreetName string `json:"name"`
	// XFromLeft is the distance from the left page edge.
	XFromLeft Millimeter `json:"x"`
	// YFromTop is the distance from the top page edge.
	YFromTop Millimeter `json:"y"`
	// Width is the horizontal extent of the label.
	Width Millimeter `json:"width"`
	// Height is the vertical extent of the label.
	Height Millimeter `json:"height"`
}

// StreetEntry records that a street's label touches one grid cell.
type StreetEntry struct {
	StreetName string       `json:"name"`
	Position   GridPosition `json:"position"`
}
