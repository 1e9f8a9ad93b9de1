package index

import "github.com/ukaji3/streetindex-go/pkg/streetindex/models"

// Classify splits roads into streets with a compact reference (one or two
// cells) and streets touching three or more cells, which need manual
// review. Both results are ordered by street name. Streets without
// positions are dropped.
func Classify(roads *models.DeduplicatedRoads) ([]models.ProcessedRoad, []models.UnprocessedRoad) {
	processed := make([]models.ProcessedRoad, 0, roads.Len())
	unprocessed := make([]models.UnprocessedRoad, 0)

	for _, name := range roads.Streets() {
		positions := roads.Positions(name)
		switch len(positions) {
		case 0:
		case 1:
			processed = append(processed, models.ProcessedRoad{
				Name:     name,
				Position: models.SingleCell(positions[0]),
			})
		case 2:
			processed = append(processed, models.ProcessedRoad{
				Name:     name,
				Position: models.CellPair(positions[0], positions[1]),
			})
		default:
			unprocessed = append(unprocessed, models.UnprocessedRoad{
				Name:      name,
				Positions: positions,
			})
		}
	}

	return processed, unprocessed
}
