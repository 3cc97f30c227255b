package services

import (
	"slices"

	"trip-planner-service/internal/domain"
)

// How many top-rated candidates the nightly recommendation rotates across.
const lodgingRotation = 3

// RecommendLodging picks an accommodation for the night after the given
// zero-based day. Candidates are ranked by rating; with the eco flag,
// environmentally labeled candidates outrank everything else. Successive
// days rotate through the leading candidates so a multi-day trip does not
// recommend the same house every night.
func RecommendLodging(lodgings []domain.Lodging, dayIdx int, eco bool) *domain.Lodging {
	if len(lodgings) == 0 {
		return nil
	}

	ranked := make([]domain.Lodging, len(lodgings))
	copy(ranked, lodgings)

	slices.SortFunc(ranked, func(a, b domain.Lodging) int {
		if eco {
			la, lb := a.HasEnvironmentalLabel(), b.HasEnvironmentalLabel()
			if la != lb {
				if la {
					return -1
				}
				return 1
			}
		}
		if a.Rating > b.Rating {
			return -1
		}
		if a.Rating < b.Rating {
			return 1
		}
		// Equal ratings fall back to ID order for deterministic output.
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	window := lodgingRotation
	if window > len(ranked) {
		window = len(ranked)
	}

	pick := ranked[dayIdx%window]
	return &pick
}
