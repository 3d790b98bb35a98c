// Package feed ranks discovery candidates and walks them with a cyclic
// cursor. Pure in-memory logic; handlers own the fetching.
package feed

import (
	"sort"

	"github.com/google/uuid"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
)

type Candidate struct {
	models.Profile
	IsFavorite bool `json:"is_favorite"`
}

// Rank orders candidates: viewer's city first, then rating descending,
// then name ascending so equal entries come out in a stable order.
func Rank(profiles []models.Profile, viewerCity string, favorites map[uuid.UUID]bool) []Candidate {
	out := make([]Candidate, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, Candidate{
			Profile:    p,
			IsFavorite: favorites[p.ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		iSame := viewerCity != "" && out[i].City == viewerCity
		jSame := viewerCity != "" && out[j].City == viewerCity
		if iSame != jSame {
			return iSame
		}
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// Index maps an arbitrary cursor onto a valid slice index. Negative cursors
// wrap the same way advancing past the end does.
func Index(cursor, total int) int {
	if total <= 0 {
		return 0
	}
	i := cursor % total
	if i < 0 {
		i += total
	}
	return i
}

// Next advances the cursor one step, wrapping back to 0 past the last
// candidate.
func Next(cursor, total int) int {
	if total <= 0 {
		return 0
	}
	return (Index(cursor, total) + 1) % total
}
