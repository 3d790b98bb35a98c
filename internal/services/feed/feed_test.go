package feed

import (
	"testing"

	"github.com/google/uuid"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
)

func candidate(name, city string, rating float64) models.Profile {
	return models.Profile{ID: uuid.New(), Name: name, City: city, Rating: rating}
}

func TestRank_SameCityBeatsRating(t *testing.T) {
	// Caller in Berlin: both Berlin candidates precede Munich regardless
	// of rating; among Berlin candidates the higher rating sorts first.
	profiles := []models.Profile{
		candidate("anna", "Berlin", 3),
		candidate("ben", "Berlin", 5),
		candidate("carl", "Munich", 4),
	}

	ranked := Rank(profiles, "Berlin", nil)

	if ranked[0].Name != "ben" || ranked[1].Name != "anna" {
		t.Errorf("expected [ben anna ...], got [%s %s]", ranked[0].Name, ranked[1].Name)
	}
	if ranked[2].Name != "carl" {
		t.Errorf("expected Munich candidate last, got %s", ranked[2].Name)
	}
}

func TestRank_BerlinScenario(t *testing.T) {
	// city=Berlin rating=3 must precede city=Munich rating=5.
	a := candidate("a", "Berlin", 3)
	b := candidate("b", "Munich", 5)

	ranked := Rank([]models.Profile{b, a}, "Berlin", nil)

	if ranked[0].ID != a.ID {
		t.Errorf("expected same-city candidate first, got %s", ranked[0].Name)
	}
}

func TestRank_RatingDescWithoutCityMatch(t *testing.T) {
	profiles := []models.Profile{
		candidate("low", "Hamburg", 2),
		candidate("high", "Munich", 5),
	}

	ranked := Rank(profiles, "Berlin", nil)

	if ranked[0].Name != "high" {
		t.Errorf("expected highest rating first, got %s", ranked[0].Name)
	}
}

func TestRank_TieBreaksByName(t *testing.T) {
	profiles := []models.Profile{
		candidate("zoe", "Berlin", 4),
		candidate("amy", "Berlin", 4),
	}

	ranked := Rank(profiles, "Berlin", nil)

	if ranked[0].Name != "amy" {
		t.Errorf("expected name tie-break, got %s first", ranked[0].Name)
	}
}

func TestRank_FavoriteFlag(t *testing.T) {
	p := candidate("fav", "Berlin", 4)
	favorites := map[uuid.UUID]bool{p.ID: true}

	ranked := Rank([]models.Profile{p}, "", favorites)

	if !ranked[0].IsFavorite {
		t.Error("expected is_favorite to be set from the favorites set")
	}
}

func TestCursor_Cyclic(t *testing.T) {
	// Advancing N times over N candidates returns to the start.
	total := 5
	cursor := 0
	for i := 0; i < total; i++ {
		cursor = Next(cursor, total)
	}
	if cursor != 0 {
		t.Errorf("expected cursor to wrap to 0, got %d", cursor)
	}
}

func TestCursor_IndexWrapsOutOfRange(t *testing.T) {
	if got := Index(7, 3); got != 1 {
		t.Errorf("Index(7,3) = %d, want 1", got)
	}
	if got := Index(-1, 3); got != 2 {
		t.Errorf("Index(-1,3) = %d, want 2", got)
	}
	if got := Index(4, 0); got != 0 {
		t.Errorf("Index with empty feed = %d, want 0", got)
	}
}
