package rating

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanRate_Self(t *testing.T) {
	svc := NewRatingService(nil)
	id := uuid.New()

	if err := svc.CanRate(id, id); err != ErrSelfRating {
		t.Errorf("expected ErrSelfRating, got %v", err)
	}
}

func TestSubmit_OutOfRange(t *testing.T) {
	svc := NewRatingService(nil)
	rater := uuid.New()
	target := uuid.New()

	for _, v := range []int{0, -1, 6} {
		if _, err := svc.Submit(rater, target, v, ""); err != ErrRatingOutOfRange {
			t.Errorf("Submit(%d): expected ErrRatingOutOfRange, got %v", v, err)
		}
	}
}

func TestSubmit_SelfRejectedBeforeWrite(t *testing.T) {
	svc := NewRatingService(nil)
	id := uuid.New()

	// nil DB: reaching the database would panic, proving the rejection
	// happens before any row is written
	if _, err := svc.Submit(id, id, 5, "nice"); err != ErrSelfRating {
		t.Errorf("expected ErrSelfRating, got %v", err)
	}
}
