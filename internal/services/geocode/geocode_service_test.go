package geocode

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestForward_FirstMatchWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Berlin" {
			t.Errorf("unexpected query %q", got)
		}
		w.Write([]byte(`[{"lat":"52.52","lon":"13.405"},{"lat":"1.0","lon":"2.0"}]`))
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	coords, err := svc.Forward("Berlin")
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}

	if coords.Latitude != 52.52 || coords.Longitude != 13.405 {
		t.Errorf("expected first result, got %+v", coords)
	}
}

func TestForward_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	if _, err := svc.Forward("Nowhereville"); err != ErrCityNotFound {
		t.Errorf("expected ErrCityNotFound, got %v", err)
	}
}

func TestForward_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	if _, err := svc.Forward("Berlin"); err == nil {
		t.Error("expected an error on non-200 response")
	}
}
