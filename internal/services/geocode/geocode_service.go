package geocode

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrCityNotFound = errors.New("city not found")

type GeocodeService struct {
	Client  *http.Client
	BaseURL string
}

func NewGeocodeService(baseURL string) *GeocodeService {
	return &GeocodeService{
		Client:  &http.Client{Timeout: 15 * time.Second},
		BaseURL: baseURL,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Forward resolves a free-text city name to coordinates. Nominatim returns
// matches best-first; the first one wins.
func (s *GeocodeService) Forward(city string) (*Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&q=%s", s.BaseURL, url.QueryEscape(city))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "freelancelocal-be/1.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrCityNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
