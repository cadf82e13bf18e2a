package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/cache"
	"nexta-backend-go/pkg/overpass"
)

const (
	defaultPlacesRadius = 7000
	maxPlacesRadius     = 50000
	placesCacheTTL      = time.Hour
)

var defaultAmenities = []string{"clinic", "hospital"}

// PlacesSource runs an amenity search around a coordinate.
type PlacesSource interface {
	Around(ctx context.Context, lat, lon float64, radius int, amenities []string) ([]overpass.Element, error)
}

type placesService struct {
	source PlacesSource
	cache  cache.Cache
	logger *zap.Logger
}

// NewPlacesService creates a PlacesService. c may be nil.
func NewPlacesService(source PlacesSource, c cache.Cache, logger *zap.Logger) PlacesService {
	return &placesService{source: source, cache: c, logger: logger}
}

// Nearby returns points of interest within radius metres of (lat, lon),
// grouped by amenity. Every requested amenity has an entry, possibly empty.
func (s *placesService) Nearby(ctx context.Context, lat, lon float64, radius int, amenities []string) (map[string][]models.Place, error) {
	if !(lat >= -90 && lat <= 90) || !(lon >= -180 && lon <= 180) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	if radius == 0 {
		radius = defaultPlacesRadius
	}
	if radius < 0 || radius > maxPlacesRadius {
		return nil, fmt.Errorf("%w: radius must be between 1 and %d metres", ErrInvalidInput, maxPlacesRadius)
	}
	amenities, err := sanitizeAmenities(amenities)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("places:%.3f:%.3f:%d:%s", lat, lon, radius, strings.Join(amenities, ","))
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	elements, err := s.source.Around(ctx, lat, lon, radius, amenities)
	if err != nil {
		return nil, err
	}
	grouped := groupPlaces(elements, amenities)

	if s.cache != nil {
		if data, err := json.Marshal(grouped); err == nil {
			if err := s.cache.Set(ctx, key, data, placesCacheTTL); err != nil {
				s.logger.Warn("Failed to cache places", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return grouped, nil
}

func (s *placesService) fromCache(ctx context.Context, key string) map[string][]models.Place {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to read places cache", zap.String("key", key), zap.Error(err))
		return nil
	}
	if raw == "" {
		return nil
	}
	var out map[string][]models.Place
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.Warn("Discarding malformed places cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}
	return out
}

// sanitizeAmenities lowercases, dedupes and sorts amenity names. Only
// letters, digits and underscores are allowed since the names are embedded
// in the Overpass query.
func sanitizeAmenities(in []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range in {
		for _, a := range strings.Split(raw, ",") {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" || seen[a] {
				continue
			}
			for _, r := range a {
				if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
					return nil, fmt.Errorf("%w: invalid amenity %q", ErrInvalidInput, a)
				}
			}
			seen[a] = true
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultAmenities...), nil
	}
	sort.Strings(out)
	return out, nil
}

func groupPlaces(elements []overpass.Element, amenities []string) map[string][]models.Place {
	grouped := make(map[string][]models.Place, len(amenities))
	for _, a := range amenities {
		grouped[a] = []models.Place{}
	}
	for _, el := range elements {
		amenity := el.Tags["amenity"]
		if _, ok := grouped[amenity]; !ok {
			continue
		}
		lat, lon := el.Position()
		grouped[amenity] = append(grouped[amenity], models.Place{
			ID:      el.ID,
			Type:    el.Type,
			Name:    el.Tags["name"],
			Amenity: amenity,
			Lat:     lat,
			Lon:     lon,
			Tags:    el.Tags,
		})
	}
	return grouped
}
