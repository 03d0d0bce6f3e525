package domain

import (
	"strconv"
	"strings"
)

// District bounding box, exclusive on every edge.
const (
	MinLat = 8.0
	MaxLat = 9.5
	MinLon = 77.5
	MaxLon = 78.5
)

// InBounds reports whether the pair lies strictly inside the district box.
func InBounds(lat, lon float64) bool {
	return lat > MinLat && lat < MaxLat && lon > MinLon && lon < MaxLon
}

// ExtractCoordinates reads the coordinate pair from f. Separate latitude and
// longitude columns win; the combined location column is the fallback. A pair
// that is only valid with its axes swapped is returned swapped.
func ExtractCoordinates(f Fields) (Geo, bool) {
	latRaw, lonRaw, ok := coordinateStrings(f)
	if !ok {
		return Geo{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return Geo{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonRaw), 64)
	if err != nil {
		return Geo{}, false
	}

	switch {
	case InBounds(lat, lon):
		return Geo{Lat: lat, Lon: lon}, true
	case InBounds(lon, lat):
		return Geo{Lat: lon, Lon: lat}, true
	default:
		return Geo{}, false
	}
}

func coordinateStrings(f Fields) (string, string, bool) {
	if f.Latitude != "" && f.Longitude != "" {
		return f.Latitude, f.Longitude, true
	}
	if !strings.Contains(f.Location, ",") {
		return "", "", false
	}
	parts := strings.Split(f.Location, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
