package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/couchcryptid/incident-data-etl/internal/gazetteer"
)

// Normalizer turns one row's fields into a Record or a rejection.
// It is safe for concurrent use when its resolver is.
type Normalizer struct {
	gaz        *gazetteer.Gazetteer
	resolver   StationResolver
	classifier *Classifier
}

// NewNormalizer builds a normalizer. A nil resolver defaults to NewResolver(g).
func NewNormalizer(g *gazetteer.Gazetteer, resolver StationResolver) *Normalizer {
	if resolver == nil {
		resolver = NewResolver(g)
	}
	return &Normalizer{
		gaz:        g,
		resolver:   resolver,
		classifier: NewClassifier(g),
	}
}

// Normalize applies the validation gates in order: coordinates, date, station.
// The first gate that fails decides the rejection reason.
func (n *Normalizer) Normalize(f Fields) Outcome {
	geo, ok := ExtractCoordinates(f)
	if !ok {
		return Outcome{Reason: RejectCoordinates}
	}

	date, ok := ExtractDate(f.Date)
	if !ok {
		return Outcome{Reason: RejectDate}
	}

	station := n.resolver.Resolve(f.Station).Name
	subdivision, ok := n.gaz.Subdivision(station)
	if !ok {
		return Outcome{Reason: RejectStation}
	}

	eventType := n.classifier.Classify(f.EventType)

	return Outcome{Record: Record{
		ID:            generateID(station, date, geo, eventType),
		Latitude:      geo.Lat,
		Longitude:     geo.Lon,
		EventType:     eventType,
		PoliceStation: station,
		Subdivision:   subdivision,
		AreaCategory:  areaCategory(subdivision),
		Date:          date,
		Complaint:     f.Complaint,
	}}
}

func areaCategory(subdivision string) string {
	if strings.Contains(subdivision, AreaTown) {
		return AreaTown
	}
	return AreaRural
}

// generateID produces a deterministic ID from the record's key fields so the
// same incident keeps its ID across refreshes.
func generateID(station, date string, geo Geo, eventType string) string {
	input := fmt.Sprintf("%s|%s|%.5f|%.5f|%s", station, date, geo.Lat, geo.Lon, eventType)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:8])
}
