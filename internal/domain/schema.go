package domain

import "strings"

// Schema maps the header of one export onto the fixed Fields layout.
// Build it once per sheet with NewSchema.
type Schema struct {
	latitude  string
	longitude string
	location  string
	date      string
	station   string
	eventType string
	complaint string
}

// NewSchema resolves which source column feeds each field. Matching is
// case-insensitive on the trimmed header; "first" means first in header order.
func NewSchema(header []string) Schema {
	return Schema{
		latitude:  findContaining(header, "lat"),
		longitude: findContaining(header, "lon"),
		location:  findContaining(header, "location", "coords"),
		date:      findExactOrContaining(header, "date", "date"),
		station:   findExactOrContaining(header, "police station", "station"),
		eventType: findExactOrContaining(header, "event type", "event"),
		complaint: findContaining(header, "complaint"),
	}
}

// Fields projects one row onto the internal schema.
func (s Schema) Fields(row RawRow) Fields {
	f := Fields{
		Latitude:  lookup(row, s.latitude),
		Longitude: lookup(row, s.longitude),
		Location:  lookup(row, s.location),
		Date:      lookup(row, s.date),
		Station:   lookup(row, s.station),
		EventType: lookup(row, s.eventType),
	}
	if s.complaint != "" {
		if v, ok := row[s.complaint]; ok {
			f.Complaint = &v
		}
	}
	return f
}

// HasCoordinates reports whether the header carries any coordinate column.
func (s Schema) HasCoordinates() bool {
	return (s.latitude != "" && s.longitude != "") || s.location != ""
}

func lookup(row RawRow, column string) string {
	if column == "" {
		return ""
	}
	return row[column]
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func findContaining(header []string, needles ...string) string {
	for _, h := range header {
		n := normalizeHeader(h)
		for _, needle := range needles {
			if strings.Contains(n, needle) {
				return h
			}
		}
	}
	return ""
}

func findExactOrContaining(header []string, exact, needle string) string {
	for _, h := range header {
		if normalizeHeader(h) == exact {
			return h
		}
	}
	return findContaining(header, needle)
}
