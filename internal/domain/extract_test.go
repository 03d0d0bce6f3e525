package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema_HeaderVariants(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		row    RawRow
		want   Fields
	}{
		{
			name:   "source export layout",
			header: []string{"Sl No", "Date", "Police Station", "Event type ", "Latitude", "Longitude", "Complaint"},
			row: RawRow{
				"Sl No": "1", "Date": "31/01/2024", "Police Station": "Eral PS",
				"Event type ": "Theft", "Latitude": "8.62", "Longitude": "78.02", "Complaint": "bike stolen",
			},
			want: Fields{
				Latitude: "8.62", Longitude: "78.02", Date: "31/01/2024",
				Station: "Eral PS", EventType: "Theft", Complaint: strPtr("bike stolen"),
			},
		},
		{
			name:   "upper case and padded headers",
			header: []string{"LAT ", "Long", "INCIDENT DATE", "STATION NAME", "EVENT"},
			row:    RawRow{"LAT ": "8.7", "Long": "78.1", "INCIDENT DATE": "01/02/2024", "STATION NAME": "Pudur", "EVENT": "Fire"},
			want:   Fields{Latitude: "8.7", Longitude: "78.1", Date: "01/02/2024", Station: "Pudur", EventType: "Fire"},
		},
		{
			name:   "combined coordinates column",
			header: []string{"GPS Coords", "Date", "Police Station"},
			row:    RawRow{"GPS Coords": "8.7, 78.1", "Date": "01/02/2024", "Police Station": "Pudur"},
			want:   Fields{Location: "8.7, 78.1", Date: "01/02/2024", Station: "Pudur"},
		},
		{
			name:   "exact name beats earlier partial match",
			header: []string{"Reported Date", "Date", "Station Code", "Police Station", "Event Remarks", "Event Type"},
			row: RawRow{
				"Reported Date": "02/02/2024", "Date": "01/02/2024",
				"Station Code": "X1", "Police Station": "Pudur",
				"Event Remarks": "-", "Event Type": "Fire",
			},
			want: Fields{Date: "01/02/2024", Station: "Pudur", EventType: "Fire"},
		},
		{
			name:   "complaint column present but row short",
			header: []string{"Latitude", "Longitude", "Complaint"},
			row:    RawRow{"Latitude": "8.7", "Longitude": "78.1"},
			want:   Fields{Latitude: "8.7", Longitude: "78.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSchema(tt.header).Fields(tt.row)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema_HasCoordinates(t *testing.T) {
	assert.True(t, NewSchema([]string{"Latitude", "Longitude"}).HasCoordinates())
	assert.True(t, NewSchema([]string{"Location"}).HasCoordinates())
	assert.False(t, NewSchema([]string{"Latitude", "Date"}).HasCoordinates())
}

func TestExtractCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   Geo
		wantOK bool
	}{
		{"in range", Fields{Latitude: "8.7", Longitude: "77.9"}, Geo{8.7, 77.9}, true},
		{"surrounding whitespace", Fields{Latitude: " 8.7 ", Longitude: "\t77.9"}, Geo{8.7, 77.9}, true},
		{"swapped axes", Fields{Latitude: "77.9", Longitude: "8.7"}, Geo{8.7, 77.9}, true},
		{"combined column", Fields{Location: "8.76, 78.13"}, Geo{8.76, 78.13}, true},
		{"combined column swapped", Fields{Location: "78.13,8.76"}, Geo{8.76, 78.13}, true},
		{"separate columns win over combined", Fields{Latitude: "8.5", Longitude: "78.0", Location: "9.0, 78.2"}, Geo{8.5, 78.0}, true},
		{"one column empty falls back", Fields{Latitude: "8.5", Location: "9.0, 78.2"}, Geo{9.0, 78.2}, true},
		{"lower edge excluded", Fields{Latitude: "8.0", Longitude: "78.0"}, Geo{}, false},
		{"upper edge excluded", Fields{Latitude: "9.5", Longitude: "78.0"}, Geo{}, false},
		{"out of district", Fields{Latitude: "13.08", Longitude: "80.27"}, Geo{}, false},
		{"not a number", Fields{Latitude: "north", Longitude: "78.0"}, Geo{}, false},
		{"combined without comma", Fields{Location: "8.7 78.1"}, Geo{}, false},
		{"combined three parts", Fields{Location: "8.7,78.1,0"}, Geo{}, false},
		{"nothing", Fields{}, Geo{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCoordinates(tt.fields)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.True(t, InBounds(got.Lat, got.Lon))
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"31/01/2024", "2024-01-31", true},
		{"05/03/2024", "2024-03-05", true},
		{" 05/03/2024 ", "2024-03-05", true},
		{"2024-03-05", "2024-03-05", true},
		{"31-01-2024", "2024-01-31", true},
		{"31.01.2024", "2024-01-31", true},
		{"5-3-2024", "2024-03-05", true},
		{"5.3.2024", "2024-03-05", true},
		{"31-01-2024 10:30", "2024-01-31", true},
		{"31-13-2024", "", false},
		{"", "", false},
		{"   ", "", false},
		{"not a date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ExtractDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func strPtr(s string) *string { return &s }
