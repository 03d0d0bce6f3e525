package pipeline_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/incident-data-etl/internal/pipeline"
)

func TestStore_EmptyDefaults(t *testing.T) {
	s := pipeline.NewStore()

	assert.False(t, s.Published())
	assert.Empty(t, s.Records())
	assert.Equal(t, 0, s.Analytics().TotalCases)
	assert.Empty(t, s.FilterOptions().EventTypes)

	data, err := json.Marshal(s.Current())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"records":[]`)
	assert.Contains(t, string(data), `"top_stations":[]`)
}

func TestStore_ReadersGetCopies(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeSource{sheet: sampleSheet()})
	_, err := p.Refresh(t.Context())
	require.NoError(t, err)

	s := p.Store()
	records := s.Records()
	require.NotEmpty(t, records)
	records[0].PoliceStation = "mutated"
	assert.NotEqual(t, "mutated", s.Records()[0].PoliceStation)

	filters := s.FilterOptions()
	require.NotEmpty(t, filters.EventTypes)
	filters.EventTypes[0] = "mutated"
	assert.NotEqual(t, "mutated", s.FilterOptions().EventTypes[0])

	analytics := s.Analytics()
	require.NotEmpty(t, analytics.TopStations)
	analytics.TopStations[0].Station = "mutated"
	assert.NotEqual(t, "mutated", s.Analytics().TopStations[0].Station)
}
