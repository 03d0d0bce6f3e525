package pipeline_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/incident-data-etl/internal/adapter/sheet"
	"github.com/couchcryptid/incident-data-etl/internal/domain"
	"github.com/couchcryptid/incident-data-etl/internal/gazetteer"
	"github.com/couchcryptid/incident-data-etl/internal/pipeline"
)

func loadExport(t *testing.T) domain.Sheet {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "incident_export.csv"))
	require.NoError(t, err)
	defer f.Close()

	s, err := sheet.Decode(f)
	require.NoError(t, err)
	return s
}

func TestProcess_SampleExport(t *testing.T) {
	n := domain.NewNormalizer(gazetteer.Default(), nil)

	res, err := pipeline.Process(context.Background(), loadExport(t), n, 4)
	require.NoError(t, err)

	assert.Equal(t, 12, res.RowsRead)
	require.Len(t, res.Records, 8)
	assert.Equal(t, map[domain.RejectReason]int{
		domain.RejectCoordinates: 1,
		domain.RejectDate:        1,
		domain.RejectStation:     2,
	}, res.Rejected)
	assert.Equal(t, []pipeline.Rejection{
		{Row: 5, Reason: domain.RejectCoordinates},
		{Row: 6, Reason: domain.RejectDate},
		{Row: 7, Reason: domain.RejectStation},
		{Row: 8, Reason: domain.RejectStation},
	}, res.Rejections)

	stations := make([]string, len(res.Records))
	for i, r := range res.Records {
		stations[i] = r.PoliceStation
	}
	assert.Equal(t, []string{
		"Thoothukudi North", "Thoothukudi North", "Kovilpatti East", "Kovilpatti East",
		"Eral", "Thoothukudi North", "Pudur", "Tiruchendur Temple",
	}, stations, "accepted records keep input order")

	swapped := res.Records[3]
	assert.Equal(t, 9.17, swapped.Latitude)
	assert.Equal(t, 77.87, swapped.Longitude)
	assert.Equal(t, "2024-02-03", swapped.Date)

	require.NotNil(t, res.Records[0].Complaint)
	assert.Equal(t, "Ravi, Market Road, 9876543210", *res.Records[0].Complaint)
	assert.Equal(t, domain.AreaTown, res.Records[0].AreaCategory)
	assert.Equal(t, domain.AreaRural, res.Records[2].AreaCategory)

	wantFilters := domain.FilterOptions{
		EventTypes: []string{
			"Complaint Against Police", "Family Dispute", "Fighting / Threatening", "Fire Accident",
			"Others", "Prohibition Related", "Road Accident", "Theft / Robbery",
		},
		Subdivisions: []string{"Kovilpatti", "Srivaikundam", "Thoothukudi Town", "Tiruchendur", "Vilathikulam"},
	}
	if diff := cmp.Diff(wantFilters, res.Filters); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, domain.Analytics{
		TotalCases: 8,
		TopStations: []domain.StationCount{
			{Station: "Thoothukudi North", Count: 3},
			{Station: "Kovilpatti East", Count: 2},
			{Station: "Eral", Count: 1},
			{Station: "Pudur", Count: 1},
			{Station: "Tiruchendur Temple", Count: 1},
		},
	}, res.Analytics)
}

func TestProcess_EmptySheet(t *testing.T) {
	n := domain.NewNormalizer(gazetteer.Default(), nil)

	res, err := pipeline.Process(context.Background(), domain.Sheet{}, n, 4)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Analytics.TotalCases)
	assert.Equal(t, []domain.StationCount{}, res.Analytics.TopStations)
	assert.Equal(t, []string{}, res.Filters.EventTypes)
	assert.Equal(t, []string{}, res.Filters.Subdivisions)
}

// indexNormalizer accepts every row and uses its station column as the ID.
type indexNormalizer struct {
	panicOn string
}

func (n indexNormalizer) Normalize(f domain.Fields) domain.Outcome {
	if f.Station == n.panicOn {
		panic("boom")
	}
	return domain.Outcome{Record: domain.Record{ID: f.Station, PoliceStation: "S", Subdivision: "D", EventType: "E"}}
}

func numberedSheet(rows int) domain.Sheet {
	s := domain.Sheet{Header: []string{"Police Station"}}
	for i := range rows {
		s.Rows = append(s.Rows, domain.RawRow{"Police Station": strconv.Itoa(i)})
	}
	return s
}

func TestProcess_OrderPreservedAcrossWorkers(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			res, err := pipeline.Process(context.Background(), numberedSheet(250), indexNormalizer{panicOn: "-"}, workers)
			require.NoError(t, err)
			require.Len(t, res.Records, 250)
			for i, r := range res.Records {
				assert.Equal(t, strconv.Itoa(i), r.ID)
			}
		})
	}
}

func TestProcess_PanicBecomesError(t *testing.T) {
	_, err := pipeline.Process(context.Background(), numberedSheet(20), indexNormalizer{panicOn: "7"}, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 7")
}

func TestProcess_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Process(ctx, numberedSheet(20), indexNormalizer{panicOn: "-"}, 4)
	require.ErrorIs(t, err, context.Canceled)
}
