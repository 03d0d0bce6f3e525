package domain

import (
	"slices"
	"sort"
)

// TopStationsLimit caps Analytics.TopStations.
const TopStationsLimit = 5

// Summarize derives the filter options and analytics of an accepted record
// set. Slices in the result are never nil.
func Summarize(records []Record) (FilterOptions, Analytics) {
	eventTypes := make(map[string]struct{})
	subdivisions := make(map[string]struct{})
	counts := make(map[string]int)
	var order []string

	for _, r := range records {
		eventTypes[r.EventType] = struct{}{}
		subdivisions[r.Subdivision] = struct{}{}
		if _, seen := counts[r.PoliceStation]; !seen {
			order = append(order, r.PoliceStation)
		}
		counts[r.PoliceStation]++
	}

	top := make([]StationCount, 0, len(order))
	for _, s := range order {
		top = append(top, StationCount{Station: s, Count: counts[s]})
	}
	// stable keeps first-seen order among equal counts
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > TopStationsLimit {
		top = top[:TopStationsLimit]
	}

	filters := FilterOptions{
		EventTypes:   sortedKeys(eventTypes),
		Subdivisions: sortedKeys(subdivisions),
	}
	return filters, Analytics{TotalCases: len(records), TopStations: top}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
