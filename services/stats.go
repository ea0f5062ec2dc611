package services

import (
	"database/sql"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"delivery-insights/models"
)

// computeStats returns the mean and sample standard deviation of values.
// The mean needs one value and the deviation two; otherwise they are "no data".
func computeStats(values []float64) models.Stats {
	s := models.Stats{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Mean = sql.NullFloat64{Float64: stat.Mean(values, nil), Valid: true}
	if len(values) > 1 {
		s.Std = sql.NullFloat64{Float64: stat.StdDev(values, nil), Valid: true}
	}
	return s
}

func mean(values []float64) sql.NullFloat64 {
	return computeStats(values).Mean
}

// median averages the two middle values for an even count.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// group is a set of records sharing the same grouping keys.
type group struct {
	keys    []string
	records []*models.CleanRecord
}

// groupBy partitions records by the keys keyFn returns. Groups come back
// sorted by key, compared element by element; records keep input order.
func groupBy(records []*models.CleanRecord, keyFn func(*models.CleanRecord) []string) []*group {
	index := make(map[string]*group)
	var groups []*group
	for _, r := range records {
		keys := keyFn(r)
		id := strings.Join(keys, "\x00")
		g, ok := index[id]
		if !ok {
			g = &group{keys: keys}
			index[id] = g
			groups = append(groups, g)
		}
		g.records = append(g.records, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return lessKeys(groups[i].keys, groups[j].keys)
	})
	return groups
}

func lessKeys(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func timeTaken(records []*models.CleanRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.TimeTakenMin)
	}
	return out
}

func validRatings(records []*models.CleanRecord) []float64 {
	var out []float64
	for _, r := range records {
		if r.Rating.Valid {
			out = append(out, r.Rating.Float64)
		}
	}
	return out
}
