package services

import (
	"delivery-insights/models"
	"delivery-insights/utils"
)

// ApplyFilter keeps records ordered strictly before the cutoff whose traffic
// level is allowed and, when f.Weather is non-nil, whose weather is allowed.
// The input slice is not modified.
func ApplyFilter(records []*models.CleanRecord, f models.Filter) []*models.CleanRecord {
	traffic := utils.NewSet()
	for _, t := range f.Traffic {
		traffic.Add(string(t))
	}
	var weather *utils.Set
	if f.Weather != nil {
		weather = utils.NewSet()
		for _, w := range f.Weather {
			weather.Add(string(w))
		}
	}

	out := make([]*models.CleanRecord, 0, len(records))
	for _, r := range records {
		if !r.OrderDate.Before(f.Cutoff) {
			continue
		}
		if !traffic.Contains(string(r.Traffic)) {
			continue
		}
		if weather != nil && !weather.Contains(string(r.Weather)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
