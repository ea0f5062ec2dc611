package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"delivery-insights/models"
	"delivery-insights/utils"
)

// InsightService assembles the per-page reports from the metric views.
type InsightService struct {
	logger *utils.Logger
	topK   int
}

func NewInsightService(logger *utils.Logger, topK int) *InsightService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &InsightService{logger: logger, topK: topK}
}

// Company builds the company/operations report. The weather filter is ignored.
func (s *InsightService) Company(records []*models.CleanRecord, f models.Filter) *models.CompanyReport {
	f.Weather = nil
	rows := ApplyFilter(records, f)
	s.logger.Debug("[insights] Company view over %d of %d records", len(rows), len(records))

	return &models.CompanyReport{
		OrdersPerDay:       OrdersPerDay(rows),
		TrafficShare:       TrafficShare(rows),
		TrafficByCity:      TrafficByCity(rows),
		OrdersPerWeek:      OrdersPerWeek(rows),
		OrdersPerCourierWk: OrdersPerCourierByWeek(rows),
		MedianLocations:    MedianLocations(rows),
	}
}

// Couriers builds the courier report.
func (s *InsightService) Couriers(records []*models.CleanRecord, f models.Filter) *models.CourierReport {
	rows := ApplyFilter(records, f)
	s.logger.Debug("[insights] Courier view over %d of %d records", len(rows), len(records))

	report := &models.CourierReport{
		RatingByCourier: RatingByCourier(rows),
		RatingByTraffic: RatingByTraffic(rows),
		RatingByWeather: RatingByWeather(rows),
		FastestCouriers: TopCouriers(rows, s.topK, true),
		SlowestCouriers: TopCouriers(rows, s.topK, false),
	}
	report.MinAge, report.MaxAge = AgeRange(rows)
	report.WorstVehicleCond, report.BestVehicleCond = VehicleConditionRange(rows)
	return report
}

// Restaurants builds the restaurant report.
func (s *InsightService) Restaurants(records []*models.CleanRecord, f models.Filter) *models.RestaurantReport {
	rows := ApplyFilter(records, f)
	s.logger.Debug("[insights] Restaurant view over %d of %d records", len(rows), len(records))

	return &models.RestaurantReport{
		UniqueCouriers:      UniqueCouriers(rows),
		MeanDistanceKm:      MeanDistance(rows),
		Festival:            FestivalTime(rows, true),
		NonFestival:         FestivalTime(rows, false),
		TimeByCity:          TimeByCity(rows),
		TimeByCityVehicle:   TimeByCityVehicle(rows),
		TimeByCityOrderType: TimeByCityOrderType(rows),
		TimeByCityTraffic:   TimeByCityTraffic(rows),
		DistanceByCity:      DistanceByCity(rows),
	}
}

// Print renders tables to w under a page banner.
func (s *InsightService) Print(w io.Writer, page string, tables []models.Table) {
	sep := strings.Repeat("═", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 CURY COMPANY · %s\033[0m\n", strings.ToUpper(page))
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	for _, tbl := range tables {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle(tbl.Name)
		t.AppendHeader(toRow(tbl.Header))
		if len(tbl.Rows) == 0 {
			fmt.Fprintf(w, "  %s: no data\n\n", tbl.Name)
			continue
		}
		for _, r := range tbl.Rows {
			t.AppendRow(toRow(r))
		}
		t.Render()
		fmt.Fprintln(w)
	}
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
