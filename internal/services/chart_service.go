package services

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/akagifreeez/trade-values/internal/models"
)

// HistoryPoint is one labelled sample of an item's value history
type HistoryPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// The catalog carries no recorded history, so the series is derived from the
// current base value with a fixed shape.
var (
	historyLabels      = []string{"Jul 30", "Aug 03", "Jun 13", "Jul 31", "Aug 09", "Aug 09"}
	historyMultipliers = []float64{0.98, 0.90, 1.10, 0.97, 1.05, 1.00}
)

// ChartService provides methods to generate chart images
type ChartService struct{}

func NewChartService() *ChartService {
	return &ChartService{}
}

// ValueHistory returns the six-point value series for an item.
// Every point is zero when the item has no numeric base value.
func (s *ChartService) ValueHistory(item models.Item) []HistoryPoint {
	points := make([]HistoryPoint, len(historyLabels))
	for i, label := range historyLabels {
		points[i] = HistoryPoint{Label: label}
		if item.BaseValueNum.Valid {
			points[i].Value = item.BaseValueNum.Float64 * historyMultipliers[i]
		}
	}
	return points
}

// GenerateValueChartPNG renders an item's value history as a line chart PNG
func (s *ChartService) GenerateValueChartPNG(item models.Item) ([]byte, error) {
	history := s.ValueHistory(item)
	if len(history) < 2 {
		return nil, fmt.Errorf("not enough data points to generate a chart")
	}

	// Labels repeat and are not chronological, so points are placed by index
	xValues := make([]float64, len(history))
	yValues := make([]float64, len(history))
	ticks := make([]chart.Tick, len(history))
	for i, p := range history {
		xValues[i] = float64(i)
		yValues[i] = p.Value
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Label}
	}

	yAxis := chart.YAxis{
		Name: "Value",
		NameStyle: chart.Style{
			FontColor: drawing.ColorWhite,
		},
		Style: chart.Style{
			FontColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorWhite,
		},
		ValueFormatter: func(v interface{}) string {
			if typed, ok := v.(float64); ok {
				if typed >= 1000000 {
					return fmt.Sprintf("%.1fM", typed/1000000)
				}
				if typed >= 1000 {
					return fmt.Sprintf("%.1fk", typed/1000)
				}
				return fmt.Sprintf("%.0f", typed)
			}
			return ""
		},
	}
	// go-chart cannot auto-range a flat zero series
	if !item.BaseValueNum.Valid || item.BaseValueNum.Float64 == 0 {
		yAxis.Range = &chart.ContinuousRange{Min: 0, Max: 1}
	}

	graph := chart.Chart{
		Title: item.DisplayName() + " - Value History",
		TitleStyle: chart.Style{
			FontColor: drawing.ColorWhite,
			FontSize:  16,
		},
		Background: chart.Style{
			FillColor: drawing.ColorFromHex("2c2f33"), // Discord dark theme color
		},
		Canvas: chart.Style{
			FillColor: drawing.ColorFromHex("23272a"),
		},
		XAxis: chart.XAxis{
			Name: "Date",
			NameStyle: chart.Style{
				FontColor: drawing.ColorWhite,
			},
			Style: chart.Style{
				FontColor:   drawing.ColorWhite,
				StrokeColor: drawing.ColorWhite,
			},
			Ticks: ticks,
		},
		YAxis: yAxis,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Base Value",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("5865F2"), // Blurple
					StrokeWidth: 3.0,
					FillColor:   drawing.ColorFromHex("5865F2").WithAlpha(64),
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
