package charts

import "github.com/wcharczuk/go-chart/v2/drawing"

// Series palette, one colour per vehicle type in order of appearance.
var palette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

const (
	onTimeHex = "#10B981"
	lateHex   = "#EF4444"
)

// SeriesColor returns the hex colour for the i-th series.
func SeriesColor(i int) string {
	return palette[i%len(palette)]
}

func hex(s string) drawing.Color {
	return drawing.ColorFromHex(s[1:])
}

var (
	axisColor = drawing.ColorFromHex("9CA3AF")
	gridColor = drawing.ColorFromHex("E5E7EB")
	textColor = drawing.ColorFromHex("111827")
	mutedText = drawing.ColorFromHex("6B7280")
)
