package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 720
	DefaultHeight = 380

	yTicks = 5
)

// canvas is a small plotting surface over go-chart's SVG renderer: a titled
// frame, a value axis starting at zero and helpers for boxes, lines and labels.
type canvas struct {
	r    chart.Renderer
	w, h int
	plot chart.Box
	yMax float64
}

func newCanvas(width, height int, title string) (*canvas, error) {
	r, err := chart.SVG(width, height)
	if err != nil {
		return nil, fmt.Errorf("new canvas: svg renderer: %w", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("new canvas: load font: %w", err)
	}
	r.SetFont(font)

	c := &canvas{
		r: r,
		w: width,
		h: height,
		plot: chart.Box{
			Top:    56,
			Left:   64,
			Right:  width - 24,
			Bottom: height - 56,
		},
	}

	c.rect(0, 0, width, height, drawing.ColorWhite, drawing.ColorWhite)
	c.textCentered(title, width/2, 28, 15, textColor)
	return c, nil
}

// scaleY fixes the value axis to [0, niceCeil(max)] and draws gridlines with tick labels.
func (c *canvas) scaleY(max float64, name string) {
	step := niceStep(max / yTicks)
	c.yMax = step * math.Ceil(max/step)
	if c.yMax <= 0 {
		c.yMax = 1
		step = 1.0 / yTicks
	}

	for v := 0.0; v <= c.yMax+step/2; v += step {
		y := c.y(v)
		c.line(c.plot.Left, y, c.plot.Right, y, gridColor, 1)
		label := formatTick(v, step)
		c.textRight(label, c.plot.Left-8, y+4, 10, mutedText)
	}

	c.line(c.plot.Left, c.plot.Top, c.plot.Left, c.plot.Bottom, axisColor, 1)
	c.line(c.plot.Left, c.plot.Bottom, c.plot.Right, c.plot.Bottom, axisColor, 1)
	c.textLeft(name, 8, c.plot.Top-12, 11, mutedText)
}

// y maps a value to a pixel row inside the plot area.
func (c *canvas) y(v float64) int {
	if c.yMax <= 0 {
		return c.plot.Bottom
	}
	return c.plot.Bottom - int(math.Round(v/c.yMax*float64(c.plot.Height())))
}

func (c *canvas) rect(x0, y0, x1, y1 int, fill, stroke drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.LineTo(x0, y0)
	c.r.Close()
	c.r.FillStroke()
}

func (c *canvas) line(x0, y0, x1, y1 int, color drawing.Color, width float64) {
	c.r.SetStrokeColor(color)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
}

func (c *canvas) textLeft(s string, x, y int, size float64, color drawing.Color) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(color)
	c.r.Text(s, x, y)
}

func (c *canvas) textCentered(s string, x, y int, size float64, color drawing.Color) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(color)
	b := c.r.MeasureText(s)
	c.r.Text(s, x-b.Width()/2, y)
}

func (c *canvas) textRight(s string, x, y int, size float64, color drawing.Color) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(color)
	b := c.r.MeasureText(s)
	c.r.Text(s, x-b.Width(), y)
}

// legend draws coloured swatches with labels along the top-right of the plot.
func (c *canvas) legend(labels []string, colors []drawing.Color) {
	x := c.plot.Right
	for i := len(labels) - 1; i >= 0; i-- {
		c.r.SetFontSize(10)
		b := c.r.MeasureText(labels[i])
		x -= b.Width()
		c.textLeft(labels[i], x, c.plot.Top-14, 10, textColor)
		x -= 16
		c.rect(x, c.plot.Top-24, x+10, c.plot.Top-14, colors[i], colors[i])
		x -= 12
	}
}

func (c *canvas) empty(msg string) {
	c.textCentered(msg, c.w/2, c.h/2, 12, mutedText)
}

func (c *canvas) save(w io.Writer) error {
	if err := c.r.Save(w); err != nil {
		return fmt.Errorf("save svg: %w", err)
	}
	return nil
}

// niceStep rounds a raw tick step up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

func formatTick(v, step float64) string {
	if step >= 1 && step == math.Trunc(step) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
