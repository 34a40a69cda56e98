// Package chart renders earthquake counts and status placeholders as PNG images.
//
// Every call builds its own plot and raster canvas and returns the encoded
// bytes. Nothing is kept between calls.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/earthquake-dashboard/internal/domain"
)

// Image geometry: 10in x 5in at 100 DPI, i.e. 1000x500 pixels.
const (
	Width  = 10 * vg.Inch
	Height = 5 * vg.Inch
	DPI    = 100
)

// Placeholder messages.
const (
	MessageError   = "Error fetching data"
	MessageNoData  = "No earthquake data available"
	placeholderPts = 14
)

// maxDateLabels keeps long windows readable; intermediate labels are blanked.
const maxDateLabels = 40

var barColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}

// ErrNoBuckets is returned by RenderCounts when there is nothing to draw.
var ErrNoBuckets = errors.New("no day buckets to render")

// RenderCounts draws one vertical bar per day bucket, in the given order.
func RenderCounts(buckets []domain.DayBucket, title string) ([]byte, error) {
	p, err := barPlot(buckets, title)
	if err != nil {
		return nil, err
	}
	return encodePNG(p)
}

// RenderPlaceholder draws message centered on an otherwise empty image.
func RenderPlaceholder(message string) ([]byte, error) {
	p := plot.New()
	p.HideAxes()

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{message},
	})
	if err != nil {
		return nil, fmt.Errorf("placeholder label: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(placeholderPts)
	}
	p.Add(labels)

	// Fix the data range so the label sits in the middle of the canvas.
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	return encodePNG(p)
}

func barPlot(buckets []domain.DayBucket, title string) (*plot.Plot, error) {
	if len(buckets) == 0 {
		return nil, ErrNoBuckets
	}

	values := make(plotter.Values, len(buckets))
	days := make([]string, len(buckets))
	for i, b := range buckets {
		values[i] = float64(b.Count)
		days[i] = b.Day.Format(domain.DayLayout)
	}

	bars, err := plotter.NewBarChart(values, barWidth(len(buckets)))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Number of Earthquakes"
	p.Y.Min = 0
	p.Add(bars)

	p.NominalX(thinLabels(days, maxDateLabels)...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return p, nil
}

// barWidth spreads bars over the plotting area, capped so a handful of days
// does not produce slabs.
func barWidth(n int) vg.Length {
	w := (Width - 2*vg.Inch) / vg.Length(n) * 0.8
	switch {
	case w > vg.Inch/2:
		return vg.Inch / 2
	case w < vg.Points(1):
		return vg.Points(1)
	default:
		return w
	}
}

// thinLabels blanks labels so that at most limit of them are shown. The first
// label is always kept.
func thinLabels(labels []string, limit int) []string {
	if len(labels) <= limit {
		return labels
	}
	step := (len(labels) + limit - 1) / limit
	out := make([]string, len(labels))
	for i := 0; i < len(labels); i += step {
		out[i] = labels[i]
	}
	return out
}

func encodePNG(p *plot.Plot) ([]byte, error) {
	canvas := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
