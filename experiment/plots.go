package experiment

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/YuminosukeSato/clustersep/contour"
	"github.com/YuminosukeSato/clustersep/pkg/errors"
)

const (
	panelsFile = "dataset.png"
	trendsFile = "parameters_vs_shift_distance.png"

	panelCols   = 2
	panelWidth  = 10 * vg.Inch
	panelHeight = 10 * vg.Inch

	// slopeEps keeps the aggregate slope series finite when beta2
	// approaches zero. The per-panel equation text is deliberately
	// left unguarded and prints the raw ratio.
	slopeEps = 1e-8
)

var (
	class0Color   = color.NRGBA{R: 0x1f, G: 0x4e, B: 0xd8, A: 178}
	class1Color   = color.NRGBA{R: 0xd8, G: 0x1f, B: 0x1f, A: 178}
	boundaryGreen = color.NRGBA{G: 0x80, A: 255}
)

// soloPalette renders every contour level in one color.
type soloPalette struct {
	c color.Color
}

func (p soloPalette) Colors() []color.Color {
	return []color.Color{p.c}
}

// bandPalette maps probability bins to translucent class colors so a
// heat map over [0, 1] paints the stacked confidence bands: blue where
// P(class=1) <= {0.3, 0.2, 0.1}, red where P >= {0.7, 0.8, 0.9},
// transparent in between. Bin edges at multiples of 0.05 land exactly
// on the band thresholds.
type bandPalette struct {
	colors []color.Color
}

func (p bandPalette) Colors() []color.Color {
	return p.colors
}

func newBandPalette() bandPalette {
	const bins = 20
	colors := make([]color.Color, bins)
	for i := 0; i < bins; i++ {
		lo := float64(i) / bins
		switch {
		case lo < 0.1:
			colors[i] = withAlpha(class0Color, 0.30)
		case lo < 0.2:
			colors[i] = withAlpha(class0Color, 0.15)
		case lo < 0.3:
			colors[i] = withAlpha(class0Color, 0.05)
		case lo >= 0.9:
			colors[i] = withAlpha(class1Color, 0.30)
		case lo >= 0.8:
			colors[i] = withAlpha(class1Color, 0.15)
		case lo >= 0.7:
			colors[i] = withAlpha(class1Color, 0.05)
		default:
			colors[i] = color.NRGBA{}
		}
	}
	return bandPalette{colors: colors}
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(alpha * 255)
	return c
}

// buildPanel renders one distance's scatter-plus-contour panel: the
// labeled points, the confidence bands, the 0.5 decision contour and
// the equation/margin annotations.
func buildPanel(X *mat.Dense, y *mat.VecDense, grid *contour.Grid, rec Record, withLegend bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Shift Distance = %.2f", rec.Distance)
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	nx, ny := grid.Dims()
	xmin, xmax := grid.X(0), grid.X(nx-1)
	ymin, ymax := grid.Y(0), grid.Y(ny-1)
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax

	bands := plotter.NewHeatMap(grid, newBandPalette())
	bands.Min, bands.Max = 0, 1
	p.Add(bands)

	decision := plotter.NewContour(grid, []float64{0.5}, soloPalette{c: boundaryGreen})
	p.Add(decision)

	sc0, err := classScatter(X, y, 0, class0Color)
	if err != nil {
		return nil, err
	}
	sc1, err := classScatter(X, y, 1, class1Color)
	if err != nil {
		return nil, err
	}
	p.Add(sc0, sc1)

	labels, err := panelLabels(rec, xmin, ymax)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	if withLegend {
		p.Legend.Add("Class 0", sc0)
		p.Legend.Add("Class 1", sc1)
		p.Legend.Top = false
		p.Legend.Left = false
	}

	return p, nil
}

// classScatter builds the scatter for one labeled class.
func classScatter(X *mat.Dense, y *mat.VecDense, class float64, c color.NRGBA) (*plotter.Scatter, error) {
	var xys plotter.XYs
	rows, _ := X.Dims()
	for i := 0; i < rows; i++ {
		if y.AtVec(i) == class {
			xys = append(xys, plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)})
		}
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(err, "building class scatter")
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	return sc, nil
}

// panelLabels renders the boundary equation and the margin width in
// the top-left corner of the panel. The equation prints the raw
// slope/intercept values, non-finite included.
func panelLabels(rec Record, xmin, ymax float64) (*plotter.Labels, error) {
	equation := fmt.Sprintf("%.2f + %.2f*x1 + %.2f*x2 = 0\nx2 = %.2f*x1 + %.2f",
		rec.Beta0, rec.Beta1, rec.Beta2, rec.Slope, rec.Intercept)
	marginText := "Margin Width: N/A"
	if rec.Margin.Available {
		marginText = fmt.Sprintf("Margin Width: %.2f", rec.Margin.Value)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: xmin + 0.1, Y: ymax - 1.0},
			{X: xmin + 0.1, Y: ymax - 1.5},
		},
		Labels: []string{equation, marginText},
	})
	if err != nil {
		return nil, errors.Wrap(err, "building panel labels")
	}
	return labels, nil
}

// writePanels lays the per-distance panels into a two-column figure
// and writes it as PNG.
func writePanels(panels []*plot.Plot, dir string) error {
	rows := (len(panels) + panelCols - 1) / panelCols

	tiled := make([][]*plot.Plot, rows)
	for r := range tiled {
		tiled[r] = make([]*plot.Plot, panelCols)
		for c := 0; c < panelCols; c++ {
			if i := r*panelCols + c; i < len(panels) {
				tiled[r][c] = panels[i]
			}
		}
	}

	img := vgimg.New(panelCols*panelWidth, vg.Length(rows)*panelHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: panelCols,
		PadX: vg.Millimeter * 5,
		PadY: vg.Millimeter * 5,
	}

	canvases := plot.Align(tiled, tiles, dc)
	for r := range tiled {
		for c := range tiled[r] {
			if tiled[r][c] != nil {
				tiled[r][c].Draw(canvases[r][c])
			}
		}
	}

	return writePNG(img, filepath.Join(dir, panelsFile))
}

// trendSeries is one tracked quantity plotted against shift distance.
type trendSeries struct {
	title  string
	ylabel string
	values []float64
	color  color.NRGBA
}

// writeTrends renders one subplot per tracked quantity against shift
// distance, 3×3 tiles with the last two slots empty, and writes the
// PNG.
func writeTrends(result *Result, dir string) error {
	distances := result.Distances()

	n := len(result.Records)
	beta0 := make([]float64, n)
	beta1 := make([]float64, n)
	beta2 := make([]float64, n)
	slopes := make([]float64, n)
	intercepts := make([]float64, n)
	losses := make([]float64, n)
	margins := make([]float64, n)
	for i, rec := range result.Records {
		beta0[i] = rec.Beta0
		beta1[i] = rec.Beta1
		beta2[i] = rec.Beta2
		slopes[i] = rec.Beta1 / (rec.Beta2 + slopeEps)
		intercepts[i] = rec.Beta0 / rec.Beta2
		losses[i] = rec.Loss
		margins[i] = rec.Margin.Float()
	}

	series := []trendSeries{
		{"Shift Distance vs Beta0", "Beta0", beta0, color.NRGBA{B: 0xff, A: 255}},
		{"Shift Distance vs Beta1 (Coefficient for x1)", "Beta1", beta1, color.NRGBA{R: 0xff, G: 0xa5, A: 255}},
		{"Shift Distance vs Beta2 (Coefficient for x2)", "Beta2", beta2, color.NRGBA{G: 0x80, A: 255}},
		{"Shift Distance vs Beta1 / Beta2 (Slope)", "Beta1 / Beta2 (Slope)", slopes, color.NRGBA{R: 0xff, A: 255}},
		{"Shift Distance vs Beta0 / Beta2 (Intercept Ratio)", "Beta0 / Beta2", intercepts, color.NRGBA{R: 0x80, B: 0x80, A: 255}},
		{"Shift Distance vs Logistic Loss", "Logistic Loss", losses, color.NRGBA{R: 0xa5, G: 0x2a, B: 0x2a, A: 255}},
		{"Shift Distance vs Margin Width", "Margin Width", margins, color.NRGBA{G: 0xff, B: 0xff, A: 255}},
	}

	const cols, rows = 3, 3
	tiled := make([][]*plot.Plot, rows)
	for r := range tiled {
		tiled[r] = make([]*plot.Plot, cols)
	}
	for i, s := range series {
		p, err := trendPlot(distances, s)
		if err != nil {
			return err
		}
		tiled[i/cols][i%cols] = p
	}

	img := vgimg.New(18*vg.Inch, 15*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 5,
		PadY: vg.Millimeter * 5,
	}

	canvases := plot.Align(tiled, tiles, dc)
	for r := range tiled {
		for c := range tiled[r] {
			if tiled[r][c] != nil {
				tiled[r][c].Draw(canvases[r][c])
			}
		}
	}

	return writePNG(img, filepath.Join(dir, trendsFile))
}

// trendPlot builds one aggregate subplot. Non-finite values (missing
// margins, blown-up ratios) are excluded from the series; the axes
// cannot represent them.
func trendPlot(distances []float64, s trendSeries) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.title
	p.X.Label.Text = "Shift Distance"
	p.Y.Label.Text = s.ylabel

	var xys plotter.XYs
	for i, v := range s.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xys = append(xys, plotter.XY{X: distances[i], Y: v})
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, errors.Wrapf(err, "building trend plot %q", s.title)
	}
	line.Color = s.color
	points.GlyphStyle.Color = s.color
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Radius = vg.Points(3)
	p.Add(line, points)

	return p, nil
}

// writePNG encodes the canvas into a PNG file.
func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
