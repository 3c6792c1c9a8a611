package render

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/soypat/pmesh"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var borderColor = color.NRGBA{R: 40, G: 40, B: 40, A: 255}

// PlotUVs draws the border edges of every face of m in UV space. Faces in a
// smoothing group are drawn in the group color.
func PlotUVs(m *pmesh.Mesh, channel int) (*plot.Plot, error) {
	uvs, err := m.UVs(channel)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = "UV channel"
	p.X.Label.Text = "u"
	p.Y.Label.Text = "v"
	for fi, f := range m.Faces() {
		var c color.Color = borderColor
		if f.SmoothingGroup != pmesh.SmoothingGroupNone {
			c = pmesh.SmoothingGroupColor(f.SmoothingGroup)
		}
		for _, e := range f.Edges() {
			l, err := plotter.NewLine(plotter.XYs{
				{X: uvs[e.X].X, Y: uvs[e.X].Y},
				{X: uvs[e.Y].X, Y: uvs[e.Y].Y},
			})
			if err != nil {
				return nil, errors.WithMessagef(err, "face %d", fi)
			}
			l.LineStyle.Color = c
			p.Add(l)
		}
	}
	return p, nil
}

// SaveUVPlot writes the UV layout of m to path. The image format is chosen
// from the file extension.
func SaveUVPlot(path string, m *pmesh.Mesh, channel int) error {
	p, err := PlotUVs(m, channel)
	if err != nil {
		return err
	}
	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}
