package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Pie renders slices as a pie chart. Slice colors come from the dataset;
// slices with non-positive values are rejected so the geometry stays sane.
func Pie(size int, slices []Slice, opts PieOpts) (template.HTML, error) {
	if len(slices) == 0 {
		return "", fmt.Errorf("svg: at least one slice required")
	}
	if size <= 0 {
		size = DefaultPieSize
	}

	var total float64
	for _, s := range slices {
		if s.Value <= 0 {
			return "", fmt.Errorf("svg: slice %q must have a positive value", s.Label)
		}
		total += s.Value
	}

	labelColor := fallback(opts.LabelColor, "#475569")
	cx := float64(size) / 2
	cy := float64(size) / 2
	r := float64(size)/2 - 8

	titleID := makeID(opts.Title, "pie-title")
	descID := makeID(opts.Title, "pie-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", size, size, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Pie chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Share per category"))))

	if len(slices) == 1 {
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" aria-label=\"%s\"></circle>", cx, cy, r, fallback(slices[0].Color, "#0ea5e9"), template.HTMLEscapeString(slices[0].Label)))
		b.WriteString("</svg>")
		return template.HTML(b.String()), nil
	}

	angle := -math.Pi / 2
	for _, s := range slices {
		share := s.Value / total
		sweep := share * 2 * math.Pi
		x1 := cx + r*math.Cos(angle)
		y1 := cy + r*math.Sin(angle)
		angle += sweep
		x2 := cx + r*math.Cos(angle)
		y2 := cy + r*math.Sin(angle)
		largeArc := 0
		if sweep > math.Pi {
			largeArc = 1
		}
		b.WriteString(fmt.Sprintf("<path d=\"M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z\" fill=\"%s\" aria-label=\"%s %.1f%%\"></path>",
			cx, cy, x1, y1, r, r, largeArc, x2, y2, fallback(s.Color, "#64748b"), template.HTMLEscapeString(s.Label), share*100))

		mid := angle - sweep/2
		lx := cx + (r*0.6)*math.Cos(mid)
		ly := cy + (r*0.6)*math.Sin(mid)
		if share >= 0.08 {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%.0f%%</text>", lx, ly, labelColor, share*100))
		}
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
