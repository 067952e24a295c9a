// Command brushgen renders the hand-drawn enso ring used as the storefront
// hero accent. The stroke is a closed SVG path: an outer edge swept forward
// and an inner edge swept back, with per-step width and radius jitter so the
// ring looks brushed rather than geometric.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"strings"
)

const (
	size       = 500
	center     = 250.0
	baseRadius = 200.0
	startAngle = 0.1
	endAngle   = 2 * math.Pi * 0.95
	steps      = 200
)

func main() {
	var (
		output string
		seed   uint64
	)

	flag.StringVar(&output, "output", "brush-circle.svg", "output SVG path")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks a new stroke each run)")
	flag.Parse()

	rng := rand.New(rand.NewPCG(seed, seed))
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	svg := render(rng)

	if err := os.WriteFile(output, []byte(svg), 0o644); err != nil {
		slog.Error("write SVG", slog.String("path", output), slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("brush stroke written", slog.String("path", output))
}

func render(rng *rand.Rand) string {
	type point struct{ x, y float64 }

	outer := make([]point, 0, steps+1)
	inner := make([]point, 0, steps+1)

	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		angle := startAngle + t*(endAngle-startAngle)

		// Thick in the middle of the stroke, tapering at both ends.
		width := 5 + math.Sin(t*math.Pi)*20 + rng.Float64()*3
		radius := baseRadius + (rng.Float64()-0.5)*8

		cos, sin := math.Cos(angle), math.Sin(angle)
		outer = append(outer, point{center + (radius+width/2)*cos, center + (radius+width/2)*sin})
		inner = append(inner, point{center + (radius-width/2)*cos, center + (radius-width/2)*sin})
	}

	var path strings.Builder
	fmt.Fprintf(&path, "M %.2f %.2f", outer[0].x, outer[0].y)
	for _, p := range outer[1:] {
		fmt.Fprintf(&path, " L %.2f %.2f", p.x, p.y)
	}
	// Trace the inner edge back to close the stroke.
	for i := len(inner) - 1; i >= 0; i-- {
		fmt.Fprintf(&path, " L %.2f %.2f", inner[i].x, inner[i].y)
	}
	path.WriteString(" Z")

	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		size, size, size, size)
	fmt.Fprintf(&svg, `  <path d="%s" fill="#1B4D28" opacity="0.95"/>`+"\n", path.String())
	svg.WriteString("</svg>\n")
	return svg.String()
}
