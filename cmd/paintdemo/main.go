// Command paintdemo composes a small scene with the paint library and
// writes it as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/blend"
	"github.com/gogpu/paint/pixel"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo.png", "output file")
		mode    = flag.String("blend", "normal", "color blending mode for the overlapping shapes")
		workers = flag.Int("workers", 0, "row interval parallelism (0 = GOMAXPROCS)")
		filter  = flag.String("filter", "", "color filter for the lower half: sepia, grayscale, invert")
		texture = flag.String("texture", "", "also write tightly packed GPU texture data to this file")
		verbose = flag.Bool("verbose", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		paint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	colorMode, err := blend.ParseColorMode(*mode)
	if err != nil {
		log.Fatal(err)
	}

	cfg := paint.NewConfiguration(paint.WithMaxDegreeOfParallelism(*workers))
	defer cfg.Close()

	buf, err := pixel.NewBuffer(*width, *height, pixel.RGBA32)
	if err != nil {
		log.Fatal(err)
	}

	if err := drawScene(cfg, buf, colorMode); err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}
	if *filter != "" {
		m, err := filterMatrix(*filter)
		if err != nil {
			log.Fatal(err)
		}
		lower := image.Rect(0, *height/2, *width, *height)
		if err := paint.ApplyColorMatrix(cfg, buf, lower, m); err != nil {
			log.Fatalf("Failed to filter: %v", err)
		}
	}
	if err := savePNG(*output, buf); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *texture != "" {
		if err := saveTexture(*texture, buf); err != nil {
			log.Fatalf("Failed to save texture: %v", err)
		}
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

func drawScene(cfg *paint.Configuration, buf *pixel.Buffer, mode blend.ColorMode) error {
	w, h := float32(buf.Width()), float32(buf.Height())

	// Background
	bg := paint.VerticalRamp(paint.RGB(0.1, 0.2, 0.4), paint.RGB(0.5, 0.5, 0.6), 0, h)
	if err := paint.FillRect(cfg, paint.DefaultGraphicsOptions(), buf, bg, buf.Bounds()); err != nil {
		return err
	}

	// Overlapping translucent discs
	opts := paint.NewGraphicsOptions(paint.WithColorBlending(mode), paint.WithBlendPercentage(0.8))
	discs := []struct {
		cx, cy float32
		c      paint.Color
	}{
		{0.20, 0.30, paint.RGB(1, 0.3, 0.3)},
		{0.27, 0.30, paint.RGB(0.3, 1, 0.3)},
		{0.235, 0.37, paint.RGB(0.3, 0.3, 1)},
	}
	for _, d := range discs {
		if err := paint.FillPath(cfg, opts, buf, paint.Solid(d.c), circle(d.cx*w, d.cy*h, 0.1*h)); err != nil {
			return err
		}
	}

	// Checkerboard card
	var card paint.Path
	card.Rect(0.45*w, 0.15*h, 0.2*w, 0.2*h)
	if err := paint.FillPath(cfg, paint.DefaultGraphicsOptions(), buf, paint.Checkerboard(paint.White, paint.Gray, 10), &card); err != nil {
		return err
	}

	// Rotating squares, colored by hue
	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		sq := square(0.8*w, 0.25*h, 0.08*h, angle)
		brush := paint.Solid(paint.HSL(float32(i)*45, 0.8, 0.6))
		if err := paint.FillPath(cfg, paint.NewGraphicsOptions(paint.WithBlendPercentage(0.6)), buf, brush, sq); err != nil {
			return err
		}
	}

	// Star with diagonal stripes
	stripes := paint.Stripes(paint.Yellow, paint.RGB(1, 0.5, 0), 8, math.Pi/4)
	if err := paint.FillPath(cfg, paint.DefaultGraphicsOptions(), buf, stripes, star(0.5*w, 0.7*h, 0.15*h, 0.07*h)); err != nil {
		return err
	}

	return paint.MakeOpaque(cfg, buf, buf.Bounds())
}

func saveTexture(path string, buf *pixel.Buffer) error {
	format, data, err := pixel.TextureData(buf)
	if err != nil {
		return err
	}
	paint.Logger().Debug("paintdemo: texture data",
		"format", format.String(),
		"srgb", format.IsSrgb(),
		"bytesPerRow", len(data)/buf.Height())
	return os.WriteFile(path, data, 0o644)
}

func filterMatrix(name string) (paint.ColorMatrix, error) {
	switch name {
	case "sepia":
		return paint.SepiaMatrix(), nil
	case "grayscale":
		return paint.GrayscaleMatrix(), nil
	case "invert":
		return paint.InvertMatrix(), nil
	}
	return paint.ColorMatrix{}, fmt.Errorf("unknown filter %q", name)
}

func circle(cx, cy, r float32) *paint.Path {
	// Four cubic arcs; k is the standard control distance for a quarter circle.
	const k = 0.5522847
	p := paint.NewPath()
	p.MoveTo(cx+r, cy)
	p.CubeTo(cx+r, cy+k*r, cx+k*r, cy+r, cx, cy+r)
	p.CubeTo(cx-k*r, cy+r, cx-r, cy+k*r, cx-r, cy)
	p.CubeTo(cx-r, cy-k*r, cx-k*r, cy-r, cx, cy-r)
	p.CubeTo(cx+k*r, cy-r, cx+r, cy-k*r, cx+r, cy)
	p.Close()
	return p
}

func square(cx, cy, half float32, angle float64) *paint.Path {
	xy := make([]float32, 0, 8)
	for i := 0; i < 4; i++ {
		a := angle + math.Pi/4 + float64(i)*math.Pi/2
		r := float64(half) * math.Sqrt2
		xy = append(xy, cx+float32(r*math.Cos(a)), cy+float32(r*math.Sin(a)))
	}
	p := paint.NewPath()
	p.Polygon(xy...)
	return p
}

func star(cx, cy, outerR, innerR float32) *paint.Path {
	const points = 5
	xy := make([]float32, 0, points*4)
	for i := 0; i < points*2; i++ {
		angle := float64(i)*math.Pi/points - math.Pi/2
		r := outerR
		if i%2 == 1 {
			r = innerR
		}
		xy = append(xy, cx+r*float32(math.Cos(angle)), cy+r*float32(math.Sin(angle)))
	}
	p := paint.NewPath()
	p.Polygon(xy...)
	return p
}

func savePNG(path string, buf *pixel.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, buf.ToNRGBA()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
