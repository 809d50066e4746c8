package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"fyne.io/fyne/v2"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"tomatray/internal/core/cycle"
)

const (
	baseSize = 16
	scale    = 2
)

var (
	// WorkColor is used for the countdown while a pomodoro is running.
	WorkColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	// BreakColor is used for the countdown during breaks.
	BreakColor = color.NRGBA{R: 39, G: 152, B: 3, A: 255}
)

// ColorFor returns the digit color for a timer state.
func ColorFor(state cycle.State) color.NRGBA {
	if state == cycle.StateWorking {
		return WorkColor
	}
	return BreakColor
}

// Countdown draws the remaining minutes centred on a transparent square.
func Countdown(minutes int, state cycle.State) image.Image {
	if minutes < 0 {
		minutes = 0
	}
	base := image.NewNRGBA(image.Rect(0, 0, baseSize, baseSize))
	face := basicfont.Face7x13
	text := strconv.Itoa(minutes)

	drawer := &font.Drawer{
		Dst:  base,
		Src:  image.NewUniform(ColorFor(state)),
		Face: face,
	}
	width := drawer.MeasureString(text)
	metrics := face.Metrics()
	height := metrics.Ascent + metrics.Descent
	x := (fixed.I(baseSize) - width) / 2
	y := (fixed.I(baseSize)-height)/2 + metrics.Ascent
	drawer.Dot = fixed.Point26_6{X: x, Y: y}
	drawer.DrawString(text)

	scaled := image.NewNRGBA(image.Rect(0, 0, baseSize*scale, baseSize*scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return scaled
}

// Render returns the countdown icon as a PNG tray resource.
func Render(minutes int, state cycle.State) (fyne.Resource, error) {
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, Countdown(minutes, state)); err != nil {
		return nil, fmt.Errorf("encode countdown icon: %w", err)
	}
	name := fmt.Sprintf("countdown-%s-%d.png", state, minutes)
	return fyne.NewStaticResource(name, buffer.Bytes()), nil
}

// Tooltip returns the tray tooltip for the remaining minutes.
func Tooltip(minutes int) string {
	if minutes == 1 {
		return "1 minute left"
	}
	return fmt.Sprintf("%d minutes left", minutes)
}
