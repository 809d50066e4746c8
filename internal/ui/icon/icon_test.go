package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tomatray/internal/core/cycle"
)

func opaqueColors(img image.Image) map[color.NRGBA]int {
	colors := make(map[color.NRGBA]int)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if pixel.A == 0xff {
				colors[pixel]++
			}
		}
	}
	return colors
}

func TestCountdownUsesStateColor(t *testing.T) {
	working := opaqueColors(Countdown(25, cycle.StateWorking))
	assert.NotZero(t, working[WorkColor])
	assert.Zero(t, working[BreakColor])

	onBreak := opaqueColors(Countdown(5, cycle.StateOnBreak))
	assert.NotZero(t, onBreak[BreakColor])
	assert.Zero(t, onBreak[WorkColor])
}

func TestCountdownIsTransparentScaledSquare(t *testing.T) {
	img := Countdown(7, cycle.StateWorking)

	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	_, _, _, alpha := img.At(0, 0).RGBA()
	assert.Zero(t, alpha)
}

func TestCountdownDigitsChangeImage(t *testing.T) {
	one := opaqueColors(Countdown(1, cycle.StateWorking))
	many := opaqueColors(Countdown(58, cycle.StateWorking))

	assert.Less(t, one[WorkColor], many[WorkColor])
}

func TestRenderEncodesPNG(t *testing.T) {
	resource, err := Render(12, cycle.StateOnBreak)
	require.NoError(t, err)

	assert.Equal(t, "countdown-on_break-12.png", resource.Name())
	img, err := png.Decode(bytes.NewReader(resource.Content()))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestTooltip(t *testing.T) {
	assert.Equal(t, "25 minutes left", Tooltip(25))
	assert.Equal(t, "1 minute left", Tooltip(1))
	assert.Equal(t, "0 minutes left", Tooltip(0))
}
