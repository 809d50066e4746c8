package resources

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

const (
	logoName   = "tomato.png"
	bellName   = "deskbell.wav"
	logoSize   = 32
	bellLength = 900 * time.Millisecond
	bellPitch  = 880.0
)

var bellFormat = beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2}

var cache sync.Map

// Logo returns the tomato tray icon shown while the timer is off.
func Logo() (fyne.Resource, error) {
	return loadResource(logoName, renderLogo)
}

// MustLogo returns the tomato icon or panics on error.
func MustLogo() fyne.Resource {
	resource, err := Logo()
	if err != nil {
		panic(err)
	}
	return resource
}

// Bell returns the alarm sound as a WAV resource.
func Bell() (fyne.Resource, error) {
	return loadResource(bellName, renderBell)
}

func loadResource(name string, render func() ([]byte, error)) (fyne.Resource, error) {
	if cached, ok := cache.Load(name); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := render()
	if err != nil {
		return nil, fmt.Errorf("render resource %s: %w", name, err)
	}

	resource := fyne.NewStaticResource(name, data)
	actual, _ := cache.LoadOrStore(name, resource)
	return actual.(fyne.Resource), nil
}

func renderLogo() ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, logoSize, logoSize))
	red := color.NRGBA{R: 220, G: 47, B: 36, A: 255}
	shade := color.NRGBA{R: 176, G: 30, B: 24, A: 255}
	green := color.NRGBA{R: 39, G: 152, B: 3, A: 255}

	const cx, cy, radius = 16.0, 18.0, 13.0
	for y := 0; y < logoSize; y++ {
		for x := 0; x < logoSize; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Hypot(dx, dy)
			switch {
			case dist <= radius-3:
				img.SetNRGBA(x, y, red)
			case dist <= radius:
				img.SetNRGBA(x, y, shade)
			}
		}
	}

	// Calyx: a flat star of leaves on top of the fruit.
	for y := 3; y <= 8; y++ {
		for x := 9; x <= 23; x++ {
			dx := math.Abs(float64(x) - 16)
			if float64(y) >= 3+dx/2.5 && y <= 8 {
				img.SetNRGBA(x, y, green)
			}
		}
	}
	for y := 1; y <= 5; y++ {
		img.SetNRGBA(16, y, green)
		img.SetNRGBA(17, y, green)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buffer.Bytes(), nil
}

// renderBell synthesises a short desk bell strike as 16-bit mono PCM.
func renderBell() ([]byte, error) {
	var file memFile
	if err := wav.Encode(&file, bellStreamer(), bellFormat); err != nil {
		return nil, fmt.Errorf("encode bell: %w", err)
	}
	return file.data, nil
}

func bellStreamer() beep.Streamer {
	total := bellFormat.SampleRate.N(bellLength)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for ; n < len(samples) && position < total; n++ {
			value := bellSample(float64(position) / float64(bellFormat.SampleRate))
			samples[n][0] = value
			samples[n][1] = value
			position++
		}
		return n, true
	})
}

func bellSample(t float64) float64 {
	envelope := math.Exp(-4.5 * t)
	value := 0.6*math.Sin(2*math.Pi*bellPitch*t) +
		0.3*math.Sin(2*math.Pi*bellPitch*2.76*t)*math.Exp(-3*t) +
		0.1*math.Sin(2*math.Pi*bellPitch*5.4*t)*math.Exp(-6*t)
	return value * envelope * 0.8
}

// memFile is an in-memory io.WriteSeeker; the WAV encoder seeks back to
// patch the header sizes.
type memFile struct {
	data     []byte
	position int
}

func (file *memFile) Write(p []byte) (int, error) {
	end := file.position + len(p)
	if end > len(file.data) {
		file.data = append(file.data, make([]byte, end-len(file.data))...)
	}
	copy(file.data[file.position:], p)
	file.position = end
	return len(p), nil
}

func (file *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(file.position)
	case io.SeekEnd:
		base = int64(len(file.data))
	default:
		return 0, errors.New("seek: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("seek: negative position")
	}
	file.position = int(next)
	return next, nil
}
