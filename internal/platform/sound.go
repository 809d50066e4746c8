package platform

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// ErrSoundUnsupported indicates no audio output could be opened.
var ErrSoundUnsupported = errors.New("sound playback unsupported")

// SoundPlayer plays a WAV clip through the speaker.
type SoundPlayer struct {
	mu      sync.Mutex
	data    []byte
	buffer  *beep.Buffer
	loadErr error
	loaded  bool
	opened  bool

	openSpeaker  func(beep.Format) error
	play         func(beep.Streamer)
	closeSpeaker func()
}

// NewSoundPlayer returns a player for the given WAV data. The clip is
// decoded and the speaker opened on the first Play.
func NewSoundPlayer(clip []byte) *SoundPlayer {
	return &SoundPlayer{
		data: clip,
		openSpeaker: func(format beep.Format) error {
			return speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
		},
		play: func(streamer beep.Streamer) {
			speaker.Play(streamer)
		},
		closeSpeaker: speaker.Close,
	}
}

// Play queues the clip and returns without waiting for it to finish.
func (player *SoundPlayer) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	buffer, err := player.loadLocked()
	if err != nil {
		return err
	}
	player.play(buffer.Streamer(0, buffer.Len()))
	return nil
}

// Close releases the speaker if Play opened it.
func (player *SoundPlayer) Close() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.opened {
		player.closeSpeaker()
		player.opened = false
	}
	return nil
}

func (player *SoundPlayer) loadLocked() (*beep.Buffer, error) {
	if player.loaded {
		return player.buffer, player.loadErr
	}
	player.loaded = true
	player.buffer, player.loadErr = player.decode()
	return player.buffer, player.loadErr
}

func (player *SoundPlayer) decode() (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(player.data))
	if err != nil {
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	if err := player.openSpeaker(format); err != nil {
		return nil, fmt.Errorf("%w: open speaker: %v", ErrSoundUnsupported, err)
	}
	player.opened = true
	return buffer, nil
}
