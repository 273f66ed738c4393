package window

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/phanxgames/evergreen"
)

const sampleRate = 44100

type loopStream interface {
	io.ReadSeeker
	Length() int64
}

// Music plays a looping track through an ebiten audio context. The file is
// read and decoded on the first Play, so a missing asset only surfaces as a
// Play error.
type Music struct {
	ctx    *audio.Context
	path   string
	volume float64
	player *audio.Player
}

var _ evergreen.Music = (*Music)(nil)

// NewMusic creates a player for the file at path. ctx may be shared with
// other players; ebiten allows only one context per process.
func NewMusic(ctx *audio.Context, path string, volume float64) *Music {
	return &Music{ctx: ctx, path: path, volume: volume}
}

// Play loads the track if needed and starts it from the beginning. A
// track that is already playing keeps its position.
func (m *Music) Play() error {
	if m.Playing() {
		return nil
	}
	if m.player == nil {
		p, err := m.load()
		if err != nil {
			return err
		}
		m.player = p
	}
	m.player.SetVolume(m.volume)
	if err := m.player.Rewind(); err != nil {
		return fmt.Errorf("rewind %s: %w", m.path, err)
	}
	m.player.Play()
	return nil
}

// Stop pauses playback. It is safe to call before Play.
func (m *Music) Stop() {
	if m.player != nil {
		m.player.Pause()
	}
}

// Playing reports whether the track is currently audible.
func (m *Music) Playing() bool {
	return m.player != nil && m.player.IsPlaying()
}

func (m *Music) load() (*audio.Player, error) {
	if m.path == "" {
		return nil, fmt.Errorf("no music file configured")
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("read music: %w", err)
	}
	stream, err := decodeAudio(m.path, bytes.NewReader(data), m.ctx.SampleRate())
	if err != nil {
		return nil, err
	}
	p, err := m.ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("create player for %s: %w", m.path, err)
	}
	return p, nil
}

// decodeAudio picks a decoder by file extension.
func decodeAudio(path string, r io.ReadSeeker, rate int) (loopStream, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(rate, r)
		if err != nil {
			return nil, fmt.Errorf("decode mp3 %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(rate, r)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %s: %w", path, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(rate, r)
		if err != nil {
			return nil, fmt.Errorf("decode wav %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format %q (supported: .mp3, .ogg, .wav)", ext)
	}
}
