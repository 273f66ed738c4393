package term

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/phanxgames/evergreen"
)

// Music loops a track through the beep speaker. The file is decoded and
// the speaker initialised on the first Play.
type Music struct {
	mu     sync.Mutex
	path   string
	volume float64
	stream beep.StreamSeekCloser
	ctrl   *beep.Ctrl
}

var _ evergreen.Music = (*Music)(nil)

// NewMusic creates a player for the file at path. volume is linear in [0, 1].
func NewMusic(path string, volume float64) *Music {
	return &Music{path: path, volume: volume}
}

// Play starts or resumes the track.
func (m *Music) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctrl != nil {
		speaker.Lock()
		m.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}

	stream, format, err := decodeFile(m.path)
	if err != nil {
		return err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(100*time.Millisecond)); err != nil {
		stream.Close()
		return fmt.Errorf("init speaker: %w", err)
	}

	vol := &effects.Volume{
		Streamer: beep.Loop(-1, stream),
		Base:     2,
		Volume:   linearToLog2(m.volume),
		Silent:   m.volume <= 0,
	}
	m.stream = stream
	m.ctrl = &beep.Ctrl{Streamer: vol}
	speaker.Play(m.ctrl)
	return nil
}

// Stop pauses the track. It is safe to call before Play.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctrl == nil {
		return
	}
	speaker.Lock()
	m.ctrl.Paused = true
	speaker.Unlock()
}

// Close stops playback, releases the speaker and closes the file.
func (m *Music) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctrl == nil {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	m.ctrl = nil
	err := m.stream.Close()
	m.stream = nil
	return err
}

// linearToLog2 converts a linear gain to beep's base-2 volume. Zero maps
// to the quietest finite value; callers also set Silent.
func linearToLog2(v float64) float64 {
	if v <= 0 {
		return -10
	}
	return math.Log2(v)
}

// decodeFile opens path and picks a decoder by extension.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	if path == "" {
		return nil, beep.Format{}, fmt.Errorf("no music file configured")
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".wav", ".ogg":
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q (supported: .mp3, .ogg, .wav)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open music: %w", err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return stream, format, nil
}
