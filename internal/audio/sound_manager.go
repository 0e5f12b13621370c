// Package audio plays the runner's sound cues through beep.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pika-runner/internal/assets"
	"github.com/vovakirdan/pika-runner/internal/config"
	"github.com/vovakirdan/pika-runner/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Cue identifies a sound effect.
type Cue int

const (
	CueJump Cue = iota
	CueGameOver
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// cueFiles maps cues to optional sound files in the asset directory.
var cueFiles = map[Cue]string{
	CueJump:     assets.JumpSoundFile,
	CueGameOver: assets.GameOverSoundFile,
}

// Player plays sound cues. Playback never blocks and never fails loudly.
type Player interface {
	Play(c Cue)
	ToggleMute() bool
	Muted() bool
	Close()
}

// Nop is a Player that never makes a sound. It still tracks mute so the
// HUD can show the toggle.
type Nop struct {
	muted bool
}

func (n *Nop) Play(Cue) {}

func (n *Nop) ToggleMute() bool {
	n.muted = !n.muted
	return n.muted
}

func (n *Nop) Muted() bool { return n.muted }

func (n *Nop) Close() {}

// SoundManager mixes cues into the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	clips       map[Cue]*beep.Buffer
	fsys        fs.FS
	logger      *log.Logger
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager reading optional clips from fsys.
// Call Initialize before playing.
func NewSoundManager(volume float64, fsys fs.FS, logger *log.Logger) *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		volume: newVolume(mixer, volume),
		clips:  make(map[Cue]*beep.Buffer),
		fsys:   fsys,
		logger: logger,
	}
}

// Open returns a ready Player for cfg. Any failure is logged and a silent
// Player is returned instead.
func Open(cfg config.AudioConfig, fsys fs.FS, logger *log.Logger) Player {
	if !cfg.Enabled {
		return &Nop{}
	}

	sm := NewSoundManager(cfg.Volume, fsys, logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "error", err)
		return &Nop{}
	}
	return sm
}

// Initialize sets up the speaker and decodes optional clips.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}

	for cue, name := range cueFiles {
		buf, err := loadClip(sm.fsys, name)
		switch {
		case err == nil:
			sm.clips[cue] = buf
		case errors.Is(err, fs.ErrNotExist):
			sm.logger.Debug("no sound file, using synthesized cue", "cue", cue)
		default:
			sm.logger.Warn("failed to decode sound file", "file", name, "error", err)
		}
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Close stops all sounds.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker close; clearing the mixer leaves it silent
	sm.initialized = false
}

// Play starts a cue. Overlapping cues are mixed.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	s := sm.streamer(c)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ToggleMute flips mute and returns the new value.
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	return sm.muted
}

// Muted reports whether cues are muted.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// streamer returns a fresh stream for c: the decoded clip if present,
// otherwise a synthesized tone.
func (sm *SoundManager) streamer(c Cue) beep.Streamer {
	if buf, ok := sm.clips[c]; ok {
		return buf.Streamer(0, buf.Len())
	}
	return synthesize(c)
}

// synthesize builds the fallback tone for a cue.
func synthesize(c Cue) beep.Streamer {
	switch c {
	case CueJump:
		// Short rising chirp
		return beep.Take(sampleRate.N(time.Millisecond*120), NewSweepGenerator(sampleRate, 440, 880, 120*time.Millisecond))
	case CueGameOver:
		// Falling tone
		return beep.Take(sampleRate.N(time.Millisecond*450), NewSweepGenerator(sampleRate, 440, 110, 450*time.Millisecond))
	default:
		return nil
	}
}

// loadClip decodes an mp3 from fsys into a buffer at the speaker's rate.
func loadClip(fsys fs.FS, name string) (*beep.Buffer, error) {
	if fsys == nil {
		return nil, fs.ErrNotExist
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("audio: decode %s: %w", name, err)
	}
	defer streamer.Close() //nolint:errcheck

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return buf, nil
}

// newVolume wraps s with a gain for a linear volume in [0, 1].
func newVolume(s beep.Streamer, volume float64) *effects.Volume {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeExponent(volume),
		Silent:   volume <= 0,
	}
}

// volumeExponent converts a linear volume to a base-2 exponent.
func volumeExponent(volume float64) float64 {
	if volume <= 0 {
		return 0
	}
	return math.Log2(core.ClampF(volume, 0, 1))
}
