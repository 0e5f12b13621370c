package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"
)

func TestParseSprite(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantW      int
		wantH      int
		wantErr    error
		wantTopRow string
	}{
		{"simple", "ab\ncd\n", 2, 2, nil, "ab"},
		{"ragged rows padded", "a\nabc\n", 3, 2, nil, "a  "},
		{"blank lines trimmed", "\n\n xy\n\n", 3, 1, nil, " xy"},
		{"crlf", "ab\r\ncd\r\n", 2, 2, nil, "ab"},
		{"empty", "", 0, 0, ErrEmptySprite, ""},
		{"whitespace only", "  \n\t\n", 0, 0, ErrEmptySprite, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sp, err := ParseSprite(tc.name, []byte(tc.data))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("error = %v, expected %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSprite() error: %v", err)
			}
			if sp.Width != tc.wantW || sp.Height != tc.wantH {
				t.Errorf("size = %dx%d, expected %dx%d", sp.Width, sp.Height, tc.wantW, tc.wantH)
			}
			if got := string(sp.Lines[0]); got != tc.wantTopRow {
				t.Errorf("top row = %q, expected %q", got, tc.wantTopRow)
			}
		})
	}
}

func TestParseSpriteRejectsInvalidUTF8(t *testing.T) {
	if _, err := ParseSprite("bad", []byte{0xff, 0xfe}); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestSpriteSample(t *testing.T) {
	sp, err := ParseSprite("grid", []byte("ab\ncd"))
	if err != nil {
		t.Fatal(err)
	}

	// Stretched to 4x4 each source rune covers a 2x2 block
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, 'a'}, {1, 1, 'a'},
		{2, 0, 'b'}, {3, 1, 'b'},
		{0, 2, 'c'}, {3, 3, 'd'},
	}
	for _, tc := range tests {
		if got := sp.Sample(tc.x, tc.y, 4, 4); got != tc.want {
			t.Errorf("Sample(%d, %d) = %q, expected %q", tc.x, tc.y, got, tc.want)
		}
	}

	if got := sp.Sample(0, 0, 0, 4); got != ' ' {
		t.Errorf("zero-width sample = %q, expected space", got)
	}
	if got := sp.At(5, 5); got != ' ' {
		t.Errorf("out-of-range At = %q, expected space", got)
	}
}

func TestEmbeddedSpritesLoad(t *testing.T) {
	set, err := LoadSprites(Embedded())
	if err != nil {
		t.Fatalf("embedded sprites failed to load: %v", err)
	}
	if set.Player.Width == 0 || set.Obstacle.Height == 0 {
		t.Errorf("embedded sprites look empty: %+v", set)
	}

	for _, name := range []string{PlayerImageFile, ObstacleImageFile} {
		if _, err := fs.Stat(Embedded(), name); err != nil {
			t.Errorf("embedded %s missing: %v", name, err)
		}
	}
}

func TestDirFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PlayerSpriteFile), []byte("P"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ObstacleSpriteFile), []byte("T"), 0o600); err != nil {
		t.Fatal(err)
	}

	set, err := LoadSprites(DirFS(dir))
	if err != nil {
		t.Fatalf("LoadSprites() error: %v", err)
	}
	if set.Player.At(0, 0) != 'P' || set.Obstacle.At(0, 0) != 'T' {
		t.Errorf("loaded wrong sprites: %+v", set)
	}
}

func TestLibraryReloadsOnProbe(t *testing.T) {
	fsys := fstest.MapFS{
		PlayerSpriteFile: {Data: []byte("P")},
	}
	lib := NewLibrary(fsys)

	if err := lib.Probe(); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Probe() with missing tree = %v, expected ErrNotExist", err)
	}
	if _, ok := lib.Sprites(); ok {
		t.Fatal("Sprites() should be unavailable before a successful probe")
	}

	// The file appears between probes
	fsys[ObstacleSpriteFile] = &fstest.MapFile{Data: []byte("T")}
	if err := lib.Probe(); err != nil {
		t.Fatalf("Probe() after the file appeared: %v", err)
	}
	set, ok := lib.Sprites()
	if !ok || set.Obstacle.At(0, 0) != 'T' {
		t.Errorf("Sprites() = %+v, %v", set, ok)
	}
}

type countingProbe struct {
	calls   int
	readyAt int // first call that succeeds; 0 never succeeds
}

func (p *countingProbe) Probe() error {
	p.calls++
	if p.readyAt > 0 && p.calls >= p.readyAt {
		return nil
	}
	return errors.New("not loaded")
}

func TestGateRetriesOnInterval(t *testing.T) {
	probe := &countingProbe{readyAt: 3}
	gate := NewGate(probe, 500*time.Millisecond, nil)
	t0 := time.Unix(0, 0)

	gate.Begin(t0)
	if gate.State() != StateLoading {
		t.Fatalf("state after Begin = %v, expected loading", gate.State())
	}

	if s := gate.Poll(t0); s != StateRetrying {
		t.Fatalf("first poll = %v, expected retrying", s)
	}
	if gate.Err() == nil {
		t.Error("Err() should hold the probe failure")
	}

	// No re-probe before the interval elapses
	for _, d := range []time.Duration{100, 250, 499} {
		gate.Poll(t0.Add(d * time.Millisecond))
	}
	if probe.calls != 1 {
		t.Fatalf("probe ran %d times before the interval, expected 1", probe.calls)
	}

	if s := gate.Poll(t0.Add(500 * time.Millisecond)); s != StateRetrying {
		t.Fatalf("second poll = %v, expected retrying", s)
	}
	if s := gate.Poll(t0.Add(1000 * time.Millisecond)); s != StateReady {
		t.Fatalf("third poll = %v, expected ready", s)
	}
	if gate.Attempts() != 3 || gate.Err() != nil {
		t.Errorf("attempts=%d err=%v, expected 3 and nil", gate.Attempts(), gate.Err())
	}
}

func TestGateReadyIsSticky(t *testing.T) {
	probe := &countingProbe{readyAt: 1}
	gate := NewGate(probe, time.Second, nil)
	t0 := time.Unix(100, 0)

	gate.Begin(t0)
	gate.Poll(t0)
	for i := 1; i <= 5; i++ {
		if s := gate.Poll(t0.Add(time.Duration(i) * time.Hour)); s != StateReady {
			t.Fatalf("poll %d = %v, expected ready", i, s)
		}
	}
	if probe.calls != 1 {
		t.Errorf("ready gate re-probed: %d calls", probe.calls)
	}

	gate.Begin(t0.Add(10 * time.Hour))
	gate.Poll(t0.Add(10 * time.Hour))
	if probe.calls != 2 {
		t.Errorf("Begin should trigger a fresh probe, calls = %d", probe.calls)
	}
}

func TestAllProbesEveryone(t *testing.T) {
	ok := &countingProbe{readyAt: 1}
	failing := &countingProbe{}
	combined := All(ok, failing)

	if err := combined.Probe(); err == nil {
		t.Fatal("All() should fail when one prober fails")
	}
	if ok.calls != 1 || failing.calls != 1 {
		t.Errorf("calls = %d/%d, expected every prober to run", ok.calls, failing.calls)
	}

	if err := All(ok, ProbeFunc(func() error { return nil })).Probe(); err != nil {
		t.Errorf("All() with ready probers = %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateLoading:  "loading",
		StateReady:    "ready",
		StateRetrying: "retrying",
		State(42):     "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, expected %q", int(s), got, want)
		}
	}
}
