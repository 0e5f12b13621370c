// Package assets loads the runner's sprites and gates play on their
// availability.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// File names looked up in the asset directory.
const (
	PlayerSpriteFile   = "pikachu.txt"
	ObstacleSpriteFile = "tree.txt"
	PlayerImageFile    = "pikachu.png"
	ObstacleImageFile  = "tree.png"
	JumpSoundFile      = "jump.mp3"
	GameOverSoundFile  = "gameover.mp3"
)

// ErrEmptySprite is returned for sprite files with no visible characters.
var ErrEmptySprite = errors.New("assets: empty sprite")

//go:embed sprites
var embedded embed.FS

// Embedded returns the built-in asset directory.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "sprites")
	if err != nil {
		// Only fails on an invalid path literal
		panic(err)
	}
	return sub
}

// DirFS returns the asset filesystem for dir, or the built-in assets
// when dir is empty.
func DirFS(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// Sprite is a block of text art. Spaces are transparent.
type Sprite struct {
	Name   string
	Lines  [][]rune
	Width  int
	Height int
}

// At returns the rune at (x, y), or a space outside the sprite.
func (s Sprite) At(x, y int) rune {
	if y < 0 || y >= len(s.Lines) || x < 0 || x >= len(s.Lines[y]) {
		return ' '
	}
	return s.Lines[y][x]
}

// Sample returns the rune covering (x, y) when the sprite is stretched to
// w x h cells.
func (s Sprite) Sample(x, y, w, h int) rune {
	if w <= 0 || h <= 0 {
		return ' '
	}
	return s.At(x*s.Width/w, y*s.Height/h)
}

// ParseSprite parses text art. Leading and trailing blank lines are dropped
// and rows are padded to the widest one.
func ParseSprite(name string, data []byte) (Sprite, error) {
	if !utf8.Valid(data) {
		return Sprite{}, fmt.Errorf("assets: %s: not valid UTF-8", name)
	}

	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(raw) > 0 && strings.TrimSpace(raw[0]) == "" {
		raw = raw[1:]
	}
	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}
	if len(raw) == 0 {
		return Sprite{}, fmt.Errorf("%w: %s", ErrEmptySprite, name)
	}

	sp := Sprite{Name: name, Height: len(raw)}
	for _, line := range raw {
		sp.Width = max(sp.Width, utf8.RuneCountInString(line))
	}
	sp.Lines = make([][]rune, len(raw))
	for i, line := range raw {
		row := []rune(line)
		for len(row) < sp.Width {
			row = append(row, ' ')
		}
		sp.Lines[i] = row
	}
	return sp, nil
}

// ReadSprite reads and parses one sprite file from fsys.
func ReadSprite(fsys fs.FS, name string) (Sprite, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Sprite{}, fmt.Errorf("assets: failed to read %s: %w", name, err)
	}
	return ParseSprite(name, data)
}

// SpriteSet holds the sprites the terminal renderer draws.
type SpriteSet struct {
	Player   Sprite
	Obstacle Sprite
}

// LoadSprites reads the player and obstacle sprites from fsys.
func LoadSprites(fsys fs.FS) (SpriteSet, error) {
	player, err := ReadSprite(fsys, PlayerSpriteFile)
	if err != nil {
		return SpriteSet{}, err
	}
	obstacle, err := ReadSprite(fsys, ObstacleSpriteFile)
	if err != nil {
		return SpriteSet{}, err
	}
	return SpriteSet{Player: player, Obstacle: obstacle}, nil
}

// Library re-reads sprites from its filesystem on every Probe and keeps
// the last successful set.
type Library struct {
	fsys   fs.FS
	set    SpriteSet
	loaded bool
}

// NewLibrary creates a library backed by fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{fsys: fsys}
}

// Probe reloads the sprites. It implements Prober.
func (l *Library) Probe() error {
	set, err := LoadSprites(l.fsys)
	if err != nil {
		return err
	}
	l.set = set
	l.loaded = true
	return nil
}

// Sprites returns the last loaded set and whether one is available.
func (l *Library) Sprites() (SpriteSet, bool) {
	return l.set, l.loaded
}

// FS returns the filesystem the library reads from.
func (l *Library) FS() fs.FS {
	return l.fsys
}
