//go:build ebiten

package window

import (
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/pika-runner/internal/assets"
)

// ImageSet loads the player and obstacle images. Every Probe re-reads the
// files, so a failed load is retried from disk.
type ImageSet struct {
	fsys     fs.FS
	player   *ebiten.Image
	obstacle *ebiten.Image
}

// NewImageSet creates an image set backed by fsys.
func NewImageSet(fsys fs.FS) *ImageSet {
	return &ImageSet{fsys: fsys}
}

// Probe reloads both images. It implements assets.Prober.
func (s *ImageSet) Probe() error {
	player, _, err := ebitenutil.NewImageFromFileSystem(s.fsys, assets.PlayerImageFile)
	if err != nil {
		return fmt.Errorf("window: load %s: %w", assets.PlayerImageFile, err)
	}
	obstacle, _, err := ebitenutil.NewImageFromFileSystem(s.fsys, assets.ObstacleImageFile)
	if err != nil {
		return fmt.Errorf("window: load %s: %w", assets.ObstacleImageFile, err)
	}

	s.player, s.obstacle = player, obstacle
	return nil
}

// Loaded reports whether both images are available.
func (s *ImageSet) Loaded() bool {
	return s.player != nil && s.obstacle != nil
}
