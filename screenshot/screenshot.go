// Package screenshot stores page captures on disk.
package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// Config controls where captures are written and how many are kept.
type Config struct {
	Dir      string
	Max      int // oldest captures beyond this count are pruned; 0 keeps all
	MaxWidth int // captures wider than this are downscaled; 0 keeps the original size
	Quality  int // JPEG quality, defaults to 80
}

// Manager writes JPEG captures to a directory, pruning the oldest once
// the configured limit is exceeded.
type Manager struct {
	cfg Config
	mu  sync.Mutex
}

// NewManager creates a capture manager.
func NewManager(cfg Config) *Manager {
	if cfg.Quality <= 0 {
		cfg.Quality = 80
	}
	return &Manager{cfg: cfg}
}

// Save compresses a PNG capture and writes it as <label>-<id>.jpg,
// returning the path written.
func (m *Manager) Save(data []byte, label string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.cfg.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create capture directory: %w", err)
	}

	jpg, err := compress(data, m.cfg.MaxWidth, m.cfg.Quality)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s.jpg", label, uuid.New().String()[:8])
	path := filepath.Join(m.cfg.Dir, name)
	if err := os.WriteFile(path, jpg, 0644); err != nil {
		return "", fmt.Errorf("failed to write capture: %w", err)
	}

	if err := m.pruneLocked(); err != nil {
		return path, err
	}
	return path, nil
}

// compress decodes a PNG capture, downscales it to maxWidth if needed,
// and re-encodes it as JPEG.
func compress(data []byte, maxWidth, quality int) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode capture: %w", err)
	}

	bounds := img.Bounds()
	if maxWidth > 0 && bounds.Dx() > maxWidth {
		newHeight := (bounds.Dy() * maxWidth) / bounds.Dx()
		resized := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))
		draw.BiLinear.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		img = resized
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// pruneLocked removes the oldest captures beyond the configured limit
// (must hold lock).
func (m *Manager) pruneLocked() error {
	if m.cfg.Max <= 0 {
		return nil
	}

	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		return fmt.Errorf("failed to list capture directory: %w", err)
	}

	var captures []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".jpg" {
			captures = append(captures, e)
		}
	}
	if len(captures) <= m.cfg.Max {
		return nil
	}

	sort.Slice(captures, func(i, j int) bool {
		fi, errI := captures[i].Info()
		fj, errJ := captures[j].Info()
		if errI != nil || errJ != nil {
			return captures[i].Name() < captures[j].Name()
		}
		if fi.ModTime().Equal(fj.ModTime()) {
			return captures[i].Name() < captures[j].Name()
		}
		return fi.ModTime().Before(fj.ModTime())
	})

	for _, e := range captures[:len(captures)-m.cfg.Max] {
		if err := os.Remove(filepath.Join(m.cfg.Dir, e.Name())); err != nil {
			return fmt.Errorf("failed to prune capture %q: %w", e.Name(), err)
		}
	}
	return nil
}
