package contentbox

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/content-box-mcp/internal/bitmap"
	"github.com/ironsheep/content-box-mcp/internal/logging"
)

// DebugSink receives named intermediate images. Implementations must not
// retain a reference to a bitmap-backed image beyond the call unless they are
// happy to keep it alive.
type DebugSink interface {
	Add(name string, img image.Image)
}

// MemorySink keeps every image in memory. It is safe for concurrent use.
type MemorySink struct {
	mu     sync.Mutex
	images map[string]image.Image
	order  []string
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{images: make(map[string]image.Image)}
}

// Add stores img under name, replacing any earlier image with that name.
func (s *MemorySink) Add(name string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[name]; !ok {
		s.order = append(s.order, name)
	}
	s.images[name] = img
}

// Get returns the image stored under name.
func (s *MemorySink) Get(name string) (image.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[name]
	return img, ok
}

// Names returns the stored names in sorted order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := append([]string(nil), s.order...)
	sort.Strings(names)
	return names
}

// Len returns the number of stored images.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// DirSink writes every image as a PNG file into a directory. File names carry
// a sequence number so that a listing shows the pipeline order.
type DirSink struct {
	dir    string
	prefix string
	log    *logging.Logger

	mu  sync.Mutex
	seq int
}

// NewDirSink creates dir if needed and returns a sink writing into it. prefix
// is prepended to every file name, typically the source image's base name.
func NewDirSink(dir, prefix string, log *logging.Logger) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create debug directory: %w", err)
	}
	return &DirSink{dir: dir, prefix: prefix, log: log}, nil
}

// Add writes img. Write failures are logged and otherwise ignored; a broken
// debug directory must not fail the search.
func (s *DirSink) Add(name string, img image.Image) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	file := fmt.Sprintf("%s%02d_%s.png", s.prefix, seq, name)
	path := filepath.Join(s.dir, file)
	if err := imaging.Save(img, path); err != nil && s.log != nil {
		s.log.Warn("failed to write debug image", "path", path, "error", err)
	}
}

// diagnostics forwards intermediate images to an optional sink. With no sink
// attached nothing is rendered.
type diagnostics struct {
	sink DebugSink
}

func (d diagnostics) enabled() bool { return d.sink != nil }

func (d diagnostics) bitmap(name string, b *bitmap.Bitmap) {
	if d.sink != nil {
		d.sink.Add(name, b.Image())
	}
}

func (d diagnostics) image(name string, img image.Image) {
	if d.sink != nil {
		d.sink.Add(name, img)
	}
}
