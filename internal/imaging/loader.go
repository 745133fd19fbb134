package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Load reads and decodes a single image from disk. Supported formats are
// PNG, JPEG, and GIF.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadAll loads every path in order without caching, returning images
// index-aligned with the input. One unreadable file fails the whole
// call, naming the path; partially loaded sets are never returned.
func LoadAll(paths []string) ([]image.Image, error) {
	return loadAll(paths, Load)
}

func loadAll(paths []string, load func(string) (image.Image, error)) ([]image.Image, error) {
	out := make([]image.Image, len(paths))
	for i, p := range paths {
		img, err := load(p)
		if err != nil {
			return nil, fmt.Errorf("image %d of %d: %w", i+1, len(paths), err)
		}
		out[i] = img
	}
	return out, nil
}

// Cache keeps decoded images in memory keyed by the exact path string they
// were loaded with, so repeated tool calls against the same scene or logo
// set skip disk I/O and decoding.
//
// Cache is safe for concurrent use. Entries stay resident until Evict or
// Clear; a server searching many scenes should clear between jobs to keep
// memory bounded.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates an empty image cache ready for use.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, reading and decoding it on the
// first request. Different path spellings for the same file are distinct
// entries.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadAll loads every path in order and caches each image, returning
// images index-aligned with the input. One unreadable file fails the
// whole call, naming the path; partially loaded sets are never returned.
func (c *Cache) LoadAll(paths []string) ([]image.Image, error) {
	return loadAll(paths, c.Load)
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict drops one cached image by its path. Unknown paths are a no-op.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ListImages returns the image files directly inside dir, sorted by name
// so bank builds are reproducible. Files are selected by extension (.png,
// .jpg, .jpeg, .gif, case-insensitive); subdirectories are not descended
// into.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
