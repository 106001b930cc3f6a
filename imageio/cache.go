package imageio

import (
	"image"

	lru "github.com/hashicorp/golang-lru"
)

// Cache keeps recently decoded images in memory, keyed by path.
type Cache struct {
	images *lru.Cache // path -> image.Image
	load   func(path string) (image.Image, error)
}

// NewCache returns a cache holding at most size images.
func NewCache(size int) (*Cache, error) {
	images, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{images: images, load: Load}, nil
}

// Get returns the decoded image at path, loading it on a miss.
func (c *Cache) Get(path string) (image.Image, error) {
	if v, ok := c.images.Get(path); ok {
		return v.(image.Image), nil
	}
	img, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.images.Add(path, img)
	return img, nil
}

func (c *Cache) Len() int {
	return c.images.Len()
}
