package memory

import (
	"context"
	"strings"
	"sync"
)

type ColorNameCache struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewColorNameCache() *ColorNameCache {
	return &ColorNameCache{names: make(map[string]string)}
}

func (c *ColorNameCache) Get(_ context.Context, hex string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[strings.ToUpper(hex)]
	return name, ok, nil
}

func (c *ColorNameCache) Set(_ context.Context, hex, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[strings.ToUpper(hex)] = name
	return nil
}
