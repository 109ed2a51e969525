// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"errors"
	"sort"
	"sync"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/gralloc"
	"github.com/gogpu/drmhwc/importer"
	"github.com/gogpu/drmhwc/planner"
)

// Platform binds the importer variant and plan stages of one deployment
// target. It is built once per display device and never changes.
type Platform struct {
	Name     string
	Importer importer.Importer
	Planner  *planner.Planner
}

// Factory builds a Platform for a display device and allocator module.
type Factory func(dev drm.Device, mod gralloc.Module) (*Platform, error)

// Entry represents a registered platform.
type Entry struct {
	// Name is the unique identifier for this platform.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 100: SoC specific zero-copy platforms
	//   - 50: SoC specific descriptor platforms
	//   - 10: generic fallback
	Priority int

	// Factory creates platform instances.
	Factory Factory

	// Available reports if the platform matches this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered platforms.
//
// Example registration:
//
//	func init() {
//	    platform.Register("imx8", 100, imx8Factory, imx8Available)
//	}
//
// Example usage:
//
//	p, err := platform.New("stm32mpu", card, allocator)
//	// or auto-select best available:
//	p, err := platform.NewDefault(card, allocator)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
	}
}

// Register adds a platform to the global registry.
//
// If available is nil, the platform is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a platform from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered platform names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available platforms sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific platform.
func Get(name string) (*Entry, bool) {
	return globalRegistry.Get(name)
}

// New builds the named platform from the global registry.
func New(name string, dev drm.Device, mod gralloc.Module) (*Platform, error) {
	return globalRegistry.New(name, dev, mod)
}

// NewDefault builds the best available platform from the global registry.
func NewDefault(dev drm.Device, mod gralloc.Module) (*Platform, error) {
	return globalRegistry.NewDefault(dev, mod)
}

// Register adds a platform to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a platform from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered platform names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available platforms sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the entry registered under name.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// NewDefault builds the best available platform. Platforms whose factory
// fails are skipped in favor of the next one.
func (r *Registry) NewDefault(dev drm.Device, mod gralloc.Module) (*Platform, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoPlatformAvailable
	}

	var lastErr error
	for _, name := range available {
		p, err := r.New(name, dev, mod)
		if err == nil {
			return p, nil
		}
		drmhwc.Logger().Warn("platform: skipping", "platform", name, "err", err)
		lastErr = err
	}
	return nil, lastErr
}

// New builds the named platform. It does not consult Available, so a
// platform can be forced on hardware it does not detect.
func (r *Registry) New(name string, dev drm.Device, mod gralloc.Module) (*Platform, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	p, err := entry.Factory(dev, mod)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = name
	}
	drmhwc.Logger().Info("platform: selected", "platform", p.Name)
	return p, nil
}

// sortedNames returns platform names sorted by priority (highest first),
// ties broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// ErrNoPlatformAvailable is returned when no registered platform matches
// the current system.
var ErrNoPlatformAvailable = errors.New("platform: no platform available")

// NotFoundError indicates a named platform is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "platform: not found: " + e.Name
}
