package render

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the backend cannot render this frame.
// The caller should transparently fall back to CPU rendering.
var ErrFallbackToCPU = errors.New("render: falling back to CPU rendering")

// Target provides pixel buffer access for backend output. Data is
// non-premultiplied RGBA, 4 bytes per pixel, row by row with the given
// stride.
type Target struct {
	Data          []uint8
	Width, Height int
	Stride        int // bytes per row
}

// Backend is an optional frame-rendering execution engine.
//
// When registered via RegisterBackend, the Renderer tries the backend
// first for every frame. If it returns ErrFallbackToCPU or any other
// error, rendering transparently falls back to the CPU path.
//
// Implementations are provided by backend packages and typically
// register themselves from init, enabled by a blank import:
//
//	import _ "github.com/gasandbox/pga/backend/wgpu"
type Backend interface {
	// Name returns the backend name (e.g., "wgpu").
	Name() string

	// Init initializes backend resources. Called once on registration.
	Init() error

	// Close releases backend resources.
	Close()

	// Render draws a full frame into the target. Pixels with no hit
	// must be left untouched.
	Render(target Target, cam *Camera, scene *Scene) error
}

var (
	backendMu sync.RWMutex
	backend   Backend
)

// RegisterBackend registers a rendering backend. Only one backend can
// be registered; subsequent calls replace the previous one. Init is
// called during registration and its failure aborts the registration.
func RegisterBackend(b Backend) error {
	if b == nil {
		return errors.New("render: backend must not be nil")
	}
	if err := b.Init(); err != nil {
		return err
	}
	backendMu.Lock()
	old := backend
	backend = b
	backendMu.Unlock()
	if old != nil {
		old.Close()
	}
	Logger().Info("render backend registered", "name", b.Name())
	return nil
}

// RegisteredBackend returns the current backend, or nil if none.
func RegisteredBackend() Backend {
	backendMu.RLock()
	b := backend
	backendMu.RUnlock()
	return b
}
