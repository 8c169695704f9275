package render

// Option configures a Renderer during creation.
//
// Example:
//
//	// Default: one worker per CPU, transparent background.
//	r := render.New(800, 600)
//
//	// Single-threaded with an opaque background.
//	r := render.New(800, 600,
//	    render.WithWorkers(1),
//	    render.WithBackground(render.Black))
type Option func(*options)

type options struct {
	workers    int
	tileSize   int
	background *RGB
}

func defaultOptions() options {
	return options{
		workers:  0, // resolved to runtime.NumCPU at render time
		tileSize: defaultTileSize,
	}
}

// WithWorkers sets the number of worker goroutines used by the CPU
// path. Values below 1 restore the default of one worker per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 0
		}
		o.workers = n
	}
}

// WithTileSize sets the side length of the square tiles handed to
// workers. Smaller tiles balance better, larger tiles have less
// scheduling overhead.
func WithTileSize(size int) Option {
	return func(o *options) {
		if size < 1 {
			size = defaultTileSize
		}
		o.tileSize = size
	}
}

// WithBackground fills pixels with no hit using the given opaque color
// instead of leaving them transparent.
func WithBackground(c RGB) Option {
	return func(o *options) {
		o.background = &c
	}
}
