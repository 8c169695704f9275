// Package wgpu renders scenes on the GPU through wgpu/hal compute
// shaders.
//
// Importing the package registers the backend with the render package:
//
//	import _ "github.com/gasandbox/pga/backend/wgpu"
//
// Registration is skipped when no usable Vulkan device is found, and
// any per-frame failure falls back to the CPU path, so the import is
// always safe.
//
// Each object in the scene is dispatched as its own compute pass over
// a shared per-pixel state buffer. The implicit storage barriers
// between passes preserve the sequential compositing order that the
// layer semantics require.
package wgpu
