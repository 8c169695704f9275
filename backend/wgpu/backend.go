package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import the Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gasandbox/pga/render"
)

const (
	paramsSize = 16 // size vec2<u32> + object index + pad
	cameraSize = 48 // pose motor (8 f32) + view parameters (4 f32)
	objectSize = 48 // value (8 f32) + color and layer (4 f32)
	stateSize  = 8  // packed color + depth per pixel
)

func init() {
	if err := render.RegisterBackend(&Backend{}); err != nil {
		render.Logger().Warn("GPU backend unavailable", "err", err)
	}
}

// Backend renders frames with wgpu/hal compute shaders. It implements
// render.Backend.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	ready bool
}

var _ render.Backend = (*Backend)(nil)

func (b *Backend) Name() string { return "wgpu" }

// Init opens a Vulkan device and builds the compute pipeline. An
// error means no usable GPU; registration is then aborted and all
// rendering stays on the CPU.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}
	b.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		b.closeLocked()
		return fmt.Errorf("wgpu: no GPU adapters found")
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		b.closeLocked()
		return fmt.Errorf("wgpu: open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue

	if err := b.createPipeline(); err != nil {
		b.closeLocked()
		return err
	}
	b.ready = true
	render.Logger().Info("GPU backend initialized", "adapter", selected.Info.Name)
	return nil
}

func (b *Backend) createPipeline() error {
	spirv, err := compileShader(shaderSource)
	if err != nil {
		return fmt.Errorf("wgpu: compile shader: %w", err)
	}
	shader, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "pga_composite",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module: %w", err)
	}
	b.shader = shader

	bindLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "pga_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	b.bindLayout = bindLayout

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "pga_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{b.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	pipeline, err := b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "pga_pipeline", Layout: b.pipeLayout,
		Compute: hal.ComputeState{Module: b.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create compute pipeline: %w", err)
	}
	b.pipeline = pipeline
	return nil
}

// Close releases all GPU resources.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeLocked()
}

func (b *Backend) closeLocked() {
	if b.device != nil {
		if b.pipeline != nil {
			b.device.DestroyComputePipeline(b.pipeline)
			b.pipeline = nil
		}
		if b.pipeLayout != nil {
			b.device.DestroyPipelineLayout(b.pipeLayout)
			b.pipeLayout = nil
		}
		if b.bindLayout != nil {
			b.device.DestroyBindGroupLayout(b.bindLayout)
			b.bindLayout = nil
		}
		if b.shader != nil {
			b.device.DestroyShaderModule(b.shader)
			b.shader = nil
		}
		b.device.Destroy()
		b.device = nil
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
	b.queue = nil
	b.ready = false
}

// Render composites the scene into the target, one compute pass per
// object followed by a single fence wait and readback.
func (b *Backend) Render(target render.Target, cam *render.Camera, scene *render.Scene) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return render.ErrFallbackToCPU
	}

	n := scene.Count
	if n > len(scene.Objects) {
		n = len(scene.Objects)
	}
	if n == 0 {
		return nil
	}

	w, h := uint32(target.Width), uint32(target.Height)
	stateBufSize := uint64(w) * uint64(h) * stateSize

	objectsBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pga_objects", Size: uint64(n * objectSize),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create objects buffer: %w", err)
	}
	defer b.device.DestroyBuffer(objectsBuf)

	cameraBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pga_camera", Size: cameraSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create camera buffer: %w", err)
	}
	defer b.device.DestroyBuffer(cameraBuf)

	stateBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pga_state", Size: stateBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create state buffer: %w", err)
	}
	defer b.device.DestroyBuffer(stateBuf)

	stagingBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pga_staging", Size: stateBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(stagingBuf)

	b.queue.WriteBuffer(objectsBuf, 0, packObjects(scene.Objects[:n]))
	b.queue.WriteBuffer(cameraBuf, 0, packCamera(cam))
	b.queue.WriteBuffer(stateBuf, 0, make([]byte, stateBufSize))

	uniformBufs, bindGroups, err := b.createPerObjectBindings(n, w, h, objectsBuf, cameraBuf, stateBuf, stateBufSize)
	if err != nil {
		b.cleanupBindings(uniformBufs, bindGroups)
		return err
	}
	defer b.cleanupBindings(uniformBufs, bindGroups)

	return b.encodePasses(bindGroups, stateBuf, stagingBuf, w, h, stateBufSize, target)
}

// createPerObjectBindings creates one uniform buffer and bind group
// per object; the camera, object and state buffers are shared.
func (b *Backend) createPerObjectBindings(
	n int, w, h uint32,
	objectsBuf, cameraBuf, stateBuf hal.Buffer, stateBufSize uint64,
) ([]hal.Buffer, []hal.BindGroup, error) {
	uniformBufs := make([]hal.Buffer, 0, n)
	bindGroups := make([]hal.BindGroup, 0, n)

	for i := 0; i < n; i++ {
		ub, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "pga_params", Size: paramsSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("wgpu: create uniform buffer %d: %w", i, err)
		}
		uniformBufs = append(uniformBufs, ub)
		b.queue.WriteBuffer(ub, 0, packParams(w, h, uint32(i)))

		bg, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label: "pga_bind", Layout: b.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: paramsSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: cameraBuf.NativeHandle(), Offset: 0, Size: cameraSize}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: objectsBuf.NativeHandle(), Offset: 0, Size: uint64(n * objectSize)}},
				{Binding: 3, Resource: gputypes.BufferBinding{Buffer: stateBuf.NativeHandle(), Offset: 0, Size: stateBufSize}},
			},
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("wgpu: create bind group %d: %w", i, err)
		}
		bindGroups = append(bindGroups, bg)
	}
	return uniformBufs, bindGroups, nil
}

func (b *Backend) cleanupBindings(uniformBufs []hal.Buffer, bindGroups []hal.BindGroup) {
	for _, bg := range bindGroups {
		if bg != nil {
			b.device.DestroyBindGroup(bg)
		}
	}
	for _, ub := range uniformBufs {
		if ub != nil {
			b.device.DestroyBuffer(ub)
		}
	}
}

// encodePasses records one compute pass per object in a single
// encoder, copies the state buffer to staging, submits with a fence
// and unpacks the readback into the target.
func (b *Backend) encodePasses(
	bindGroups []hal.BindGroup, stateBuf, stagingBuf hal.Buffer,
	w, h uint32, stateBufSize uint64, target render.Target,
) error {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "pga_encoder"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pga_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	for _, bg := range bindGroups {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "pga_pass"})
		pass.SetPipeline(b.pipeline)
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch((w+7)/8, (h+7)/8, 1)
		pass.End()
	}

	encoder.CopyBufferToBuffer(stateBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: stateBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)
	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stateBufSize)
	if err := b.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("wgpu: readback: %w", err)
	}
	unpackState(readback, target)
	return nil
}

func putFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

func packParams(w, h, index uint32) []byte {
	buf := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(buf[0:], w)
	binary.LittleEndian.PutUint32(buf[4:], h)
	binary.LittleEndian.PutUint32(buf[8:], index)
	return buf
}

func packCamera(cam *render.Camera) []byte {
	buf := make([]byte, cameraSize)
	t := cam.Transform
	for i, v := range []float32{
		t.S, t.E0, t.E1, t.E2, t.E01, t.E02, t.E12, t.E012,
		cam.VerticalHeight, cam.Aspect, cam.LineThickness, cam.PointRadius,
	} {
		putFloat32(buf[i*4:], v)
	}
	return buf
}

func packObjects(objects []render.Object) []byte {
	buf := make([]byte, len(objects)*objectSize)
	for i := range objects {
		obj := &objects[i]
		v := obj.Value
		base := i * objectSize
		for j, f := range []float32{
			v.S, v.E0, v.E1, v.E2, v.E01, v.E02, v.E12, v.E012,
			obj.Color.R, obj.Color.G, obj.Color.B, obj.Layer,
		} {
			putFloat32(buf[base+j*4:], f)
		}
	}
	return buf
}

// unpackState writes GPU hits into the target, leaving missed pixels
// untouched. State alpha 255 marks a hit.
func unpackState(state []byte, target render.Target) {
	for y := 0; y < target.Height; y++ {
		row := y * target.Stride
		srcRow := y * target.Width * stateSize
		for x := 0; x < target.Width; x++ {
			packed := binary.LittleEndian.Uint32(state[srcRow+x*stateSize:])
			if packed>>24 == 0 {
				continue
			}
			idx := row + x*4
			target.Data[idx] = uint8(packed)
			target.Data[idx+1] = uint8(packed >> 8)
			target.Data[idx+2] = uint8(packed >> 16)
			target.Data[idx+3] = uint8(packed >> 24)
		}
	}
}
