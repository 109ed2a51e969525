package display

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/drmhwc/compose"
	"github.com/gogpu/drmhwc/gralloc"
)

// Option configures a Display during creation.
//
// Example:
//
//	// Hardware planes only; client layers are left to the caller.
//	d, err := display.New(crtc, planes, p)
//
//	// Also composite client layers in software.
//	d, err := display.New(crtc, planes, p,
//	    display.WithClientTarget(compose.NewTarget(1920, 1080)))
type Option func(*options)

// Mapper gives CPU access to a buffer's pixels. The returned function
// releases the mapping.
type Mapper func(h *gralloc.Handle) (pix []byte, unmap func() error, err error)

type options struct {
	target     *compose.Target
	texture    gpucontext.TextureUpdater
	compositor *compose.Compositor
	mapper     Mapper
}

func defaultOptions() options {
	return options{
		compositor: compose.NewCompositor(),
		mapper:     mapBuffer,
	}
}

// WithClientTarget enables software composition of client layers into t.
// Without it PresentFrame only reports which layers the caller must
// compose.
func WithClientTarget(t *compose.Target) Option {
	return func(o *options) {
		o.target = t
	}
}

// WithClientTexture uploads the client target into tex after every frame
// that composited client layers. It has no effect without
// WithClientTarget.
func WithClientTexture(tex gpucontext.TextureUpdater) Option {
	return func(o *options) {
		o.texture = tex
	}
}

// WithCompositor replaces the compositor used for client layers.
func WithCompositor(c *compose.Compositor) Option {
	return func(o *options) {
		o.compositor = c
	}
}

// WithMapper replaces how client buffers are mapped for composition.
// The default maps the buffer's descriptor read-only.
func WithMapper(m Mapper) Option {
	return func(o *options) {
		o.mapper = m
	}
}

func mapBuffer(h *gralloc.Handle) ([]byte, func() error, error) {
	pix, err := compose.MapBuffer(h)
	if err != nil {
		return nil, nil, err
	}
	return pix, func() error { return compose.UnmapBuffer(pix) }, nil
}
