//go:build linux

// Command hwcprobe runs the import and plane provisioning path against a
// DRM device.
//
// It allocates a few shared-memory layers, plans them on the first CRTC,
// imports the hardware layers and composites the rest in software. The
// client composition can be written to a PNG file.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/compose"
	"github.com/gogpu/drmhwc/display"
	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
	"github.com/gogpu/drmhwc/gralloc/shm"
	"github.com/gogpu/drmhwc/planner"
	"github.com/gogpu/drmhwc/platform"
)

// layerKinds cycles through the formats and usages of the probe layers.
var layerKinds = []struct {
	format format.HALFormat
	usage  gralloc.Usage
}{
	{format.HALRGBA8888, gralloc.HWFB | gralloc.HWComposer},
	{format.HALRGB565, gralloc.HWComposer | gralloc.HWTexture},
	{format.HALBGRA8888, gralloc.SWReadOften | gralloc.SWWriteOften},
	{format.HALRGBX8888, gralloc.HWComposer},
}

func main() {
	var (
		device   = flag.String("device", "/dev/dri/card0", "DRM device node")
		name     = flag.String("platform", "", "platform name (default: best available)")
		crtcIdx  = flag.Int("crtc", 0, "CRTC index")
		layers   = flag.Int("layers", 4, "number of layers")
		width    = flag.Int("width", 1280, "display width")
		height   = flag.Int("height", 720, "display height")
		output   = flag.String("output", "", "write the client composition to this PNG file")
		scaler   = flag.String("scaler", "approx-bilinear", "client scaler: nearest, approx-bilinear, bilinear, catmull-rom")
		verbose  = flag.Bool("v", false, "debug logging")
		platList = flag.Bool("list", false, "list registered platforms and exit")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	drmhwc.SetLogger(logger)

	if *platList {
		for _, n := range platform.List() {
			e, _ := platform.Get(n)
			fmt.Printf("%-22s priority %3d available %v\n", n, e.Priority, e.Available())
		}
		return
	}

	if err := run(*device, *name, *scaler, *crtcIdx, *layers, *width, *height, *output); err != nil {
		logger.Error("hwcprobe failed", "err", err)
		os.Exit(1)
	}
}

func run(device, name, scaler string, crtcIdx, nlayers, width, height int, output string) error {
	kernel, err := compose.ScalerByName(scaler)
	if err != nil {
		return err
	}

	card, err := drm.Open(device)
	if err != nil {
		return err
	}
	defer card.Close()

	crtcs, err := card.Crtcs()
	if err != nil {
		return err
	}
	if crtcIdx < 0 || crtcIdx >= len(crtcs) {
		return fmt.Errorf("crtc index %d out of range (%d crtcs)", crtcIdx, len(crtcs))
	}
	crtc := crtcs[crtcIdx]

	planes, err := card.Planes()
	if err != nil {
		return err
	}
	slog.Info("device", "path", device, "crtcs", len(crtcs), "planes", len(planes), "crtc", crtc.ID)

	alloc := shm.NewAllocator()

	var p *platform.Platform
	if name != "" {
		p, err = platform.New(name, card, alloc)
	} else {
		p, err = platform.NewDefault(card, alloc)
	}
	if err != nil {
		return err
	}

	target := compose.NewTarget(width, height)
	d, err := display.New(crtc, planes, p,
		display.WithClientTarget(target),
		display.WithCompositor(compose.NewCompositor(compose.WithScaler(kernel))))
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			slog.Warn("display close", "err", err)
		}
	}()

	layers, err := makeLayers(alloc, nlayers, width, height)
	if err != nil {
		return err
	}
	defer func() {
		for _, l := range layers {
			_ = alloc.Free(l.Buffer)
		}
	}()

	frame, err := d.PresentFrame(layers)
	if err != nil {
		return err
	}
	for _, cp := range frame.Plan.Composition {
		bo := frame.Buffers[cp.LayerIndex]
		fmt.Printf("layer %d: %v -> %v (texture %v)\n",
			cp.LayerIndex, bo, cp.Plane, format.TextureFormat(bo.Format))
	}
	for _, i := range frame.Plan.Client {
		fmt.Printf("layer %d: client (%v)\n", i, layers[i].Buffer)
	}

	if output != "" && frame.Composited {
		if err := savePNG(output, target.Image()); err != nil {
			return err
		}
		slog.Info("client composition saved", "path", output)
	}
	return nil
}

// makeLayers allocates n layers tiled diagonally across the display.
func makeLayers(alloc *shm.Allocator, n, width, height int) ([]*planner.Layer, error) {
	layers := make([]*planner.Layer, 0, n)
	w, h := width/2, height/2
	for i := range n {
		kind := layerKinds[i%len(layerKinds)]
		buf, err := alloc.Allocate(w, h, kind.format, kind.usage)
		if err != nil {
			return nil, err
		}
		if err := fill(buf, i); err != nil {
			return nil, err
		}

		off := image.Pt(i*width/(2*max(n, 1)), i*height/(2*max(n, 1)))
		layers = append(layers, &planner.Layer{
			Buffer:       buf,
			Usage:        kind.usage,
			SourceCrop:   image.Rect(0, 0, w, h),
			DisplayFrame: image.Rect(0, 0, w, h).Add(off),
		})
	}
	return layers, nil
}

// palette holds the layer colors as R, G, B.
var palette = [][3]byte{
	{0xe0, 0x40, 0x40},
	{0x40, 0xc0, 0x40},
	{0x40, 0x60, 0xe0},
	{0xe0, 0xc0, 0x20},
}

// fill paints buf with a solid palette color.
func fill(buf *gralloc.Handle, i int) error {
	pix, err := shm.Map(buf)
	if err != nil {
		return err
	}
	defer shm.Unmap(pix)

	c := palette[i%len(palette)]
	var px []byte
	switch buf.Format {
	case format.HALRGBA8888, format.HALRGBX8888:
		px = []byte{c[0], c[1], c[2], 0xff}
	case format.HALBGRA8888:
		px = []byte{c[2], c[1], c[0], 0xff}
	case format.HALRGB888:
		px = []byte{c[0], c[1], c[2]}
	case format.HALRGB565:
		v := uint16(c[0]>>3)<<11 | uint16(c[1]>>2)<<5 | uint16(c[2]>>3)
		px = binary.LittleEndian.AppendUint16(nil, v)
	default:
		return fmt.Errorf("fill: %w: %v", drmhwc.ErrUnsupportedFormat, buf.Format)
	}

	rowBytes := buf.Stride * len(px)
	for y := range buf.Height {
		row := pix[y*rowBytes:]
		for x := range buf.Width {
			copy(row[x*len(px):], px)
		}
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
