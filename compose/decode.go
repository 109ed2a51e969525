package compose

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
)

// ErrShortBuffer is returned when the mapped pixels are smaller than the
// geometry of the handle requires.
var ErrShortBuffer = errors.New("compose: buffer shorter than its geometry")

// chromaAlign is the row alignment of the YV12 chroma planes in pixels.
const chromaAlign = 16

// Decode wraps or converts the pixels of h into an image.
//
// RGBA_8888 buffers are wrapped without copying. The other RGB formats are
// converted to *image.RGBA with opaque alpha where the format has none.
// YV12 becomes an *image.YCbCr sharing pix.
func Decode(h *gralloc.Handle, pix []byte) (image.Image, error) {
	if h == nil || h.Width <= 0 || h.Height <= 0 || h.Stride < h.Width {
		return nil, drmhwc.ErrInvalidHandle
	}
	w, ht, stride := h.Width, h.Height, h.Stride
	rect := image.Rect(0, 0, w, ht)

	if h.Format == format.HALYV12 {
		return decodeYV12(pix, rect, stride)
	}

	bpp := format.BytesPerPixel(h.Format)
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %v", drmhwc.ErrUnsupportedFormat, h.Format)
	}
	rowBytes := stride * bpp
	if need := rowBytes*(ht-1) + w*bpp; len(pix) < need {
		return nil, fmt.Errorf("%w: %d < %d bytes", ErrShortBuffer, len(pix), need)
	}

	if h.Format == format.HALRGBA8888 {
		return &image.RGBA{Pix: pix, Stride: rowBytes, Rect: rect}, nil
	}

	dst := image.NewRGBA(rect)
	for y := range ht {
		src := pix[y*rowBytes:]
		out := dst.Pix[y*dst.Stride:]
		for x := range w {
			s := src[x*bpp:]
			d := out[x*4 : x*4+4]
			switch h.Format {
			case format.HALRGBX8888:
				d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xff
			case format.HALBGRA8888:
				d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
			case format.HALRGB888:
				d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xff
			case format.HALRGB565:
				v := binary.LittleEndian.Uint16(s)
				r, g, b := byte(v>>11)&0x1f, byte(v>>5)&0x3f, byte(v)&0x1f
				d[0], d[1], d[2], d[3] = r<<3|r>>2, g<<2|g>>4, b<<3|b>>2, 0xff
			}
		}
	}
	return dst, nil
}

// decodeYV12 wraps a YV12 buffer: the luma plane, then the Cr plane, then
// the Cb plane, with chroma rows of half the luma stride rounded up to a
// multiple of 16.
func decodeYV12(pix []byte, rect image.Rectangle, stride int) (image.Image, error) {
	cstride := ((stride+1)/2 + chromaAlign - 1) &^ (chromaAlign - 1)
	ySize := stride * rect.Dy()
	cSize := cstride * ((rect.Dy() + 1) / 2)
	if need := ySize + 2*cSize; len(pix) < need {
		return nil, fmt.Errorf("%w: %d < %d bytes", ErrShortBuffer, len(pix), need)
	}

	return &image.YCbCr{
		Y:              pix[:ySize],
		Cr:             pix[ySize : ySize+cSize],
		Cb:             pix[ySize+cSize : ySize+2*cSize],
		YStride:        stride,
		CStride:        cstride,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           rect,
	}, nil
}
