package config

import (
	"fmt"
	"image"

	"github.com/anvik/lenscorrect/internal/lcerr"
	"github.com/anvik/lenscorrect/internal/raster"
)

// DecodeBuffer8 converts a decoded standard-library image into an 8-bit
// RGBA packed raster.Buffer (spec §6: "A loader must deliver a pointer,
// width, height, channel count, sample type, and interleave flag"),
// matching the bounds-walking NRGBA conversion idiom used by the
// teacher's cmd/run.go image loading.
func DecodeBuffer8(img image.Image) (*raster.Buffer[uint8], error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf, err := raster.NewBuffer[uint8](raster.RGBA8Packed, w, h)
	if err != nil {
		return nil, err
	}
	wv, err := raster.NewWriteView(buf)
	if err != nil {
		return nil, err
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		converted := image.NewNRGBA(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				converted.Set(x, y, img.At(x, y))
			}
		}
		nrgba = converted
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := nrgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			px := nrgba.Pix[o : o+4 : o+4]
			wv.Set(x, y, raster.R, px[0])
			wv.Set(x, y, raster.G, px[1])
			wv.Set(x, y, raster.B, px[2])
			wv.Set(x, y, raster.A, px[3])
		}
	}
	return buf, nil
}

// EncodeBuffer8 converts an 8-bit RGBA/RGB packed raster.Buffer back
// into a standard-library *image.NRGBA for encoding.
func EncodeBuffer8(buf *raster.Buffer[uint8]) (*image.NRGBA, error) {
	if buf.Layout().Interleave != raster.Packed {
		return nil, fmt.Errorf("EncodeBuffer8 requires a packed layout, got %s: %w", buf.Layout(), lcerr.LayoutMismatch)
	}
	w, h := buf.Width(), buf.Height()
	rv, err := raster.NewReadView(buf)
	if err != nil {
		return nil, err
	}
	hasAlpha := buf.Layout().Channels == 4
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := out.PixOffset(x, y)
			out.Pix[o] = rv.At(x, y, raster.R)
			out.Pix[o+1] = rv.At(x, y, raster.G)
			out.Pix[o+2] = rv.At(x, y, raster.B)
			if hasAlpha {
				out.Pix[o+3] = rv.At(x, y, raster.A)
			} else {
				out.Pix[o+3] = 0xFF
			}
		}
	}
	return out, nil
}

// DecodeBuffer16 converts a standard-library image into a 16-bit RGBA
// packed raster.Buffer, used for higher-precision intermediate formats
// (e.g. 16-bit PNG) decoded as *image.NRGBA64.
func DecodeBuffer16(img image.Image) (*raster.Buffer[uint16], error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf, err := raster.NewBuffer[uint16](raster.RGBA16Packed, w, h)
	if err != nil {
		return nil, err
	}
	wv, err := raster.NewWriteView(buf)
	if err != nil {
		return nil, err
	}
	nrgba, ok := img.(*image.NRGBA64)
	if !ok {
		converted := image.NewNRGBA64(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				converted.Set(x, y, img.At(x, y))
			}
		}
		nrgba = converted
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := nrgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			px := nrgba.Pix[o : o+8 : o+8]
			wv.Set(x, y, raster.R, uint16(px[0])<<8|uint16(px[1]))
			wv.Set(x, y, raster.G, uint16(px[2])<<8|uint16(px[3]))
			wv.Set(x, y, raster.B, uint16(px[4])<<8|uint16(px[5]))
			wv.Set(x, y, raster.A, uint16(px[6])<<8|uint16(px[7]))
		}
	}
	return buf, nil
}

// EncodeBuffer16 converts a 16-bit RGBA/RGB packed raster.Buffer back
// into a standard-library *image.NRGBA64 for encoding.
func EncodeBuffer16(buf *raster.Buffer[uint16]) (*image.NRGBA64, error) {
	if buf.Layout().Interleave != raster.Packed {
		return nil, fmt.Errorf("EncodeBuffer16 requires a packed layout, got %s: %w", buf.Layout(), lcerr.LayoutMismatch)
	}
	w, h := buf.Width(), buf.Height()
	rv, err := raster.NewReadView(buf)
	if err != nil {
		return nil, err
	}
	hasAlpha := buf.Layout().Channels == 4
	out := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := out.PixOffset(x, y)
			putU16(out.Pix[o:o+2], rv.At(x, y, raster.R))
			putU16(out.Pix[o+2:o+4], rv.At(x, y, raster.G))
			putU16(out.Pix[o+4:o+6], rv.At(x, y, raster.B))
			if hasAlpha {
				putU16(out.Pix[o+6:o+8], rv.At(x, y, raster.A))
			} else {
				putU16(out.Pix[o+6:o+8], 0xFFFF)
			}
		}
	}
	return out, nil
}

func putU16(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
}
