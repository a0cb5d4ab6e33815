package atomcells

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat means the file extension names no known image format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DefaultOutput is the figure written when no output path is given.
const DefaultOutput = "out.jpg"

// jpegQuality of saved figures
const jpegQuality = 95

// encodeImage writes in to a buffer in the format named by ext (eg. ".png")
func encodeImage(ext string, in image.Image) (*bytes.Buffer, error) {
	buff := new(bytes.Buffer)

	var err error
	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(buff, in)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(buff, in, &jpeg.Options{Quality: jpegQuality})
	case ".tif", ".tiff":
		err = tiff.Encode(buff, in, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		err = bmp.Encode(buff, in)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}

	return buff, err
}

// saveImage to disk, format by extension
func saveImage(fs afero.Fs, log *zap.Logger, fpath string, in image.Image) error {
	buff, err := encodeImage(filepath.Ext(fpath), in)
	if err != nil {
		return err
	}
	err = afero.WriteFile(fs, fpath, buff.Bytes(), 0644)
	if err != nil {
		return err
	}
	logWritten(log, fs, fpath)
	return nil
}

// writeSTL saves the mesh's triangles as binary STL
func writeSTL(fs afero.Fs, fpath string, mesh *model3d.Mesh) error {
	f, err := fs.Create(fpath)
	if err != nil {
		return err
	}
	defer f.Close()
	return model3d.WriteSTL(f, mesh.TriangleSlice())
}

// logWritten notes a file was written & how big it is
func logWritten(log *zap.Logger, fs afero.Fs, fpath string) {
	info, err := fs.Stat(fpath)
	if err != nil {
		log.Warn("cannot stat written file", zap.String("path", fpath), zap.Error(err))
		return
	}
	log.Info("file written",
		zap.String("path", fpath),
		zap.String("size", humanize.Bytes(uint64(info.Size()))),
	)
}

// clipSegment cuts the segment a, b down to the part inside r (Liang-Barsky).
// Returns false if no part of it is inside.
func clipSegment(a, b r2.Point, r r2.Rect) (r2.Point, r2.Point, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	lo, hi := r.Lo(), r.Hi()
	if !clip(-d.X, a.X-lo.X) || !clip(d.X, hi.X-a.X) || !clip(-d.Y, a.Y-lo.Y) || !clip(d.Y, hi.Y-a.Y) {
		return a, b, false
	}

	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}
