// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex backs the snapshot module's on-disk output: YV12 frames
// are dumped as the raw Y-then-V-then-U planes the format defines, with no
// header; every other colorspace is converted to a standard image.Image
// and handed to a codec library. It is trimmed to the codecs actually
// reachable from the runtime's colorspace set, with no wrapped-image
// unwrapping since this runtime never produces wrapped images.
package imagex

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"tinkervision.dev/tv/colorspace"
)

// Formats are the supported image encoding / decoding formats
type Formats int32 //enums:enum

// The supported image encoding formats
const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not
func ExtToFormat(ext string) (Formats, error) {
	if len(ext) == 0 {
		return None, errors.New("ExtToFormat: ext is empty")
	}
	if ext[0] == '.' {
		ext = ext[1:]
	}
	ext = strings.ToLower(ext)
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	}
	return None, fmt.Errorf("ExtToFormat: extension %q not recognized", ext)
}

// Open opens an image from the given filename.
// The format is inferred automatically,
// and is returned using the Formats enum.
// png, jpeg, gif, tiff, bmp, and webp are supported.
func Open(filename string) (image.Image, Formats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// OpenFS opens an image from the given filename
// using the given [fs.FS] filesystem (e.g., for embed files).
// The format is inferred automatically,
// and is returned using the Formats enum.
// png, jpeg, gif, tiff, bmp, and webp are supported.
func OpenFS(fsys fs.FS, filename string) (image.Image, Formats, error) {
	file, err := fsys.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// Read reads an image to the given reader,
// The format is inferred automatically,
// and is returned using the Formats enum.
// png, jpeg, gif, tiff, bmp, and webp are supported.
func Read(r io.Reader) (image.Image, Formats, error) {
	im, ext, err := image.Decode(r)
	if err != nil {
		return im, None, err
	}
	f, err := ExtToFormat(ext)
	return im, f, err
}

// Save saves the image to the given filename,
// with the format inferred from the filename.
// png, jpeg, gif, tiff, and bmp are supported.
func Save(im image.Image, filename string) error {
	ext := filepath.Ext(filename)
	f, err := ExtToFormat(ext)
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	defer bw.Flush()
	return Write(im, file, f)
}

// Write writes the image to the given writer using the given format.
// png, jpeg, gif, tiff, and bmp are supported.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case GIF:
		return gif.Encode(w, im, nil)
	case TIFF:
		return tiff.Encode(w, im, nil)
	case BMP:
		return bmp.Encode(w, im)
	default:
		return fmt.Errorf("iox/imagex.Save: format %q not valid", f)
	}
}

// ToStdImage converts a colorspace.Image to a standard image.Image so it can
// be handed to Write/Save. YV12 is not accepted here: those frames go to
// disk as raw planes via WriteYV12Raw, never through a codec.
func ToStdImage(img colorspace.Image) (image.Image, error) {
	w, h := img.Width, img.Height
	switch img.ColorSpace {
	case colorspace.GRAY:
		dst := image.NewGray(image.Rect(0, 0, w, h))
		copy(dst.Pix, img.Data)
		return dst, nil
	case colorspace.BGR888, colorspace.RGB888:
		r, g, b := 0, 1, 2
		if img.ColorSpace == colorspace.BGR888 {
			r, g, b = 2, 1, 0
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		for i := 0; i < w*h; i++ {
			s := i * 3
			d := i * 4
			dst.Pix[d] = img.Data[s+r]
			dst.Pix[d+1] = img.Data[s+g]
			dst.Pix[d+2] = img.Data[s+b]
			dst.Pix[d+3] = 0xff
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("imagex.ToStdImage: colorspace %v has no standard image encoding", img.ColorSpace)
	}
}

// WriteYV12Raw writes a YV12-colorspace image as raw Y-plane, then V-plane,
// then U-plane, row-major and header-less.
func WriteYV12Raw(img colorspace.Image, w io.Writer) error {
	if img.ColorSpace != colorspace.YV12 {
		return fmt.Errorf("imagex.WriteYV12Raw: colorspace %v is not YV12", img.ColorSpace)
	}
	_, err := w.Write(img.Data)
	return err
}
