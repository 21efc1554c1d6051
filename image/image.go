// SPDX-License-Identifier: GPL-2.0-or-later

// Package image writes lightmaps to disk as png or tga.
package image

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Formats lists the supported file extensions without the dot.
var Formats = []string{"png", "tga"}

// Write encodes img into the file name. The format follows the extension,
// anything but .tga is written as png.
func Write(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create image")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tga":
		err = EncodeTGA(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", name)
	}
	return errors.Wrapf(f.Close(), "close %s", name)
}

type tgaHeader struct {
	IDLength       uint8
	ColormapType   uint8
	ImageType      uint8
	ColormapIndex  uint16
	ColormapLength uint16
	ColormapSize   uint8
	XOrigin        uint16
	YOrigin        uint16
	Width          uint16
	Height         uint16
	PixelSize      uint8
	Attributes     uint8
}

const (
	tgaTrueColor = 2
	tgaTopLeft   = 0x20
)

// EncodeTGA writes img as an uncompressed 32 bit tga with top-left origin.
func EncodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > 0xffff || b.Dy() > 0xffff {
		return errors.Errorf("image of %dx%d too large for tga", b.Dx(), b.Dy())
	}
	h := tgaHeader{
		ImageType:  tgaTrueColor,
		Width:      uint16(b.Dx()),
		Height:     uint16(b.Dy()),
		PixelSize:  32,
		Attributes: tgaTopLeft | 8,
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	row := make([]byte, 4*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			p := row[4*(x-b.Min.X):]
			// tga stores blue first
			p[0], p[1], p[2], p[3] = c.B, c.G, c.R, c.A
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTGA reads an uncompressed 24 or 32 bit tga.
func DecodeTGA(r io.Reader) (*image.NRGBA, error) {
	var h tgaHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "invalid tga header")
	}
	if h.ImageType != tgaTrueColor {
		return nil, errors.Errorf("tga type %d not supported", h.ImageType)
	}
	if h.ColormapType != 0 || (h.PixelSize != 32 && h.PixelSize != 24) {
		return nil, errors.New("tga is not 24bit or 32bit")
	}
	if h.IDLength != 0 {
		if _, err := io.CopyN(io.Discard, r, int64(h.IDLength)); err != nil {
			return nil, errors.Wrap(err, "skip image id")
		}
	}

	width, height := int(h.Width), int(h.Height)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	bpp := int(h.PixelSize) / 8
	row := make([]byte, width*bpp)
	for i := 0; i < height; i++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, errors.Wrapf(err, "read row %d", i)
		}
		y := i
		if h.Attributes&tgaTopLeft == 0 {
			y = height - 1 - i
		}
		for x := 0; x < width; x++ {
			src := row[x*bpp:]
			dst := img.Pix[img.PixOffset(x, y):]
			dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], 255
			if bpp == 4 {
				dst[3] = src[3]
			}
		}
	}
	return img, nil
}
