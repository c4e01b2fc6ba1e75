// Package bmp decodes the uncompressed 24-bit bitmaps used as entity textures.
//
// Only the fixed 54-byte header layout is understood: the "BM" magic followed by
// thirteen little-endian 32-bit fields. Pixel bytes are returned untouched
// (bottom-up BGR rows padded to four bytes) so they can be uploaded directly.
package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const HeaderSize = 54

// MaxDimension bounds the width and height accepted from a header.
const MaxDimension = 1 << 14

var (
	ErrBadMagic    = errors.New("bmp: bad magic")
	ErrShortHeader = errors.New("bmp: short header")
	ErrShortPixels = errors.New("bmp: pixel data shorter than image size")
	ErrUnsupported = errors.New("bmp: unsupported pixel format")
)

// DecodeError reports which file failed to decode and why.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Header mirrors the packed on-disk layout field for field.
type Header struct {
	Magic       [2]byte
	Size        uint32
	Reserved    uint32
	Offset      uint32
	InfoSize    uint32
	Width       uint32
	Height      uint32
	Colors      uint32 // planes in the low half, bits per pixel in the high half
	Compression uint32
	ImageSize   uint32
	HRes        uint32
	VRes        uint32
	Palettes    uint32
	Colors2     uint32
}

func (h Header) BitsPerPixel() int {
	return int(h.Colors >> 16)
}

// RowStride is the padded length of one pixel row in bytes.
func (h Header) RowStride() int {
	return (int(h.Width)*3 + 3) &^ 3
}

type Image struct {
	Header
	Pixels []byte
}

func Decode(r io.Reader) (*Image, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &DecodeError{Err: ErrShortHeader}
		}
		return nil, err
	}
	if h.Magic != [2]byte{'B', 'M'} {
		return nil, &DecodeError{Err: ErrBadMagic}
	}
	if bpp := h.BitsPerPixel(); bpp != 24 || h.Compression != 0 {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %d bpp, compression %d", ErrUnsupported, bpp, h.Compression)}
	}

	if h.Offset > HeaderSize {
		if _, err := io.CopyN(io.Discard, r, int64(h.Offset-HeaderSize)); err != nil {
			return nil, &DecodeError{Err: ErrShortPixels}
		}
	}

	// Negative heights mark top-down rows, which textures never use.
	if int32(h.Width) < 0 || int32(h.Height) < 0 {
		return nil, &DecodeError{Err: fmt.Errorf("%w: top-down or negative size %dx%d", ErrUnsupported, int32(h.Width), int32(h.Height))}
	}
	if h.Width > MaxDimension || h.Height > MaxDimension {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %dx%d exceeds %d", ErrUnsupported, h.Width, h.Height, MaxDimension)}
	}

	need := uint64(h.RowStride()) * uint64(h.Height)
	size := uint64(h.ImageSize)
	if size == 0 {
		// BI_RGB files may leave the image size unset.
		size = need
	}
	if size < need {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %d < %d", ErrShortPixels, size, need)}
	}

	// The header is untrusted: let the data present bound the allocation.
	pixels, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %v", ErrShortPixels, err)}
	}
	if uint64(len(pixels)) < size {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %d < %d", ErrShortPixels, len(pixels), size)}
	}
	return &Image{Header: h, Pixels: pixels}, nil
}

func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	var de *DecodeError
	if errors.As(err, &de) {
		de.Path = path
	}
	return img, err
}
