package bmp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	xbmp "golang.org/x/image/bmp"
)

func encodeFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(10 * x), G: uint8(100 + y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := xbmp.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeEncodedImage(t *testing.T) {
	img, err := Decode(bytes.NewReader(encodeFixture(t, 3, 2)))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Errorf("size = %dx%d, want 3x2", img.Width, img.Height)
	}
	if img.BitsPerPixel() != 24 {
		t.Errorf("bpp = %d, want 24", img.BitsPerPixel())
	}
	if img.RowStride() != 12 {
		t.Errorf("stride = %d, want 12", img.RowStride())
	}
	if len(img.Pixels) != 24 {
		t.Fatalf("pixel bytes = %d, want 24", len(img.Pixels))
	}
	// First stored row is the bottom row (y=1), pixels are BGR.
	if got := img.Pixels[:3]; !bytes.Equal(got, []byte{200, 101, 0}) {
		t.Errorf("first pixel = %v, want [200 101 0]", got)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := encodeFixture(t, 2, 2)
	data[0], data[1] = 'P', 'K'

	_, err := Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrBadMagic) {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Error("error should be a *DecodeError")
	}
}

func TestDecodeShortHeader(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("BM\x00\x00")))
	if !errors.Is(err, ErrShortHeader) {
		t.Fatalf("err = %v, want ErrShortHeader", err)
	}
}

func TestDecodeTruncatedPixels(t *testing.T) {
	data := encodeFixture(t, 4, 4)
	_, err := Decode(bytes.NewReader(data[:len(data)-5]))
	if !errors.Is(err, ErrShortPixels) {
		t.Fatalf("err = %v, want ErrShortPixels", err)
	}
}

func TestDecodeUnsupportedDepth(t *testing.T) {
	data := encodeFixture(t, 2, 2)
	// Rewrite bits per pixel (high half of the colors field) to 32.
	binary.LittleEndian.PutUint16(data[28:], 32)

	_, err := Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestDecodeZeroImageSize(t *testing.T) {
	data := encodeFixture(t, 2, 2)
	binary.LittleEndian.PutUint32(data[34:], 0)

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(img.Pixels) != img.RowStride()*2 {
		t.Errorf("pixel bytes = %d, want %d", len(img.Pixels), img.RowStride()*2)
	}
}

func TestOpenAttachesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-bitmap.bmp")
	if err := os.WriteFile(path, append([]byte("XX"), make([]byte, 60)...), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
	if de.Path != path {
		t.Errorf("path = %q, want %q", de.Path, path)
	}
}

// headerOnly is a 54-byte 24bpp bitmap header with no pixel data.
func headerOnly(width, height, imageSize uint32) []byte {
	h := Header{
		Magic:     [2]byte{'B', 'M'},
		Size:      HeaderSize,
		Offset:    HeaderSize,
		InfoSize:  40,
		Width:     width,
		Height:    height,
		Colors:    24<<16 | 1,
		ImageSize: imageSize,
	}
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func TestDecodeHostileHeaders(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		imageSize     uint32
		want          error
	}{
		{"huge", 0x80000000, 0x80000000, 0, ErrUnsupported},
		{"top-down", 2, 0xFFFFFFFE, 0, ErrUnsupported},
		{"over cap", MaxDimension + 1, 1, 0, ErrUnsupported},
		{"missing pixels", 2, 2, 0, ErrShortPixels},
		{"image size beyond data", 2, 2, 0xFFFFFFFF, ErrShortPixels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := headerOnly(tt.width, tt.height, tt.imageSize)
			if len(data) != HeaderSize {
				t.Fatalf("header is %d bytes", len(data))
			}
			_, err := Decode(bytes.NewReader(data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Error("error should be a *DecodeError")
			}
		})
	}
}
