package gpu

import (
	"Atmos/internal/bmp"
	"Atmos/internal/logger"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"go.uber.org/zap"
)

// LoadTexture decodes a bitmap file and uploads it to d.
func LoadTexture(d Device, path string) (Handle, error) {
	img, err := bmp.Open(path)
	if err != nil {
		return 0, err
	}
	texture := d.UploadTexture(int(img.Width), int(img.Height), img.Pixels)

	logger.Log.Info("Texture loaded",
		zap.String("path", path),
		zap.Uint32("textureID", uint32(texture)),
		zap.Uint32("width", img.Width),
		zap.Uint32("height", img.Height))

	return texture, nil
}

// UploadTexture creates an RGB8 texture from bottom-up BGR rows padded to four
// bytes, the layout bitmaps are stored in.
func (d *OpenGL) UploadTexture(width, height int, pixels []byte) Handle {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	var data unsafe.Pointer
	if len(pixels) > 0 {
		data = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, int32(width), int32(height), 0, gl.BGR, gl.UNSIGNED_BYTE, data)

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	return Handle(texture)
}

func glFormat(format PixelFormat) uint32 {
	if format == FormatDepth {
		return gl.DEPTH_COMPONENT
	}
	return gl.RGBA
}

func (d *OpenGL) BlankTexture(width, height int, format PixelFormat) Handle {
	f := glFormat(format)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(f), int32(width), int32(height), 0, f, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	return Handle(texture)
}

func (d *OpenGL) BindTexture(unit int, texture Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(texture))
}

func (d *OpenGL) DeleteTextures(textures ...Handle) {
	for _, t := range textures {
		if t == 0 {
			continue
		}
		id := uint32(t)
		gl.DeleteTextures(1, &id)
	}
}
