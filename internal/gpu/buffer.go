package gpu

import (
	"github.com/go-gl/gl/v3.3-core/gl"
)

// MakeBuffer uploads vertex data into a static-draw array buffer. Empty data
// still yields a buffer so vertex-less entities (full screen passes) have one.
func (d *OpenGL) MakeBuffer(data []float32) Handle {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	return Handle(buffer)
}

func (d *OpenGL) MakeVertexArray(buffer Handle, layouts int) Handle {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer))

	stride := int32(layouts * 3 * 4)
	for i := 0; i < layouts; i++ {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), 3, gl.FLOAT, false, stride, gl.PtrOffset(i*3*4))
	}
	return Handle(vao)
}

func (d *OpenGL) DeleteBuffer(buffer Handle) {
	if buffer == 0 {
		return
	}
	id := uint32(buffer)
	gl.DeleteBuffers(1, &id)
}

func (d *OpenGL) DeleteVertexArray(vertexArray Handle) {
	if vertexArray == 0 {
		return
	}
	id := uint32(vertexArray)
	gl.DeleteVertexArrays(1, &id)
}
