package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// MakeFramebuffer allocates a color and a depth texture of the given size and
// attaches both to a new framebuffer. The default framebuffer is bound again
// before returning.
func (d *OpenGL) MakeFramebuffer(width, height int) (Framebuffer, error) {
	fb := Framebuffer{
		Color: d.BlankTexture(width, height, FormatRGBA),
		Depth: d.BlankTexture(width, height, FormatDepth),
	}

	var id uint32
	gl.GenFramebuffers(1, &id)
	fb.ID = Handle(id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, id)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, uint32(fb.Color), 0)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, uint32(fb.Depth), 0)
	// Depth is written through its attachment point; only color is a draw buffer.
	drawBuffers := []uint32{gl.COLOR_ATTACHMENT0}
	gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])

	err := checkFramebuffer(gl.CheckFramebufferStatus(gl.FRAMEBUFFER))
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if err != nil {
		d.DeleteFramebuffer(fb.ID)
		d.DeleteTextures(fb.Color, fb.Depth)
		return Framebuffer{}, err
	}
	return fb, nil
}

func checkFramebuffer(status uint32) error {
	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return nil
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return fmt.Errorf("%w: an attachment is framebuffer incomplete (GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT)", ErrIncompleteFramebuffer)
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return fmt.Errorf("%w: the framebuffer has no attachments (GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT)", ErrIncompleteFramebuffer)
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return fmt.Errorf("%w: the object type of a draw attachment is none (GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER)", ErrIncompleteFramebuffer)
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return fmt.Errorf("%w: the combination of internal formats is not supported (GL_FRAMEBUFFER_UNSUPPORTED)", ErrIncompleteFramebuffer)
	}
	return fmt.Errorf("%w: status 0x%X", ErrIncompleteFramebuffer, status)
}

func (d *OpenGL) DeleteFramebuffer(framebuffer Handle) {
	if framebuffer == 0 {
		return
	}
	id := uint32(framebuffer)
	gl.DeleteFramebuffers(1, &id)
}
