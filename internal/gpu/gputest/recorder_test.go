package gputest

import (
	"Atmos/internal/gpu"
	"errors"
	"reflect"
	"testing"
)

func TestRecorderLiveObjects(t *testing.T) {
	r := NewRecorder()

	buf := r.MakeBuffer([]float32{1, 2, 3})
	vao := r.MakeVertexArray(buf, 1)
	fb, err := r.MakeFramebuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"buffer", "framebuffer", "texture", "texture", "vertexArray"}
	if got := r.Live(); !reflect.DeepEqual(got, want) {
		t.Errorf("Live() = %v, want %v", got, want)
	}

	r.DeleteVertexArray(vao)
	r.DeleteBuffer(buf)
	r.DeleteFramebuffer(fb.ID)
	r.DeleteTextures(fb.Color, fb.Depth)
	if got := r.Live(); len(got) != 0 {
		t.Errorf("Live() = %v after deletes", got)
	}
}

func TestRecorderDeleteWrongKind(t *testing.T) {
	r := NewRecorder()
	tex := r.BlankTexture(1, 1, gpu.FormatRGBA)

	r.DeleteBuffer(tex)
	if got := r.Live(); len(got) != 1 {
		t.Errorf("texture released by DeleteBuffer: %v", got)
	}
}

func TestRecorderDrawSnapshot(t *testing.T) {
	r := NewRecorder()
	r.BindTarget(7)
	r.SetFloat(3, 1.5)
	r.SetDepthTest(false)
	r.DrawStrip(2, 4)
	r.SetFloat(3, 2.5)

	d := r.Draws[0]
	if d.Target != 7 || d.Count != 4 || d.DepthTest || d.Floats[3] != 1.5 {
		t.Errorf("draw = %+v", d)
	}
	if r.Target() != 7 || r.DepthTest() {
		t.Error("state accessors disagree with the last calls")
	}
}

func TestRecorderUniformsPerProgram(t *testing.T) {
	r := NewRecorder()
	sky, err := r.LinkProgram("sky", "sky")
	if err != nil {
		t.Fatal(err)
	}
	post, err := r.LinkProgram("post", "post")
	if err != nil {
		t.Fatal(err)
	}

	r.UseProgram(sky)
	r.SetFloat(3, 4.5)
	r.SetInt(4, 1)
	r.DrawStrip(1, 4)

	r.UseProgram(post)
	r.DrawStrip(1, 4)

	r.UseProgram(sky)
	r.DrawStrip(1, 4)

	if got := r.Draws[1]; len(got.Floats) != 0 || len(got.Ints) != 0 {
		t.Errorf("sky uniforms leaked into post draw: %+v", got)
	}
	if got := r.Draws[2]; got.Floats[3] != 4.5 || got.Ints[4] != 1 {
		t.Errorf("sky uniforms lost after switching back: %+v", got)
	}
}

func TestRecorderFailures(t *testing.T) {
	r := NewRecorder()
	compileErr := &gpu.CompileError{Stage: gpu.VertexStage, Log: "bad"}
	r.CompileErr = map[string]error{"broken": compileErr}

	if _, err := r.LinkProgram("broken", "fine"); !errors.Is(err, compileErr) {
		t.Errorf("err = %v, want compile error", err)
	}
	if _, err := r.LinkProgram("fine", ""); err != nil {
		t.Errorf("err = %v", err)
	}

	r.PendingErr = errors.New("pending")
	if err := r.Err(); err == nil {
		t.Error("PendingErr not reported")
	}
	if err := r.Err(); err != nil {
		t.Errorf("PendingErr reported twice: %v", err)
	}
	if loc := r.UniformLocation(1, "nope"); loc != -1 {
		t.Errorf("unknown uniform location = %d", loc)
	}
}
