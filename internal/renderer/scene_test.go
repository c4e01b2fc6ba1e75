package renderer

import (
	"Atmos/internal/gpu"
	"Atmos/internal/gpu/gputest"
	"Atmos/internal/sky"
	"testing"
)

func TestNewScene(t *testing.T) {
	scene := NewScene(gputest.NewRecorder())

	if cam := scene.Camera(); *cam != DefaultCameraState() {
		t.Errorf("camera = %+v, want default", *cam)
	}
	if len(scene.Entities()) != 0 {
		t.Error("new scene should be empty")
	}
}

func TestSceneEntitiesIsCopy(t *testing.T) {
	scene := NewScene(gputest.NewRecorder())
	if _, err := NewSky(scene, sky.DefaultParams()); err != nil {
		t.Fatal(err)
	}
	got := scene.Entities()
	got[0] = nil
	if scene.Entities()[0] == nil {
		t.Error("Entities exposed the scene's slice")
	}
}

func TestSceneRenderTwoPhase(t *testing.T) {
	rec := gputest.NewRecorder()
	scene := NewScene(rec)

	skyEntity, err := NewSky(scene, sky.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	postEntity, err := NewPostProcess(scene, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	fb := postEntity.Framebuffer()

	scene.Render(800, 600, 1.5)

	if err := rec.Err(); err != nil {
		t.Fatalf("device error: %v", err)
	}
	if len(rec.Draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(rec.Draws))
	}
	loc := gputest.StandardUniforms

	first := rec.Draws[0]
	if first.VertexArray != skyEntity.vertexArray {
		t.Error("sky was not drawn first")
	}
	if first.Target != fb.ID {
		t.Errorf("sky drawn into %d, want framebuffer %d", first.Target, fb.ID)
	}
	if first.Floats[loc["time"]] != 1.5 {
		t.Errorf("sky time = %v, want 1.5", first.Floats[loc["time"]])
	}
	if first.DepthTest {
		t.Error("sky drawn with depth test")
	}

	second := rec.Draws[1]
	if second.VertexArray != postEntity.vertexArray {
		t.Error("post was not drawn second")
	}
	if second.Target != gpu.Screen {
		t.Errorf("post drawn into %d, want screen", second.Target)
	}
	if second.Floats[loc["time"]] != 0 {
		t.Errorf("post time = %v, want 0", second.Floats[loc["time"]])
	}
	if second.Textures[0] != fb.Color || second.Textures[1] != fb.Depth {
		t.Errorf("post textures = %v, want color %d depth %d", second.Textures, fb.Color, fb.Depth)
	}
	if second.Ints[loc["tex"]] != 0 || second.Ints[loc["tex"]+1] != 1 {
		t.Errorf("sampler units = %v", second.Ints)
	}

	if len(rec.Clears) != 2 || rec.Clears[0] != fb.ID || rec.Clears[1] != gpu.Screen {
		t.Errorf("clears = %v, want [%d 0]", rec.Clears, fb.ID)
	}
	if rec.Target() != gpu.Screen {
		t.Error("frame did not end on the screen")
	}
}

func TestSceneRenderOrder(t *testing.T) {
	rec := gputest.NewRecorder()
	scene := NewScene(rec)

	// a render target added first is still drawn after the others
	postEntity, err := NewPostProcess(scene, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewSky(scene, sky.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewEntity(scene, EntityDesc{VertexCount: 3, DepthTest: true})
	if err != nil {
		t.Fatal(err)
	}

	scene.Render(64, 64, 0)

	want := []gpu.Handle{a.vertexArray, b.vertexArray, postEntity.vertexArray}
	if len(rec.Draws) != len(want) {
		t.Fatalf("draws = %d, want %d", len(rec.Draws), len(want))
	}
	for i, d := range rec.Draws {
		if d.VertexArray != want[i] {
			t.Errorf("draw %d used vertex array %d, want %d", i, d.VertexArray, want[i])
		}
	}
	if !rec.Draws[1].DepthTest {
		t.Error("depth-tested entity drawn without depth test")
	}
}

func TestSceneRenderWithoutTarget(t *testing.T) {
	rec := gputest.NewRecorder()
	scene := NewScene(rec)
	if _, err := NewSky(scene, sky.DefaultParams()); err != nil {
		t.Fatal(err)
	}

	scene.Render(800, 600, 0)

	if len(rec.Clears) != 1 || rec.Clears[0] != gpu.Screen {
		t.Errorf("clears = %v, want [0]", rec.Clears)
	}
	if rec.Draws[0].Target != gpu.Screen {
		t.Error("sky not drawn to the screen")
	}
}

func TestSceneRenderUsesCamera(t *testing.T) {
	rec := gputest.NewRecorder()
	scene := NewScene(rec)
	if _, err := NewSky(scene, sky.DefaultParams()); err != nil {
		t.Fatal(err)
	}
	scene.Camera().Yaw = 0.5

	scene.Render(640, 480, 0)

	d := rec.Draws[0]
	loc := gputest.StandardUniforms
	if d.Mat4s[loc["P"]] != ProjectionMatrix(640, 480) {
		t.Error("projection not uploaded")
	}
	if d.Mat4s[loc["V"]] != scene.Camera().ViewMatrix() {
		t.Error("view does not follow the camera")
	}
}

func TestSceneDestroy(t *testing.T) {
	rec := gputest.NewRecorder()
	scene := NewScene(rec)
	if _, err := NewSky(scene, sky.DefaultParams()); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPostProcess(scene, 800, 600); err != nil {
		t.Fatal(err)
	}

	scene.Destroy()
	scene.Destroy()

	if live := rec.Live(); len(live) != 0 {
		t.Errorf("leaked %v", live)
	}
	if len(scene.Entities()) != 0 {
		t.Error("entities survive Destroy")
	}
}
