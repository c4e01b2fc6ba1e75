package renderer

import (
	"Atmos/internal/gpu"
	"Atmos/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Scene owns an ordered list of entities and the camera they are viewed from.
type Scene struct {
	device   gpu.Device
	entities []*Entity
	camera   CameraState
}

func NewScene(device gpu.Device) *Scene {
	return &Scene{
		device: device,
		camera: DefaultCameraState(),
	}
}

func (s *Scene) add(e *Entity) {
	s.entities = append(s.entities, e)
}

// Entities returns the entities in insertion order.
func (s *Scene) Entities() []*Entity {
	return slices.Clone(s.entities)
}

func (s *Scene) Camera() *CameraState {
	return &s.camera
}

// captureTarget is the first entity owning a framebuffer, or nil.
func (s *Scene) captureTarget() *Entity {
	i := slices.IndexFunc(s.entities, func(e *Entity) bool { return e.framebuffer != nil })
	if i < 0 {
		return nil
	}
	return s.entities[i]
}

// Render draws one frame. Entities without a framebuffer are drawn first, in
// order, into the framebuffer of the first render target entity (the screen if
// there is none). Render target entities are drawn after, in order, with time 0.
func (s *Scene) Render(width, height int, time float32) {
	p := ProjectionMatrix(width, height)
	v := s.camera.ViewMatrix()

	if target := s.captureTarget(); target != nil {
		s.device.BindTarget(target.framebuffer.ID)
	} else {
		s.device.BindTarget(gpu.Screen)
	}
	s.device.Clear()

	for _, e := range s.entities {
		if e.framebuffer == nil {
			e.Render(p, v, time)
		}
	}
	for _, e := range s.entities {
		if e.framebuffer != nil {
			e.Render(p, v, 0)
		}
	}
}

// Destroy destroys every entity. Safe to call twice.
func (s *Scene) Destroy() {
	if s.entities == nil {
		return
	}
	for _, e := range s.entities {
		e.Destroy()
	}
	logger.Log.Debug("Scene destroyed", zap.Int("entities", len(s.entities)))
	s.entities = nil
}
