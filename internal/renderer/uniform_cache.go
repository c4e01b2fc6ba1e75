package renderer

import "Atmos/internal/gpu"

// UniformCache caches uniform locations to avoid repeated lookups
type UniformCache struct {
	device    gpu.Device
	locations map[string]int32
	program   gpu.Handle
}

// NewUniformCache creates a new uniform cache for a shader program
func NewUniformCache(device gpu.Device, program gpu.Handle) *UniformCache {
	return &UniformCache{
		device:    device,
		locations: make(map[string]int32),
		program:   program,
	}
}

// GetLocation returns the cached uniform location or fetches and caches it
func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}

	loc := uc.device.UniformLocation(uc.program, name)
	uc.locations[name] = loc
	return loc
}

// SetFloat sets a float uniform using cached location
func (uc *UniformCache) SetFloat(name string, value float32) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.device.SetFloat(loc, value)
	}
}

// Clear clears the cache (call when shader program changes)
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}
