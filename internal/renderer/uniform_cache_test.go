package renderer

import (
	"Atmos/internal/gpu/gputest"
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(gputest.NewRecorder(), 1)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheGetLocation(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.Uniforms["cirrus"] = 7
	cache := NewUniformCache(rec, 1)

	if loc := cache.GetLocation("cirrus"); loc != 7 {
		t.Errorf("GetLocation(cirrus) = %d, want 7", loc)
	}

	// cached: later changes to the program are not seen until Clear
	rec.Uniforms["cirrus"] = 9
	if loc := cache.GetLocation("cirrus"); loc != 7 {
		t.Errorf("cached GetLocation(cirrus) = %d, want 7", loc)
	}

	if loc := cache.GetLocation("missing"); loc != -1 {
		t.Errorf("GetLocation(missing) = %d, want -1", loc)
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(gputest.NewRecorder(), 1)
	cache.locations["test"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestUniformCacheSetSkipsMissing(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.Uniforms["cumulus"] = 8
	cache := NewUniformCache(rec, 1)

	cache.SetFloat("cumulus", 0.8)
	cache.SetFloat("missing", 1)
	rec.DrawStrip(1, 4)

	draw := rec.Draws[0]
	if got := draw.Floats[8]; got != 0.8 {
		t.Errorf("cumulus = %v, want 0.8", got)
	}
	if _, ok := draw.Floats[-1]; ok {
		t.Error("missing uniform was uploaded")
	}
}
