// Package media holds the deduplicated media records referenced by cuts.
//
// A Registry is the only place Medium values are created for a read. Two
// candidates with the same Name are the same logical medium: the first one
// inserted wins and later attributes are discarded.
package media

// Size is a frame size in pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// Medium describes one source media file.
type Medium struct {
	// Name is the media title and the identity key.
	Name     string
	FilePath string
	// FrameRate is the raw stream value, expressed in ticks per frame.
	FrameRate       int64
	DurationSeconds float64
	Size            Size
}

// FPS derives frames per second from the frame rate ticks.
func (m *Medium) FPS(ticksPerSecond int64) float64 {
	if m == nil || m.FrameRate <= 0 || ticksPerSecond <= 0 {
		return 0
	}
	return float64(ticksPerSecond) / float64(m.FrameRate)
}

// Registry deduplicates media by Name. The zero value is ready to use.
type Registry struct {
	byName map[string]*Medium
	order  []*Medium
}

// Insert stores candidate unless a medium with the same Name exists, and
// returns the canonical handle either way.
func (r *Registry) Insert(candidate Medium) *Medium {
	if existing, ok := r.byName[candidate.Name]; ok {
		return existing
	}
	if r.byName == nil {
		r.byName = make(map[string]*Medium)
	}
	stored := candidate
	r.byName[candidate.Name] = &stored
	r.order = append(r.order, &stored)
	return &stored
}

// Len returns the number of distinct media.
func (r *Registry) Len() int {
	return len(r.order)
}

// All returns the media in insertion order.
func (r *Registry) All() []*Medium {
	out := make([]*Medium, len(r.order))
	copy(out, r.order)
	return out
}
