package premiere

import (
	"fmt"
	"log/slog"
	"strings"

	"prproj/internal/logging"
	"prproj/internal/media"
)

// NamespacePolicy decides which identifier namespace is used to look up the
// tracks of a video track group.
type NamespacePolicy int

const (
	// PerTrack looks up each track in the namespace of its own reference.
	PerTrack NamespacePolicy = iota
	// LastTrack looks up every track of a group in the namespace chosen by
	// the group's last track. Older exports were produced this way.
	LastTrack
)

func (p NamespacePolicy) String() string {
	if p == LastTrack {
		return "last_track"
	}
	return "per_track"
}

// ParseNamespacePolicy maps a configuration value to a policy.
func ParseNamespacePolicy(value string) (NamespacePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "per_track":
		return PerTrack, nil
	case "last_track":
		return LastTrack, nil
	default:
		return PerTrack, fmt.Errorf("namespace policy: unsupported value %q", value)
	}
}

// DefaultMediaSize is assigned to every medium; the video stream's own frame
// size is not read.
var DefaultMediaSize = media.Size{Width: 1920, Height: 1080}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger routes resolution warnings to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logging.NewComponentLogger(logger, "reader")
	}
}

// WithNamespacePolicy selects how track references are looked up.
func WithNamespacePolicy(policy NamespacePolicy) Option {
	return func(r *Reader) {
		r.policy = policy
	}
}

// WithMediaSize overrides the frame size recorded on media.
func WithMediaSize(size media.Size) Option {
	return func(r *Reader) {
		if size.Width > 0 && size.Height > 0 {
			r.mediaSize = size
		}
	}
}
