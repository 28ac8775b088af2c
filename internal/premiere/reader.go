package premiere

import (
	"fmt"
	"log/slog"

	"prproj/internal/element"
	"prproj/internal/logging"
	"prproj/internal/media"
	"prproj/internal/objgraph"
)

const (
	sequenceElement        = "Sequence"
	videoTrackGroupElement = "VideoTrackGroup"
)

// Reader resolves one parsed project document. It is not safe for
// concurrent use.
type Reader struct {
	root      *element.Element
	index     *objgraph.Index
	logger    *slog.Logger
	policy    NamespacePolicy
	mediaSize media.Size

	sequences []*Sequence
	media     *media.Registry
	warnings  []error
}

// NewReader prepares a reader over root. Nothing is resolved until Read.
func NewReader(root *element.Element, opts ...Option) *Reader {
	r := &Reader{
		root:      root,
		index:     objgraph.New(root),
		logger:    logging.NewNop(),
		policy:    PerTrack,
		mediaSize: DefaultMediaSize,
		media:     &media.Registry{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sequences returns the sequences found by the last Read, in document order.
func (r *Reader) Sequences() []*Sequence {
	return r.sequences
}

// Media returns the registry of deduplicated media.
func (r *Reader) Media() *media.Registry {
	return r.media
}

// Warnings returns the non-fatal failures of the last Read.
func (r *Reader) Warnings() []error {
	return r.warnings
}

// Read parses every sequence and resolves the video track groups they
// reference. A sequence that cannot be parsed fails the read. Track group
// failures only fail the read when every attempt failed; otherwise they are
// available from Warnings.
func (r *Reader) Read() error {
	r.sequences = nil
	r.media = &media.Registry{}
	r.warnings = nil

	refs, err := r.readSequences()
	if err != nil {
		return err
	}
	return r.resolveGroups(refs)
}

// readSequences returns, per sequence index, the track group references that
// sequence declared.
func (r *Reader) readSequences() ([][]string, error) {
	var refs [][]string
	for _, child := range r.root.ChildrenNamed(sequenceElement) {
		seq, err := ParseSequence(child)
		if err != nil {
			uid, _ := child.LookupAttr(objgraph.GlobalID.Attribute())
			return nil, fmt.Errorf("parse sequence %s: %w", uid, err)
		}
		r.logger.Debug("sequence parsed",
			logging.Int64(logging.FieldSequenceID, int64(seq.ID)),
			logging.String("name", seq.Name),
			logging.Float64("duration_seconds", seq.DurationSeconds),
			logging.Int("track_groups", len(seq.TrackGroupRefs)),
		)
		r.sequences = append(r.sequences, seq)
		refs = append(refs, seq.TrackGroupRefs)
	}
	return refs, nil
}

func (r *Reader) resolveGroups(refs [][]string) error {
	remaining := 0
	for _, list := range refs {
		remaining += len(list)
	}

	var (
		attempts int
		failures []error
	)
	for _, child := range r.root.Children {
		if remaining <= 0 {
			break
		}
		if child.Name != videoTrackGroupElement {
			continue
		}
		id, err := child.Attr(objgraph.LocalID.Attribute())
		if err != nil {
			r.warn(err, "video_track_group_unaddressable")
			continue
		}
		for seqIndex, list := range refs {
			for _, ref := range list {
				if ref != id {
					continue
				}
				remaining--
				attempts++
				seq := r.sequences[seqIndex]
				if err := r.resolveVideoTrackGroup(child, seq); err != nil {
					failures = append(failures, fmt.Errorf("sequence %d: video track group %s: %w", seq.ID, id, err))
				}
			}
		}
	}

	if attempts > 0 && len(failures) == attempts {
		return &AggregateError{Errors: failures}
	}
	for _, err := range failures {
		r.warn(err, "video_track_group_failed")
	}
	r.logger.Debug("project resolved",
		logging.Int("sequences", len(r.sequences)),
		logging.Int("media", r.media.Len()),
		logging.Int("attempts", attempts),
		logging.Int("failures", len(failures)),
	)
	return nil
}

func (r *Reader) warn(err error, eventType string) {
	r.warnings = append(r.warnings, err)
	logging.WarnWithContext(r.logger, "skipping unresolved video track group", eventType,
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "the group may use an unsupported clip type or a broken reference"),
		logging.String(logging.FieldImpact, "cuts from this group are missing from the sequence"),
	)
}
