package premiere

import (
	"fmt"
	"strconv"
	"time"

	"prproj/internal/element"
	"prproj/internal/media"
	"prproj/internal/timeline"
)

const (
	workInPoint  = "MZ.WorkInPoint"
	workOutPoint = "MZ.WorkOutPoint"
)

// Cut is one placed clip within a sequence. Start and End are the untrimmed
// placement times in seconds.
type Cut struct {
	Start  float64
	End    float64
	Medium *media.Medium
}

// Duration returns the length of the placement.
func (c Cut) Duration() time.Duration {
	return secondsToDuration(c.End - c.Start)
}

// Sequence is one editing sequence and the cuts resolved into it.
type Sequence struct {
	ID              uint32
	Name            string
	DurationSeconds float64
	// Size stays zero unless one of the sequence's video track groups resolves.
	Size           media.Size
	TrackGroupRefs []string
	Cuts           []Cut
	Timeline       timeline.Timeline
}

// Equal reports whether both sequences have the same identity.
func (s *Sequence) Equal(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}

// Duration returns the work area length.
func (s *Sequence) Duration() time.Duration {
	return secondsToDuration(s.DurationSeconds)
}

// Cut returns the cut a timeline item points at.
func (s *Sequence) Cut(index int) (Cut, bool) {
	if index < 0 || index >= len(s.Cuts) {
		return Cut{}, false
	}
	return s.Cuts[index], true
}

func (s *Sequence) addCut(cut Cut) {
	index := len(s.Cuts)
	s.Cuts = append(s.Cuts, cut)
	s.Timeline.Add(index, cut.Start, cut.End)
}

// ParseSequence builds a sequence from a top-level Sequence element. Cuts and
// frame size are filled in later by track group resolution.
func ParseSequence(elem *element.Element) (*Sequence, error) {
	parts, err := elem.Pick("ID", "Name", "Node", "TrackGroups")
	if err != nil {
		return nil, err
	}
	idElem, nameElem, nodeElem, groupsElem := parts[0], parts[1], parts[2], parts[3]

	seq := &Sequence{Name: nameElem.TrimmedText()}

	properties, err := nodeElem.Get("Properties")
	if err != nil {
		return nil, err
	}
	in, out, err := workArea(properties)
	if err != nil {
		return nil, err
	}
	seq.DurationSeconds = Seconds(out - in)

	for _, group := range groupsElem.Children {
		if group.Name != "TrackGroup" {
			return nil, &UnexpectedElementError{Want: "TrackGroup", Got: group.Name, In: groupsElem.Name}
		}
		second, err := group.Get("Second")
		if err != nil {
			continue
		}
		ref, err := second.Attr("ObjectRef")
		if err != nil {
			return nil, err
		}
		seq.TrackGroupRefs = append(seq.TrackGroupRefs, ref)
	}

	idText := idElem.TrimmedText()
	id, err := strconv.ParseUint(idText, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse %s %q: %w", idElem.Name, idText, err)
	}
	seq.ID = uint32(id)
	return seq, nil
}

func workArea(properties *element.Element) (int64, int64, error) {
	var in, out *element.Element
	for _, child := range properties.Children {
		switch child.Name {
		case workInPoint:
			if in == nil {
				in = child
			}
		case workOutPoint:
			if out == nil {
				out = child
			}
		}
		if in != nil && out != nil {
			break
		}
	}
	if in == nil {
		return 0, 0, &element.NotFoundError{Kind: element.KindElement, Name: workInPoint, In: properties}
	}
	if out == nil {
		return 0, 0, &element.NotFoundError{Kind: element.KindElement, Name: workOutPoint, In: properties}
	}
	inTicks, err := parseTicks(in)
	if err != nil {
		return 0, 0, err
	}
	outTicks, err := parseTicks(out)
	if err != nil {
		return 0, 0, err
	}
	return inTicks, outTicks, nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
