package premiere

import (
	"fmt"
	"strconv"
	"strings"

	"prproj/internal/element"
	"prproj/internal/media"
	"prproj/internal/objgraph"
)

type trackRef struct {
	id string
	ns objgraph.Namespace
}

// resolveVideoTrackGroup writes the group's frame size onto seq and appends
// one cut per resolvable clip. The first broken reference ends the call;
// cuts appended before it are kept.
func (r *Reader) resolveVideoTrackGroup(vtg *element.Element, seq *Sequence) error {
	parts, err := vtg.Pick("FrameRect", "TrackGroup")
	if err != nil {
		return err
	}
	size, err := parseFrameRect(parts[0])
	if err != nil {
		return err
	}
	seq.Size = size

	tracks, err := parts[1].Get("Tracks")
	if err != nil {
		return err
	}
	refs, err := r.trackRefs(tracks)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		itemRefs, err := r.trackItemRefs(ref)
		if err != nil {
			return err
		}
		for item := range r.index.FindAll(itemRefs, objgraph.LocalID) {
			cut, err := r.resolveTrackItem(item)
			if err != nil {
				id, _ := item.LookupAttr(objgraph.LocalID.Attribute())
				return fmt.Errorf("track item %s: %w", id, err)
			}
			seq.addCut(cut)
		}
	}
	return nil
}

func (r *Reader) trackRefs(tracks *element.Element) ([]trackRef, error) {
	refs := make([]trackRef, 0, len(tracks.Children))
	for _, track := range tracks.Children {
		if uref, ok := track.LookupAttr("ObjectURef"); ok {
			refs = append(refs, trackRef{id: uref, ns: objgraph.GlobalID})
			continue
		}
		ref, err := track.Attr("ObjectRef")
		if err != nil {
			return nil, err
		}
		refs = append(refs, trackRef{id: ref, ns: objgraph.LocalID})
	}
	if r.policy == LastTrack && len(refs) > 0 {
		last := refs[len(refs)-1].ns
		for i := range refs {
			refs[i].ns = last
		}
	}
	return refs, nil
}

// trackItemRefs resolves a track and collects the identifiers of its clip
// items. Audio and video tracks share this layout.
func (r *Reader) trackItemRefs(ref trackRef) ([]string, error) {
	track, err := r.index.Find(ref.id, ref.ns)
	if err != nil {
		return nil, fmt.Errorf("resolve track: %w", err)
	}
	items, err := descend(track, "ClipTrack", "ClipItems", "TrackItems")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items.Children))
	for _, item := range items.Children {
		id, err := item.Attr("ObjectRef")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *Reader) resolveTrackItem(item *element.Element) (Cut, error) {
	clipTrackItem, err := item.Get("ClipTrackItem")
	if err != nil {
		return Cut{}, err
	}
	parts, err := clipTrackItem.Pick("SubClip", "TrackItem")
	if err != nil {
		return Cut{}, err
	}
	subClipRef, trackItem := parts[0], parts[1]

	bounds, err := trackItem.Pick("End", "Start")
	if err != nil {
		return Cut{}, err
	}
	outPoint, err := parseTicks(bounds[0])
	if err != nil {
		return Cut{}, err
	}
	inPoint, err := parseTicks(bounds[1])
	if err != nil {
		return Cut{}, err
	}

	medium, err := r.resolveMedium(subClipRef)
	if err != nil {
		return Cut{}, err
	}
	return Cut{
		Start:  Seconds(inPoint),
		End:    Seconds(outPoint),
		Medium: medium,
	}, nil
}

// resolveMedium follows SubClip → Clip → MediaSource → Media → VideoStream
// and registers the medium it finds.
func (r *Reader) resolveMedium(subClipRef *element.Element) (*media.Medium, error) {
	subClip, err := r.follow(subClipRef, "ObjectRef", objgraph.LocalID)
	if err != nil {
		return nil, fmt.Errorf("resolve sub clip: %w", err)
	}
	subParts, err := subClip.Pick("Clip", "MasterClip", "Name")
	if err != nil {
		return nil, err
	}

	clipObject, err := r.follow(subParts[0], "ObjectRef", objgraph.LocalID)
	if err != nil {
		return nil, fmt.Errorf("resolve clip: %w", err)
	}
	source, err := descend(clipObject, "Clip", "Source")
	if err != nil {
		return nil, err
	}

	sourceObject, err := r.follow(source, "ObjectRef", objgraph.LocalID)
	if err != nil {
		return nil, fmt.Errorf("resolve media source: %w", err)
	}
	mediaRef, err := descend(sourceObject, "MediaSource", "Media")
	if err != nil {
		return nil, err
	}

	mediaObject, err := r.follow(mediaRef, "ObjectURef", objgraph.GlobalID)
	if err != nil {
		return nil, fmt.Errorf("resolve media: %w", err)
	}
	mediaParts, err := mediaObject.Pick("FilePath", "Title", "VideoStream")
	if err != nil {
		return nil, err
	}

	stream, err := r.follow(mediaParts[2], "ObjectRef", objgraph.LocalID)
	if err != nil {
		return nil, fmt.Errorf("resolve video stream: %w", err)
	}
	streamParts, err := stream.Pick("Duration", "FrameRate")
	if err != nil {
		return nil, err
	}

	candidate := media.Medium{
		Name:            mediaParts[1].TrimmedText(),
		FilePath:        mediaParts[0].TrimmedText(),
		FrameRate:       parseTicksLenient(streamParts[1]),
		DurationSeconds: Seconds(parseTicksLenient(streamParts[0])),
		Size:            r.mediaSize,
	}
	return r.media.Insert(candidate), nil
}

// follow reads the reference attribute attr of elem and resolves it in ns.
func (r *Reader) follow(elem *element.Element, attr string, ns objgraph.Namespace) (*element.Element, error) {
	id, err := elem.Attr(attr)
	if err != nil {
		return nil, err
	}
	return r.index.Find(id, ns)
}

func descend(elem *element.Element, path ...string) (*element.Element, error) {
	current := elem
	for _, name := range path {
		next, err := current.Get(name)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// parseFrameRect reads width and height from "left,top,right,bottom".
func parseFrameRect(elem *element.Element) (media.Size, error) {
	fields := strings.Split(elem.TrimmedText(), ",")
	if len(fields) < 4 {
		return media.Size{}, fmt.Errorf("parse %s %q: want 4 comma separated values", elem.Name, elem.TrimmedText())
	}
	width, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 32)
	if err != nil {
		return media.Size{}, fmt.Errorf("parse %s width: %w", elem.Name, err)
	}
	height, err := strconv.ParseUint(strings.TrimSpace(fields[3]), 10, 32)
	if err != nil {
		return media.Size{}, fmt.Errorf("parse %s height: %w", elem.Name, err)
	}
	return media.Size{Width: uint32(width), Height: uint32(height)}, nil
}
