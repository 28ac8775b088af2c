package testsupport

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TicksPerSecond mirrors the project time base for fixtures.
const TicksPerSecond int64 = 254_016_000_000

// Object names accepted by Clip.Omit.
const (
	OmitSubClip = "subclip"
	OmitClip    = "clip"
	OmitSource  = "source"
	OmitMedia   = "media"
	OmitStream  = "stream"
)

// SequenceSpec describes a top-level Sequence object.
type SequenceSpec struct {
	ID      uint32
	Name    string
	In, Out int64
	// Groups lists the ObjectRef of each TrackGroup's Second child.
	Groups []string
}

// Clip describes one track item and the chain of objects behind it.
type Clip struct {
	Title     string
	Path      string
	In, Out   int64
	FrameRate string
	Duration  string
	// Omit drops one object of the reference chain to break resolution.
	Omit string
}

// Track describes a clip track. Global tracks are referenced by ObjectURef.
type Track struct {
	Global bool
	Clips  []Clip
}

// ProjectBuilder assembles a flat project document for tests.
type ProjectBuilder struct {
	objects []string
	nextID  int
}

// NewProject returns an empty builder.
func NewProject() *ProjectBuilder {
	return &ProjectBuilder{nextID: 1000}
}

func (b *ProjectBuilder) id() int {
	b.nextID++
	return b.nextID
}

// Raw appends a verbatim top-level object.
func (b *ProjectBuilder) Raw(xml string) *ProjectBuilder {
	b.objects = append(b.objects, xml)
	return b
}

// Sequence appends a Sequence object.
func (b *ProjectBuilder) Sequence(spec SequenceSpec) *ProjectBuilder {
	var groups strings.Builder
	for _, ref := range spec.Groups {
		fmt.Fprintf(&groups, `<TrackGroup Version="1" Index="0"><First>{%s}</First><Second ObjectRef="%s"/></TrackGroup>`, ref, ref)
	}
	b.objects = append(b.objects, fmt.Sprintf(`<Sequence ObjectUID="seq-%d" ClassID="6a15d903" Version="11">
	<Node Version="1"><Properties Version="1">
		<MZ.EditLine>0</MZ.EditLine>
		<MZ.WorkInPoint>%d</MZ.WorkInPoint>
		<MZ.WorkOutPoint>%d</MZ.WorkOutPoint>
	</Properties></Node>
	<TrackGroups Version="1">%s</TrackGroups>
	<Name>%s</Name>
	<ID>%d</ID>
</Sequence>`, spec.ID, spec.In, spec.Out, groups.String(), spec.Name, spec.ID))
	return b
}

// VideoTrackGroup appends a VideoTrackGroup with the given ObjectID and the
// full object chain for every clip of every track.
func (b *ProjectBuilder) VideoTrackGroup(objectID string, width, height int, tracks ...Track) *ProjectBuilder {
	var trackRefs strings.Builder
	for i, track := range tracks {
		trackID := b.id()
		if track.Global {
			fmt.Fprintf(&trackRefs, `<Track Index="%d" ObjectURef="track-%d"/>`, i, trackID)
		} else {
			fmt.Fprintf(&trackRefs, `<Track Index="%d" ObjectRef="%d"/>`, i, trackID)
		}
		var items strings.Builder
		for j, clip := range track.Clips {
			itemID := b.clipChain(clip)
			fmt.Fprintf(&items, `<TrackItem Index="%d" ObjectRef="%d"/>`, j, itemID)
		}
		b.objects = append(b.objects, fmt.Sprintf(
			`<VideoClipTrack ObjectID="%d" ObjectUID="track-%d"><ClipTrack><ClipItems><TrackItems>%s</TrackItems></ClipItems></ClipTrack></VideoClipTrack>`,
			trackID, trackID, items.String()))
	}
	b.objects = append(b.objects, fmt.Sprintf(
		`<VideoTrackGroup ObjectID="%s" ClassID="9e9abd6b"><TrackGroup><Tracks>%s</Tracks></TrackGroup><FrameRect>0,0,%d,%d</FrameRect></VideoTrackGroup>`,
		objectID, trackRefs.String(), width, height))
	return b
}

// AudioTrackGroup appends an AudioTrackGroup, which the reader ignores.
func (b *ProjectBuilder) AudioTrackGroup(objectID string) *ProjectBuilder {
	b.objects = append(b.objects, fmt.Sprintf(`<AudioTrackGroup ObjectID="%s"><TrackGroup><Tracks/></TrackGroup></AudioTrackGroup>`, objectID))
	return b
}

func (b *ProjectBuilder) clipChain(clip Clip) int {
	itemID, subClipID, clipID, sourceID, streamID := b.id(), b.id(), b.id(), b.id(), b.id()
	mediaUID := fmt.Sprintf("media-%d", b.id())

	b.objects = append(b.objects, fmt.Sprintf(
		`<VideoClipTrackItem ObjectID="%d"><ClipTrackItem><TrackItem><Start>%d</Start><End>%d</End></TrackItem><SubClip ObjectRef="%d"/></ClipTrackItem></VideoClipTrackItem>`,
		itemID, clip.In, clip.Out, subClipID))
	if clip.Omit != OmitSubClip {
		b.objects = append(b.objects, fmt.Sprintf(
			`<SubClip ObjectID="%d"><Name>%s</Name><Clip ObjectRef="%d"/><MasterClip ObjectURef="master-%d"/></SubClip>`,
			subClipID, clip.Title, clipID, clipID))
	}
	if clip.Omit != OmitClip {
		b.objects = append(b.objects, fmt.Sprintf(
			`<VideoClip ObjectID="%d"><Clip><Source ObjectRef="%d"/></Clip></VideoClip>`, clipID, sourceID))
	}
	if clip.Omit != OmitSource {
		b.objects = append(b.objects, fmt.Sprintf(
			`<VideoMediaSource ObjectID="%d"><MediaSource><Media ObjectURef="%s"/></MediaSource></VideoMediaSource>`, sourceID, mediaUID))
	}
	if clip.Omit != OmitMedia {
		b.objects = append(b.objects, fmt.Sprintf(
			`<Media ObjectUID="%s"><FilePath> %s </FilePath><Title>
	%s
</Title><VideoStream ObjectRef="%d"/></Media>`, mediaUID, clip.Path, clip.Title, streamID))
	}
	if clip.Omit != OmitStream {
		b.objects = append(b.objects, fmt.Sprintf(
			`<VideoStream ObjectID="%d"><FrameRate>%s</FrameRate><Duration>%s</Duration></VideoStream>`,
			streamID, clip.FrameRate, clip.Duration))
	}
	return itemID
}

// XML renders the document.
func (b *ProjectBuilder) XML() string {
	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>` + "\n")
	out.WriteString(`<PremiereData Version="3">` + "\n")
	out.WriteString(`<Project ObjectRef="1"/>` + "\n")
	for _, obj := range b.objects {
		out.WriteString(obj)
		out.WriteByte('\n')
	}
	out.WriteString(`</PremiereData>` + "\n")
	return out.String()
}

// Gzip compresses data the way the editor stores projects.
func Gzip(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

// WriteProject writes markup to dir/name, compressing it when compress is set,
// and returns the path.
func WriteProject(t testing.TB, dir, name, markup string, compress bool) string {
	t.Helper()
	data := []byte(markup)
	if compress {
		data = Gzip(t, data)
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
