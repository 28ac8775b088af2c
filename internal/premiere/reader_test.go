package premiere_test

import (
	"errors"
	"strings"
	"testing"

	"prproj/internal/container"
	"prproj/internal/element"
	"prproj/internal/media"
	"prproj/internal/premiere"
	"prproj/internal/testsupport"
	"prproj/internal/timeline"
)

const tps = testsupport.TicksPerSecond

func newReader(t *testing.T, markup string, opts ...premiere.Option) *premiere.Reader {
	t.Helper()
	root, err := element.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return premiere.NewReader(root, opts...)
}

func clip(title string, in, out int64) testsupport.Clip {
	return testsupport.Clip{
		Title:     title,
		Path:      "/footage/" + title,
		In:        in * tps,
		Out:       out * tps,
		FrameRate: "10584000000",
		Duration:  "2540160000000",
	}
}

func TestReadSequenceWithoutTrackGroups(t *testing.T) {
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "Empty", In: 0, Out: 254016000000}).XML()

	reader := newReader(t, markup)
	if err := reader.Read(); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	seqs := reader.Sequences()
	if len(seqs) != 1 {
		t.Fatalf("got %d sequences want 1", len(seqs))
	}
	if seqs[0].DurationSeconds != 1.0 {
		t.Fatalf("got duration %v want 1", seqs[0].DurationSeconds)
	}
	if len(seqs[0].Cuts) != 0 || seqs[0].Timeline.Len() != 0 {
		t.Fatal("expected no cuts and an empty timeline")
	}
	if reader.Media().Len() != 0 || len(reader.Warnings()) != 0 {
		t.Fatal("expected no media and no warnings")
	}
}

func TestReadResolvesCutsMediaAndTimeline(t *testing.T) {
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 3, Name: "Edit", Out: 30 * tps, Groups: []string{"50", "51"}}).
		AudioTrackGroup("51").
		VideoTrackGroup("50", 3840, 2160,
			testsupport.Track{Clips: []testsupport.Clip{clip("A.mov", 0, 10), clip("B.mov", 10, 20)}},
			testsupport.Track{Global: true, Clips: []testsupport.Clip{clip("A.mov", 5, 12)}},
		).XML()

	reader := newReader(t, markup)
	if err := reader.Read(); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	seq := reader.Sequences()[0]
	if seq.Size != (media.Size{Width: 3840, Height: 2160}) {
		t.Fatalf("unexpected sequence size %+v", seq.Size)
	}
	if len(seq.Cuts) != 3 {
		t.Fatalf("got %d cuts want 3", len(seq.Cuts))
	}
	if seq.Cuts[0].Start != 0 || seq.Cuts[0].End != 10 || seq.Cuts[2].Start != 5 || seq.Cuts[2].End != 12 {
		t.Fatalf("unexpected cut bounds: %+v", seq.Cuts)
	}
	if seq.Cuts[0].Medium != seq.Cuts[2].Medium {
		t.Fatal("cuts of the same title must share one medium")
	}
	if reader.Media().Len() != 2 {
		t.Fatalf("got %d media want 2", reader.Media().Len())
	}

	m := seq.Cuts[1].Medium
	if m.Name != "B.mov" || m.FilePath != "/footage/B.mov" {
		t.Fatalf("title and path must be trimmed, got %q %q", m.Name, m.FilePath)
	}
	if m.FrameRate != 10584000000 || m.DurationSeconds != 10 {
		t.Fatalf("unexpected stream metadata %+v", *m)
	}
	if m.Size != premiere.DefaultMediaSize {
		t.Fatalf("unexpected media size %+v", m.Size)
	}

	want := []timeline.Item{{Cut: 0, Start: 0, End: 5}, {Cut: 2, Start: 5, End: 12}, {Cut: 1, Start: 12, End: 20}}
	got := seq.Timeline.Items()
	if len(got) != len(want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestReadToleratesMalformedStreamMetadata(t *testing.T) {
	c := clip("C.mov", 0, 1)
	c.FrameRate = "n/a"
	c.Duration = ""
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "s", Out: tps, Groups: []string{"9"}}).
		VideoTrackGroup("9", 1280, 720, testsupport.Track{Clips: []testsupport.Clip{c}}).XML()

	reader := newReader(t, markup)
	if err := reader.Read(); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	m := reader.Media().All()[0]
	if m.FrameRate != 0 || m.DurationSeconds != 0 {
		t.Fatalf("expected zero defaults, got %+v", *m)
	}
}

func TestReadPartialFailureIsWarning(t *testing.T) {
	broken := clip("Broken.mov", 0, 5)
	broken.Omit = testsupport.OmitStream
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "ok", Out: tps, Groups: []string{"10"}}).
		Sequence(testsupport.SequenceSpec{ID: 2, Name: "bad", Out: tps, Groups: []string{"11"}}).
		VideoTrackGroup("10", 1920, 1080, testsupport.Track{Clips: []testsupport.Clip{clip("A.mov", 0, 5)}}).
		VideoTrackGroup("11", 1920, 1080, testsupport.Track{Clips: []testsupport.Clip{clip("B.mov", 0, 2), broken, clip("C.mov", 6, 8)}}).XML()

	reader := newReader(t, markup)
	if err := reader.Read(); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	warnings := reader.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings want 1", len(warnings))
	}
	if !errors.Is(warnings[0], element.ErrNotFound) || !strings.Contains(warnings[0].Error(), "resolve video stream") {
		t.Fatalf("warning should name the broken hop: %v", warnings[0])
	}

	bad := reader.Sequences()[1]
	if len(bad.Cuts) != 1 || bad.Cuts[0].Medium.Name != "B.mov" {
		t.Fatalf("cuts before the failure must be kept, got %+v", bad.Cuts)
	}
	if bad.Size.Width != 1920 {
		t.Fatal("size is written before clip resolution")
	}
}

func TestReadAllFailuresAggregate(t *testing.T) {
	for _, omit := range []string{testsupport.OmitSubClip, testsupport.OmitClip, testsupport.OmitSource, testsupport.OmitMedia, testsupport.OmitStream} {
		t.Run(omit, func(t *testing.T) {
			broken := clip("X.mov", 0, 1)
			broken.Omit = omit
			markup := testsupport.NewProject().
				Sequence(testsupport.SequenceSpec{ID: 1, Name: "a", Out: tps, Groups: []string{"20"}}).
				Sequence(testsupport.SequenceSpec{ID: 2, Name: "b", Out: tps, Groups: []string{"20"}}).
				VideoTrackGroup("20", 1920, 1080, testsupport.Track{Clips: []testsupport.Clip{broken}}).XML()

			err := newReader(t, markup).Read()
			var agg *premiere.AggregateError
			if !errors.As(err, &agg) {
				t.Fatalf("expected AggregateError, got %v", err)
			}
			if len(agg.Errors) != 2 {
				t.Fatalf("got %d causes want 2", len(agg.Errors))
			}
			if !errors.Is(err, element.ErrNotFound) {
				t.Fatal("aggregate must unwrap to its causes")
			}
		})
	}
}

func TestReadSequenceFailureIsFatal(t *testing.T) {
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "ok", Out: tps}).
		Raw(`<Sequence ObjectUID="broken"><ID>2</ID><Name>x</Name><TrackGroups/></Sequence>`).XML()

	err := newReader(t, markup).Read()
	if !errors.Is(err, element.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("error should name the sequence: %v", err)
	}
}

func TestReadVideoTrackGroupWithoutObjectIDIsWarning(t *testing.T) {
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "s", Out: tps, Groups: []string{"30"}}).
		Raw(`<VideoTrackGroup><FrameRect>0,0,1,1</FrameRect></VideoTrackGroup>`).
		VideoTrackGroup("30", 1920, 1080, testsupport.Track{Clips: []testsupport.Clip{clip("A.mov", 0, 1)}}).XML()

	reader := newReader(t, markup)
	if err := reader.Read(); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(reader.Warnings()) != 1 {
		t.Fatalf("got %d warnings want 1", len(reader.Warnings()))
	}
	var notFound *element.NotFoundError
	if !errors.As(reader.Warnings()[0], &notFound) || notFound.Name != "ObjectID" {
		t.Fatalf("unexpected warning %v", reader.Warnings()[0])
	}
}

func TestReadStopsAfterAllReferencesConsumed(t *testing.T) {
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "s", Out: tps, Groups: []string{"40"}}).
		VideoTrackGroup("40", 1920, 1080, testsupport.Track{Clips: []testsupport.Clip{clip("A.mov", 0, 1)}}).
		Raw(`<VideoTrackGroup/>`).XML()

	reader := newReader(t, markup)
	if err := reader.Read(); err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(reader.Warnings()) != 0 {
		t.Fatalf("groups after the last reference must not be inspected, got %v", reader.Warnings())
	}
}

func TestNamespacePolicy(t *testing.T) {
	// The first track is local, the last is global: applying the last
	// track's namespace to every track breaks the first lookup.
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "s", Out: tps, Groups: []string{"60"}}).
		VideoTrackGroup("60", 1920, 1080,
			testsupport.Track{Clips: []testsupport.Clip{clip("A.mov", 0, 1)}},
			testsupport.Track{Global: true, Clips: []testsupport.Clip{clip("B.mov", 1, 2)}},
		).XML()

	perTrack := newReader(t, markup)
	if err := perTrack.Read(); err != nil {
		t.Fatalf("per-track Read returned error: %v", err)
	}
	if got := len(perTrack.Sequences()[0].Cuts); got != 2 {
		t.Fatalf("got %d cuts want 2", got)
	}

	lastTrack := newReader(t, markup, premiere.WithNamespacePolicy(premiere.LastTrack))
	err := lastTrack.Read()
	var agg *premiere.AggregateError
	if !errors.As(err, &agg) || len(agg.Errors) != 1 {
		t.Fatalf("expected single-cause aggregate, got %v", err)
	}
	if !strings.Contains(err.Error(), "resolve track") {
		t.Fatalf("unexpected cause: %v", err)
	}
}

func TestParseNamespacePolicy(t *testing.T) {
	if p, err := premiere.ParseNamespacePolicy(" Last_Track "); err != nil || p != premiere.LastTrack {
		t.Fatalf("got %v, %v", p, err)
	}
	if p, err := premiere.ParseNamespacePolicy(""); err != nil || p != premiere.PerTrack {
		t.Fatalf("got %v, %v", p, err)
	}
	if _, err := premiere.ParseNamespacePolicy("first_track"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestWithMediaSize(t *testing.T) {
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "s", Out: tps, Groups: []string{"70"}}).
		VideoTrackGroup("70", 1920, 1080, testsupport.Track{Clips: []testsupport.Clip{clip("A.mov", 0, 1)}}).XML()
	reader := newReader(t, markup, premiere.WithMediaSize(media.Size{Width: 1280, Height: 720}))
	if err := reader.Read(); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := reader.Media().All()[0].Size; got != (media.Size{Width: 1280, Height: 720}) {
		t.Fatalf("got %+v", got)
	}
}

func TestDecodeRawAndGzip(t *testing.T) {
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 5, Name: "s", Out: tps, Groups: []string{"80"}}).
		VideoTrackGroup("80", 1920, 1080, testsupport.Track{Clips: []testsupport.Clip{clip("A.mov", 0, 1), clip("A.mov", 1, 2)}}).XML()

	for _, compress := range []bool{false, true} {
		data := []byte(markup)
		if compress {
			data = testsupport.Gzip(t, data)
		}
		project, err := premiere.Decode(data)
		if err != nil {
			t.Fatalf("Decode(compress=%v): %v", compress, err)
		}
		wantCompression := container.Raw
		if compress {
			wantCompression = container.Gzip
		}
		if project.Compression != wantCompression {
			t.Fatalf("got %v want %v", project.Compression, wantCompression)
		}
		if len(project.Media) != 1 || project.CutCount() != 2 {
			t.Fatalf("unexpected project contents: %d media, %d cuts", len(project.Media), project.CutCount())
		}
		if _, ok := project.Sequence(5); !ok {
			t.Fatal("expected sequence 5")
		}
		if _, ok := project.Sequence(6); ok {
			t.Fatal("unexpected sequence 6")
		}
	}

	if _, err := premiere.Decode([]byte("<PremiereData>")); err == nil {
		t.Fatal("expected error for malformed markup")
	}
}
