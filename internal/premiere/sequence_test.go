package premiere_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"prproj/internal/element"
	"prproj/internal/premiere"
	"prproj/internal/testsupport"
)

func firstChild(t *testing.T, markup, name string) *element.Element {
	t.Helper()
	root, err := element.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	child, err := root.Get(name)
	if err != nil {
		t.Fatalf("Get(%s): %v", name, err)
	}
	return child
}

func TestParseSequence(t *testing.T) {
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{
			ID:     42,
			Name:   "Assembly",
			In:     testsupport.TicksPerSecond,
			Out:    4 * testsupport.TicksPerSecond,
			Groups: []string{"7", "8"},
		}).XML()

	seq, err := premiere.ParseSequence(firstChild(t, markup, "Sequence"))
	if err != nil {
		t.Fatalf("ParseSequence returned error: %v", err)
	}
	if seq.ID != 42 || seq.Name != "Assembly" {
		t.Fatalf("unexpected identity: %d %q", seq.ID, seq.Name)
	}
	if seq.DurationSeconds != 3.0 {
		t.Fatalf("got duration %v want 3", seq.DurationSeconds)
	}
	if seq.Duration() != 3*time.Second {
		t.Fatalf("got %v want 3s", seq.Duration())
	}
	if got := strings.Join(seq.TrackGroupRefs, ","); got != "7,8" {
		t.Fatalf("got refs %q want %q", got, "7,8")
	}
	if seq.Size.Width != 0 || seq.Size.Height != 0 {
		t.Fatalf("expected zero size before resolution, got %+v", seq.Size)
	}
	if len(seq.Cuts) != 0 || seq.Timeline.Len() != 0 {
		t.Fatal("expected empty cuts and timeline")
	}
}

func TestParseSequenceDurationMatchesTickFormula(t *testing.T) {
	in, out := int64(123_456_789), int64(987_654_321_000)
	markup := testsupport.NewProject().
		Sequence(testsupport.SequenceSpec{ID: 1, Name: "x", In: in, Out: out}).XML()
	seq, err := premiere.ParseSequence(firstChild(t, markup, "Sequence"))
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	want := float64(out-in) / 254_016_000_000
	if seq.DurationSeconds != want || premiere.Seconds(out-in) != want {
		t.Fatalf("got %v want %v", seq.DurationSeconds, want)
	}
}

func TestParseSequenceGroupWithoutSecondContributesNothing(t *testing.T) {
	markup := `<Sequence><ID>1</ID><Name>n</Name>
		<Node><Properties><MZ.WorkOutPoint>10</MZ.WorkOutPoint><MZ.WorkInPoint>0</MZ.WorkInPoint></Properties></Node>
		<TrackGroups>
			<TrackGroup><First/></TrackGroup>
			<TrackGroup><Second ObjectRef="5"/><Second ObjectRef="6"/></TrackGroup>
		</TrackGroups></Sequence>`
	seq, err := premiere.ParseSequence(firstChild(t, "<R>"+markup+"</R>", "Sequence"))
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	if got := strings.Join(seq.TrackGroupRefs, ","); got != "5" {
		t.Fatalf("got refs %q want %q", got, "5")
	}
}

func TestParseSequenceErrors(t *testing.T) {
	const props = `<Node><Properties><MZ.WorkInPoint>0</MZ.WorkInPoint><MZ.WorkOutPoint>10</MZ.WorkOutPoint></Properties></Node>`
	cases := []struct {
		name     string
		body     string
		notFound string
	}{
		{"missing id", `<Name>n</Name>` + props + `<TrackGroups/>`, "ID"},
		{"missing track groups", `<ID>1</ID><Name>n</Name>` + props, "TrackGroups"},
		{"missing properties", `<ID>1</ID><Name>n</Name><Node/><TrackGroups/>`, "Properties"},
		{"missing work out point", `<ID>1</ID><Name>n</Name><Node><Properties><MZ.WorkInPoint>0</MZ.WorkInPoint></Properties></Node><TrackGroups/>`, "MZ.WorkOutPoint"},
		{"missing ObjectRef", `<ID>1</ID><Name>n</Name>` + props + `<TrackGroups><TrackGroup><Second/></TrackGroup></TrackGroups>`, "ObjectRef"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			elem := firstChild(t, "<R><Sequence>"+tc.body+"</Sequence></R>", "Sequence")
			_, err := premiere.ParseSequence(elem)
			var notFound *element.NotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
			if notFound.Name != tc.notFound {
				t.Fatalf("got missing %q want %q", notFound.Name, tc.notFound)
			}
		})
	}
}

func TestParseSequenceRejectsMalformedNumbers(t *testing.T) {
	bodies := []string{
		`<ID>abc</ID><Name>n</Name><Node><Properties><MZ.WorkInPoint>0</MZ.WorkInPoint><MZ.WorkOutPoint>10</MZ.WorkOutPoint></Properties></Node><TrackGroups/>`,
		`<ID>1</ID><Name>n</Name><Node><Properties><MZ.WorkInPoint>zero</MZ.WorkInPoint><MZ.WorkOutPoint>10</MZ.WorkOutPoint></Properties></Node><TrackGroups/>`,
	}
	for _, body := range bodies {
		elem := firstChild(t, "<R><Sequence>"+body+"</Sequence></R>", "Sequence")
		if _, err := premiere.ParseSequence(elem); err == nil {
			t.Fatalf("expected parse error for %s", body)
		}
	}
}

func TestParseSequenceRejectsUnexpectedTrackGroupsChild(t *testing.T) {
	body := `<ID>1</ID><Name>n</Name><Node><Properties><MZ.WorkInPoint>0</MZ.WorkInPoint><MZ.WorkOutPoint>10</MZ.WorkOutPoint></Properties></Node><TrackGroups><Bogus/></TrackGroups>`
	_, err := premiere.ParseSequence(firstChild(t, "<R><Sequence>"+body+"</Sequence></R>", "Sequence"))
	var unexpected *premiere.UnexpectedElementError
	if !errors.As(err, &unexpected) || unexpected.Got != "Bogus" {
		t.Fatalf("expected UnexpectedElementError, got %v", err)
	}
}

func TestSequenceEqualUsesID(t *testing.T) {
	a := &premiere.Sequence{ID: 1, Name: "a"}
	b := &premiere.Sequence{ID: 1, Name: "b"}
	c := &premiere.Sequence{ID: 2, Name: "a"}
	if !a.Equal(b) || a.Equal(c) {
		t.Fatal("equality must depend on ID only")
	}
}
