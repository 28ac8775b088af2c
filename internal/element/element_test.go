package element_test

import (
	"errors"
	"strings"
	"testing"

	"prproj/internal/element"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<Project Version="1">
	<Sequence ObjectUID="seq-uid">
		<Name>  Main Edit  </Name>
		<ID>7</ID>
	</Sequence>
	<Media ObjectID="3"/>
</Project>`

func mustParse(t *testing.T, doc string) *element.Element {
	t.Helper()
	root, err := element.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return root
}

func TestParseBuildsTree(t *testing.T) {
	root := mustParse(t, sampleDoc)
	if root.Name != "Project" {
		t.Fatalf("unexpected root name: %q", root.Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	version, err := root.Attr("Version")
	if err != nil || version != "1" {
		t.Fatalf("unexpected Version attr %q (err %v)", version, err)
	}
	name, err := root.Children[0].Get("Name")
	if err != nil {
		t.Fatalf("Get(Name) returned error: %v", err)
	}
	if got := name.TrimmedText(); got != "Main Edit" {
		t.Fatalf("got %q want %q", got, "Main Edit")
	}
}

func TestParseRejectsMalformedMarkup(t *testing.T) {
	if _, err := element.Parse(strings.NewReader("<Project><Sequence></Project>")); err == nil {
		t.Fatal("expected error for mismatched tags")
	}
	if _, err := element.Parse(strings.NewReader("   ")); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestParseDecodesDeclaredCharset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Title>Caf\xe9</Title>"
	root := mustParse(t, doc)
	if root.Text != "Café" {
		t.Fatalf("got %q want %q", root.Text, "Café")
	}
}

func TestGetReturnsFirstDirectChildOnly(t *testing.T) {
	root := mustParse(t, `<R><A n="1"><B/></A><A n="2"/></R>`)
	a, err := root.Get("A")
	if err != nil {
		t.Fatalf("Get(A): %v", err)
	}
	if n, _ := a.Attr("n"); n != "1" {
		t.Fatalf("expected first match, got n=%q", n)
	}
	if _, err := root.Get("B"); err == nil {
		t.Fatal("Get must not recurse into descendants")
	}
}

func TestLookupFailuresAreExplicit(t *testing.T) {
	root := mustParse(t, `<R><A/></R>`)

	_, err := root.Get("Missing")
	var notFound *element.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.Kind != element.KindElement || notFound.Name != "Missing" || notFound.In != root {
		t.Fatalf("unexpected error payload: %+v", notFound)
	}
	if !errors.Is(err, element.ErrNotFound) {
		t.Fatal("expected errors.Is(err, ErrNotFound)")
	}

	_, err = root.Attr("ObjectID")
	if !errors.As(err, &notFound) || notFound.Kind != element.KindAttribute {
		t.Fatalf("expected attribute NotFoundError, got %v", err)
	}
	if got := err.Error(); got != `attribute "ObjectID" not found in "R"` {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestPickReturnsArgumentOrder(t *testing.T) {
	root := mustParse(t, `<TrackItem><Start>10</Start><Other/><End>20</End></TrackItem>`)
	picked, err := root.Pick("End", "Start")
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if picked[0].Text != "20" || picked[1].Text != "10" {
		t.Fatalf("unexpected order: %q %q", picked[0].Text, picked[1].Text)
	}

	_, err = root.Pick("Start", "Nope", "Also")
	var notFound *element.NotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "Nope" {
		t.Fatalf("expected first missing name to be reported, got %v", err)
	}
}

func TestChildrenNamed(t *testing.T) {
	root := mustParse(t, `<R><A/><B/><A/></R>`)
	if got := len(root.ChildrenNamed("A")); got != 2 {
		t.Fatalf("got %d want 2", got)
	}
}
