package container_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"prproj/internal/container"
)

func gzipBytes(t *testing.T, payload string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(payload)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	const markup = "<PremiereData/>"
	cases := []struct {
		name  string
		input []byte
		want  container.Compression
	}{
		{"raw", []byte(markup), container.Raw},
		{"gzip", gzipBytes(t, markup), container.Gzip},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, kind, err := container.Decode(tc.input)
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if kind != tc.want {
				t.Fatalf("got %v want %v", kind, tc.want)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != markup {
				t.Fatalf("got %q want %q", got, markup)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, _, err := container.Decode(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, _, err := container.Decode([]byte{0x1f, 0x8b, 0x00}); err == nil {
		t.Fatal("expected error for truncated gzip stream")
	}
}

func TestCompressionString(t *testing.T) {
	if container.Gzip.String() != "gzip" || container.Raw.String() != "raw" {
		t.Fatalf("unexpected labels: %s %s", container.Gzip, container.Raw)
	}
}
