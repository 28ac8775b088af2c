// Package container unwraps project file bytes that may be gzip-compressed.
package container

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
)

// Compression identifies how the project bytes were stored.
type Compression int

const (
	// Raw is uncompressed markup.
	Raw Compression = iota
	// Gzip is markup behind a gzip stream.
	Gzip
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	default:
		return "raw"
	}
}

var gzipMagic = []byte{0x1f, 0x8b}

// IsGzip reports whether data starts with the gzip magic bytes.
func IsGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// Decode returns a reader over the markup contained in data.
func Decode(data []byte) (io.Reader, Compression, error) {
	if len(data) == 0 {
		return nil, Raw, errors.New("decode project: empty input")
	}
	if !IsGzip(data) {
		return bytes.NewReader(data), Raw, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, Gzip, fmt.Errorf("decode project: open gzip stream: %w", err)
	}
	defer zr.Close()
	inflated, err := io.ReadAll(zr)
	if err != nil {
		return nil, Gzip, fmt.Errorf("decode project: inflate: %w", err)
	}
	return bytes.NewReader(inflated), Gzip, nil
}
