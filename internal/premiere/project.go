package premiere

import (
	"prproj/internal/container"
	"prproj/internal/element"
	"prproj/internal/media"
)

// Project is the result of reading one project file.
type Project struct {
	Compression container.Compression
	Sequences   []*Sequence
	Media       []*media.Medium
	Warnings    []error
}

// Sequence returns the sequence with the given id.
func (p *Project) Sequence(id uint32) (*Sequence, bool) {
	for _, seq := range p.Sequences {
		if seq.ID == id {
			return seq, true
		}
	}
	return nil, false
}

// CutCount returns the number of cuts across all sequences.
func (p *Project) CutCount() int {
	total := 0
	for _, seq := range p.Sequences {
		total += len(seq.Cuts)
	}
	return total
}

// Decode reads a project from raw or gzip-compressed markup.
func Decode(data []byte, opts ...Option) (*Project, error) {
	markup, compression, err := container.Decode(data)
	if err != nil {
		return nil, err
	}
	root, err := element.Parse(markup)
	if err != nil {
		return nil, err
	}
	reader := NewReader(root, opts...)
	if err := reader.Read(); err != nil {
		return nil, err
	}
	return &Project{
		Compression: compression,
		Sequences:   reader.Sequences(),
		Media:       reader.Media().All(),
		Warnings:    reader.Warnings(),
	}, nil
}
