package catalog

import (
	"time"

	"prproj/internal/premiere"
)

// Scan is the input to Record.
type Scan struct {
	Path        string
	Digest      string
	SizeBytes   int64
	Compression string
	Sequences   []Sequence
	Media       []Medium
	Warnings    []string
}

// Sequence summarizes one sequence of a scan.
type Sequence struct {
	SequenceID      uint32
	Name            string
	DurationSeconds float64
	Width           uint32
	Height          uint32
	Cuts            int
	TimelineItems   int
}

// Medium is one deduplicated media entry of a scan.
type Medium struct {
	Name            string
	FilePath        string
	FrameRate       int64
	DurationSeconds float64
	Width           uint32
	Height          uint32
}

// Entry is a stored scan header.
type Entry struct {
	ID            string
	Path          string
	Digest        string
	SizeBytes     int64
	Compression   string
	SequenceCount int
	MediaCount    int
	CutCount      int
	WarningCount  int
	RecordedAt    time.Time
}

// NewScan builds the catalog form of a resolved project.
func NewScan(path, digest string, size int64, project *premiere.Project) Scan {
	scan := Scan{
		Path:        path,
		Digest:      digest,
		SizeBytes:   size,
		Compression: project.Compression.String(),
	}
	for _, seq := range project.Sequences {
		scan.Sequences = append(scan.Sequences, Sequence{
			SequenceID:      seq.ID,
			Name:            seq.Name,
			DurationSeconds: seq.DurationSeconds,
			Width:           seq.Size.Width,
			Height:          seq.Size.Height,
			Cuts:            len(seq.Cuts),
			TimelineItems:   seq.Timeline.Len(),
		})
	}
	for _, m := range project.Media {
		scan.Media = append(scan.Media, Medium{
			Name:            m.Name,
			FilePath:        m.FilePath,
			FrameRate:       m.FrameRate,
			DurationSeconds: m.DurationSeconds,
			Width:           m.Size.Width,
			Height:          m.Size.Height,
		})
	}
	for _, w := range project.Warnings {
		scan.Warnings = append(scan.Warnings, w.Error())
	}
	return scan
}

func (s Scan) cutCount() int {
	total := 0
	for _, seq := range s.Sequences {
		total += seq.Cuts
	}
	return total
}
