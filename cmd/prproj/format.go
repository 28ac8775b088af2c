package main

import (
	"strconv"
	"time"

	"prproj/internal/media"
	"prproj/internal/premiere"
)

// formatSeconds renders a position or duration as h:mm:ss.mmm.
func formatSeconds(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Millisecond)
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return sign + strconv.Itoa(int(h)) + ":" + pad(int(m), 2) + ":" + pad(int(s), 2) + "." + pad(int(ms), 3)
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func formatSize(size media.Size) string {
	if size.Width == 0 && size.Height == 0 {
		return "-"
	}
	return strconv.FormatUint(uint64(size.Width), 10) + "x" + strconv.FormatUint(uint64(size.Height), 10)
}

func formatFPS(m *media.Medium) string {
	fps := m.FPS(premiere.TicksPerSecond)
	if fps == 0 {
		return "-"
	}
	return strconv.FormatFloat(fps, 'f', 3, 64)
}
