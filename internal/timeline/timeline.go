// Package timeline tracks which cut is visible at each point of a sequence.
//
// Cuts are added one at a time in discovery order. Each addition occludes the
// parts of earlier windows it overlaps, so the most recently added cut wins
// wherever windows collide. Original cut times are kept by the caller; the
// timeline only stores the visible remainder of each window.
package timeline

import (
	"math"
	"slices"
	"sort"
)

// Item is a window during which cut Cut is the one visually present.
type Item struct {
	Cut   int
	Start float64
	End   float64
}

// Timeline is an ordered, non-overlapping list of items. The zero value is
// an empty timeline.
type Timeline struct {
	items []Item
}

// Add inserts the window [start, end) for cut and trims or drops earlier items
// it overlaps. Windows with end <= start are ignored.
func (t *Timeline) Add(cut int, start, end float64) {
	if math.IsNaN(start) || math.IsNaN(end) || end <= start {
		return
	}
	item := Item{Cut: cut, Start: start, End: end}
	if len(t.items) == 0 {
		t.items = append(t.items, item)
		return
	}
	pos := sort.Search(len(t.items), func(i int) bool {
		return t.items[i].Start > start
	})
	t.items = slices.Insert(t.items, pos, item)
	t.fit(pos)
}

func (t *Timeline) fit(added int) {
	start, end := t.items[added].Start, t.items[added].End
	kept := t.items[:0]
	moved := false
	for i, item := range t.items {
		if i == added {
			kept = append(kept, item)
			continue
		}
		switch {
		case item.End <= start || item.Start >= end:
			// no overlap
		case start > item.Start && start < item.End:
			item.End = start
		case end > item.Start && end < item.End:
			item.Start = end
			moved = true
		default:
			// start <= item.Start && end >= item.End
			continue
		}
		kept = append(kept, item)
	}
	t.items = kept
	if moved {
		slices.SortStableFunc(t.items, func(a, b Item) int {
			switch {
			case a.Start < b.Start:
				return -1
			case a.Start > b.Start:
				return 1
			default:
				return 0
			}
		})
	}
}

// Items returns a copy of the timeline in start order.
func (t *Timeline) Items() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// Len returns the number of visible windows.
func (t *Timeline) Len() int {
	return len(t.items)
}

// At returns the item covering instant ts, if any.
func (t *Timeline) At(ts float64) (Item, bool) {
	i := sort.Search(len(t.items), func(i int) bool {
		return t.items[i].Start > ts
	})
	if i == 0 {
		return Item{}, false
	}
	item := t.items[i-1]
	if ts < item.End {
		return item, true
	}
	return Item{}, false
}
