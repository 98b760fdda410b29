package fable

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// StoryID identifies a node in a StoryMap.
type StoryID = uuid.UUID

// NewStoryID returns a fresh random identifier.
func NewStoryID() StoryID {
	return uuid.New()
}

// Node is one unit of narrative content. R is how child nodes are referenced:
// *Tree for the owned tree produced by a loader, StoryID once flattened.
//
// The set of variants is closed: Choices, FileRef, Fade and Title.
type Node[R comparable] interface {
	node(R)
}

// Story is a node whose children are referenced by identifier.
type Story = Node[StoryID]

// Choice is a labeled branch of a Choices node.
type Choice[R comparable] struct {
	Label  string
	Target R
}

// Choices is a menu. Order is significant, labels may repeat.
type Choices[R comparable] struct {
	Items    []Choice[R]
	Selected int // Index into Items, meaningless when Items is empty
}

// FileRef names an external story fragment. Loaders replace it with the
// fragment's content before the tree is flattened.
type FileRef[R comparable] struct {
	Path string
}

// Fade shows Node while fading it in, then moves on to Then if present.
type Fade[R comparable] struct {
	Milliseconds int
	Start        time.Time // Set when the node is entered
	Node         R
	Then         R // Zero value when absent
}

// Title is a line of text drawn at a given size.
type Title[R comparable] struct {
	Text string
	Size float64
}

func (Choices[R]) node(R) {}
func (FileRef[R]) node(R) {}
func (Fade[R]) node(R)    {}
func (Title[R]) node(R)   {}

// HasThen reports whether the fade continues to another node.
func (f Fade[R]) HasThen() bool {
	var zero R
	return f.Then != zero
}

// MaxFadeMilliseconds is the longest fade a time.Duration can hold.
const MaxFadeMilliseconds = math.MaxInt64 / int64(time.Millisecond)

// Duration returns the configured length of the fade, saturating at the
// longest representable duration.
func (f Fade[R]) Duration() time.Duration {
	if int64(f.Milliseconds) > MaxFadeMilliseconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(f.Milliseconds) * time.Millisecond
}

// Elapsed returns the time passed since the fade started, as measured by c.
func (f Fade[R]) Elapsed(c Clock) time.Duration {
	return c.Since(f.Start)
}

// Complete reports whether the elapsed time is strictly past the duration.
func (f Fade[R]) Complete(c Clock) bool {
	return f.Elapsed(c) > f.Duration()
}

// Progress returns elapsed/duration. The result is not clamped and exceeds 1
// once the fade is over. A zero-length fade reports 1.
func (f Fade[R]) Progress(c Clock) float64 {
	d := f.Duration()
	if d <= 0 {
		return 1
	}
	return f.Elapsed(c).Seconds() / d.Seconds()
}

// Alpha converts the fade's progress to an 8-bit opacity.
func (f Fade[R]) Alpha(c Clock) uint8 {
	p := f.Progress(c)
	if math.IsNaN(p) || p <= 0 {
		return 0
	}
	if p >= 1 {
		return math.MaxUint8
	}
	return uint8(math.Floor(p * math.MaxUint8))
}
