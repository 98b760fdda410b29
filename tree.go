package fable

// Tree is a story as produced by a loader: every node owns its children and
// carries its own identifier.
type Tree struct {
	ID   StoryID
	Node Node[*Tree]
}

// NewTree wraps node with a freshly generated identifier.
func NewTree(node Node[*Tree]) *Tree {
	return &Tree{ID: NewStoryID(), Node: node}
}

// StoryMap holds every node of a flattened story, keyed by identifier.
// It is never modified after Flatten returns it.
type StoryMap map[StoryID]Story

// Flatten turns the tree into a StoryMap. The root is stored under t.ID.
func (t *Tree) Flatten() StoryMap {
	sm := make(StoryMap, t.Len())
	t.addTo(sm)
	return sm
}

// addTo inserts t and its descendants into sm and returns t's identifier.
func (t *Tree) addTo(sm StoryMap) StoryID {
	var s Story
	switch n := t.Node.(type) {
	case Choices[*Tree]:
		items := make([]Choice[StoryID], len(n.Items))
		for i, c := range n.Items {
			items[i] = Choice[StoryID]{Label: c.Label, Target: c.Target.addTo(sm)}
		}
		s = Choices[StoryID]{Items: items, Selected: n.Selected}
	case Fade[*Tree]:
		f := Fade[StoryID]{
			Milliseconds: n.Milliseconds,
			Start:        n.Start,
			Node:         n.Node.addTo(sm),
		}
		if n.HasThen() {
			f.Then = n.Then.addTo(sm)
		}
		s = f
	case Title[*Tree]:
		s = Title[StoryID]{Text: n.Text, Size: n.Size}
	case FileRef[*Tree]:
		s = FileRef[StoryID]{Path: n.Path}
	default:
		panic("fable: unknown story node")
	}
	sm[t.ID] = s
	return t.ID
}

// Len returns the number of nodes in the tree, root included.
func (t *Tree) Len() int {
	n := 1
	t.Walk(func(child *Tree) {
		n++
	})
	return n
}

// Walk calls fn for every descendant of t in depth-first order.
// t itself is not visited.
func (t *Tree) Walk(fn func(*Tree)) {
	for _, child := range t.children() {
		fn(child)
		child.Walk(fn)
	}
}

func (t *Tree) children() []*Tree {
	switch n := t.Node.(type) {
	case Choices[*Tree]:
		out := make([]*Tree, len(n.Items))
		for i, c := range n.Items {
			out[i] = c.Target
		}
		return out
	case Fade[*Tree]:
		if n.HasThen() {
			return []*Tree{n.Node, n.Then}
		}
		return []*Tree{n.Node}
	default:
		return nil
	}
}
