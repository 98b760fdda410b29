package fable

import "fmt"

// ValidationReason identifies why a node is invalid.
type ValidationReason string

// Validation error reasons.
const (
	ErrEmptyChoices     ValidationReason = "empty_choices"
	ErrNegativeDuration ValidationReason = "negative_duration"
	ErrDurationTooLong  ValidationReason = "duration_too_long"
	ErrInvalidSize      ValidationReason = "invalid_size"
	ErrUnresolvedFile   ValidationReason = "unresolved_file"
	ErrDuplicateID      ValidationReason = "duplicate_id"
	ErrMissingNode      ValidationReason = "missing_node"
)

// ValidationError describes a single problem with a story tree.
type ValidationError struct {
	ID     StoryID          // Node the problem was found on
	Reason ValidationReason // Why the node is invalid
	Detail string           // Offending value, if any
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	switch e.Reason {
	case ErrEmptyChoices:
		return fmt.Sprintf("node %s: choice list is empty", e.ID)
	case ErrNegativeDuration:
		return fmt.Sprintf("node %s: fade milliseconds %s is negative", e.ID, e.Detail)
	case ErrDurationTooLong:
		return fmt.Sprintf("node %s: fade milliseconds %s exceeds %d", e.ID, e.Detail, MaxFadeMilliseconds)
	case ErrInvalidSize:
		return fmt.Sprintf("node %s: title size %s must be positive", e.ID, e.Detail)
	case ErrUnresolvedFile:
		return fmt.Sprintf("node %s: file reference %q was not resolved", e.ID, e.Detail)
	case ErrDuplicateID:
		return fmt.Sprintf("node %s: identifier used more than once", e.ID)
	case ErrMissingNode:
		return fmt.Sprintf("node %s: missing node", e.ID)
	default:
		return fmt.Sprintf("node %s: unknown error", e.ID)
	}
}

// Fatal reports whether the problem prevents the story from being played.
// Empty choice lists are tolerated: they display but cannot be navigated.
func (e ValidationError) Fatal() bool {
	return e.Reason != ErrEmptyChoices
}

// Validate checks every node of tree. Returns nil if the tree is valid.
func Validate(tree *Tree) []ValidationError {
	var errors []ValidationError
	seen := make(map[StoryID]bool)

	check := func(t *Tree) {
		if t == nil || t.Node == nil {
			var id StoryID
			if t != nil {
				id = t.ID
			}
			errors = append(errors, ValidationError{ID: id, Reason: ErrMissingNode})
			return
		}
		if seen[t.ID] {
			errors = append(errors, ValidationError{ID: t.ID, Reason: ErrDuplicateID})
		}
		seen[t.ID] = true

		switch n := t.Node.(type) {
		case Choices[*Tree]:
			if len(n.Items) == 0 {
				errors = append(errors, ValidationError{ID: t.ID, Reason: ErrEmptyChoices})
			}
		case Fade[*Tree]:
			if n.Milliseconds < 0 {
				errors = append(errors, ValidationError{
					ID:     t.ID,
					Reason: ErrNegativeDuration,
					Detail: fmt.Sprint(n.Milliseconds),
				})
			}
			if int64(n.Milliseconds) > MaxFadeMilliseconds {
				errors = append(errors, ValidationError{
					ID:     t.ID,
					Reason: ErrDurationTooLong,
					Detail: fmt.Sprint(n.Milliseconds),
				})
			}
		case Title[*Tree]:
			if n.Size <= 0 {
				errors = append(errors, ValidationError{
					ID:     t.ID,
					Reason: ErrInvalidSize,
					Detail: fmt.Sprint(n.Size),
				})
			}
		case FileRef[*Tree]:
			errors = append(errors, ValidationError{ID: t.ID, Reason: ErrUnresolvedFile, Detail: n.Path})
		}
	}

	check(tree)
	if tree == nil || tree.Node == nil {
		return errors
	}
	tree.walkChecked(check)
	return errors
}

// walkChecked is Walk that does not descend into nil or empty children.
func (t *Tree) walkChecked(fn func(*Tree)) {
	for _, child := range t.children() {
		fn(child)
		if child != nil && child.Node != nil {
			child.walkChecked(fn)
		}
	}
}
