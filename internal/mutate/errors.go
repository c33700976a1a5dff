package mutate

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching. The concrete error types below carry the context.
var (
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrHasChildren        = errors.New("item has children")
	ErrNoPrecedingSibling = errors.New("no preceding sibling")
	ErrNoFollowingSibling = errors.New("no following sibling")
	ErrDepthAtBound       = errors.New("depth at bound")
	ErrDepthJump          = errors.New("depth jump")
	ErrEmptyText          = errors.New("empty text")
	ErrInvalidText        = errors.New("invalid text")
)

type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("item %d out of range (outline has %d items)", e.Index, e.Len)
}

func (e IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

type HasChildrenError struct {
	Index int
}

func (e HasChildrenError) Error() string {
	return fmt.Sprintf("item %d has children; remove or move them first", e.Index)
}

func (e HasChildrenError) Is(target error) bool { return target == ErrHasChildren }

// NoSiblingError is returned by MoveUp/MoveDown when no same-depth neighbour subtree exists.
type NoSiblingError struct {
	Index     int
	Following bool
}

func (e NoSiblingError) Error() string {
	if e.Following {
		return fmt.Sprintf("item %d has no following sibling", e.Index)
	}
	return fmt.Sprintf("item %d has no preceding sibling", e.Index)
}

func (e NoSiblingError) Is(target error) bool {
	if e.Following {
		return target == ErrNoFollowingSibling
	}
	return target == ErrNoPrecedingSibling
}

// DepthAtBoundError marks an Indent at MaxDepth or an Outdent at depth 1.
// Callers treat it as a no-op rather than a failure.
type DepthAtBoundError struct {
	Index int
	Depth int
}

func (e DepthAtBoundError) Error() string {
	return fmt.Sprintf("item %d already at depth %d", e.Index, e.Depth)
}

func (e DepthAtBoundError) Is(target error) bool { return target == ErrDepthAtBound }

// DepthJumpError is returned by the guarded policies when a depth change would leave a
// child more than one level below its predecessor.
type DepthJumpError struct {
	Index  int
	Reason string
}

func (e DepthJumpError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Reason)
}

func (e DepthJumpError) Is(target error) bool { return target == ErrDepthJump }

type EmptyTextError struct{}

func (EmptyTextError) Error() string { return "item text is empty" }

func (EmptyTextError) Is(target error) bool { return target == ErrEmptyText }

type InvalidTextError struct {
	Reason string
}

func (e InvalidTextError) Error() string { return "invalid item text: " + e.Reason }

func (e InvalidTextError) Is(target error) bool { return target == ErrInvalidText }

// IsNoop reports whether err is an outcome that leaves the outline untouched without
// being a failure from the caller's point of view.
func IsNoop(err error) bool {
	return errors.Is(err, ErrDepthAtBound)
}

// IsRecoverable reports whether the caller can simply redisplay the outline with a message.
func IsRecoverable(err error) bool {
	switch {
	case errors.Is(err, ErrHasChildren),
		errors.Is(err, ErrNoPrecedingSibling),
		errors.Is(err, ErrNoFollowingSibling),
		errors.Is(err, ErrDepthAtBound),
		errors.Is(err, ErrDepthJump),
		errors.Is(err, ErrIndexOutOfRange),
		errors.Is(err, ErrEmptyText),
		errors.Is(err, ErrInvalidText):
		return true
	}
	return false
}
