package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type badPositionError struct {
	arg string
}

func (e badPositionError) Error() string {
	return fmt.Sprintf("invalid item position: %q (items are numbered from 1, as shown by `temario show`)", e.arg)
}

// parsePosition converts a 1-based item position to a library index.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, badPositionError{arg: arg}
	}
	return n - 1, nil
}

// parseAfter converts --after (0 = at the start) to the library's after-index.
func parseAfter(n int) (int, error) {
	if n < 0 {
		return 0, badPositionError{arg: strconv.Itoa(n)}
	}
	return n - 1, nil
}
