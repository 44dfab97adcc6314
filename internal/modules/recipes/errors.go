package recipes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrShortLinkNotFound = errors.New("short link not found")
	ErrForbidden         = errors.New("not the author of this recipe")
	ErrAlreadyFavorited  = errors.New("recipe already in favorites")
	ErrNotFavorited      = errors.New("recipe not in favorites")
	ErrAlreadyInCart     = errors.New("recipe already in shopping cart")
	ErrNotInCart         = errors.New("recipe not in shopping cart")
	// ErrShortLinkExhausted: every regeneration attempt collided, which
	// at 16^8 tokens means something else is wrong.
	ErrShortLinkExhausted = errors.New("could not allocate a unique short link")
)

// ValidationError carries every field that failed, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid recipe payload: %s", strings.Join(names, ", "))
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
