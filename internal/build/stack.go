package build

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
)

type stackKey struct{}

// enter pushes path onto the render stack carried by ctx. Rendering a
// document that is already on the stack would never terminate.
func enter(ctx context.Context, path string) (context.Context, error) {
	path = filepath.Clean(path)
	stack, _ := ctx.Value(stackKey{}).([]string)
	if slices.Contains(stack, path) {
		chain := append(slices.Clone(stack), path)
		return ctx, derrors.WrapError(ErrInclusionCycle, derrors.CategoryStructure, "document includes itself").
			WithContext("document", path).
			WithContext("chain", strings.Join(chain, " -> ")).
			Build()
	}
	next := make([]string, len(stack), len(stack)+1)
	copy(next, stack)
	return context.WithValue(ctx, stackKey{}, append(next, path)), nil
}
