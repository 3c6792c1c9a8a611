package pmesh

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for malformed index arrays, indices outside
	// the vertex range and negative UV channels.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotSupported is returned for UV channels above 1 and submesh topologies
	// other than triangles and quads.
	ErrNotSupported = errors.New("not supported")
	// ErrInvariant signals internal state that can only be the product of a bug,
	// such as a face cache that no longer matches its indices.
	ErrInvariant = errors.New("invariant violation")
)

func errIndexRange(i, n int) error {
	return errors.Wrapf(ErrInvalidArgument, "index %d outside vertex range [0,%d)", i, n)
}

func errChannel(channel int) error {
	if channel < 0 {
		return errors.Wrapf(ErrInvalidArgument, "negative UV channel %d", channel)
	}
	return errors.Wrapf(ErrNotSupported, "UV channel %d", channel)
}

// checkIndices returns an error if any index falls outside [0,n).
func checkIndices(indices []int, n int) error {
	for _, i := range indices {
		if i < 0 || i >= n {
			return errIndexRange(i, n)
		}
	}
	return nil
}

// checkFaces returns an error if any face is nil.
func checkFaces(faces []*Face) error {
	for i, f := range faces {
		if f == nil {
			return errors.Wrapf(ErrInvalidArgument, "nil face at %d", i)
		}
	}
	return nil
}

func errInvalidGroup(g int) error {
	return errors.Wrapf(ErrInvalidArgument, "smoothing group %d", g)
}
