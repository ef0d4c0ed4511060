package twocolor

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// AppendEncoding appends a canonic binary encoding of X to the given buffer.
//
// Two graphs have the same encoding only if their adjacency lists are identical (including order).
func (X Graph) AppendEncoding(dst []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(X)))
	for _, edges := range X {
		dst = binary.AppendUvarint(dst, uint64(len(edges)))
		for _, adj := range edges {
			dst = binary.AppendVarint(dst, int64(adj))
		}
	}
	return dst
}

const (
	coloringFlag_TwoColorable byte = 0x01
)

// AppendEncoding appends a binary encoding of this Coloring to the given buffer.
func (C *Coloring) AppendEncoding(dst []byte) []byte {
	flags := byte(0)
	if C.TwoColorable {
		flags |= coloringFlag_TwoColorable
	}
	dst = append(dst, flags)
	dst = binary.AppendUvarint(dst, uint64(C.Reached))
	dst = binary.AppendUvarint(dst, uint64(C.Conflict.A))
	dst = binary.AppendUvarint(dst, uint64(C.Conflict.B))
	dst = binary.AppendUvarint(dst, uint64(len(C.Colors)))
	for _, ci := range C.Colors {
		dst = append(dst, byte(ci))
	}
	return dst
}

// InitFromEncoding resets this Coloring from an encoding made by AppendEncoding().
func (C *Coloring) InitFromEncoding(src []byte) error {
	if len(src) < 1 {
		return errors.Wrap(ErrBadEncoding, "empty coloring encoding")
	}
	C.TwoColorable = src[0]&coloringFlag_TwoColorable != 0
	src = src[1:]

	var fields [4]uint64
	for i := range fields {
		val, n := binary.Uvarint(src)
		if n <= 0 {
			return errors.Wrapf(ErrBadEncoding, "coloring field #%d", i+1)
		}
		fields[i] = val
		src = src[n:]
	}

	Nv := fields[3]
	if uint64(len(src)) != Nv || fields[0] > Nv {
		return errors.Wrapf(ErrBadEncoding, "expected %d colors, got %d bytes", Nv, len(src))
	}

	C.Reached = int(fields[0])
	C.Conflict = Edge{VtxID(fields[1]), VtxID(fields[2])}
	C.Colors = make([]Color, Nv)
	for i, b := range src {
		ci := Color(b)
		if ci > Color_B {
			return errors.Wrapf(ErrBadEncoding, "bad color %d at vertex %d", b, i)
		}
		C.Colors[i] = ci
	}
	return nil
}
