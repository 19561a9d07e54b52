package wire

import (
	"github.com/katalvlaran/amrcore/automaton"
	"github.com/katalvlaran/amrcore/field"
	"github.com/katalvlaran/amrcore/rectindex"
)

// PatchMessageCodec implements automaton.Codec[rectindex.MeshKey,
// *field.Patch], the off-node envelope format for the PatchUpdate
// automaton: a destination key followed by the patch addressed to it.
type PatchMessageCodec struct{}

var _ automaton.Codec[rectindex.MeshKey, *field.Patch] = PatchMessageCodec{}

// Encode concatenates the encoded destination key and patch.
func (PatchMessageCodec) Encode(dest rectindex.MeshKey, message *field.Patch) ([]byte, error) {
	keyBytes := EncodeMeshKey(dest)
	patchBytes := EncodePatch(message)
	out := make([]byte, 0, len(keyBytes)+len(patchBytes))
	out = append(out, keyBytes...)
	out = append(out, patchBytes...)
	return out, nil
}

// Decode splits payload into its destination key and patch.
func (PatchMessageCodec) Decode(payload []byte) (rectindex.MeshKey, *field.Patch, error) {
	key, n, err := DecodeMeshKey(payload)
	if err != nil {
		return rectindex.MeshKey{}, nil, err
	}
	patch, _, err := DecodePatch(payload[n:])
	if err != nil {
		return rectindex.MeshKey{}, nil, err
	}
	return key, patch, nil
}
