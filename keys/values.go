package keys

import (
	"encoding/binary"

	"github.com/parallelchain-io/pchain-world-state/common"
	"github.com/parallelchain-io/pchain-world-state/pwserr"
)

// EncodeU32 / DecodeU32 implement the fixed-width little-endian integer
// encoding spec I5 requires for the CBI version field.
func EncodeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func DecodeU32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, &pwserr.DecodeError{Key: b, Cause: pwserr.ErrInvalidArgument}
	}
	return binary.LittleEndian.Uint32(b), nil
}

// EncodeU64 / DecodeU64 implement the fixed-width little-endian integer
// encoding spec I5 requires for nonce, balance, epoch counters and views.
func EncodeU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func DecodeU64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, &pwserr.DecodeError{Key: b, Cause: pwserr.ErrInvalidArgument}
	}
	return binary.LittleEndian.Uint64(b), nil
}

// DecodeHash decodes a raw 32-byte hash value (e.g. StorageRoot).
func DecodeHash(b []byte) (common.Hash, error) {
	h, ok := common.HashFromBytes(b)
	if !ok {
		return common.Hash{}, &pwserr.DecodeError{Key: b, Cause: pwserr.ErrInvalidArgument}
	}
	return h, nil
}
