package network

import "encoding/binary"

func encodeU64(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, v)
}

func decodeU64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}
