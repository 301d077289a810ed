package mpt

// nibble is a 4-bit value in the range 0-F, used to navigate an MPT one hex
// digit at a time. The reserved value 16 (terminator) is appended to the end
// of every full key path and marks "this is where a value lives", exactly as
// in go-ethereum's trie encoding; it occupies the 17th slot of a fullNode.
type nibble byte

const terminator nibble = 16

// bytesToNibbles expands a raw byte slice into its nibble sequence, with no
// terminator appended.
func bytesToNibbles(b []byte) []nibble {
	res := make([]nibble, len(b)*2)
	for i, c := range b {
		res[2*i] = nibble(c >> 4)
		res[2*i+1] = nibble(c & 0xF)
	}
	return res
}

// keyToNibbles expands a raw trie key into its full nibble path, including
// the trailing terminator nibble.
func keyToNibbles(key []byte) []nibble {
	return append(bytesToNibbles(key), terminator)
}

// nibblesToKey collapses a nibble sequence of even length (and containing no
// terminator) back into bytes.
func nibblesToKey(nibbles []nibble) []byte {
	if len(nibbles)%2 != 0 {
		panic("mpt: odd nibble count cannot be collapsed to bytes")
	}
	res := make([]byte, len(nibbles)/2)
	for i := range res {
		res[i] = byte(nibbles[2*i])<<4 | byte(nibbles[2*i+1])
	}
	return res
}

// commonPrefixLength computes the length of the common prefix of a and b.
func commonPrefixLength(a, b []nibble) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// hasTerm reports whether s ends with the terminator nibble, i.e. whether it
// names a leaf rather than an extension.
func hasTerm(s []nibble) bool {
	return len(s) > 0 && s[len(s)-1] == terminator
}

func concatNibbles(a, b []nibble) []nibble {
	res := make([]nibble, 0, len(a)+len(b))
	res = append(res, a...)
	res = append(res, b...)
	return res
}

// hexPrefixEncode implements the compact "hex-prefix" encoding used for the
// Key of a shortNode: it folds the leaf/extension distinction (derived from
// whether nibbles carries a trailing terminator) and the odd/even nibble
// count parity into a single leading flag nibble, per the Ethereum Yellow
// Paper's compact encoding (Appendix C).
func hexPrefixEncode(nibbles []nibble) []byte {
	isLeaf := hasTerm(nibbles)
	if isLeaf {
		nibbles = nibbles[:len(nibbles)-1]
	}
	flags := byte(0)
	if isLeaf {
		flags = 2
	}
	oddLen := len(nibbles)%2 == 1
	if oddLen {
		flags++
	}

	var packed []nibble
	if oddLen {
		packed = append([]nibble{nibble(flags)}, nibbles...)
	} else {
		packed = append([]nibble{nibble(flags), 0}, nibbles...)
	}
	return nibblesToKey(packed)
}

// hexPrefixDecode is the inverse of hexPrefixEncode: it returns the nibble
// path, with a trailing terminator appended if the encoding marked a leaf.
func hexPrefixDecode(encoded []byte) []nibble {
	all := bytesToNibbles(encoded)
	flags := all[0]
	isLeaf := flags&2 != 0
	oddLen := flags&1 != 0

	var nib []nibble
	if oddLen {
		nib = all[1:]
	} else {
		nib = all[2:]
	}
	if isLeaf {
		nib = append(append([]nibble(nil), nib...), terminator)
	} else {
		nib = append([]nibble(nil), nib...)
	}
	return nib
}
