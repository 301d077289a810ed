package mpt

import (
	"github.com/parallelchain-io/pchain-world-state/common"
)

// Proof is an ordered list of RLP-encoded trie nodes, from root to leaf,
// sufficient to verify (or refute) a single key's value against a root hash
// without access to the rest of the trie.
type Proof [][]byte

// Prove returns the proof for key along with the value found (nil if key is
// absent; a proof of absence is still returned, terminating at the point the
// lookup diverges from the key).
func (t *Trie) Prove(key []byte) (Proof, []byte, error) {
	var proof Proof
	nibbles := keyToNibbles(key)
	n := t.root
	for {
		switch nd := n.(type) {
		case nil:
			return proof, nil, nil
		case hashNode:
			resolved, err := t.resolve(nd)
			if err != nil {
				return nil, nil, err
			}
			n = resolved
			continue
		case *shortNode:
			proof = append(proof, encodeNode(nd))
			if len(nibbles) < len(nd.Key) || commonPrefixLength(nibbles, nd.Key) != len(nd.Key) {
				return proof, nil, nil
			}
			nibbles = nibbles[len(nd.Key):]
			n = nd.Val
			continue
		case *fullNode:
			proof = append(proof, encodeNode(nd))
			if len(nibbles) == 0 {
				return proof, nil, nil
			}
			n = nd.Children[nibbles[0]]
			nibbles = nibbles[1:]
			continue
		case valueNode:
			return proof, []byte(nd), nil
		default:
			return proof, nil, nil
		}
	}
}

// VerifyProof checks that proof is a valid path from root for key, returning
// the value it proves (nil, true if it proves key's absence) or ok=false if
// the proof does not connect to root.
func VerifyProof(root common.Hash, key []byte, proof Proof) (value []byte, ok bool) {
	if len(proof) == 0 {
		return nil, root == EmptyRoot
	}
	wantHash := root
	nibbles := keyToNibbles(key)
	for i, encoded := range proof {
		if hashBytes(encoded) != wantHash {
			return nil, false
		}
		n, err := decodeNode(encoded)
		if err != nil {
			return nil, false
		}
		switch nd := n.(type) {
		case *shortNode:
			if len(nibbles) < len(nd.Key) || commonPrefixLength(nibbles, nd.Key) != len(nd.Key) {
				return nil, i == len(proof)-1
			}
			nibbles = nibbles[len(nd.Key):]
			switch v := nd.Val.(type) {
			case valueNode:
				return []byte(v), true
			case hashNode:
				wantHash = common.Hash(v)
			case nil:
				return nil, true
			case *shortNode, *fullNode:
				// v was small enough to be inlined by the encoder rather than
				// hashed and stored on its own; the next proof entry is its
				// own re-encoding, so wantHash must match that, not a
				// separately-stored Db entry's hash.
				wantHash = hashBytes(encodeNode(v))
			default:
				return nil, false
			}
		case *fullNode:
			if len(nibbles) == 0 {
				return nil, true
			}
			switch v := nd.Children[nibbles[0]].(type) {
			case valueNode:
				return []byte(v), true
			case hashNode:
				wantHash = common.Hash(v)
				nibbles = nibbles[1:]
			case nil:
				return nil, true
			case *shortNode, *fullNode:
				wantHash = hashBytes(encodeNode(v))
				nibbles = nibbles[1:]
			default:
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return nil, true
}
