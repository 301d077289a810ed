// Package pwserr defines the error taxonomy shared by mpt, keys, worldstate
// and network: a handful of sentinel errors plus two struct types that carry
// context a caller needs to diagnose a failure.
package pwserr

import (
	"fmt"

	"github.com/parallelchain-io/pchain-world-state/common"
)

const (
	// ErrNodeMissing is returned when a trie traversal needs a node that the
	// backing Db does not have. This is fatal for the operation in progress;
	// no mutation of caller-visible state has occurred.
	ErrNodeMissing = common.ConstError("pwserr: trie node missing from backing store")

	// ErrDecode is returned when a value read from a known key cannot be
	// decoded into its expected shape. Wrap with DecodeError for details.
	ErrDecode = common.ConstError("pwserr: malformed value")

	// ErrInvalidArgument is returned when an API boundary check fails: an
	// empty storage value, an integer of the wrong width, an address of the
	// wrong length, or a heap operation against a full heap.
	ErrInvalidArgument = common.ConstError("pwserr: invalid argument")

	// ErrMigration is returned when a V1 input violates a V1 invariant during
	// migration. Wrap with MigrationError for the offending address.
	ErrMigration = common.ConstError("pwserr: migration failed")

	// ErrClosed is returned by any operation attempted on a WorldState after
	// Close has already been called.
	ErrClosed = common.ConstError("pwserr: world state already closed")
)

// DecodeError reports a decode failure against a specific key, with the
// underlying cause. The fixed-width value decoders in package keys never see
// the key, so they put the offending value bytes in Key instead.
type DecodeError struct {
	Key   []byte
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pwserr: decode error at key %x: %v", e.Key, e.Cause)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

// MigrationError reports a V1 invariant violation discovered while migrating
// the account at Address.
type MigrationError struct {
	Address common.Address
	Cause   error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("pwserr: migration error at address %x: %v", e.Address, e.Cause)
}

func (e *MigrationError) Unwrap() error { return ErrMigration }
