package types

import (
	"bytes"
	"fmt"
)

const SystemIdentifierLength = 4

type (
	// SystemID identifies the transaction system a transaction order is
	// addressed to.
	SystemID uint32

	// UnitID identifies the primary unit a transaction operates on.
	UnitID []byte
)

func (sid SystemID) String() string {
	return fmt.Sprintf("%08X", uint32(sid))
}

func (uid UnitID) String() string {
	return fmt.Sprintf("%X", []byte(uid))
}

func (uid UnitID) Eq(id UnitID) bool {
	return bytes.Equal(uid, id)
}
