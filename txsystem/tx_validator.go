package txsystem

import (
	"errors"

	"github.com/tempochain/tempo/util"
)

var (
	ErrTransactionExpired      = errors.New("transaction expiration time must be greater than current ledger time")
	ErrInvalidSystemIdentifier = errors.New("error invalid system identifier")
)

const microsecondsPerSecond uint64 = 1_000_000

/*
CheckExpiration decides whether a transaction with the given expiration time
(seconds since epoch) is still admissible at currentTime (ledger time,
microseconds since epoch).

The transaction is admitted iff its expiration, converted to microseconds,
is strictly greater than current ledger time. The conversion uses checked
arithmetic - an expiration so large that it does not fit the microsecond
range cannot be compared meaningfully and is classified as expired instead
of wrapping around.

The check is a pure function of its inputs, it holds no memory of prior
decisions: a transaction admitted against an earlier clock value is rejected
once the clock advances past its expiration.
*/
func CheckExpiration(expirationSeconds, currentTime uint64) error {
	expirationMicros, overflow, _ := util.MulUint64(expirationSeconds, microsecondsPerSecond)
	if overflow || expirationMicros <= currentTime {
		return ErrTransactionExpired
	}
	return nil
}
