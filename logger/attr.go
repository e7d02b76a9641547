package logger

import (
	"fmt"
	"log/slog"
)

/*
Log attribute key values. Generally shouldn't be used directly, use
appropriate "attribute constructor function" instead.

Only define names here if they are common for multiple modules, module
specific names should be defined in the module.
*/
const (
	NodeIDKey = "node_id"
	ModuleKey = "module"
	ErrorKey  = "err"
	RoundKey  = "round"
	UnitIDKey = "unit_id"
	DataKey   = "data"
)

/*
NodeID adds node ID field.

This function should be used with logger.With() method to create sub-logger
for the node (rather than adding NodeID call to individual logging calls).
*/
func NodeID(id string) slog.Attr {
	return slog.String(NodeIDKey, id)
}

/*
Error adds error to the log

	if err := f(); err != nil {
		log.Error("calling f", logger.Error(err))
	}
*/
func Error(err error) slog.Attr {
	return slog.Any(ErrorKey, err)
}

// Round adds the current block round number to the message.
func Round(round uint64) slog.Attr {
	return slog.Uint64(RoundKey, round)
}

/*
Data adds additional data field to the message.

Use of anonymous types as the value is discouraged.
*/
func Data(d any) slog.Attr {
	return slog.Any(DataKey, d)
}

/*
UnitID is used to log ID of the primary unit associated to the logging call.
*/
func UnitID(id []byte) slog.Attr {
	return slog.String(UnitIDKey, fmt.Sprintf("%X", id))
}
