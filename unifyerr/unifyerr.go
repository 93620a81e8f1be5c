// Package unifyerr defines the closed set of errors that can occur while
// driving a Unifying radio session.
package unifyerr

// Error is a stable, comparable error value. Code returns a short name
// suitable for logs or metrics; Error returns a human-readable message.
type Error struct {
	code string
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable short name for the error, e.g. "CHECKSUM_ERROR".
func (e *Error) Code() string { return e.code }

var (
	NameLength    = &Error{"NAME_LENGTH_ERROR", "device name is too long"}
	SetAddress    = &Error{"SET_ADDRESS_ERROR", "failed to set the radio address"}
	SetChannel    = &Error{"SET_CHANNEL_ERROR", "failed to set the radio channel"}
	Transmit      = &Error{"TRANSMIT_ERROR", "failed to transmit a payload"}
	Receive       = &Error{"RECEIVE_ERROR", "failed to receive a payload"}
	PayloadLength = &Error{"PAYLOAD_LENGTH_ERROR", "payload's length does not match its expected length"}
	Checksum      = &Error{"CHECKSUM_ERROR", "payload's computed checksum does not match its stated checksum"}
	PairStep      = &Error{"PAIR_STEP_ERROR", "received a pairing response with an unexpected step"}
	PairID        = &Error{"PAIR_ID_ERROR", "received a pairing response with an ID that does not match the requested ID"}
	Encryption    = &Error{"ENCRYPTION_ERROR", "encryption failed"}
	BufferFull    = &Error{"BUFFER_FULL_ERROR", "buffer was full when it was expected to not be full"}
	BufferEmpty   = &Error{"BUFFER_EMPTY_ERROR", "buffer was empty when it was expected to not be empty"}
	CreateError   = &Error{"CREATE_ERROR", "failed to allocate a resource required to proceed"}
)
