package main

// Error codes carried by gitgate's coded errors. One per failure kind;
// the client only ever sees the kind, never the detail.
const (
	ErrCodeConfig    = "GITGATE_CONFIG_ERROR"
	ErrCodeCommand   = "GITGATE_BAD_COMMAND"
	ErrCodeDenied    = "GITGATE_DENIED"
	ErrCodeTransport = "GITGATE_TRANSPORT_ERROR"
)
