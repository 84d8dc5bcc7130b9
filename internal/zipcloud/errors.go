package zipcloud

import "fmt"

// TransportError reports a failure below HTTP: building the request, dialing, the TLS
// handshake, a refused plaintext URL, or reading the response body.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("zipcloud: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GatewayError reports a non-200 response. Reason is the response body, verbatim.
type GatewayError struct {
	StatusCode int
	Reason     string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("zipcloud: gateway returned status %d: %s", e.StatusCode, e.Reason)
}

// DecodeError reports a 200 response whose body is not the expected JSON document.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("zipcloud: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
