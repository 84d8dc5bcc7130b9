package models

import "time"

// Outcome classifies how a lookup ended.
type Outcome string

const (
	OutcomeFound          Outcome = "found"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeGatewayError   Outcome = "gateway_error"
	OutcomeDecodeError    Outcome = "decode_error"
)

// LookupRecord is one entry of the lookup history.
type LookupRecord struct {
	ID         int64     `json:"id"`
	ZipCode    string    `json:"zipcode"`
	Outcome    Outcome   `json:"outcome"`
	StatusCode int       `json:"status_code"`
	Address    *Address  `json:"address,omitempty"`
	LookedUpAt time.Time `json:"looked_up_at"`
}
