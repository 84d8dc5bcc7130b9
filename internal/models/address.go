package models

import (
	"encoding/json"
	"fmt"
)

// Address is a single postal-code match: the three locality levels in kanji, their
// half-width kana readings, the prefecture code and the canonical seven digit zipcode.
type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	Address3 string `json:"address3"`
	Kana1    string `json:"kana1"`
	Kana2    string `json:"kana2"`
	Kana3    string `json:"kana3"`
	PrefCode string `json:"prefcode"`
	ZipCode  string `json:"zipcode"`
}

// UnmarshalJSON rejects records with a missing or null field. An empty string is a value.
func (a *Address) UnmarshalJSON(data []byte) error {
	var raw struct {
		Address1 *string `json:"address1"`
		Address2 *string `json:"address2"`
		Address3 *string `json:"address3"`
		Kana1    *string `json:"kana1"`
		Kana2    *string `json:"kana2"`
		Kana3    *string `json:"kana3"`
		PrefCode *string `json:"prefcode"`
		ZipCode  *string `json:"zipcode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := []struct {
		name  string
		value *string
	}{
		{"address1", raw.Address1},
		{"address2", raw.Address2},
		{"address3", raw.Address3},
		{"kana1", raw.Kana1},
		{"kana2", raw.Kana2},
		{"kana3", raw.Kana3},
		{"prefcode", raw.PrefCode},
		{"zipcode", raw.ZipCode},
	}
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("address: missing field %q", f.name)
		}
	}

	*a = Address{
		Address1: *raw.Address1,
		Address2: *raw.Address2,
		Address3: *raw.Address3,
		Kana1:    *raw.Kana1,
		Kana2:    *raw.Kana2,
		Kana3:    *raw.Kana3,
		PrefCode: *raw.PrefCode,
		ZipCode:  *raw.ZipCode,
	}
	return nil
}

// LookupResponse is the payload returned by the zipcloud search API on HTTP 200.
type LookupResponse struct {
	Message *string   `json:"message"`
	Results []Address `json:"results"`
	Status  *int      `json:"status"`
}

// First returns a copy of the first result, or nil when there are none.
func (r *LookupResponse) First() *Address {
	if r == nil || len(r.Results) == 0 {
		return nil
	}
	addr := r.Results[0]
	return &addr
}
