package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Coupon represents a coupon row.
// Expired and Active are derived on every write and repaired on every list.
type Coupon struct {
	ID             string    `json:"id"`
	Description    string    `json:"description"`
	Value          float64   `json:"value"`
	ExpirationDate string    `json:"expiration_date"` // YYYY-MM-DD
	Expired        bool      `json:"expired"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"-"` // Not exposed in API
}

// CouponRequest is the DTO for creating and editing a coupon.
// Active is a pointer so an explicit false passes "required" while an absent field does not.
type CouponRequest struct {
	Description    string    `json:"description" validate:"required"`
	Value          *float64  `json:"value" validate:"required,truthy"`
	ExpirationDate DateInput `json:"expiration_date" validate:"required"`
	Active         *bool     `json:"active" validate:"required"`
}

// CreateCouponResponse is the API response DTO for POST /create-coupon.
type CreateCouponResponse struct {
	Success  bool   `json:"success"`
	InsertID string `json:"insertId"`
}

// DateInput is the raw expiration date of a request body.
// It accepts a JSON string or a JSON number and keeps the text as written,
// so 20991231 arrives as "20991231". A numeric zero and null decode to "".
type DateInput string

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DateInput(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expiration_date: want string or number, got %s", data)
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*d = ""
		return nil
	}
	*d = DateInput(n.String())
	return nil
}
