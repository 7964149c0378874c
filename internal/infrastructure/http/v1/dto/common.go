// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"agroledger/internal/core/types"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Decimal renders a ledger value as a JSON string with at least two
// fractional digits.
func Decimal(d decimal.Decimal) string {
	return types.Format(d)
}

// Date renders a calendar date.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// NullDecimal renders a nullable value; NULL stays null.
func NullDecimal(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := types.Format(d.Decimal)
	return &s
}

// FlexibleID is an external identifier that clients send either as a JSON
// number or as a numeric string. Missing, null and empty values decode to 0.
type FlexibleID int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = 0
			return nil
		}
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid identifier %q", raw)
	}
	*f = FlexibleID(v)
	return nil
}

// Int64 returns the identifier.
func (f FlexibleID) Int64() int64 {
	return int64(f)
}

// ErrorResponse is the body rendered for failed requests.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
