// Package domain holds the registration types shared by the API client,
// the slot tracker, the submitter and the views.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CoursePackage identifies the purchasable course bundle.
type CoursePackage string

const (
	Package30 CoursePackage = "PACKAGE_30"
	Package60 CoursePackage = "PACKAGE_60"
)

// CoursePackages lists every package the API accepts, in display order.
var CoursePackages = []CoursePackage{Package30, Package60}

// Valid reports whether p is a package the API accepts.
func (p CoursePackage) Valid() bool {
	switch p {
	case Package30, Package60:
		return true
	}
	return false
}

// Label returns the short hour label shown in member listings.
// Unknown values are returned as-is.
func (p CoursePackage) Label() string {
	switch p {
	case Package30:
		return "30课时"
	case Package60:
		return "60课时"
	default:
		return string(p)
	}
}

// Package describes one course package on offer.
type Package struct {
	ID            CoursePackage `mapstructure:"id" yaml:"id"`
	Title         string        `mapstructure:"title" yaml:"title"`
	Hours         int           `mapstructure:"hours" yaml:"hours"`
	Price         int           `mapstructure:"price" yaml:"price"`
	OriginalPrice int           `mapstructure:"original_price" yaml:"original_price"`
	Validity      string        `mapstructure:"validity" yaml:"validity"`
}

// Savings is the discount against the original price, never negative.
func (p Package) Savings() int {
	if p.OriginalPrice <= p.Price {
		return 0
	}
	return p.OriginalPrice - p.Price
}

var yuanPrinter = message.NewPrinter(language.SimplifiedChinese)

// FormatYuan renders an amount in yuan with thousands separators, e.g. ¥7,588.
func FormatYuan(amount int) string {
	return yuanPrinter.Sprintf("¥%d", amount)
}

// RegistrationRequest is the payload of POST /registrations.
type RegistrationRequest struct {
	Name          string        `json:"name" validate:"required"`
	Phone         string        `json:"phone" validate:"required,mobile"`
	CoursePackage CoursePackage `json:"coursePackage" validate:"required,oneof=PACKAGE_30 PACKAGE_60"`
}

// Normalize trims surrounding whitespace from the user-entered fields.
func (r RegistrationRequest) Normalize() RegistrationRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	return r
}

// SlotStatus is the remaining capacity reported by the API.
// IsFull is taken from the server, not derived locally.
type SlotStatus struct {
	RemainingSlots int  `json:"remainingSlots" yaml:"remaining_slots"`
	IsFull         bool `json:"isFull" yaml:"is_full"`
}

// RecordID is a server-assigned registration id. The API has returned both
// numeric and string ids, so both decode.
type RecordID string

// UnmarshalJSON accepts a JSON number or string.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding record id: %w", err)
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding record id: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// RegistrationRecord is a server-owned registration, read-only here.
type RegistrationRecord struct {
	ID            RecordID      `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Phone         string        `json:"phone" yaml:"phone"`
	CoursePackage CoursePackage `json:"coursePackage" yaml:"course_package"`
}

// ActivityWindow is the fixed span during which registration is open.
type ActivityWindow struct {
	Start time.Time
	End   time.Time
}

// Phase is the activity phase derived from the window and the wall clock.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseOpen
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NOT_STARTED"
	case PhaseOpen:
		return "OPEN"
	case PhaseEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}
