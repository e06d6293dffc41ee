package kernel

import (
	"encoding/base32"
	"fmt"
	"strings"

	"foodcourt/internal/pkg/errs"

	"github.com/google/uuid"
)

// trackingCodePrefix marks foodcourt tracking codes in customer-facing text.
const trackingCodePrefix = "FC-"

// trackingCodeBodyLen is the length of the base32 body (10 random bytes).
const trackingCodeBodyLen = 16

var trackingCodeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ErrTrackingCodeIsNotConstructed indicates that a TrackingCode was not
// initialized through NewTrackingCode or TrackingCodeFromString.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingCode must be created via NewTrackingCode or TrackingCodeFromString",
)

// TrackingCode is the human-readable identifier printed on receipts and read
// out to support calls. It is generated once at order creation and never
// changes. The format is "FC-" followed by 16 uppercase base32 characters.
//
// Uniqueness is additionally enforced by a unique index on the orders table;
// a collision surfaces as a retryable storage conflict.
type TrackingCode struct {
	value string
}

// NewTrackingCode generates a fresh tracking code from random UUID bytes.
func NewTrackingCode() TrackingCode {
	raw := uuid.New()
	body := trackingCodeEncoding.EncodeToString(raw[:10])
	return TrackingCode{value: trackingCodePrefix + body}
}

// TrackingCodeFromString reconstructs a TrackingCode from its string form,
// validating prefix, length, and character set.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	body, ok := strings.CutPrefix(s, trackingCodePrefix)
	if !ok {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingCode",
			fmt.Errorf("%q does not start with %q", s, trackingCodePrefix),
		)
	}

	if len(body) != trackingCodeBodyLen {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingCode",
			fmt.Errorf("%q has body length %d, want %d", s, len(body), trackingCodeBodyLen),
		)
	}

	if _, err := trackingCodeEncoding.DecodeString(body); err != nil {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause("trackingCode", err)
	}

	return TrackingCode{value: s}, nil
}

// String returns the full code including the "FC-" prefix.
func (t TrackingCode) String() string {
	return t.value
}

// IsEqual reports whether two tracking codes are the same.
func (t TrackingCode) IsEqual(other TrackingCode) bool {
	return t.value == other.value
}

// Validate returns ErrTrackingCodeIsNotConstructed for the zero value.
func (t TrackingCode) Validate() error {
	if t.value == "" {
		return ErrTrackingCodeIsNotConstructed
	}
	return nil
}
