package kernel

import (
	"crypto/rand"
	"fmt"
	"strings"

	"bakery/internal/pkg/errs"
)

// TrackingAlphabet is the set of characters used for customer-facing tracking
// codes. Look-alike characters (I, O, 0, 1) are excluded so codes can be read
// over the phone without ambiguity.
const TrackingAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// TrackingIDLength is the fixed length of a tracking code.
const TrackingIDLength = 8

// TrackingID is the short customer-facing code used for public order lookup.
// It is distinct from the internal order identifier and is safe to print on
// receipts and read aloud.
//
// The zero value is invalid; use NewTrackingID or TrackingIDFromString.
type TrackingID struct {
	code string
}

// NewTrackingID generates a random tracking code from TrackingAlphabet.
// Randomness comes from crypto/rand, so codes are unpredictable and the
// collision probability over the alphabet's 32^8 space is negligible.
func NewTrackingID() TrackingID {
	buf := make([]byte, TrackingIDLength)
	// rand.Read never returns an error on supported platforms
	_, _ = rand.Read(buf)

	var sb strings.Builder
	sb.Grow(TrackingIDLength)
	for _, b := range buf {
		sb.WriteByte(TrackingAlphabet[int(b)%len(TrackingAlphabet)])
	}

	return TrackingID{code: sb.String()}
}

// TrackingIDFromString reconstructs a TrackingID from its string form.
// Returns an error if the length is wrong or any character falls outside
// TrackingAlphabet. Used when restoring orders from persistence or parsing
// customer input.
func TrackingIDFromString(s string) (TrackingID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != TrackingIDLength {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId",
			fmt.Errorf("length must be %d, got %d", TrackingIDLength, len(s)))
	}

	for _, r := range s {
		if !strings.ContainsRune(TrackingAlphabet, r) {
			return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("trackingId",
				fmt.Errorf("character %q is not allowed", r))
		}
	}

	return TrackingID{code: s}, nil
}

// String returns the tracking code.
func (t TrackingID) String() string {
	return t.code
}

// IsEqual compares two tracking IDs for equality.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.code == other.code
}

// Validate checks if the tracking ID was properly constructed.
func (t TrackingID) Validate() error {
	if t.code == "" {
		return errs.NewValueIsRequiredError("trackingId must be created via NewTrackingID or TrackingIDFromString")
	}
	return nil
}
