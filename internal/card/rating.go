package card

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Rating is one of the four recall-quality grades, ordered worst to best.
type Rating int

const (
	RatingAgain Rating = iota + 1 // Failed to recall.
	RatingHard                    // Recalled with significant difficulty.
	RatingGood                    // Recalled with some effort.
	RatingEasy                    // Recalled effortlessly.
)

var (
	ratingNames = [...]string{
		RatingAgain: "again",
		RatingHard:  "hard",
		RatingGood:  "good",
		RatingEasy:  "easy",
	}
	ratingByName = map[string]Rating{
		"again": RatingAgain,
		"hard":  RatingHard,
		"good":  RatingGood,
		"easy":  RatingEasy,
	}
)

var (
	_ fmt.Stringer             = Rating(0)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// IsValid reports whether r is one of the four grades.
func (r Rating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("invalid rating: %d", int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(text []byte) error {
	v, ok := ratingByName[string(text)]
	if !ok {
		return fmt.Errorf("invalid rating: %q", text)
	}
	*r = v
	return nil
}

// MarshalJSON implements json.Marshaler. A rating serializes as a JSON string.
func (r Rating) MarshalJSON() ([]byte, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid rating: %s", data)
	}
	return r.UnmarshalText([]byte(s))
}
