package card

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ActivationStatus says whether a generated card is part of the active review
// pool, flagged for the user to consider, or held back.
type ActivationStatus string

const (
	ActivationActive    ActivationStatus = "active"
	ActivationSuggested ActivationStatus = "suggested"
	ActivationDormant   ActivationStatus = "dormant"
)

// IsValid reports whether s is a known activation status.
func (s ActivationStatus) IsValid() bool {
	switch s {
	case ActivationActive, ActivationSuggested, ActivationDormant:
		return true
	}
	return false
}

// ActivationTier records how a card got its activation status.
type ActivationTier string

const (
	TierAuto       ActivationTier = "auto"
	TierSuggested  ActivationTier = "suggested"
	TierUserManual ActivationTier = "user_manual"
)

// IsValid reports whether t is a known activation tier.
func (t ActivationTier) IsValid() bool {
	switch t {
	case TierAuto, TierSuggested, TierUserManual:
		return true
	}
	return false
}

// Reasons is an ordered list of human-readable activation reason strings.
// It is stored as a JSON array in a TEXT column.
type Reasons []string

var (
	_ driver.Valuer = Reasons(nil)
)

// Value implements driver.Valuer.
func (r Reasons) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(r))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(reasons) > %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (r *Reasons) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Reasons", src)
	}
	if len(data) == 0 {
		*r = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("json.Unmarshal(reasons) > %w", err)
	}
	*r = out
	return nil
}
