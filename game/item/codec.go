// Package item decodes the JSON item-stack payloads carried by item
// rewards, e.g. {"id":"minecraft:gold_ingot","count":3}.
package item

import (
	"encoding/json"
	"strings"
)

// Stack is a deliverable item stack. The zero value is the empty stack.
type Stack struct {
	ID         string                     `json:"id"`
	Count      int                        `json:"count"`
	Components map[string]json.RawMessage `json:"components,omitempty"`
}

// Empty reports whether the stack delivers nothing.
func (s Stack) Empty() bool {
	return s.ID == "" || s.Count <= 0
}

// Decode parses a serialized item stack. Malformed or blank input yields
// the empty stack and an error; callers decide whether an empty delivery
// still counts (see the inventory-full policy).
func Decode(payload string) (Stack, error) {
	if strings.TrimSpace(payload) == "" {
		return Stack{}, nil
	}
	var s Stack
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return Stack{}, err
	}
	if s.Count == 0 {
		s.Count = 1
	}
	return s, nil
}
