// Package formdata holds the per-submission execution context shared by the
// process steps of one pipeline run.
package formdata

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// Identifier keys written by the process steps.
const (
	KeyStudentID = "studentID"
	KeyFamilyID  = "familyID"
	KeyParent1ID = "parent1ID"
	KeyParent2ID = "parent2ID"
	KeyDocuments = "personalDocuments"
)

// Outcome slots, one per party a run can create or link.
const (
	SlotStudent = "student"
	SlotFamily  = "family"
	SlotParent1 = "parent1"
	SlotParent2 = "parent2"
)

// Outcome records what this run did for one slot. Rollback consults only
// these records, never the current state of storage.
type Outcome struct {
	ID          string `json:"id,omitempty"`
	Created     bool   `json:"created,omitempty"`
	RoleChanged bool   `json:"role_changed,omitempty"`
	Added       bool   `json:"added,omitempty"`
	Linked      bool   `json:"linked,omitempty"`
	LinkID      string `json:"link_id,omitempty"`

	// EdgePending is set while a relationship insert is in flight and stays
	// set when the insert fails for any reason other than a conflict, since
	// the write may have landed.
	EdgePending bool `json:"edge_pending,omitempty"`

	// FamilyID and ChildID locate the relationship edge a linked party was
	// given.
	FamilyID string `json:"family_id,omitempty"`
	ChildID  string `json:"child_id,omitempty"`
}

// Touched reports whether any mutation was recorded.
func (o Outcome) Touched() bool {
	return o.Created || o.RoleChanged || o.Added || o.Linked || o.EdgePending
}

// FormData is the submitted field values plus the provenance recorded by the
// steps of one run. It is not safe for concurrent use.
type FormData struct {
	values   map[string]any
	outcomes map[string]*Outcome
}

// New copies values into a fresh FormData.
func New(values map[string]any) *FormData {
	v := make(map[string]any, len(values))
	maps.Copy(v, values)
	return &FormData{values: v, outcomes: make(map[string]*Outcome)}
}

// Has reports whether key is present with a non-empty value.
func (d *FormData) Has(key string) bool {
	v, ok := d.values[key]
	return ok && !IsEmpty(v)
}

// HasAll reports whether every key is present with a non-empty value.
func (d *FormData) HasAll(keys ...string) bool {
	for _, k := range keys {
		if !d.Has(k) {
			return false
		}
	}
	return true
}

// Get returns the raw value for key, or nil.
func (d *FormData) Get(key string) any {
	return d.values[key]
}

// GetString returns the value for key rendered as a trimmed string, or "".
func (d *FormData) GetString(key string) string {
	v, ok := d.values[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Set stores value under key. Setting an empty value makes Has report false.
func (d *FormData) Set(key string, value any) {
	d.values[key] = value
}

// Delete removes key.
func (d *FormData) Delete(key string) {
	delete(d.values, key)
}

// Outcome returns a copy of the outcome for slot. A slot nothing was
// recorded for yields the zero Outcome.
func (d *FormData) Outcome(slot string) Outcome {
	if o, ok := d.outcomes[slot]; ok {
		return *o
	}
	return Outcome{}
}

// Record returns the mutable outcome for slot, creating it on first use.
func (d *FormData) Record(slot string) *Outcome {
	o, ok := d.outcomes[slot]
	if !ok {
		o = &Outcome{}
		d.outcomes[slot] = o
	}
	return o
}

// Reset clears the outcome for slot.
func (d *FormData) Reset(slot string) {
	delete(d.outcomes, slot)
}

// Snapshot flattens the values and outcomes into one map. Outcome flags are
// rendered as <slot>Created, <slot>RoleChanged, <slot>Added and <slot>Linked
// and are only present when true.
func (d *FormData) Snapshot() map[string]any {
	out := make(map[string]any, len(d.values)+len(d.outcomes)*2)
	for k, v := range d.values {
		if IsEmpty(v) {
			continue
		}
		if s, ok := v.(fmt.Stringer); ok {
			out[k] = s.String()
			continue
		}
		out[k] = v
	}
	for slot, o := range d.outcomes {
		if o.Created {
			out[slot+"Created"] = true
		}
		if o.RoleChanged {
			out[slot+"RoleChanged"] = true
		}
		if o.Added {
			out[slot+"Added"] = true
		}
		if o.Linked {
			out[slot+"Linked"] = true
		}
		if o.LinkID != "" {
			out[slot+"LinkID"] = o.LinkID
		}
	}
	return out
}

type nilChecker interface {
	IsNil() bool
}

// IsEmpty reports whether v counts as absent: nil, blank strings, false,
// numeric zero, empty collections and nil identifiers.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case nilChecker:
		return t.IsNil()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
