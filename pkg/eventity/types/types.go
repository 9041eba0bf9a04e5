package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ReservedPrefix starts every field log key. Entity ids beginning with it are rejected.
const ReservedPrefix string = "_"

// Patch assigns a value to a named field of an entity.
type Patch struct {
	Field string `json:"field" msgpack:"field"`
	Value Value  `json:"value" msgpack:"value"`
}

// Entry is a patch as it is stored in a field log, together with the
// ingestion timestamp (Unix milliseconds) shared by every patch of its batch.
type Entry struct {
	Timestamp int64 `json:"timestamp"`
	Patch     Patch `json:"patch"`
}

// Range is an inclusive bound on ingestion timestamps, in Unix milliseconds.
type Range struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

func (r Range) Contains(timestamp int64) bool {
	return timestamp >= r.From && timestamp <= r.To
}

// View is a read query against a single field of an entity.
type View struct {
	Field      string     `json:"field"`
	Alias      *string    `json:"alias,omitempty"`
	Range      *Range     `json:"range,omitempty"`
	Projection Projection `json:"projection"`
}

// Label returns the key under which the result of the view is reported.
func (v View) Label() string {
	if v.Alias != nil {
		return *v.Alias
	}
	return v.Field
}

type ProjectionKind string

const (
	Latest  ProjectionKind = "Latest"
	Collect ProjectionKind = "Collect"
	Avg     ProjectionKind = "Avg"
	Sum     ProjectionKind = "Sum"
	Concat  ProjectionKind = "Concat"
	All     ProjectionKind = "All"
	Any     ProjectionKind = "Any"
	None    ProjectionKind = "None"
)

var projectionKinds = []ProjectionKind{Latest, Collect, Avg, Sum, Concat, All, Any, None}

// ParseProjectionKind matches name case insensitively against the known projections.
func ParseProjectionKind(name string) (ProjectionKind, error) {
	for _, k := range projectionKinds {
		if strings.EqualFold(string(k), name) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown projection %q", name)
}

// Projection reduces a filtered patch sequence to a single value. Separator
// is only meaningful for Concat.
type Projection struct {
	Kind      ProjectionKind
	Separator string
}

func NewProjection(kind ProjectionKind) Projection {
	return Projection{Kind: kind}
}

func NewConcat(separator string) Projection {
	return Projection{Kind: Concat, Separator: separator}
}

type taggedProjection struct {
	T string  `json:"t"`
	C *string `json:"c,omitempty"`
}

// MarshalJSON writes the adjacently tagged form, {"t":"Concat","c":", "}.
func (p Projection) MarshalJSON() ([]byte, error) {
	tp := taggedProjection{T: string(p.Kind)}
	if p.Kind == Concat {
		sep := p.Separator
		tp.C = &sep
	}
	return json.Marshal(tp)
}

// UnmarshalJSON accepts the tagged object form as well as a bare projection name.
func (p *Projection) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}

		kind, err := ParseProjectionKind(name)
		if err != nil {
			return err
		}
		if kind == Concat {
			return fmt.Errorf("projection Concat requires a separator")
		}

		*p = Projection{Kind: kind}
		return nil
	}

	tp := taggedProjection{}
	if err := json.Unmarshal(data, &tp); err != nil {
		return err
	}

	kind, err := ParseProjectionKind(tp.T)
	if err != nil {
		return err
	}

	proj := Projection{Kind: kind}
	if kind == Concat {
		if tp.C == nil {
			return fmt.Errorf("projection Concat requires a separator")
		}
		proj.Separator = *tp.C
	}

	*p = proj
	return nil
}
