package schema

import (
	"encoding/json"
	"fmt"
)

// Schema versions in release order. Records written before versioning exist
// in the wild and are treated as V100.
const (
	V100 = "1.0.0" // initial release: content + basic typography/colors
	V110 = "1.1.0" // added background music and opacity
	V120 = "1.2.0" // added line spacing and side margin

	CurrentVersion = V120
)

// Outcome tags how a record reached the current version.
type Outcome int

const (
	// Migrated means the linear transform chain upgraded the record.
	Migrated Outcome = iota
	// BestEffortRecovered means no transform path existed but the record
	// structurally looked like a draft, so it was stamped current as-is.
	BestEffortRecovered
	// Failed means the record could not be recognized at all.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Migrated:
		return "migrated"
	case BestEffortRecovered:
		return "best-effort-recovered"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MigrationError reports that no upgrade path led from a record's version to
// the current one and the structural fallback also rejected it. The original
// record is left untouched by the caller's contract.
type MigrationError struct {
	From string
	To   string
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("no migration path from schema %s to %s", e.From, e.To)
}

// Result is the outcome of a migration attempt.
type Result struct {
	Outcome Outcome
	From    string
	Record  map[string]any
}

// transform upgrades a record one version step. Transforms set defaults for
// fields their target version introduced and preserve everything else.
type transform struct {
	from  string
	to    string
	apply func(map[string]any) map[string]any
}

var chain = []transform{
	{
		from: V100,
		to:   V110,
		apply: func(old map[string]any) map[string]any {
			next := cloneRecord(old)
			setDefault(next, "musicUrl", "")
			setDefault(next, "opacity", 1.0)
			return next
		},
	},
	{
		from: V110,
		to:   V120,
		apply: func(old map[string]any) map[string]any {
			next := cloneRecord(old)
			setDefault(next, "lineSpacing", 1.5)
			setDefault(next, "sideMargin", 10.0)
			return next
		},
	},
}

// VersionOf returns a record's declared schema version. Records that predate
// versioning have no version field and default to the oldest known version.
func VersionOf(record map[string]any) string {
	if v, ok := record["_version"].(string); ok && v != "" {
		return v
	}
	return V100
}

// Migrate upgrades a record to the current version. The input is never
// mutated; the returned record is always a fresh map.
//
// Records at an unknown version fall back to a structural check: anything
// that still carries a content field is stamped current rather than
// discarded. Only a record failing that too produces a MigrationError.
func Migrate(record map[string]any) (Result, error) {
	from := VersionOf(record)
	current := cloneRecord(record)
	current["_version"] = from

	version := from
	for version != CurrentVersion {
		step, ok := nextStep(version)
		if !ok {
			return recoverRecord(record, from)
		}
		current = step.apply(current)
		current["_version"] = step.to
		version = step.to
	}

	return Result{Outcome: Migrated, From: from, Record: current}, nil
}

// Decode unmarshals a migrated record into the typed Draft.
func Decode(record map[string]any) (Draft, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return Draft{}, err
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func nextStep(version string) (transform, bool) {
	for _, t := range chain {
		if t.from == version {
			return t, true
		}
	}
	return transform{}, false
}

// recoverRecord is the best-effort compatibility path for unknown versions: a
// record with a non-empty content field is assumed to be a draft and stamped
// current, preserving all fields.
func recoverRecord(record map[string]any, from string) (Result, error) {
	if looksLikeDraft(record) {
		out := cloneRecord(record)
		out["_version"] = CurrentVersion
		return Result{Outcome: BestEffortRecovered, From: from, Record: out}, nil
	}
	return Result{Outcome: Failed, From: from}, &MigrationError{From: from, To: CurrentVersion}
}

func looksLikeDraft(record map[string]any) bool {
	v, ok := record["content"]
	if !ok {
		return false
	}
	_, isString := v.(string)
	return isString
}

func cloneRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}
	return out
}

func setDefault(record map[string]any, key string, value any) {
	if _, ok := record[key]; !ok {
		record[key] = value
	}
}
