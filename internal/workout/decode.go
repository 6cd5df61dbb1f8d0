package workout

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// MaxPhaseSeconds caps a single phase at one day so a typo cannot ask the
// compiler for billions of frames.
const MaxPhaseSeconds = 24 * 60 * 60

// ValidationError reports the first field of an input that failed validation.
type ValidationError struct {
	// Path locates the failing field, e.g. "phases[2].duration". Empty means
	// the input as a whole.
	Path string
	// Rule describes the violated constraint, e.g. "must be ≥ 0".
	Rule string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid workout: " + e.Rule
	}
	return fmt.Sprintf("invalid workout: %s %s", e.Path, e.Rule)
}

func invalid(path, rule string) *ValidationError {
	return &ValidationError{Path: path, Rule: rule}
}

// Decode validates raw and converts it into a Workout. raw may be a decoded
// document (map[string]any with []any and numeric leaves, as produced by
// encoding/json, gjson or yaml.v3) or a Workout value. Any failure returns a
// *ValidationError; nil and wrong-shaped input fail like any other malformed
// document.
func Decode(raw any) (Workout, error) {
	switch v := raw.(type) {
	case Workout:
		return checked(v)
	case *Workout:
		if v == nil {
			return Workout{}, invalid("", "must be an object")
		}
		return checked(*v)
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return Workout{}, invalid("", "must be an object")
	}

	var w Workout

	if name, present := doc["name"]; present && name != nil {
		s, ok := name.(string)
		if !ok {
			return Workout{}, invalid("name", "must be a string")
		}
		w.Name = s
	}

	kind, present := doc["kind"]
	if !present || kind == nil {
		return Workout{}, invalid("kind", "is required")
	}
	ks, ok := kind.(string)
	if !ok || !Kind(ks).IsValid() {
		return Workout{}, invalid("kind", "must be one of "+kindList())
	}
	w.Kind = Kind(ks)

	phases, present := doc["phases"]
	if !present || phases == nil {
		return Workout{}, invalid("phases", "is required")
	}
	list, ok := phases.([]any)
	if !ok {
		return Workout{}, invalid("phases", "must be a list")
	}

	w.Phases = make([]Phase, 0, len(list))
	for i, item := range list {
		p, err := decodePhase(fmt.Sprintf("phases[%d]", i), item)
		if err != nil {
			return Workout{}, err
		}
		w.Phases = append(w.Phases, p)
	}

	return w, nil
}

func decodePhase(path string, raw any) (Phase, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Phase{}, invalid(path, "must be an object")
	}

	var p Phase

	d, present := obj["duration"]
	if !present || d == nil {
		return Phase{}, invalid(path+".duration", "is required")
	}
	secs, err := wholeSeconds(path+".duration", d)
	if err != nil {
		return Phase{}, err
	}
	p.Duration = secs

	if label, present := obj["label"]; present && label != nil {
		s, ok := label.(string)
		if !ok {
			return Phase{}, invalid(path+".label", "must be a string")
		}
		p.Label = s
	}

	p.Exercise = obj["exercise"]
	return p, nil
}

func wholeSeconds(path string, raw any) (int, error) {
	var f float64
	switch n := raw.(type) {
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0, invalid(path, "must be a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, invalid(path, "must be a whole number of seconds")
	}
	if f < 0 {
		return 0, invalid(path, "must be ≥ 0")
	}
	if f > MaxPhaseSeconds {
		return 0, invalid(path, fmt.Sprintf("must be ≤ %d", MaxPhaseSeconds))
	}
	return int(f), nil
}

// Validate checks a Workout built in code against the same rules Decode
// applies to documents.
func Validate(w Workout) error {
	if !w.Kind.IsValid() {
		return invalid("kind", "must be one of "+kindList())
	}
	for i, p := range w.Phases {
		path := fmt.Sprintf("phases[%d].duration", i)
		if p.Duration < 0 {
			return invalid(path, "must be ≥ 0")
		}
		if p.Duration > MaxPhaseSeconds {
			return invalid(path, fmt.Sprintf("must be ≤ %d", MaxPhaseSeconds))
		}
	}
	return nil
}

func checked(w Workout) (Workout, error) {
	if err := Validate(w); err != nil {
		return Workout{}, err
	}
	return w, nil
}

// ParseJSON decodes and validates a JSON workout document.
func ParseJSON(data []byte) (Workout, error) {
	if !gjson.ValidBytes(data) {
		return Workout{}, invalid("", "must be valid JSON")
	}
	return Decode(gjson.ParseBytes(data).Value())
}

// ParseYAML decodes and validates a YAML workout document.
func ParseYAML(data []byte) (Workout, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Workout{}, invalid("", "must be valid YAML: "+err.Error())
	}
	return Decode(raw)
}

// Load reads a workout file, picking the decoder from its extension.
// Files without a recognised extension are tried as JSON first, then YAML.
func Load(path string) (Workout, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-selected workout file
	if err != nil {
		return Workout{}, fmt.Errorf("read workout: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	}

	if gjson.ValidBytes(data) {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}
