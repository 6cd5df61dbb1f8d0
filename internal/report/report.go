// Package report renders compiled timers for humans and tools: a markdown
// summary, a per-frame listing, a unified diff of two listings, and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

// Markdown summarizes a workout and its compiled timer.
func Markdown(w workout.Workout, t timer.Timer) string {
	var sb strings.Builder

	title := w.Name
	if title == "" {
		title = "Workout"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- **Kind:** %s\n", w.Kind)
	fmt.Fprintf(&sb, "- **Training time:** %s\n", timer.FormatTime(t.TrainingSeconds()))
	fmt.Fprintf(&sb, "- **Total time:** %s (%d frames)\n", timer.FormatTime(t.Len()), t.Len())

	active := w.ActivePhases()
	if len(active) == 0 {
		sb.WriteString("\nNo timed phases.\n")
		return sb.String()
	}

	sb.WriteString("\n| # | Phase | Duration | Exercise |\n")
	sb.WriteString("|---|---|---|---|\n")
	for i, ap := range active {
		label := ap.Phase.Label
		if label == "" {
			label = fmt.Sprintf("Phase %d", i+1)
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n",
			i+1, escapeCell(label), timer.FormatTime(ap.Phase.Duration), escapeCell(exerciseText(ap.Phase.Exercise)))
	}

	if skipped := len(w.Phases) - len(active); skipped > 0 {
		fmt.Fprintf(&sb, "\n_%d zero-length phase(s) skipped._\n", skipped)
	}

	return sb.String()
}

// exerciseText renders an opaque exercise payload on one line.
func exerciseText(v any) string {
	switch e := v.(type) {
	case nil:
		return ""
	case string:
		return e
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(pretty.Ugly(data))
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Listing renders one line per frame:
// index, stage, kind, phase seconds, total seconds, progress.
func Listing(t timer.Timer) string {
	var sb strings.Builder
	for i, f := range t.Frames() {
		fmt.Fprintf(&sb, "%4d  %-13s %-7s %s  %s  %5.3f\n",
			i, f.Stage, f.Kind,
			timer.FormatTime(f.SecondsInPhase), timer.FormatTime(f.SecondsTotal), f.Progress)
	}
	return sb.String()
}

// Diff returns a unified diff between the listings of a and b, or "" when
// they compile to the same frames.
func Diff(aLabel string, a timer.Timer, bLabel string, b timer.Timer) string {
	return udiff.Unified(aLabel, bLabel, Listing(a), Listing(b))
}

// JSON encodes t as indented JSON. With color set the output carries ANSI
// escapes for terminals.
func JSON(t timer.Timer, color bool) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode timer: %w", err)
	}
	out := pretty.Pretty(data)
	if color {
		out = pretty.Color(out, nil)
	}
	return out, nil
}

type phaseDoc struct {
	Duration int    `json:"duration"`
	Label    string `json:"label,omitempty"`
}

// NewWorkoutJSON builds a workout document. labels may be shorter than
// durations; missing labels are omitted.
func NewWorkoutJSON(name string, kind workout.Kind, durations []int, labels []string) ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	if name != "" {
		if doc, err = sjson.SetBytes(doc, "name", name); err != nil {
			return nil, fmt.Errorf("set name: %w", err)
		}
	}
	if doc, err = sjson.SetBytes(doc, "kind", string(kind)); err != nil {
		return nil, fmt.Errorf("set kind: %w", err)
	}
	if doc, err = sjson.SetRawBytes(doc, "phases", []byte(`[]`)); err != nil {
		return nil, fmt.Errorf("set phases: %w", err)
	}
	for i, d := range durations {
		p := phaseDoc{Duration: d}
		if i < len(labels) {
			p.Label = labels[i]
		}
		if doc, err = sjson.SetBytes(doc, "phases.-1", p); err != nil {
			return nil, fmt.Errorf("append phase %d: %w", i, err)
		}
	}

	return pretty.Pretty(doc), nil
}
