package workout

import "strings"

// Kind is the training methodology tag carried through to every compiled frame.
type Kind string

const (
	KindTabata  Kind = "TABATA"
	KindEMOM    Kind = "EMOM"
	KindAMRAP   Kind = "AMRAP"
	KindForTime Kind = "FORTIME"
	KindRest    Kind = "REST"
)

func (k Kind) String() string { return string(k) }

// IsValid reports whether k is a recognised workout kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindTabata, KindEMOM, KindAMRAP, KindForTime, KindRest:
		return true
	default:
		return false
	}
}

// Kinds returns every recognised kind in display order.
func Kinds() []Kind {
	return []Kind{KindTabata, KindEMOM, KindAMRAP, KindForTime, KindRest}
}

func kindList() string {
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}
