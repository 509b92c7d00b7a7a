package arch

import "fmt"

// Kind names an element variant.
type Kind int

const (
	KindInlet Kind = iota + 1
	KindDuct
	KindSplitter
	KindMixer
	KindBleedInter
	KindBleedIntra
	KindNozzle
	KindCompressor
	KindBurner
	KindTurbine
	KindShaft
)

var kindNames = map[Kind]string{
	KindInlet:      "inlet",
	KindDuct:       "duct",
	KindSplitter:   "splitter",
	KindMixer:      "mixer",
	KindBleedInter: "bleed_inter",
	KindBleedIntra: "bleed_intra",
	KindNozzle:     "nozzle",
	KindCompressor: "compressor",
	KindBurner:     "burner",
	KindTurbine:    "turbine",
	KindShaft:      "shaft",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves the lower-case name of a kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown element kind %q", name)
}
