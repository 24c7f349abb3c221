package processor

import (
	"fmt"
	"strings"

	"github.com/vsariola/mathtone"
)

// Kind selects the processing strategy.
type Kind int

const (
	Single Kind = iota
	Multi
	Reach
	MultiReach
)

var kindNames = []string{"single", "multi", "reach", "multi-reach"}

// Kinds lists all strategies.
var Kinds = []Kind{Single, Multi, Reach, MultiReach}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Polyphonic reports if the strategy splits its input on '+'.
func (k Kind) Polyphonic() bool {
	return k == Multi || k == MultiReach
}

func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown processor %q, expected one of %s", s, strings.Join(kindNames, ", "))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// New constructs the processor of the given kind.
func New(kind Kind, cfg Config) (mathtone.Processor, error) {
	switch kind {
	case Single:
		return SingleTrack{Config: cfg}, nil
	case Multi:
		return MultiTrack{Config: cfg, Inner: SingleTrack{Config: cfg}}, nil
	case Reach:
		return ReachSingleTrack{Config: cfg}, nil
	case MultiReach:
		return MultiTrack{Config: cfg, Inner: ReachSingleTrack{Config: cfg}}, nil
	}
	return nil, fmt.Errorf("unknown processor kind %v", kind)
}
