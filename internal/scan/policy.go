package scan

import (
	"fmt"
	"strings"

	"github.com/inodb/mutscan/internal/translate"
)

// StopPolicy decides where a stop codon in a mutated protein is acceptable.
type StopPolicy int

const (
	// StopPolicyFinal accepts a stop only at the last codon; a stop at any
	// earlier codon is premature. This holds whether or not the original
	// protein ends in a stop.
	StopPolicyFinal StopPolicy = iota
	// StopPolicyMatchOriginal accepts a stop only where the original protein
	// already has one, so a stop created at the last codon of a stop-less
	// sequence is also rejected.
	StopPolicyMatchOriginal
)

// ParseStopPolicy parses "final" or "match".
func ParseStopPolicy(s string) (StopPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "final":
		return StopPolicyFinal, nil
	case "match", "match-original", "match_original":
		return StopPolicyMatchOriginal, nil
	default:
		return 0, fmt.Errorf("unknown stop policy %q (want final or match)", s)
	}
}

func (p StopPolicy) String() string {
	switch p {
	case StopPolicyFinal:
		return "final"
	case StopPolicyMatchOriginal:
		return "match"
	default:
		return fmt.Sprintf("StopPolicy(%d)", int(p))
	}
}

// HasPrematureStop reports whether mutated carries a stop the policy rejects.
// original and mutated must have equal length.
func (p StopPolicy) HasPrematureStop(original, mutated string) bool {
	switch p {
	case StopPolicyMatchOriginal:
		for i := 0; i < len(mutated); i++ {
			if translate.IsStop(mutated[i]) && !translate.IsStop(original[i]) {
				return true
			}
		}
		return false
	default:
		if len(mutated) == 0 {
			return false
		}
		return strings.IndexByte(mutated[:len(mutated)-1], translate.StopSymbol) >= 0
	}
}
