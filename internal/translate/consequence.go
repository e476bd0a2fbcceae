package translate

// Impact levels for variant consequences.
const (
	ImpactHigh     = "HIGH"
	ImpactModerate = "MODERATE"
	ImpactLow      = "LOW"
	ImpactModifier = "MODIFIER"
)

// Consequence types (Sequence Ontology terms) a point substitution can have
// on a coding sequence.
const (
	ConsequenceStopGained        = "stop_gained"
	ConsequenceStopLost          = "stop_lost"
	ConsequenceStartLost         = "start_lost"
	ConsequenceMissenseVariant   = "missense_variant"
	ConsequenceSynonymousVariant = "synonymous_variant"
	ConsequenceStopRetained      = "stop_retained_variant"
)

// Consequence returns the SO term for a single residue change.
func Consequence(c AminoAcidChange) string {
	switch {
	case c.Ref == c.Alt && IsStop(c.Ref):
		return ConsequenceStopRetained
	case c.Ref == c.Alt:
		return ConsequenceSynonymousVariant
	case IsStop(c.Alt):
		return ConsequenceStopGained
	case IsStop(c.Ref):
		return ConsequenceStopLost
	case c.Position == 1 && c.Ref == 'M':
		return ConsequenceStartLost
	default:
		return ConsequenceMissenseVariant
	}
}

// ChangesConsequence returns the most severe consequence among changes,
// or synonymous_variant if there are none.
func ChangesConsequence(changes []AminoAcidChange) string {
	best := ConsequenceSynonymousVariant
	for _, c := range changes {
		term := Consequence(c)
		if ImpactRank(GetImpact(term)) > ImpactRank(GetImpact(best)) {
			best = term
		}
	}
	return best
}

// GetImpact returns the impact level for a given consequence type.
func GetImpact(consequence string) string {
	switch consequence {
	case ConsequenceStopGained, ConsequenceStopLost, ConsequenceStartLost:
		return ImpactHigh
	case ConsequenceMissenseVariant:
		return ImpactModerate
	case ConsequenceSynonymousVariant, ConsequenceStopRetained:
		return ImpactLow
	default:
		return ImpactModifier
	}
}

// ImpactRank returns numeric rank for impact comparison (higher = more severe).
func ImpactRank(impact string) int {
	switch impact {
	case ImpactHigh:
		return 3
	case ImpactModerate:
		return 2
	case ImpactLow:
		return 1
	default:
		return 0
	}
}
