package domain

// Kind is the analysis kind of a domain.
type Kind int64

// Values are the codes written into DOMAINS.ANALYSIS.
const (
	Static             Kind = 1
	NormalMode         Kind = 2
	FrequencyResponse  Kind = 5
	Transient          Kind = 6
	Buckling           Kind = 8
	ComplexEigen       Kind = 9
	Nonlinear          Kind = 10
	DesignOptimization Kind = 12
	Random             Kind = 13
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case NormalMode:
		return "normal-mode"
	case FrequencyResponse:
		return "frequency-response"
	case Transient:
		return "transient"
	case Buckling:
		return "buckling"
	case ComplexEigen:
		return "complex-eigen"
	case Nonlinear:
		return "nonlinear"
	case DesignOptimization:
		return "design-optimization"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// analysisCodes maps explicit result analysis codes to kinds.
var analysisCodes = map[int64]Kind{
	1:  Static,
	2:  NormalMode,
	3:  Static, // differential stiffness
	4:  Static, // differential stiffness
	5:  FrequencyResponse,
	6:  Transient,
	7:  Static, // pre-buckling
	8:  Buckling,
	9:  ComplexEigen,
	10: Nonlinear,
	11: Nonlinear,
	12: DesignOptimization,
	13: Random,
}

// solutionSequences maps declared solution sequences to kinds when a result
// has no usable analysis code.
var solutionSequences = map[int64]Kind{
	1:   Static,
	101: Static,
	144: Static,
	3:   NormalMode,
	103: NormalMode,
	5:   Buckling,
	105: Buckling,
	7:   ComplexEigen,
	107: ComplexEigen,
	110: ComplexEigen,
	145: ComplexEigen,
	8:   FrequencyResponse,
	108: FrequencyResponse,
	111: FrequencyResponse,
	146: FrequencyResponse,
	9:   Transient,
	109: Transient,
	112: Transient,
	6:   Nonlinear,
	106: Nonlinear,
	129: Nonlinear,
	153: Nonlinear,
	159: Nonlinear,
	400: Nonlinear,
	600: Nonlinear,
	700: Nonlinear,
	200: DesignOptimization,
}

// KindOf resolves the analysis kind from an explicit analysis code, falling
// back to the solution sequence and finally to Static.
func KindOf(analysisCode, sol int64) Kind {
	if analysisCode != 0 {
		if k, ok := analysisCodes[analysisCode]; ok {
			return k
		}
	}
	if k, ok := solutionSequences[sol]; ok {
		return k
	}
	return Static
}
