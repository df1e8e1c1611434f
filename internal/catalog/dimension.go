package catalog

// Dimension is an attribute axis shared by interview questions and catalog entries.
type Dimension string

const (
	CareerStage     Dimension = "career_stage"
	TechnicalDepth  Dimension = "technical_depth"
	Leadership      Dimension = "leadership"
	ProblemType     Dimension = "problem_type"
	WorkEnvironment Dimension = "work_environment"
	GrowthStage     Dimension = "growth_stage"
	Industry        Dimension = "industry"
	WorkLocation    Dimension = "work_location"
	Values          Dimension = "values"
)

// RoleDimensions are the dimensions a role is scored on.
var RoleDimensions = []Dimension{CareerStage, TechnicalDepth, Leadership, ProblemType}

// CompanyDimensions are the dimensions a company is scored on.
var CompanyDimensions = []Dimension{WorkEnvironment, GrowthStage, Industry, WorkLocation, Values}

// Applies reports whether the dimension is used to score entities of kind.
func (d Dimension) Applies(kind Kind) bool {
	dims := RoleDimensions
	if kind == KindCompany {
		dims = CompanyDimensions
	}
	for _, dim := range dims {
		if dim == d {
			return true
		}
	}
	return false
}

// Valid reports whether d is one of the known dimensions.
func (d Dimension) Valid() bool {
	return d.Applies(KindRole) || d.Applies(KindCompany)
}

const (
	FullMatch    = 1.0
	PartialMatch = 0.5
	NoMatch      = 0.0
)

// ordered dimensions treat neighbours as a partial match.
var ordered = map[Dimension][]string{
	CareerStage:    {"entry", "mid", "senior", "lead", "executive"},
	TechnicalDepth: {"1", "2", "3", "4", "5"},
	Leadership:     {"ic", "hybrid", "management"},
	GrowthStage:    {"seed", "early", "growth", "late", "public"},
	WorkLocation:   {"remote", "hybrid", "onsite"},
}

// related lists unordered value pairs that count as a partial match.
var related = map[Dimension][][2]string{
	ProblemType: {
		{"building_products", "user_experience"},
		{"building_products", "strategy"},
		{"scaling_systems", "infrastructure"},
		{"data_analysis", "research"},
		{"security", "infrastructure"},
		{"strategy", "people"},
	},
	WorkEnvironment: {
		{"startup", "scaleup"},
		{"scaleup", "enterprise"},
		{"agency", "startup"},
		{"nonprofit", "government"},
	},
	Industry: {
		{"fintech", "e-commerce"},
		{"saas", "developer_tools"},
		{"ai", "developer_tools"},
		{"ai", "saas"},
		{"gaming", "media"},
		{"security", "developer_tools"},
		{"healthcare", "education"},
	},
	Values: {
		{"innovation", "learning"},
		{"impact", "innovation"},
		{"work_life_balance", "stability"},
		{"transparency", "ownership"},
		{"diversity", "transparency"},
	},
}

// Compatible scores how well an answer value matches an entity attribute
// value on dim: FullMatch, PartialMatch or NoMatch.
func Compatible(dim Dimension, answer, attribute string) float64 {
	answer, attribute = key(answer), key(attribute)
	if answer == "" || attribute == "" {
		return NoMatch
	}
	if answer == attribute {
		return FullMatch
	}

	if scale, ok := ordered[dim]; ok {
		a, b := position(scale, answer), position(scale, attribute)
		if a >= 0 && b >= 0 && (a-b == 1 || b-a == 1) {
			return PartialMatch
		}
		return NoMatch
	}

	for _, pair := range related[dim] {
		if (pair[0] == answer && pair[1] == attribute) || (pair[0] == attribute && pair[1] == answer) {
			return PartialMatch
		}
	}
	return NoMatch
}

// BestMatch returns the highest compatibility between any answer value and
// any attribute value. Ties keep the earliest pair.
func BestMatch(dim Dimension, answers, attributes []string) (score float64, answer, attribute string) {
	for _, a := range answers {
		for _, attr := range attributes {
			if s := Compatible(dim, a, attr); s > score {
				score, answer, attribute = s, a, attr
			}
		}
	}
	return score, answer, attribute
}

func position(scale []string, value string) int {
	for i, v := range scale {
		if v == value {
			return i
		}
	}
	return -1
}
