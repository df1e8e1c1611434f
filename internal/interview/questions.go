// Package interview records answers to the fixed 20-question career interview.
package interview

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/job-fit/internal/catalog"
)

type Category string

const (
	CategoryCareer       Category = "career"
	CategoryTechnical    Category = "technical"
	CategoryLeadership   Category = "leadership"
	CategoryProblems     Category = "problems"
	CategoryEnvironment  Category = "environment"
	CategoryGrowth       Category = "growth"
	CategoryIndustry     Category = "industry"
	CategoryLocation     Category = "location"
	CategoryValues       Category = "values"
	CategoryCompensation Category = "compensation"
)

type Kind string

const (
	KindSingle  Kind = "single"
	KindMulti   Kind = "multi"
	KindScale   Kind = "scale"
	KindSkipped Kind = "skipped"
)

// MaxSelections is the upper bound for multi-choice answers.
const MaxSelections = 3

type Choice struct {
	Value string `json:"value" validate:"required"`
	Label string `json:"label" validate:"required"`
}

// Question is one fixed interview question. Dimension is empty for questions
// that are recorded but not used for matching.
type Question struct {
	ID        string            `json:"id" validate:"required"`
	Category  Category          `json:"category" validate:"required"`
	Dimension catalog.Dimension `json:"dimension,omitempty"`
	Kind      Kind              `json:"kind" validate:"oneof=single multi scale"`
	Text      string            `json:"text" validate:"required"`
	Choices   []Choice          `json:"choices,omitempty" validate:"dive"`
	Min       int               `json:"min,omitempty"`
	Max       int               `json:"max,omitempty"`
	Weight    int               `json:"weight" validate:"min=5,max=10"`
}

func (q Question) choice(value string) (Choice, bool) {
	for _, c := range q.Choices {
		if c.Value == value {
			return c, true
		}
	}
	return Choice{}, false
}

// Label returns the human label for a choice value, or the value itself.
func (q Question) Label(value string) string {
	if c, ok := q.choice(value); ok {
		return c.Label
	}
	return value
}

var validate = validator.New()

// ValidateQuestions checks a question set for structural problems.
func ValidateQuestions(questions []Question) error {
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if err := validate.Struct(q); err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("question %q: duplicate id", q.ID)
		}
		seen[q.ID] = struct{}{}

		if q.Dimension != "" && !q.Dimension.Valid() {
			return fmt.Errorf("question %q: unknown dimension %q", q.ID, q.Dimension)
		}

		switch q.Kind {
		case KindScale:
			if q.Min >= q.Max {
				return fmt.Errorf("question %q: scale bounds %d..%d are empty", q.ID, q.Min, q.Max)
			}
		default:
			if len(q.Choices) < 2 {
				return fmt.Errorf("question %q: needs at least two choices", q.ID)
			}
			values := make(map[string]struct{}, len(q.Choices))
			for _, c := range q.Choices {
				if _, ok := values[c.Value]; ok {
					return fmt.Errorf("question %q: duplicate choice %q", q.ID, c.Value)
				}
				values[c.Value] = struct{}{}
			}
		}
	}
	return nil
}

var questions = mustQuestions([]Question{
	{
		ID: "q01", Category: CategoryCareer, Dimension: catalog.CareerStage, Kind: KindSingle, Weight: 10,
		Text: "Where are you in your career right now?",
		Choices: []Choice{
			{"entry", "Just starting out"},
			{"mid", "A few years in"},
			{"senior", "Experienced and independent"},
			{"lead", "Setting direction for others"},
			{"executive", "Leading an organization"},
		},
	},
	{
		ID: "q02", Category: CategoryCareer, Dimension: catalog.CareerStage, Kind: KindSingle, Weight: 8,
		Text: "What level are you aiming for in your next role?",
		Choices: []Choice{
			{"mid", "Growing into a solid contributor"},
			{"senior", "Senior individual level"},
			{"lead", "Lead or staff level"},
			{"executive", "Executive level"},
		},
	},
	{
		ID: "q03", Category: CategoryTechnical, Dimension: catalog.TechnicalDepth, Kind: KindScale, Weight: 9,
		Text: "How hands-on technical do you want your work to be? (1 = not at all, 5 = deeply)",
		Min:  1, Max: 5,
	},
	{
		ID: "q04", Category: CategoryProblems, Dimension: catalog.ProblemType, Kind: KindMulti, Weight: 8,
		Text: "Which kinds of problems energize you? Pick up to three.",
		Choices: []Choice{
			{"building_products", "Building products people use"},
			{"scaling_systems", "Scaling systems under load"},
			{"infrastructure", "Running reliable infrastructure"},
			{"data_analysis", "Finding answers in data"},
			{"research", "Open-ended research"},
			{"security", "Keeping systems secure"},
			{"user_experience", "Crafting user experiences"},
			{"strategy", "Shaping strategy"},
			{"people", "Growing people and teams"},
		},
	},
	{
		ID: "q05", Category: CategoryLeadership, Dimension: catalog.Leadership, Kind: KindSingle, Weight: 9,
		Text: "Which career track appeals to you most?",
		Choices: []Choice{
			{"ic", "Individual contributor"},
			{"hybrid", "Hands-on lead"},
			{"management", "People management"},
		},
	},
	{
		ID: "q06", Category: CategoryLeadership, Dimension: catalog.Leadership, Kind: KindSingle, Weight: 7,
		Text: "How many people would you like to be responsible for?",
		Choices: []Choice{
			{"ic", "Nobody, I want to focus on my own work"},
			{"hybrid", "A few people while staying hands-on"},
			{"management", "A whole team or more"},
		},
	},
	{
		ID: "q07", Category: CategoryProblems, Dimension: catalog.ProblemType, Kind: KindSingle, Weight: 6,
		Text: "Which week sounds best?",
		Choices: []Choice{
			{"building_products", "Shipping a new feature"},
			{"scaling_systems", "Cutting latency in half"},
			{"data_analysis", "Explaining a surprising metric"},
			{"research", "Prototyping an idea nobody has tried"},
			{"people", "Coaching someone through a hard problem"},
		},
	},
	{
		ID: "q08", Category: CategoryEnvironment, Dimension: catalog.WorkEnvironment, Kind: KindSingle, Weight: 8,
		Text: "What kind of organization do you want to work for?",
		Choices: []Choice{
			{"startup", "Startup"},
			{"scaleup", "Fast-growing scaleup"},
			{"enterprise", "Established enterprise"},
			{"agency", "Agency or consultancy"},
			{"nonprofit", "Nonprofit"},
			{"government", "Government"},
		},
	},
	{
		ID: "q09", Category: CategoryEnvironment, Dimension: catalog.WorkEnvironment, Kind: KindSingle, Weight: 6,
		Text: "Which team setup suits you?",
		Choices: []Choice{
			{"startup", "Everyone wears many hats"},
			{"scaleup", "Small teams with clear ownership"},
			{"enterprise", "Specialized teams with mature process"},
			{"agency", "Rotating across client projects"},
		},
	},
	{
		ID: "q10", Category: CategoryGrowth, Dimension: catalog.GrowthStage, Kind: KindSingle, Weight: 7,
		Text: "What company stage do you prefer?",
		Choices: []Choice{
			{"seed", "Seed"},
			{"early", "Early stage"},
			{"growth", "Growth stage"},
			{"late", "Late stage private"},
			{"public", "Public company"},
		},
	},
	{
		ID: "q11", Category: CategoryGrowth, Dimension: catalog.GrowthStage, Kind: KindSingle, Weight: 6,
		Text: "How much risk are you comfortable with?",
		Choices: []Choice{
			{"seed", "A lot, I want the upside"},
			{"early", "Quite a bit"},
			{"growth", "Some"},
			{"late", "A little"},
			{"public", "As little as possible"},
		},
	},
	{
		ID: "q12", Category: CategoryIndustry, Dimension: catalog.Industry, Kind: KindMulti, Weight: 8,
		Text: "Which industries interest you? Pick up to three.",
		Choices: []Choice{
			{"fintech", "Fintech"},
			{"healthcare", "Healthcare"},
			{"e-commerce", "E-commerce"},
			{"saas", "SaaS"},
			{"developer_tools", "Developer tools"},
			{"ai", "AI"},
			{"gaming", "Gaming"},
			{"media", "Media"},
			{"education", "Education"},
			{"climate", "Climate"},
			{"security", "Security"},
		},
	},
	{
		ID: "q13", Category: CategoryIndustry, Dimension: catalog.Industry, Kind: KindSingle, Weight: 5,
		Text: "Which domain would you most like to learn next?",
		Choices: []Choice{
			{"fintech", "Finance"},
			{"healthcare", "Health"},
			{"ai", "Artificial intelligence"},
			{"climate", "Climate"},
			{"education", "Learning"},
			{"security", "Security"},
		},
	},
	{
		ID: "q14", Category: CategoryLocation, Dimension: catalog.WorkLocation, Kind: KindSingle, Weight: 8,
		Text: "Where do you want to work from?",
		Choices: []Choice{
			{"remote", "Remote"},
			{"hybrid", "Hybrid"},
			{"onsite", "In the office"},
		},
	},
	{
		ID: "q15", Category: CategoryLocation, Kind: KindSingle, Weight: 5,
		Text: "Would you relocate for the right role?",
		Choices: []Choice{
			{"yes", "Yes"},
			{"maybe", "Maybe, with assistance"},
			{"no", "No"},
		},
	},
	{
		ID: "q16", Category: CategoryValues, Dimension: catalog.Values, Kind: KindMulti, Weight: 8,
		Text: "Which values matter most to you at work? Pick up to three.",
		Choices: []Choice{
			{"innovation", "Innovation"},
			{"work_life_balance", "Work-life balance"},
			{"diversity", "Diversity and inclusion"},
			{"transparency", "Transparency"},
			{"impact", "Impact"},
			{"learning", "Learning"},
			{"stability", "Stability"},
			{"ownership", "Ownership"},
		},
	},
	{
		ID: "q17", Category: CategoryValues, Dimension: catalog.Values, Kind: KindSingle, Weight: 6,
		Text: "What keeps you going on a bad day?",
		Choices: []Choice{
			{"impact", "Knowing the work matters"},
			{"learning", "Learning something new"},
			{"ownership", "Owning the outcome"},
			{"stability", "A predictable routine"},
			{"work_life_balance", "Logging off on time"},
		},
	},
	{
		ID: "q18", Category: CategoryCompensation, Dimension: catalog.GrowthStage, Kind: KindSingle, Weight: 5,
		Text: "How do you prefer to be paid?",
		Choices: []Choice{
			{"early", "Mostly equity upside"},
			{"growth", "A balance of cash and equity"},
			{"public", "Mostly cash and liquid stock"},
		},
	},
	{
		ID: "q19", Category: CategoryTechnical, Dimension: catalog.TechnicalDepth, Kind: KindScale, Weight: 7,
		Text: "How much of your week should be spent building? (1 = almost none, 5 = nearly all)",
		Min:  1, Max: 5,
	},
	{
		ID: "q20", Category: CategoryCareer, Kind: KindSingle, Weight: 5,
		Text: "When do you want to make your next move?",
		Choices: []Choice{
			{"now", "As soon as possible"},
			{"soon", "Within six months"},
			{"later", "Just exploring"},
		},
	},
})

func mustQuestions(qs []Question) []Question {
	if err := ValidateQuestions(qs); err != nil {
		panic(err)
	}
	return qs
}

// Questions returns the interview questions in order.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Choices = slices.Clone(q.Choices)
		out[i] = q
	}
	return out
}

// QuestionByID returns the question with the provided id.
func QuestionByID(id string) (Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			q.Choices = slices.Clone(q.Choices)
			return q, true
		}
	}
	return Question{}, false
}
