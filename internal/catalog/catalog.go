// Package catalog holds the static roles and companies offered as recommendations.
package catalog

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

type Kind string

const (
	KindRole    Kind = "role"
	KindCompany Kind = "company"
)

// Entity is a catalog record the recommendation engine can score.
type Entity interface {
	Kind() Kind
	DisplayName() string
	Attributes() map[Dimension][]string
}

type Role struct {
	Title          string   `yaml:"title" json:"title" validate:"required"`
	Seniority      string   `yaml:"seniority" json:"seniority" validate:"oneof=entry mid senior lead executive"`
	Track          string   `yaml:"track" json:"track" validate:"oneof=ic hybrid management"`
	TechnicalDepth int      `yaml:"technical_depth" json:"technical_depth" validate:"min=1,max=5"`
	ProblemTypes   []string `yaml:"problem_types" json:"problem_types" validate:"min=1,dive,required"`
}

func (r Role) Kind() Kind          { return KindRole }
func (r Role) DisplayName() string { return r.Title }

func (r Role) Attributes() map[Dimension][]string {
	return map[Dimension][]string{
		CareerStage:    {r.Seniority},
		TechnicalDepth: {strconv.Itoa(r.TechnicalDepth)},
		Leadership:     {r.Track},
		ProblemType:    r.ProblemTypes,
	}
}

type Company struct {
	Name        string   `yaml:"name" json:"name" validate:"required"`
	Type        string   `yaml:"type" json:"type" validate:"oneof=startup scaleup enterprise agency nonprofit government"`
	GrowthStage string   `yaml:"growth_stage" json:"growth_stage" validate:"oneof=seed early growth late public"`
	Industries  []string `yaml:"industries" json:"industries" validate:"min=1,dive,required"`
	WorkStyle   string   `yaml:"work_style" json:"work_style" validate:"oneof=remote hybrid onsite"`
	Values      []string `yaml:"values" json:"values" validate:"min=1,dive,required"`
	KnownFor    []string `yaml:"known_for" json:"known_for"`
}

func (c Company) Kind() Kind          { return KindCompany }
func (c Company) DisplayName() string { return c.Name }

func (c Company) Attributes() map[Dimension][]string {
	return map[Dimension][]string{
		WorkEnvironment: {c.Type},
		GrowthStage:     {c.GrowthStage},
		Industry:        c.Industries,
		WorkLocation:    {c.WorkStyle},
		Values:          c.Values,
	}
}

// Catalog is read-only once parsed. Entries keep their file order.
type Catalog struct {
	Roles     []Role    `yaml:"roles" json:"roles" validate:"min=1,dive"`
	Companies []Company `yaml:"companies" json:"companies" validate:"min=1,dive"`
}

var validate = validator.New()

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c.normalize()

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	if err := checkUnique(c.Entities(KindRole)); err != nil {
		return nil, err
	}
	if err := checkUnique(c.Entities(KindCompany)); err != nil {
		return nil, err
	}

	return &c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics only if the embedded file
// itself is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embedded)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Entities returns the entries of one kind in catalog order.
func (c *Catalog) Entities(kind Kind) []Entity {
	switch kind {
	case KindRole:
		result := make([]Entity, 0, len(c.Roles))
		for _, r := range c.Roles {
			result = append(result, r)
		}
		return result
	case KindCompany:
		result := make([]Entity, 0, len(c.Companies))
		for _, co := range c.Companies {
			result = append(result, co)
		}
		return result
	default:
		return nil
	}
}

// Company looks a company up by name, case-insensitively.
func (c *Catalog) Company(name string) (Company, bool) {
	for _, co := range c.Companies {
		if strings.EqualFold(co.Name, strings.TrimSpace(name)) {
			return co, true
		}
	}
	return Company{}, false
}

func (c *Catalog) normalize() {
	for i := range c.Roles {
		r := &c.Roles[i]
		r.Title = strings.TrimSpace(r.Title)
		r.Seniority = key(r.Seniority)
		r.Track = key(r.Track)
		r.ProblemTypes = keys(r.ProblemTypes)
	}
	for i := range c.Companies {
		co := &c.Companies[i]
		co.Name = strings.TrimSpace(co.Name)
		co.Type = key(co.Type)
		co.GrowthStage = key(co.GrowthStage)
		co.WorkStyle = key(co.WorkStyle)
		co.Industries = keys(co.Industries)
		co.Values = keys(co.Values)
	}
}

func checkUnique(entities []Entity) error {
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		k := strings.ToLower(e.DisplayName())
		if _, ok := seen[k]; ok {
			return fmt.Errorf("validating catalog: duplicate %s %q", e.Kind(), e.DisplayName())
		}
		seen[k] = struct{}{}
	}
	return nil
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func keys(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, key(v))
	}
	return result
}
