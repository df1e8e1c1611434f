package skills

import (
	"strings"

	"github.com/spigell/job-fit/internal/utils"
)

// aliases maps common spellings to one canonical lowercase name.
var aliases = map[string]string{
	"golang":                "go",
	"go lang":               "go",
	"js":                    "javascript",
	"ts":                    "typescript",
	"k8s":                   "kubernetes",
	"postgres":              "postgresql",
	"psql":                  "postgresql",
	"nodejs":                "node.js",
	"node":                  "node.js",
	"reactjs":               "react",
	"react.js":              "react",
	"vuejs":                 "vue",
	"vue.js":                "vue",
	"amazon web services":   "aws",
	"google cloud":          "gcp",
	"google cloud platform": "gcp",
	"microsoft azure":       "azure",
	"c sharp":               "c#",
	"dotnet":                ".net",
	"ml":                    "machine learning",
	"ci cd":                 "ci/cd",
	"cicd":                  "ci/cd",
	"ecommerce":             "e-commerce",
	"healthtech":            "healthcare",
	"adtech":                "advertising",
}

// Normalize returns the comparison key of a skill: lowercase, whitespace
// collapsed, trailing punctuation dropped and known aliases resolved.
func Normalize(skill string) string {
	s := strings.ToLower(utils.CollapseSpaces(skill))
	s = strings.TrimRight(s, ".,;:")
	if canonical, ok := aliases[s]; ok {
		return canonical
	}
	return s
}
