// Package input resolves text values that may be given inline or through a file.
package input

import (
	"fmt"
	"os"
	"strings"
)

// Source is a text value given inline, through a file, or both.
type Source struct {
	// Name labels the value in errors.
	Name  string
	Value string
	// File wins over Value when set.
	File string
}

func (s Source) label() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return "value"
}

// IsSet reports whether either the file or the inline value is given.
func (s Source) IsSet() bool {
	return strings.TrimSpace(s.File) != "" || strings.TrimSpace(s.Value) != ""
}

// Load returns the trimmed text of src. Blank text is an error.
func Load(src Source) (string, error) {
	if path := strings.TrimSpace(src.File); path != "" {
		return readFile(src.label(), path)
	}
	if text := strings.TrimSpace(src.Value); text != "" {
		return text, nil
	}
	return "", fmt.Errorf("%s is not configured", src.label())
}

func readFile(label, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", label, path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%s file %q is empty", label, path)
	}
	return text, nil
}

// LoadList resolves a source holding a list of entries separated by new
// lines or commas, such as a resume skills file. Lines starting with '#'
// are comments. Inline items are appended after the source entries.
func LoadList(src Source, inline []string) ([]string, error) {
	var items []string

	if src.IsSet() {
		text, err := Load(src)
		if err != nil {
			return nil, err
		}
		items = append(items, SplitList(text)...)
	}

	for _, item := range inline {
		items = append(items, SplitList(item)...)
	}

	return items, nil
}

// SplitList splits text on new lines and commas, dropping blanks and comments.
func SplitList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, part := range strings.Split(line, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	}
	return items
}
