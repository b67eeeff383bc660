// Package catalog holds the read-only language and problem lookup data the
// judge is configured with.
package catalog

import (
	"sort"

	appErr "minoj/pkg/errors"
)

// CompareMode selects how produced output is checked against the answer file.
type CompareMode string

const (
	// CompareStandard trims the whole text and every line before comparing
	// line sequences.
	CompareStandard CompareMode = "standard"
	// CompareStrict compares the full byte content.
	CompareStrict CompareMode = "strict"
)

// Language describes one toolchain entry: the expected source file name and
// the compiler command template. The template is a single command line whose
// %INPUT% and %OUTPUT% placeholders are substituted with absolute paths.
type Language struct {
	Name     string `yaml:"name" json:"name"`
	FileName string `yaml:"file_name" json:"file_name"`
	Command  string `yaml:"command" json:"command"`
}

// TestCase describes one data point of a problem. TimeLimit is in
// microseconds; MemoryLimit is carried from config but not enforced.
type TestCase struct {
	Score       float64 `yaml:"score" json:"score"`
	InputFile   string  `yaml:"input_file" json:"input_file"`
	AnswerFile  string  `yaml:"answer_file" json:"answer_file"`
	TimeLimit   int64   `yaml:"time_limit" json:"time_limit"`
	MemoryLimit int64   `yaml:"memory_limit" json:"memory_limit"`
}

// Problem describes one judgeable problem with its ordered case list.
type Problem struct {
	ID    int64       `yaml:"id" json:"id"`
	Name  string      `yaml:"name" json:"name"`
	Type  CompareMode `yaml:"type" json:"type"`
	Cases []TestCase  `yaml:"cases" json:"cases"`
}

// Catalog is the combined toolchain registry and problem catalog. It is built
// once from config and treated as immutable afterwards.
type Catalog struct {
	languages map[string]Language
	problems  map[int64]Problem
	order     []int64
}

// New builds a catalog from the configured language and problem lists.
// Problem iteration order follows ascending problem id.
func New(languages []Language, problems []Problem) *Catalog {
	c := &Catalog{
		languages: make(map[string]Language, len(languages)),
		problems:  make(map[int64]Problem, len(problems)),
	}
	for _, lang := range languages {
		c.languages[lang.Name] = lang
	}
	for _, p := range problems {
		if _, dup := c.problems[p.ID]; !dup {
			c.order = append(c.order, p.ID)
		}
		c.problems[p.ID] = p
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i] < c.order[j] })
	return c
}

// Language resolves a language by name.
func (c *Catalog) Language(name string) (Language, error) {
	lang, ok := c.languages[name]
	if !ok {
		return Language{}, appErr.Newf(appErr.NotFound, "language %s not found", name)
	}
	return lang, nil
}

// Problem resolves a problem by id.
func (c *Catalog) Problem(id int64) (Problem, error) {
	p, ok := c.problems[id]
	if !ok {
		return Problem{}, appErr.Newf(appErr.NotFound, "problem %d not found", id)
	}
	return p, nil
}

// ProblemIDs returns all problem ids in ascending order.
func (c *Catalog) ProblemIDs() []int64 {
	out := make([]int64, len(c.order))
	copy(out, c.order)
	return out
}
