// Package todo holds the read-only to-do collection and the title search
// run against it.
package todo

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var ErrMissingTitle = errors.New("todo: missing title")

type Todo struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

var defaults = []Todo{
	{ID: 1, Title: "Buy milk", Completed: false},
	{ID: 2, Title: "Clean house", Completed: false},
	{ID: 3, Title: "Walk the dog", Completed: true},
	{ID: 4, Title: "Buy birthday present for Sam", Completed: false},
	{ID: 5, Title: "Read Go blog", Completed: true},
	{ID: 6, Title: "Pay electricity bill", Completed: false},
	{ID: 7, Title: "Book dentist appointment", Completed: false},
	{ID: 8, Title: "Water the plants", Completed: true},
}

// All returns a copy of the built-in collection.
func All() []Todo {
	return slices.Clone(defaults)
}

// Search returns the items whose title contains term, keeping their order.
// An empty term matches nothing.
func Search(items []Todo, term string) []Todo {
	found := []Todo{}
	if len(term) == 0 {
		return found
	}

	for _, item := range items {
		if strings.Contains(item.Title, term) {
			found = append(found, item)
		}
	}
	return found
}

// FromMap builds a Todo from a loosely typed mapping such as a decoded
// YAML entry. Numbers and booleans may be given as strings.
func FromMap(m map[string]interface{}) (Todo, error) {
	title := cast.ToString(m["title"])
	if title == "" {
		return Todo{}, ErrMissingTitle
	}

	id, err := cast.ToIntE(m["id"])
	if err != nil && m["id"] != nil {
		return Todo{}, fmt.Errorf("todo %q: invalid id: %w", title, err)
	}

	completed, err := cast.ToBoolE(m["completed"])
	if err != nil && m["completed"] != nil {
		return Todo{}, fmt.Errorf("todo %q: invalid completed flag: %w", title, err)
	}

	return Todo{ID: id, Title: title, Completed: completed}, nil
}

// LoadFile reads a YAML list of to-do mappings. Entries without an id are
// numbered by position.
func LoadFile(path string) ([]Todo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	items := make([]Todo, 0, len(raw))
	for i, entry := range raw {
		item, err := FromMap(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if item.ID == 0 {
			item.ID = i + 1
		}
		items = append(items, item)
	}
	return items, nil
}
