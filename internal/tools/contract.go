// Package tools implements the chatbot tools and their dispatch.
package tools

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openportal/portald/internal/llm"
)

// Spec describes one tool to the model: name, human-readable attribution
// label, description, and JSON-schema-shaped parameters.
type Spec struct {
	Name        string         `yaml:"name"`
	Label       string         `yaml:"label"`
	Description string         `yaml:"description"`
	Parameters  map[string]any `yaml:"parameters"`
}

type contractDocument struct {
	Version int    `yaml:"version"`
	Service string `yaml:"service"`
	Tools   []Spec `yaml:"tools"`
}

// Contract provides read-only access to the parsed tool contract.
type Contract struct {
	specs  []Spec
	byName map[string]Spec
}

// ParseContract parses the tool contract YAML and validates minimal
// invariants.
func ParseContract(contractYAML []byte) (*Contract, error) {
	var parsed contractDocument
	if err := yaml.Unmarshal(contractYAML, &parsed); err != nil {
		return nil, fmt.Errorf("decoding tool contract: %w", err)
	}
	if len(parsed.Tools) == 0 {
		return nil, fmt.Errorf("tool contract has no tools")
	}

	byName := make(map[string]Spec, len(parsed.Tools))
	for i, spec := range parsed.Tools {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("tool contract contains empty tool name")
		}
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("tool contract contains duplicate tool %q", name)
		}
		if strings.TrimSpace(spec.Label) == "" {
			return nil, fmt.Errorf("tool %q has empty label", name)
		}
		spec.Name = name
		parsed.Tools[i] = spec
		byName[name] = spec
	}

	return &Contract{
		specs:  parsed.Tools,
		byName: byName,
	}, nil
}

// List returns all tool specs in contract order.
func (c *Contract) List() []Spec {
	items := make([]Spec, 0, len(c.specs))
	items = append(items, c.specs...)
	return items
}

// Lookup returns a tool spec by name.
func (c *Contract) Lookup(name string) (Spec, bool) {
	spec, ok := c.byName[strings.TrimSpace(name)]
	return spec, ok
}

// Descriptors renders the contract as model-facing tool descriptors.
func (c *Contract) Descriptors() []llm.ToolDescriptor {
	descriptors := make([]llm.ToolDescriptor, 0, len(c.specs))
	for _, spec := range c.specs {
		descriptors = append(descriptors, llm.ToolDescriptor{
			Name:        spec.Name,
			Description: strings.TrimSpace(spec.Description),
			Parameters:  spec.Parameters,
		})
	}
	return descriptors
}
