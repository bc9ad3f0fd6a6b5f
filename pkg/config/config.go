package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a machine definition file.
type File struct {
	// Machines holds every machine declared in the file.
	Machines []Machine `yaml:"machines" json:"machines"`
}

// Machine declares one state machine: its name in the registry, the
// initial state and the transition table.
type Machine struct {
	// Name is the registry identifier; empty means the default instance.
	Name string `yaml:"name" json:"name"`
	// Initial is the state the machine starts in.
	Initial string `yaml:"initial" json:"initial"`
	// Transitions is the declared transition table.
	Transitions []Transition `yaml:"transitions" json:"transitions"`
}

// Transition declares that Trigger moves the machine from any state in
// From to To.
type Transition struct {
	Trigger string   `yaml:"trigger" json:"trigger"`
	From    []string `yaml:"from" json:"from"`
	To      string   `yaml:"to" json:"to"`
}

// Load reads and validates a machine definition file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read machine definitions: %w", err)
	}
	return Parse(raw)
}

// Parse parses and validates machine definitions.
func Parse(raw []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(raw, f); err != nil {
		return nil, fmt.Errorf("parse machine definitions: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the whole file, including duplicate machine names.
func (f *File) Validate() error {
	if len(f.Machines) == 0 {
		return errors.New("no machines defined")
	}

	seen := map[string]bool{}
	for i := range f.Machines {
		m := &f.Machines[i]
		if err := m.Validate(); err != nil {
			return err
		}
		if seen[m.Name] {
			return fmt.Errorf("machine %q defined more than once", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

// Validate checks one machine declaration.
func (m *Machine) Validate() error {
	if m.Initial == "" {
		return fmt.Errorf("machine %q: initial state is required", m.Name)
	}
	if len(m.Transitions) == 0 {
		return fmt.Errorf("machine %q: at least one transition is required", m.Name)
	}

	for _, t := range m.Transitions {
		if t.Trigger == "" || t.To == "" || len(t.From) == 0 {
			return fmt.Errorf("machine %q: every transition needs a trigger, a from list and a to state", m.Name)
		}
	}
	return nil
}
