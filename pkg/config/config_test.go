package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDefinitions = `
machines:
  - name: traffic
    initial: red
    transitions:
      - trigger: go
        from: [red]
        to: green
      - trigger: stop
        from: [green]
        to: red
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(validDefinitions))
	require.NoError(t, err)
	require.Len(t, f.Machines, 1)

	m := f.Machines[0]
	assert.Equal(t, "traffic", m.Name)
	assert.Equal(t, "red", m.Initial)
	require.Len(t, m.Transitions, 2)
	assert.Equal(t, "go", m.Transitions[0].Trigger)
	assert.Equal(t, []string{"red"}, m.Transitions[0].From)
	assert.Equal(t, "green", m.Transitions[0].To)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name:    "not_yaml",
			raw:     "machines: [",
			wantErr: "parse machine definitions",
		},
		{
			name:    "no_machines",
			raw:     "machines: []",
			wantErr: "no machines defined",
		},
		{
			name: "missing_initial",
			raw: `
machines:
  - name: traffic
    transitions:
      - trigger: go
        from: [red]
        to: green
`,
			wantErr: "initial state is required",
		},
		{
			name: "no_transitions",
			raw: `
machines:
  - name: traffic
    initial: red
`,
			wantErr: "at least one transition is required",
		},
		{
			name: "incomplete_transition",
			raw: `
machines:
  - name: traffic
    initial: red
    transitions:
      - trigger: go
        to: green
`,
			wantErr: "every transition needs",
		},
		{
			name: "duplicate_machine_names",
			raw: `
machines:
  - name: traffic
    initial: red
    transitions:
      - trigger: go
        from: [red]
        to: green
  - name: traffic
    initial: red
    transitions:
      - trigger: go
        from: [red]
        to: green
`,
			wantErr: "defined more than once",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
