// Package agent holds the fixed roster of analysis agents.
//
// Agents are records only: a session initializes one Agent per Definition
// and flips its status once its printed tasks are done. Nothing here
// performs analysis.
package agent

import (
	"github.com/google/uuid"
)

// Agent statuses.
const (
	StatusInitialized = "initialized"
	StatusCompleted   = "completed"
)

// Definition describes an intended analysis role.
type Definition struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
	Phase        int      `json:"phase"`
}

// Agent is an initialized roster entry for one session.
type Agent struct {
	ID string `json:"id"`
	Definition
	Status string `json:"status"`
}

// Roster returns a copy of all agent definitions in declaration order.
func Roster() []Definition {
	out := make([]Definition, len(roster))
	for i, def := range roster {
		def.Capabilities = append([]string(nil), def.Capabilities...)
		out[i] = def
	}
	return out
}

// Lookup returns the definition with the given name.
func Lookup(name string) (Definition, bool) {
	for _, def := range roster {
		if def.Name == name {
			def.Capabilities = append([]string(nil), def.Capabilities...)
			return def, true
		}
	}
	return Definition{}, false
}

// ByPhase lists definitions assigned to phase n.
func ByPhase(n int) []Definition {
	var out []Definition
	for _, def := range Roster() {
		if def.Phase == n {
			out = append(out, def)
		}
	}
	return out
}

// New initializes an agent from its definition with a fresh id.
func New(def Definition) *Agent {
	return &Agent{
		ID:         uuid.NewString(),
		Definition: def,
		Status:     StatusInitialized,
	}
}

// Complete marks the agent as done.
func (a *Agent) Complete() {
	a.Status = StatusCompleted
}
