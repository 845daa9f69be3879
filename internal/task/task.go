// Package task keeps the per-session list of agent tasks.
package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = "medium"

// Task describes a unit of work assigned to an agent by name.
type Task struct {
	ID          string     `json:"task_id"`
	AgentName   string     `json:"agent_name"`
	Type        string     `json:"task_type"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// List is an append-only task list. The agent name on a task is not checked
// against the roster.
type List struct {
	mu    sync.Mutex
	tasks []*Task
	now   func() time.Time
}

// NewList creates an empty task list.
func NewList() *List {
	return &List{now: time.Now}
}

// Create appends a pending task and returns it.
func (l *List) Create(agentName, taskType, description, priority string) *Task {
	if priority == "" {
		priority = DefaultPriority
	}
	t := &Task{
		ID:          uuid.NewString(),
		AgentName:   agentName,
		Type:        taskType,
		Description: description,
		Priority:    priority,
		Status:      StatusPending,
		CreatedAt:   l.now(),
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, t)
	l.mu.Unlock()
	return t
}

// Complete marks a task completed. It reports false for an unknown id.
func (l *List) Complete(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.tasks {
		if t.ID == id {
			l.complete(t)
			return true
		}
	}
	return false
}

// CompleteAgent marks every pending task of the agent completed and returns how many changed.
func (l *List) CompleteAgent(agentName string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, t := range l.tasks {
		if t.AgentName == agentName && t.Status == StatusPending {
			l.complete(t)
			n++
		}
	}
	return n
}

func (l *List) complete(t *Task) {
	ts := l.now()
	t.Status = StatusCompleted
	t.CompletedAt = &ts
}

// ByAgent returns copies of the agent's tasks in creation order.
func (l *List) ByAgent(agentName string) []Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Task
	for _, t := range l.tasks {
		if t.AgentName == agentName {
			out = append(out, *t)
		}
	}
	return out
}

// All returns copies of every task in creation order.
func (l *List) All() []Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		out = append(out, *t)
	}
	return out
}

// Count returns the number of tasks.
func (l *List) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}
