// Package session runs a simulated multi-agent analysis session.
//
// A session initializes the agent roster, prepares (but never runs) a clone
// of the target repository, prints each phase's fixed task lists with a
// pacing delay, and writes the fixed report to the workspace.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/metalagman/maimp/internal/agent"
	"github.com/metalagman/maimp/internal/console"
	"github.com/metalagman/maimp/internal/db"
	"github.com/metalagman/maimp/internal/git"
	"github.com/metalagman/maimp/internal/report"
	"github.com/metalagman/maimp/internal/task"
	"github.com/rs/zerolog/log"
)

// ErrUnknownAgent is returned when a phase step names an agent outside the roster.
var ErrUnknownAgent = errors.New("unknown agent")

// Recorder receives the session timeline. *db.Store implements it.
type Recorder interface {
	CreateSession(ctx context.Context, sessionID, repoURL, workspace string) error
	RecordEvent(ctx context.Context, sessionID, typ, message, dataJSON string) error
	FinishSession(ctx context.Context, sessionID string, fin db.Finish) error
}

// RepositoryContext describes the repository being analyzed.
type RepositoryContext struct {
	RepoURL     string
	LocalPath   string
	Branch      string
	CloneStatus bool
}

// Finding is recorded per agent after its tasks are printed.
type Finding struct {
	CompletedTasks int       `json:"completed_tasks"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// Options configures a Manager.
type Options struct {
	RepoURL   string
	Workspace string
	Branch    string
	StepDelay time.Duration
	Out       io.Writer
	Recorder  Recorder
}

// Result summarizes a finished session.
type Result struct {
	SessionID  string
	Report     report.Report
	ReportPath string
	TaskCount  int
	AgentCount int
}

// Manager drives one session. It is not safe for concurrent use.
type Manager struct {
	id       string
	repo     RepositoryContext
	start    time.Time
	delay    time.Duration
	out      *console.Console
	recorder Recorder

	order    []string
	agents   map[string]*agent.Agent
	tasks    *task.List
	findings map[string]Finding

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewManager creates a session with a fresh id.
func NewManager(opts Options) *Manager {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	branch := opts.Branch
	if branch == "" {
		branch = "main"
	}
	return &Manager{
		id: uuid.NewString(),
		repo: RepositoryContext{
			RepoURL:   opts.RepoURL,
			LocalPath: opts.Workspace,
			Branch:    branch,
		},
		start:    time.Now(),
		delay:    opts.StepDelay,
		out:      console.New(out),
		recorder: opts.Recorder,
		agents:   make(map[string]*agent.Agent),
		tasks:    task.NewList(),
		findings: make(map[string]Finding),
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// ID returns the session id.
func (m *Manager) ID() string { return m.id }

// Repository returns the repository context.
func (m *Manager) Repository() RepositoryContext { return m.repo }

// Tasks returns the session's task list.
func (m *Manager) Tasks() *task.List { return m.tasks }

// Agents returns initialized agents in roster order.
func (m *Manager) Agents() []agent.Agent {
	out := make([]agent.Agent, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, *m.agents[name])
	}
	return out
}

// Findings returns a copy of the per-agent findings.
func (m *Manager) Findings() map[string]Finding {
	out := make(map[string]Finding, len(m.findings))
	for k, v := range m.findings {
		out[k] = v
	}
	return out
}

// Run executes the full session: initialize, clone, the analysis phases and the report.
func (m *Manager) Run(ctx context.Context) (res Result, err error) {
	logger := log.With().Str("session_id", m.id).Logger()
	if m.recorder != nil {
		if err := m.recorder.CreateSession(ctx, m.id, m.repo.RepoURL, m.repo.LocalPath); err != nil {
			return Result{}, fmt.Errorf("record session: %w", err)
		}
		defer func() {
			fin := db.Finish{
				Status:     db.StatusCompleted,
				ReportPath: res.ReportPath,
				TaskCount:  m.tasks.Count(),
				AgentCount: len(m.agents),
			}
			if err != nil {
				fin.Status = db.StatusFailed
			}
			if ferr := m.recorder.FinishSession(context.WithoutCancel(ctx), m.id, fin); ferr != nil {
				logger.Error().Err(ferr).Msg("failed to record session end")
			}
		}()
	}

	m.Initialize(ctx)
	if err := m.CloneRepository(ctx); err != nil {
		return Result{SessionID: m.id}, err
	}
	for _, phase := range Phases() {
		if err := m.ExecutePhase(ctx, phase); err != nil {
			return Result{SessionID: m.id}, err
		}
	}
	rep, path, err := m.GenerateReport(ctx)
	if err != nil {
		return Result{SessionID: m.id}, err
	}

	m.out.Banner("SESSION COMPLETE")
	m.out.Printf("\n✅ All phases completed successfully\n")
	m.out.Printf("📊 %d tasks executed\n", m.tasks.Count())
	m.out.Printf("🤖 %d agents deployed\n", len(m.agents))
	m.out.Printf("📄 Report generated: %s\n", report.FileName(m.id))

	logger.Info().Str("report", path).Dur("duration", m.now().Sub(m.start)).Msg("session finished")
	return Result{
		SessionID:  m.id,
		Report:     rep,
		ReportPath: path,
		TaskCount:  m.tasks.Count(),
		AgentCount: len(m.agents),
	}, nil
}

// Initialize prints the session banner and initializes every agent in the roster.
func (m *Manager) Initialize(ctx context.Context) {
	m.out.Banner(
		"MULTI-AGENT SESSION",
		"Repository: "+m.repo.RepoURL,
		"Session ID: "+m.id,
	)
	m.out.Println()
	for _, def := range agent.Roster() {
		if _, ok := m.agents[def.Name]; !ok {
			m.order = append(m.order, def.Name)
		}
		m.agents[def.Name] = agent.New(def)
		m.out.Printf("✅ Initialized: %s\n", def.Name)
	}
	m.out.Printf("\n📊 Total Agents Initialized: %d\n", len(m.agents))
	m.event(ctx, "agents_initialized", fmt.Sprintf("%d agents initialized", len(m.agents)), nil)
}

// CloneRepository prepares the workspace and the clone command without running it.
func (m *Manager) CloneRepository(ctx context.Context) error {
	m.out.Printf("\n🔄 Cloning repository...\n")
	if err := os.MkdirAll(m.repo.LocalPath, 0o755); err != nil {
		m.out.Printf("❌ Failed to clone repository: %v\n", err)
		return fmt.Errorf("create workspace: %w", err)
	}
	dest := filepath.Join(m.repo.LocalPath, "repo")
	cmd := git.CloneCommand(ctx, m.repo.RepoURL, dest)
	m.out.Printf("✅ Clone target prepared: %s (not executed: %s)\n", dest, git.CommandLine(cmd))
	m.repo.CloneStatus = true

	m.CreateTask(agent.RepositoryScout, "analyze_structure", "Analyze repository structure and create file map", "")
	m.event(ctx, "clone_prepared", "clone command prepared", map[string]any{"target": dest})
	return nil
}

// CreateTask appends a task for an agent.
func (m *Manager) CreateTask(agentName, taskType, description, priority string) *task.Task {
	return m.tasks.Create(agentName, taskType, description, priority)
}

// ExecutePhase registers a phase's tasks and simulates each agent in order.
func (m *Manager) ExecutePhase(ctx context.Context, phase Phase) error {
	m.out.Section(phase.Title)
	count := 0
	for _, step := range phase.Steps {
		for _, desc := range step.Tasks {
			m.CreateTask(step.Agent, step.TaskType, desc, "")
		}
		if err := m.simulate(ctx, step.Agent, step.Tasks); err != nil {
			return err
		}
		count += len(step.Tasks)
	}
	m.out.Printf("✅ %s\n", phase.Complete)
	m.event(ctx, "phase_completed", phase.Complete, map[string]any{"phase": phase.Number, "tasks": count})
	return nil
}

func (m *Manager) simulate(ctx context.Context, agentName string, tasks []string) error {
	def, ok := agent.Lookup(agentName)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAgent, agentName)
	}
	m.out.Printf("\n🤖 %s executing %d tasks...\n", agentName, len(tasks))
	for i, desc := range tasks {
		if err := m.sleep(ctx, m.delay); err != nil {
			return fmt.Errorf("%s interrupted: %w", agentName, err)
		}
		m.out.Printf("  [%d/%d] %s...\n", i+1, len(tasks), console.Truncate(desc, 50))
		log.Debug().Str("session_id", m.id).Str("agent", agentName).Str("role", def.Role).Int("index", i+1).Msg(desc)
	}
	m.findings[agentName] = Finding{
		CompletedTasks: len(tasks),
		Status:         agent.StatusCompleted,
		Timestamp:      m.now(),
	}
	m.tasks.CompleteAgent(agentName)
	if a, ok := m.agents[agentName]; ok {
		a.Complete()
	}
	return nil
}

// GenerateReport prints the report summary and writes it to the workspace.
func (m *Manager) GenerateReport(ctx context.Context) (report.Report, string, error) {
	m.out.Section("INITIAL ANALYSIS REPORT")
	rep := report.New(m.id, m.repo.RepoURL, m.start, m.now())
	report.Summary(m.out.Writer(), rep)

	path, err := report.Write(m.repo.LocalPath, rep)
	if err != nil {
		return report.Report{}, "", err
	}
	m.out.Printf("\n📄 Full report saved to: %s\n", path)
	m.event(ctx, "report_written", "report written", map[string]any{"path": path})
	return rep, path, nil
}

func (m *Manager) event(ctx context.Context, typ, message string, data map[string]any) {
	if m.recorder == nil {
		return
	}
	var dataJSON string
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			dataJSON = string(raw)
		}
	}
	if err := m.recorder.RecordEvent(ctx, m.id, typ, message, dataJSON); err != nil {
		log.Warn().Err(err).Str("session_id", m.id).Str("event", typ).Msg("failed to record event")
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
