package session

import "github.com/metalagman/maimp/internal/agent"

// Step is one agent's fixed task list within a phase.
type Step struct {
	Agent    string
	TaskType string
	Tasks    []string
}

// Phase is a fixed group of steps executed in order.
type Phase struct {
	Number   int
	Title    string
	Complete string
	Steps    []Step
}

// Phases returns the analysis phases in execution order.
func Phases() []Phase {
	return []Phase{
		{
			Number:   1,
			Title:    "PHASE 1: REPOSITORY DISCOVERY",
			Complete: "Phase 1 Discovery Complete",
			Steps: []Step{
				{
					Agent:    agent.RepositoryScout,
					TaskType: "discovery",
					Tasks: []string{
						"Map directory structure",
						"Identify file types and technologies",
						"Detect package dependencies",
						"Locate configuration files",
						"Identify entry points",
						"Generate repository statistics",
					},
				},
				{
					Agent:    agent.CodeArchaeologist,
					TaskType: "historical_analysis",
					Tasks: []string{
						"Analyze git history",
						"Identify core contributors",
						"Detect architectural patterns",
						"Map code evolution",
						"Identify technical debt",
						"Document coding standards",
					},
				},
			},
		},
		{
			Number:   2,
			Title:    "PHASE 2: CODE ANALYSIS",
			Complete: "Phase 2 Analysis Complete",
			Steps: []Step{
				{
					Agent:    agent.CodeAnalyzer,
					TaskType: "analysis",
					Tasks: []string{
						"Perform static analysis",
						"Identify code quality issues",
						"Analyze complexity",
						"Check security vulnerabilities",
						"Assess test coverage",
					},
				},
				{
					Agent:    agent.DocumentationInspector,
					TaskType: "analysis",
					Tasks: []string{
						"Locate all documentation",
						"Assess completeness",
						"Identify undocumented components",
						"Check for outdated docs",
						"Analyze comment quality",
					},
				},
				{
					Agent:    agent.DependencyAuditor,
					TaskType: "analysis",
					Tasks: []string{
						"Analyze dependency files",
						"Check for outdated packages",
						"Identify vulnerabilities",
						"Detect unused dependencies",
						"Analyze conflicts",
					},
				},
			},
		},
		{
			Number:   3,
			Title:    "PHASE 3: UNDERSTANDING",
			Complete: "Phase 3 Understanding Complete",
			Steps: []Step{
				{
					Agent:    agent.BusinessLogicInterpreter,
					TaskType: "understanding",
					Tasks: []string{
						"Identify core business logic",
						"Map data flow",
						"Document key algorithms",
						"Identify domain logic",
						"Create flow diagrams",
					},
				},
				{
					Agent:    agent.APISurfaceMapper,
					TaskType: "understanding",
					Tasks: []string{
						"Identify API endpoints",
						"Document request/response formats",
						"Map integrations",
						"Analyze authentication",
						"Document API versioning",
					},
				},
			},
		},
	}
}
