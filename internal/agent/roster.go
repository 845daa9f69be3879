package agent

// Agent names in roster order.
const (
	RepositoryScout          = "repository_scout"
	CodeArchaeologist        = "code_archaeologist"
	CodeAnalyzer             = "code_analyzer"
	DocumentationInspector   = "documentation_inspector"
	DependencyAuditor        = "dependency_auditor"
	BusinessLogicInterpreter = "business_logic_interpreter"
	APISurfaceMapper         = "api_surface_mapper"
	RefactoringStrategist    = "refactoring_strategist"
	TestEngineer             = "test_engineer"
	FeatureDeveloper         = "feature_developer"
	CodeReviewer             = "code_reviewer"
	PerformanceMonitor       = "performance_monitor"
	SessionOrchestrator      = "session_orchestrator"
)

var roster = []Definition{
	{
		Name:         RepositoryScout,
		Role:         "Repository reconnaissance and mapping",
		Capabilities: []string{"git_operations", "file_traversal", "tech_detection"},
		Phase:        1,
	},
	{
		Name:         CodeArchaeologist,
		Role:         "Historical and architectural analysis",
		Capabilities: []string{"git_history", "pattern_recognition", "architecture_analysis"},
		Phase:        1,
	},
	{
		Name:         CodeAnalyzer,
		Role:         "Static code analysis and quality assessment",
		Capabilities: []string{"static_analysis", "complexity_calculation", "security_scan"},
		Phase:        2,
	},
	{
		Name:         DocumentationInspector,
		Role:         "Documentation analysis and assessment",
		Capabilities: []string{"doc_parsing", "coverage_analysis", "gap_identification"},
		Phase:        2,
	},
	{
		Name:         DependencyAuditor,
		Role:         "Dependency and package management analysis",
		Capabilities: []string{"dependency_analysis", "vulnerability_scan", "version_check"},
		Phase:        2,
	},
	{
		Name:         BusinessLogicInterpreter,
		Role:         "Understanding application purpose and flow",
		Capabilities: []string{"flow_analysis", "algorithm_understanding", "domain_modeling"},
		Phase:        3,
	},
	{
		Name:         APISurfaceMapper,
		Role:         "API and interface analysis",
		Capabilities: []string{"endpoint_detection", "interface_documentation", "integration_mapping"},
		Phase:        3,
	},
	{
		Name:         RefactoringStrategist,
		Role:         "Code improvement and refactoring planning",
		Capabilities: []string{"pattern_matching", "optimization_strategies", "migration_planning"},
		Phase:        4,
	},
	{
		Name:         TestEngineer,
		Role:         "Testing strategy and implementation",
		Capabilities: []string{"coverage_analysis", "test_generation", "mock_creation"},
		Phase:        4,
	},
	{
		Name:         FeatureDeveloper,
		Role:         "New feature implementation and enhancement",
		Capabilities: []string{"code_generation", "pattern_adherence", "integration_planning"},
		Phase:        4,
	},
	{
		Name:         CodeReviewer,
		Role:         "Automated code review and feedback",
		Capabilities: []string{"change_analysis", "standard_enforcement", "issue_detection"},
		Phase:        5,
	},
	{
		Name:         PerformanceMonitor,
		Role:         "Performance analysis and optimization",
		Capabilities: []string{"profiling", "bottleneck_detection", "resource_analysis"},
		Phase:        5,
	},
	{
		Name:         SessionOrchestrator,
		Role:         "Multi-agent coordination and workflow management",
		Capabilities: []string{"workflow_orchestration", "task_scheduling", "result_aggregation"},
		Phase:        6,
	},
}
