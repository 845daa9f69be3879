package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// Summary prints the console summary of a report.
func Summary(w io.Writer, r Report) {
	date := r.AnalysisDate
	if len(date) > 10 {
		date = date[:10]
	}
	fmt.Fprintf(w, "\n📊 Repository: %s\n", r.Repository)
	fmt.Fprintf(w, "📅 Date: %s\n", date)
	fmt.Fprintf(w, "⏱️  Duration: %.1f minutes\n", r.DurationMinutes)

	fmt.Fprintf(w, "\n📁 Structure:\n")
	fmt.Fprintf(w, "  Files: %d\n", r.RepositoryStructure.TotalFiles)
	fmt.Fprintf(w, "  Directories: %d\n", r.RepositoryStructure.TotalDirectories)
	fmt.Fprintf(w, "  Main Language: %s\n", r.RepositoryStructure.MainLanguage)
	fmt.Fprintf(w, "  Lines of Code: %s\n", numbers.Sprintf("%d", r.RepositoryStructure.LOC))

	fmt.Fprintf(w, "\n🎯 Code Quality:\n")
	fmt.Fprintf(w, "  Complexity: %g/10\n", r.CodeQuality.ComplexityScore)
	fmt.Fprintf(w, "  Maintainability: %d/100\n", r.CodeQuality.MaintainabilityIndex)
	fmt.Fprintf(w, "  Test Coverage: %s\n", r.CodeQuality.TestCoverage)
	fmt.Fprintf(w, "  Documentation: %s\n", r.CodeQuality.DocumentationCoverage)

	fmt.Fprintf(w, "\n⚠️  Issues Found:\n")
	fmt.Fprintf(w, "  Outdated Dependencies: %d\n", r.Dependencies.Outdated)
	fmt.Fprintf(w, "  Security Vulnerabilities: %d\n", r.Dependencies.SecurityVulnerabilities)
	fmt.Fprintf(w, "  Critical Recommendations: %d\n", len(r.Recommendations.Critical))

	fmt.Fprintf(w, "\n🎯 Top Recommendations:\n")
	top := r.Recommendations.Critical
	if len(top) > 3 {
		top = top[:3]
	}
	for _, rec := range top {
		fmt.Fprintf(w, "  • %s\n", rec)
	}
}

// Markdown renders the full report as a markdown document.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis report `%s`\n\n", r.SessionID)
	fmt.Fprintf(&b, "- **Repository:** %s\n", r.Repository)
	fmt.Fprintf(&b, "- **Date:** %s\n", r.AnalysisDate)
	fmt.Fprintf(&b, "- **Duration:** %.1f minutes\n\n", r.DurationMinutes)

	b.WriteString("## Structure\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Files | %d |\n", r.RepositoryStructure.TotalFiles)
	fmt.Fprintf(&b, "| Directories | %d |\n", r.RepositoryStructure.TotalDirectories)
	fmt.Fprintf(&b, "| Languages | %s |\n", strings.Join(r.RepositoryStructure.LanguagesDetected, ", "))
	fmt.Fprintf(&b, "| Main language | %s |\n", r.RepositoryStructure.MainLanguage)
	fmt.Fprintf(&b, "| Lines of code | %s |\n\n", numbers.Sprintf("%d", r.RepositoryStructure.LOC))

	b.WriteString("## Technology stack\n\n")
	stack := []struct {
		name  string
		items []string
	}{
		{"Backend", r.TechnologyStack.Backend},
		{"Frontend", r.TechnologyStack.Frontend},
		{"Database", r.TechnologyStack.Database},
		{"Testing", r.TechnologyStack.Testing},
		{"Deployment", r.TechnologyStack.Deployment},
	}
	for _, layer := range stack {
		fmt.Fprintf(&b, "- **%s:** %s\n", layer.name, strings.Join(layer.items, ", "))
	}

	b.WriteString("\n## Code quality\n\n")
	fmt.Fprintf(&b, "- Complexity: %g/10\n", r.CodeQuality.ComplexityScore)
	fmt.Fprintf(&b, "- Maintainability: %d/100\n", r.CodeQuality.MaintainabilityIndex)
	fmt.Fprintf(&b, "- Test coverage: %s\n", r.CodeQuality.TestCoverage)
	fmt.Fprintf(&b, "- Documentation coverage: %s\n", r.CodeQuality.DocumentationCoverage)
	fmt.Fprintf(&b, "- Technical debt: %s\n", r.CodeQuality.TechnicalDebtScore)

	b.WriteString("\n## Dependencies\n\n")
	fmt.Fprintf(&b, "- Total: %d\n", r.Dependencies.TotalDependencies)
	fmt.Fprintf(&b, "- Outdated: %d\n", r.Dependencies.Outdated)
	fmt.Fprintf(&b, "- Security vulnerabilities: %d\n", r.Dependencies.SecurityVulnerabilities)
	fmt.Fprintf(&b, "- Unused: %d\n", r.Dependencies.Unused)

	b.WriteString("\n## Recommendations\n")
	tiers := []struct {
		name  string
		items []string
	}{
		{"Critical", r.Recommendations.Critical},
		{"High", r.Recommendations.High},
		{"Medium", r.Recommendations.Medium},
	}
	for _, tier := range tiers {
		fmt.Fprintf(&b, "\n### %s\n\n", tier.name)
		for _, item := range tier.items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	b.WriteString("\n## Next steps\n\n")
	for i, step := range r.NextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}
