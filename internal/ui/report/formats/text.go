// # internal/ui/report/formats/text.go
package formats

import (
	"fmt"
	"modfather/internal/engine/modularity"
	"strings"
)

// TextGenerator renders the modularization report as markdown-flavoured text.
type TextGenerator struct{}

func NewTextGenerator() *TextGenerator {
	return &TextGenerator{}
}

func severityIcon(s modularity.Severity) string {
	switch s {
	case modularity.SeverityLow:
		return "🟢"
	case modularity.SeverityMedium:
		return "🟡"
	case modularity.SeverityHigh:
		return "🔴"
	}
	return "⚪"
}

func (t *TextGenerator) Generate(report *modularity.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("nil report")
	}

	var b strings.Builder
	b.WriteString("# PHP Modularization Analysis Report\n\n")

	b.WriteString("## Overview\n\n")
	b.WriteString(fmt.Sprintf("- Total namespaces analyzed: %d\n", report.TotalNamespaces))
	b.WriteString(fmt.Sprintf("- Namespaces involved in cycles: %d\n", report.NamespacesInCycles))
	b.WriteString(fmt.Sprintf("- Cycles detected: %d\n\n", len(report.Cycles)))

	if len(report.Cycles) > 0 {
		t.writeCycles(&b, report)
	} else {
		b.WriteString("## ✅ No Circular Dependencies\n\n")
		b.WriteString("Great! Your namespace structure is acyclic, which supports clean modularization.\n\n")
	}

	t.writeModules(&b, report.ModuleSuggestions)
	return b.String(), nil
}

func (t *TextGenerator) writeCycles(b *strings.Builder, report *modularity.Report) {
	b.WriteString("## ⚠️  Circular Dependencies Detected\n\n")
	b.WriteString("Circular dependencies prevent clean module boundaries and should be resolved.\n\n")

	for i, cycle := range report.Cycles {
		b.WriteString(fmt.Sprintf("### Cycle #%d\n\n", i+1))
		b.WriteString(fmt.Sprintf("**Severity**: %s %s\n\n", severityIcon(cycle.Severity), cycle.Severity))
		b.WriteString(fmt.Sprintf("**Type**: %s\n\n", cycle.Shape))
		b.WriteString("**Namespaces involved**:\n")
		for _, ns := range cycle.Namespaces {
			b.WriteString(fmt.Sprintf("- `%s`\n", ns))
		}
		b.WriteString("\n")
	}

	b.WriteString("## 💡 Recommendations to Break Cycles\n\n")
	for i, rec := range report.Recommendations {
		b.WriteString(fmt.Sprintf("### Cycle #%d\n\n", i+1))
		b.WriteString(fmt.Sprintf("**Impact**: %s\n\n", rec.Impact))
		b.WriteString("**Suggestions**:\n\n")
		for _, suggestion := range rec.Suggestions {
			b.WriteString(fmt.Sprintf("- %s\n", suggestion))
		}
		b.WriteString("\n")
	}
}

func (t *TextGenerator) writeModules(b *strings.Builder, modules []modularity.ModuleSuggestion) {
	b.WriteString("## 📦 Suggested Module Groupings\n\n")
	b.WriteString("Modules are suggested based on top-level namespaces. Higher cohesion scores indicate better module candidates.\n\n")

	for i, module := range modules {
		name := module.Name
		if module.HasCycles {
			name = module.Prefix + " ⚠️ (contains cycles)"
		}
		b.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, name))
		b.WriteString(fmt.Sprintf("- **Classes**: %d\n", module.ClassCount))
		b.WriteString(fmt.Sprintf("- **Cohesion Score**: %.2f (higher is better)\n", module.Cohesion))
		b.WriteString(fmt.Sprintf("- **Internal Dependencies**: %d\n", module.InternalDeps))
		b.WriteString(fmt.Sprintf("- **External Dependencies**: %d\n", module.ExternalDeps))
		b.WriteString("\n**Namespaces**:\n")
		for _, ns := range module.Namespaces {
			b.WriteString(fmt.Sprintf("- `%s`\n", ns))
		}
		b.WriteString("\n")
	}
}
