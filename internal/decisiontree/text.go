// internal/decisiontree/text.go
package decisiontree

import (
	"fmt"
	"strings"
)

const summaryTemplate = "Based on your answers, we recommend a stack for %s. " +
	"The selected technologies balance performance, productivity and maintainability."

const defaultAppLabel = "an application"

var appTypeLabels = map[string]string{
	"web":       "a modern web application",
	"mobile":    "a mobile application",
	"api":       "a backend service/API",
	"desktop":   "a desktop application",
	"fullstack": "a full-stack application",
}

// Summary composes the one-sentence overview of the answers. It does not
// depend on where traversal ended.
func Summary(answers AnswerSet) string {
	label, ok := appTypeLabels[answers.value(KeyAppType)]
	if !ok {
		label = defaultAppLabel
	}
	parts := []string{label}

	switch {
	case answers.oneOf(KeyScale, "large", "xlarge"):
		parts = append(parts, "with high scalability")
	case answers.oneOf(KeyScale, "small"):
		parts = append(parts, "with a small scale")
	}

	if answers.oneOf(KeyTimeline, "fast") {
		parts = append(parts, "and rapid development")
	}

	if answers.oneOf(KeyBudget, "minimal", "low") {
		parts = append(parts, "optimized for cost")
	}

	return fmt.Sprintf(summaryTemplate, strings.Join(parts, ", "))
}

type considerationRule struct {
	name  string
	when  func(AnswerSet) bool
	notes []string
}

// considerationRules are evaluated in order; they are independent, so any
// number of them may fire.
var considerationRules = []considerationRule{
	{
		name: "audience-public",
		when: func(a AnswerSet) bool { return a.oneOf(KeyAudience, "public") },
		notes: []string{
			"Implement robust security measures (rate limiting, input validation, HTTPS)",
			"Consider SEO and accessibility from the start",
		},
	},
	{
		name: "audience-internal",
		when: func(a AnswerSet) bool { return a.oneOf(KeyAudience, "internal") },
		notes: []string{
			"Integrate with corporate authentication systems (SSO, LDAP)",
		},
	},
	{
		name: "scale-large",
		when: func(a AnswerSet) bool { return a.oneOf(KeyScale, "large", "xlarge") },
		notes: []string{
			"Plan a caching and CDN strategy from the start",
			"Implement comprehensive monitoring and observability",
			"Consider a multi-region architecture for global latency",
		},
	},
	{
		name: "complexity-high",
		when: func(a AnswerSet) bool { return a.oneOf(KeyComplexity, "complex", "very-complex") },
		notes: []string{
			"Document the architecture and technical decisions in detail",
			"Implement comprehensive testing (unit, integration, e2e)",
			"Establish code review and CI/CD practices from the start",
		},
	},
	{
		name: "team-large",
		when: func(a AnswerSet) bool { return a.oneOf(KeyTeamSize, "large") },
		notes: []string{
			"Define clear code conventions and style guides",
			"Use a monorepo if you have several related projects",
		},
	},
	{
		name: "app-mobile",
		when: func(a AnswerSet) bool { return a.oneOf(KeyAppType, "mobile") },
		notes: []string{
			"Plan the app update and versioning strategy",
			"Consider an offline-first architecture for a better UX",
		},
	},
}

// Considerations returns the advisory notes for answers in rule order.
// The result is never nil.
func Considerations(answers AnswerSet) []string {
	out := make([]string, 0, 8)
	for _, rule := range considerationRules {
		if rule.when(answers) {
			out = append(out, rule.notes...)
		}
	}
	return out
}

// FiredRules returns the names of the consideration rules that apply.
func FiredRules(answers AnswerSet) []string {
	var names []string
	for _, rule := range considerationRules {
		if rule.when(answers) {
			names = append(names, rule.name)
		}
	}
	return names
}
