package service

import (
	"strings"

	"propboard/internal/model"
)

// Stage acceptance thresholds. A stage only commits a result when its
// confidence clears the threshold; otherwise the next stage runs.
const (
	tabRuleThreshold     = 0.7
	generalRuleThreshold = 0.6
	searchConfidence     = 0.5
)

// keywordRule maps a substring to a named dashboard action.
type keywordRule struct {
	keyword    string
	action     string
	confidence float64
}

// tabRules are the context-specific keyword tables, one per dashboard tab.
// Rules are checked in order; the first keyword found in the input wins.
var tabRules = map[model.Tab][]keywordRule{
	model.TabOverview: {
		{keyword: "health", action: "show_health_score", confidence: 0.9},
		{keyword: "score", action: "show_health_score", confidence: 0.85},
		{keyword: "equity", action: "show_equity", confidence: 0.85},
		{keyword: "cash flow", action: "show_cash_flow", confidence: 0.85},
		{keyword: "summary", action: "show_summary", confidence: 0.8},
	},
	model.TabOperations: {
		{keyword: "maintenance", action: "schedule_maintenance", confidence: 0.9},
		{keyword: "repair", action: "schedule_maintenance", confidence: 0.85},
		{keyword: "work order", action: "open_work_orders", confidence: 0.9},
		{keyword: "lease", action: "show_lease", confidence: 0.8},
		{keyword: "tenant", action: "show_tenants", confidence: 0.8},
		{keyword: "expense", action: "show_expenses", confidence: 0.8},
	},
	model.TabIntelligence: {
		{keyword: "market", action: "run_market_analysis", confidence: 0.9},
		{keyword: "rent", action: "run_rent_analysis", confidence: 0.85},
		{keyword: "comps", action: "show_comparables", confidence: 0.85},
		{keyword: "forecast", action: "run_forecast", confidence: 0.8},
		{keyword: "trend", action: "show_trends", confidence: 0.8},
	},
}

// navigationTargets are the screens a navigation phrase can point at.
var navigationTargets = []string{"overview", "operations", "intelligence", "home"}

// entityVocabulary maps creation keywords to the fixed entity-type set.
var entityVocabulary = []struct {
	keyword string
	entity  model.EntityType
}{
	{"property", model.EntityProperty},
	{"house", model.EntityProperty},
	{"home", model.EntityProperty},
	{"tenant", model.EntityTenant},
	{"work order", model.EntityWorkOrder},
	{"workorder", model.EntityWorkOrder},
	{"expense", model.EntityExpense},
	{"document", model.EntityDocument},
}

// CommandClassifier assigns the single best-fit command kind to free text,
// given the active dashboard tab. Stages run in a strict order and the
// first to clear its threshold wins.
type CommandClassifier struct {
	recognizer *AddressRecognizer
}

// NewCommandClassifier creates a classifier backed by the given recognizer.
func NewCommandClassifier(recognizer *AddressRecognizer) *CommandClassifier {
	return &CommandClassifier{recognizer: recognizer}
}

// Classify never fails: any input that clears no rule falls through to the
// universal Search stage. Empty input short-circuits to Unknown.
func (c *CommandClassifier) Classify(text string, activeTab model.Tab) *model.ClassifiedCommand {
	raw := text
	text = strings.TrimSpace(text)
	if text == "" {
		return &model.ClassifiedCommand{
			Kind:     model.KindUnknown,
			RawInput: raw,
		}
	}

	// Stage 1: address detection pre-empts all command interpretation.
	if recognized := c.recognizer.Recognize(text); recognized.Confidence > RoutingThreshold {
		return &model.ClassifiedCommand{
			Kind:       model.KindAddress,
			RawInput:   raw,
			Confidence: recognized.Confidence,
			Address:    recognized,
		}
	}

	lower := strings.ToLower(text)

	// Stage 2: context-specific keyword rules for the active tab.
	if cmd := classifyTabKeywords(raw, lower, activeTab); cmd != nil {
		return cmd
	}

	// Stage 3: tab-independent rules (navigation, help, creation).
	if cmd := classifyGeneralKeywords(raw, lower); cmd != nil {
		return cmd
	}

	// Stage 4: universal fallback, never fails.
	return &model.ClassifiedCommand{
		Kind:       model.KindSearch,
		RawInput:   raw,
		Confidence: searchConfidence,
		Search:     &model.SearchPayload{Query: text},
	}
}

func classifyTabKeywords(raw, lower string, activeTab model.Tab) *model.ClassifiedCommand {
	for _, rule := range tabRules[activeTab] {
		if !strings.Contains(lower, rule.keyword) {
			continue
		}
		if rule.confidence <= tabRuleThreshold {
			continue
		}
		return &model.ClassifiedCommand{
			Kind:       model.KindDomainAction,
			RawInput:   raw,
			Confidence: rule.confidence,
			Action: &model.DomainActionPayload{
				Action: rule.action,
				Tab:    activeTab,
			},
		}
	}
	return nil
}

func classifyGeneralKeywords(raw, lower string) *model.ClassifiedCommand {
	// Navigation phrases at 0.9.
	if strings.Contains(lower, "go to") || strings.Contains(lower, "navigate") || strings.Contains(lower, "show") {
		for _, target := range navigationTargets {
			if strings.Contains(lower, target) {
				return &model.ClassifiedCommand{
					Kind:       model.KindNavigation,
					RawInput:   raw,
					Confidence: 0.9,
					Navigation: &model.NavigationPayload{Target: target},
				}
			}
		}
	}

	// Help phrases at 0.8.
	if strings.Contains(lower, "help") || strings.HasPrefix(lower, "how") || strings.HasPrefix(lower, "what") {
		return &model.ClassifiedCommand{
			Kind:       model.KindHelp,
			RawInput:   raw,
			Confidence: 0.8,
			Help:       &model.HelpPayload{Topic: strings.TrimSpace(lower)},
		}
	}

	// Creation phrases at 0.7, with the target entity extracted from the
	// fixed vocabulary.
	if strings.HasPrefix(lower, "create") || strings.HasPrefix(lower, "add") || strings.HasPrefix(lower, "new") {
		return &model.ClassifiedCommand{
			Kind:       model.KindCreate,
			RawInput:   raw,
			Confidence: 0.7,
			Create:     &model.CreatePayload{EntityType: extractEntityType(lower)},
		}
	}

	return nil
}

func extractEntityType(lower string) model.EntityType {
	for _, entry := range entityVocabulary {
		if strings.Contains(lower, entry.keyword) {
			return entry.entity
		}
	}
	return model.EntityUnknown
}
