package service

import (
	"testing"

	"propboard/internal/model"
)

func newTestClassifier() *CommandClassifier {
	return NewCommandClassifier(NewAddressRecognizer())
}

func TestClassifier_AddressPreemptsEverything(t *testing.T) {
	classifier := newTestClassifier()

	// An address wins on every tab, even when the input could also match
	// nothing or look like a search.
	for _, tab := range []model.Tab{model.TabOverview, model.TabOperations, model.TabIntelligence} {
		cmd := classifier.Classify("123 Main St, Springfield, IL 62704", tab)

		if cmd.Kind != model.KindAddress {
			t.Errorf("tab %s: Kind = %s, want %s", tab, cmd.Kind, model.KindAddress)
		}
		if cmd.Address == nil {
			t.Fatalf("tab %s: Address payload is nil", tab)
		}
		if !cmd.Address.IsAddress {
			t.Errorf("tab %s: address payload not marked as address", tab)
		}
	}
}

func TestClassifier_TabKeywords(t *testing.T) {
	classifier := newTestClassifier()

	tests := []struct {
		name           string
		input          string
		tab            model.Tab
		wantKind       model.CommandKind
		wantAction     string
		wantConfidence float64
	}{
		{
			name:           "maintenance on operations tab",
			input:          "schedule maintenance for unit 4",
			tab:            model.TabOperations,
			wantKind:       model.KindDomainAction,
			wantAction:     "schedule_maintenance",
			wantConfidence: 0.9,
		},
		{
			name:     "maintenance on overview tab falls through to search",
			input:    "schedule maintenance for unit 4",
			tab:      model.TabOverview,
			wantKind: model.KindSearch,
		},
		{
			name:           "cash flow on overview tab",
			input:          "what is my cash flow",
			tab:            model.TabOverview,
			wantKind:       model.KindDomainAction,
			wantAction:     "show_cash_flow",
			wantConfidence: 0.85,
		},
		{
			name:           "market on intelligence tab",
			input:          "run a market analysis",
			tab:            model.TabIntelligence,
			wantKind:       model.KindDomainAction,
			wantAction:     "run_market_analysis",
			wantConfidence: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := classifier.Classify(tt.input, tt.tab)

			if cmd.Kind != tt.wantKind {
				t.Fatalf("Kind = %s, want %s", cmd.Kind, tt.wantKind)
			}
			if tt.wantKind != model.KindDomainAction {
				return
			}
			if cmd.Action == nil {
				t.Fatal("Action payload is nil")
			}
			if cmd.Action.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", cmd.Action.Action, tt.wantAction)
			}
			if cmd.Action.Tab != tt.tab {
				t.Errorf("Tab = %s, want %s", cmd.Action.Tab, tt.tab)
			}
			if cmd.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %.2f, want %.2f", cmd.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifier_GeneralKeywords(t *testing.T) {
	classifier := newTestClassifier()

	tests := []struct {
		name           string
		input          string
		wantKind       model.CommandKind
		wantConfidence float64
	}{
		{name: "navigation", input: "go to intelligence", wantKind: model.KindNavigation, wantConfidence: 0.9},
		{name: "navigation via show", input: "show me the overview", wantKind: model.KindNavigation, wantConfidence: 0.9},
		{name: "help", input: "help", wantKind: model.KindHelp, wantConfidence: 0.8},
		{name: "help via how prefix", input: "how do I export a report", wantKind: model.KindHelp, wantConfidence: 0.8},
		{name: "create", input: "add tenant John", wantKind: model.KindCreate, wantConfidence: 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := classifier.Classify(tt.input, model.TabOverview)

			if cmd.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", cmd.Kind, tt.wantKind)
			}
			if cmd.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %.2f, want %.2f", cmd.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifier_CreateEntityType(t *testing.T) {
	classifier := newTestClassifier()

	tests := []struct {
		input string
		want  model.EntityType
	}{
		{input: "create property", want: model.EntityProperty},
		{input: "add a new house", want: model.EntityProperty},
		{input: "new work order", want: model.EntityWorkOrder},
		{input: "add expense for plumbing", want: model.EntityExpense},
		{input: "create document", want: model.EntityDocument},
		{input: "create something", want: model.EntityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := classifier.Classify(tt.input, model.TabOverview)

			if cmd.Kind != model.KindCreate {
				t.Fatalf("Kind = %s, want %s", cmd.Kind, model.KindCreate)
			}
			if cmd.Create == nil {
				t.Fatal("Create payload is nil")
			}
			if cmd.Create.EntityType != tt.want {
				t.Errorf("EntityType = %s, want %s", cmd.Create.EntityType, tt.want)
			}
		})
	}
}

func TestClassifier_SearchFallback(t *testing.T) {
	classifier := newTestClassifier()

	for _, input := range []string{"xyz123 not anything", "xyzzy plugh"} {
		cmd := classifier.Classify(input, model.TabOverview)

		if cmd.Kind != model.KindSearch {
			t.Fatalf("Classify(%q).Kind = %s, want %s", input, cmd.Kind, model.KindSearch)
		}
		if cmd.Confidence != 0.5 {
			t.Errorf("Classify(%q).Confidence = %.2f, want 0.50", input, cmd.Confidence)
		}
		if cmd.Search == nil || cmd.Search.Query != input {
			t.Errorf("Search payload = %+v, want query %q", cmd.Search, input)
		}
	}
}

func TestClassifier_EmptyInput(t *testing.T) {
	classifier := newTestClassifier()

	for _, input := range []string{"", "   "} {
		cmd := classifier.Classify(input, model.TabOverview)

		if cmd.Kind != model.KindUnknown {
			t.Errorf("Classify(%q).Kind = %s, want %s", input, cmd.Kind, model.KindUnknown)
		}
		if cmd.Confidence != 0 {
			t.Errorf("Classify(%q).Confidence = %.2f, want 0", input, cmd.Confidence)
		}
	}
}
