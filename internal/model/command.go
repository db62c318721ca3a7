package model

// CommandKind is the single intent category assigned to a submitted input.
type CommandKind string

const (
	KindAddress      CommandKind = "address"
	KindNavigation   CommandKind = "navigation"
	KindDomainAction CommandKind = "domain_action"
	KindSearch       CommandKind = "search"
	KindHelp         CommandKind = "help"
	KindCreate       CommandKind = "create"
	KindUnknown      CommandKind = "unknown"
)

// Tab identifies which dashboard tab the command bar was submitted from.
type Tab string

const (
	TabOverview     Tab = "overview"
	TabOperations   Tab = "operations"
	TabIntelligence Tab = "intelligence"
)

// EntityType is the fixed vocabulary for creation commands.
type EntityType string

const (
	EntityProperty  EntityType = "property"
	EntityTenant    EntityType = "tenant"
	EntityWorkOrder EntityType = "work_order"
	EntityExpense   EntityType = "expense"
	EntityDocument  EntityType = "document"
	EntityUnknown   EntityType = "unknown"
)

// ClassifiedCommand is the classifier's output. Exactly one payload field is
// set, matching Kind; the rest stay nil.
type ClassifiedCommand struct {
	Kind       CommandKind          `json:"kind"`
	RawInput   string               `json:"raw_input"`
	Confidence float64              `json:"confidence"`
	Address    *RecognizedAddress   `json:"address,omitempty"`
	Navigation *NavigationPayload   `json:"navigation,omitempty"`
	Action     *DomainActionPayload `json:"action,omitempty"`
	Search     *SearchPayload       `json:"search,omitempty"`
	Help       *HelpPayload         `json:"help,omitempty"`
	Create     *CreatePayload       `json:"create,omitempty"`
}

// NavigationPayload names the tab or screen the user asked for.
type NavigationPayload struct {
	Target string `json:"target"`
}

// DomainActionPayload names a dashboard action to run; the caller performs
// the actual computation.
type DomainActionPayload struct {
	Action string `json:"action"`
	Tab    Tab    `json:"tab,omitempty"`
}

// SearchPayload carries a free-form query (the universal fallback).
type SearchPayload struct {
	Query string `json:"query"`
}

// HelpPayload carries the text the user wants help with.
type HelpPayload struct {
	Topic string `json:"topic"`
}

// CreatePayload names the entity type the user asked to create.
type CreatePayload struct {
	EntityType EntityType `json:"entity_type"`
}

// EffectType tags the side-effect descriptor produced by the executor.
type EffectType string

const (
	EffectAddressDetected EffectType = "address_detected"
	EffectNavigate        EffectType = "navigate"
	EffectRunAction       EffectType = "run_action"
	EffectSearch          EffectType = "search"
	EffectShowHelp        EffectType = "show_help"
	EffectCreateEntity    EffectType = "create_entity"
)

// Effect describes what the caller should do with a completed command. The
// executor performs no UI work itself. Exactly one payload field is set,
// matching Type.
type Effect struct {
	Type       EffectType              `json:"type"`
	Address    *RecognizedAddress      `json:"address,omitempty"`
	Preview    *AggregatedPropertyData `json:"preview,omitempty"`
	Navigation *NavigationPayload      `json:"navigation,omitempty"`
	Action     *DomainActionPayload    `json:"action,omitempty"`
	Search     *SearchPayload          `json:"search,omitempty"`
	Help       *HelpPayload            `json:"help,omitempty"`
	Create     *CreatePayload          `json:"create,omitempty"`
}

// CommandResult is the outcome of executing one classified command.
// A failed result always carries a diagnostic message.
type CommandResult struct {
	Succeeded bool    `json:"succeeded"`
	Message   string  `json:"message"`
	Effect    *Effect `json:"effect,omitempty"`
}
