package service

import (
	"context"
	"fmt"

	"propboard/internal/model"
)

// AddressPreviewer fetches public data for a recognized address so the UI
// can show a preview before the user confirms property creation. Optional:
// without one, an address command only signals that an address was detected.
type AddressPreviewer interface {
	Preview(ctx context.Context, address string) (*model.AggregatedPropertyData, error)
}

// CommandExecutor turns a classified command into a result describing the
// effect to apply. It performs no UI work and never lets a downstream
// failure escape as an error.
type CommandExecutor struct {
	previewer AddressPreviewer
}

// NewCommandExecutor creates an executor. previewer may be nil; address
// commands then carry no data preview.
func NewCommandExecutor(previewer AddressPreviewer) *CommandExecutor {
	return &CommandExecutor{previewer: previewer}
}

// Execute produces a CommandResult for the command. Failures from downstream
// collaborators are converted into Succeeded=false with the failure message.
func (e *CommandExecutor) Execute(ctx context.Context, cmd *model.ClassifiedCommand) *model.CommandResult {
	switch cmd.Kind {
	case model.KindAddress:
		return e.executeAddress(ctx, cmd)

	case model.KindNavigation:
		return &model.CommandResult{
			Succeeded: true,
			Message:   fmt.Sprintf("Navigating to %s", cmd.Navigation.Target),
			Effect: &model.Effect{
				Type:       model.EffectNavigate,
				Navigation: cmd.Navigation,
			},
		}

	case model.KindDomainAction:
		return &model.CommandResult{
			Succeeded: true,
			Message:   fmt.Sprintf("Running %s", cmd.Action.Action),
			Effect: &model.Effect{
				Type:   model.EffectRunAction,
				Action: cmd.Action,
			},
		}

	case model.KindSearch:
		return &model.CommandResult{
			Succeeded: true,
			Message:   fmt.Sprintf("Searching for %q", cmd.Search.Query),
			Effect: &model.Effect{
				Type:   model.EffectSearch,
				Search: cmd.Search,
			},
		}

	case model.KindHelp:
		return &model.CommandResult{
			Succeeded: true,
			Message:   "Showing help",
			Effect: &model.Effect{
				Type: model.EffectShowHelp,
				Help: cmd.Help,
			},
		}

	case model.KindCreate:
		return &model.CommandResult{
			Succeeded: true,
			Message:   fmt.Sprintf("Creating %s", cmd.Create.EntityType),
			Effect: &model.Effect{
				Type:   model.EffectCreateEntity,
				Create: cmd.Create,
			},
		}

	default:
		return &model.CommandResult{
			Succeeded: false,
			Message:   fmt.Sprintf("Could not understand %q", cmd.RawInput),
		}
	}
}

// executeAddress signals that an address was detected. Property creation is
// a separate, user-confirmed step: recognition can be wrong, and creation
// pulls paid third-party data.
func (e *CommandExecutor) executeAddress(ctx context.Context, cmd *model.ClassifiedCommand) *model.CommandResult {
	effect := &model.Effect{
		Type:    model.EffectAddressDetected,
		Address: cmd.Address,
	}

	if e.previewer != nil {
		preview, err := e.previewer.Preview(ctx, cmd.Address.Formatted)
		if err != nil {
			return &model.CommandResult{
				Succeeded: false,
				Message:   fmt.Sprintf("Address lookup failed: %v", err),
			}
		}
		effect.Preview = preview
	}

	return &model.CommandResult{
		Succeeded: true,
		Message:   fmt.Sprintf("Address detected: %s", cmd.Address.Formatted),
		Effect:    effect,
	}
}
