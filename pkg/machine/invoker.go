package machine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danl5/gofsmagent/pkg/model"
)

// NewInvoker creates an invoker over the given engine.
func NewInvoker(engine model.Engine, resolver *Resolver, logger *slog.Logger) *Invoker {
	return &Invoker{
		engine:   engine,
		resolver: resolver,
		logger:   logger.With("component", "invoker"),
	}
}

// Invoker wraps the engine's firing operations with input validation and
// structured outcome reporting. Every failure mode is reported as an
// outcome value, nothing propagates as a fault across the adapter
// boundary. The engine is never touched on empty or unresolved input.
type Invoker struct {
	engine   model.Engine
	resolver *Resolver
	logger   *slog.Logger
}

// Transition fires the named trigger after checking that it is permitted
// from the current state.
func (i *Invoker) Transition(ctx context.Context, name string) model.Outcome {
	trigger, outcome, ok := i.prepare(name)
	if !ok {
		return outcome
	}

	if !i.engine.CanFire(trigger) {
		i.logger.Debug("trigger not permitted", "trigger", trigger.Name(), "state", i.engine.Current())
		return model.Outcome{
			Kind:      model.OutcomeGuardRejected,
			Trigger:   trigger.Name(),
			State:     i.engine.Current(),
			Permitted: triggerNames(i.engine.PermittedTriggers()),
		}
	}

	return i.fire(ctx, trigger)
}

// FireTrigger fires the named trigger without the permission pre-check.
// A rejection raised by the engine during the fire itself is caught and
// rendered with the engine's own detail, it does not reach the caller as
// a fault.
func (i *Invoker) FireTrigger(ctx context.Context, name string) model.Outcome {
	trigger, outcome, ok := i.prepare(name)
	if !ok {
		return outcome
	}
	return i.fire(ctx, trigger)
}

// CanFire is the dry-run counterpart of Transition: same resolution
// rules, no mutation. Repeated calls with no intervening fire return
// identical outcomes.
func (i *Invoker) CanFire(name string) model.Outcome {
	trigger, outcome, ok := i.prepare(name)
	if !ok {
		return outcome
	}

	if !i.engine.CanFire(trigger) {
		return model.Outcome{
			Kind:      model.OutcomeGuardRejected,
			Trigger:   trigger.Name(),
			State:     i.engine.Current(),
			Permitted: triggerNames(i.engine.PermittedTriggers()),
		}
	}

	return model.Outcome{
		Kind:    model.OutcomeCanFire,
		Trigger: trigger.Name(),
		State:   i.engine.Current(),
	}
}

func (i *Invoker) prepare(name string) (model.Trigger, model.Outcome, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, model.Outcome{Kind: model.OutcomeEmptyInput}, false
	}

	trigger, found := i.resolver.Resolve(name)
	if !found {
		return nil, model.Outcome{
			Kind:    model.OutcomeUnknownTrigger,
			Trigger: name,
			Known:   i.resolver.Names(),
		}, false
	}
	return trigger, model.Outcome{}, true
}

func (i *Invoker) fire(ctx context.Context, trigger model.Trigger) model.Outcome {
	from := i.engine.Current()

	newState, err := i.engine.Fire(ctx, trigger)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			i.logger.Warn("fire canceled", "trigger", trigger.Name(), "state", from)
			return model.Outcome{
				Kind:    model.OutcomeCanceled,
				Trigger: trigger.Name(),
				State:   from,
				Detail:  err,
			}
		}

		i.logger.Warn("engine rejected trigger", "trigger", trigger.Name(), "state", from, "error", err.Error())
		return model.Outcome{
			Kind:    model.OutcomeEngineRejected,
			Trigger: trigger.Name(),
			State:   from,
			Detail:  err,
		}
	}

	i.logger.Info("transition complete", "trigger", trigger.Name(), "from", from, "to", newState)
	return model.Outcome{
		Kind:    model.OutcomeSuccess,
		Trigger: trigger.Name(),
		State:   newState,
	}
}

func triggerNames(triggers []model.Trigger) []string {
	names := make([]string, 0, len(triggers))
	for _, t := range triggers {
		names = append(names, t.Name())
	}
	return names
}
