package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Start returns a fresh state positioned at the root step.
func (e *Engine) Start(ctx context.Context, sessionID string) *domain.State {
	e.logger.Debug("session started", "session_id", sessionID, "root", e.rootID)
	return domain.NewState(sessionID, e.rootID)
}

// Current resolves the node at the top of the history.
// An id that is not in the graph is a *domain.GraphDefectError.
func (e *Engine) Current(state *domain.State) (domain.Node, error) {
	id := state.CurrentID()
	if id == "" {
		return nil, &domain.GraphDefectError{NodeID: id, Reason: "empty history"}
	}
	node, ok := e.graph.Lookup(id)
	if !ok {
		return nil, &domain.GraphDefectError{NodeID: id, Reason: "history references a node that is not in the graph"}
	}
	return node, nil
}

// Select follows opt from the current step. Selecting on a result, or an
// option that does not belong to the current step, returns the state unchanged.
func (e *Engine) Select(ctx context.Context, state *domain.State, opt domain.Option) (*domain.State, error) {
	node, err := e.Current(state)
	if err != nil {
		return nil, err
	}

	step, ok := node.(*domain.Step)
	if !ok || !step.Contains(opt) {
		e.logger.Debug("ignored stale selection", "session_id", state.SessionID, "node", state.CurrentID(), "label", opt.Label)
		return state.Clone(), nil
	}
	return e.follow(ctx, state, step, opt)
}

// SelectIndex selects the i-th option of the current step.
// Out of range positions return domain.ErrInvalidOption; on a result it is a no-op.
func (e *Engine) SelectIndex(ctx context.Context, state *domain.State, i int) (*domain.State, error) {
	node, err := e.Current(state)
	if err != nil {
		return nil, err
	}

	step, ok := node.(*domain.Step)
	if !ok {
		return state.Clone(), nil
	}
	if i < 0 || i >= len(step.Options) {
		return nil, fmt.Errorf("option %d of %q: %w", i, step.ID, domain.ErrInvalidOption)
	}
	return e.follow(ctx, state, step, step.Options[i])
}

func (e *Engine) follow(ctx context.Context, state *domain.State, step *domain.Step, opt domain.Option) (*domain.State, error) {
	target := opt.Target.TargetID()
	if _, ok := e.graph.Lookup(target); !ok {
		return nil, &domain.GraphDefectError{NodeID: target, Reason: fmt.Sprintf("option %q of %q leads nowhere", opt.Label, step.ID)}
	}

	next := state.Clone()
	next.History = append(next.History, target)

	evt := e.event(domain.EventSelect, next, step.ID, target)
	evt.Label = opt.Label
	e.logger.Info("option selected", "session_id", next.SessionID, "from", step.ID, "to", target, "label", opt.Label)
	emit(ctx, e.hooks.OnSelect, evt)

	if opt.Target.Terminal() {
		reached := *evt
		reached.Type = domain.EventResultReach
		emit(ctx, e.hooks.OnResult, &reached)
	}
	return next, nil
}

// Back pops the last history entry. At the root it is a no-op.
func (e *Engine) Back(ctx context.Context, state *domain.State) *domain.State {
	next := state.Clone()
	if next.AtRoot() {
		return next
	}
	from := next.CurrentID()
	next.History = next.History[:len(next.History)-1]

	e.logger.Debug("navigated back", "session_id", next.SessionID, "from", from, "to", next.CurrentID())
	emit(ctx, e.hooks.OnBack, e.event(domain.EventBack, next, from, next.CurrentID()))
	return next
}

// Reset returns the session to the root step.
func (e *Engine) Reset(ctx context.Context, state *domain.State) *domain.State {
	from := state.CurrentID()
	next := domain.NewState(state.SessionID, e.rootID)

	e.logger.Debug("session reset", "session_id", next.SessionID, "from", from)
	emit(ctx, e.hooks.OnReset, e.event(domain.EventReset, next, from, e.rootID))
	return next
}

func (e *Engine) event(kind domain.EventType, state *domain.State, from, to string) *domain.NavigationEvent {
	return &domain.NavigationEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: kind},
		SessionID: state.SessionID,
		FromID:    from,
		ToID:      to,
		Depth:     state.Depth(),
	}
}

func emit(ctx context.Context, hook func(context.Context, *domain.NavigationEvent), evt *domain.NavigationEvent) {
	if hook != nil {
		hook(ctx, evt)
	}
}
