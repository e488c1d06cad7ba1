package observability

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// MergeLifecycle calls every non-nil hook in order.
func MergeLifecycle(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	pick := func(get func(domain.LifecycleHooks) func(context.Context, *domain.NavigationEvent)) func(context.Context, *domain.NavigationEvent) {
		var fns []func(context.Context, *domain.NavigationEvent)
		for _, h := range hooks {
			if fn := get(h); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.NavigationEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}
	return domain.LifecycleHooks{
		OnSelect: pick(func(h domain.LifecycleHooks) func(context.Context, *domain.NavigationEvent) { return h.OnSelect }),
		OnBack:   pick(func(h domain.LifecycleHooks) func(context.Context, *domain.NavigationEvent) { return h.OnBack }),
		OnReset:  pick(func(h domain.LifecycleHooks) func(context.Context, *domain.NavigationEvent) { return h.OnReset }),
		OnResult: pick(func(h domain.LifecycleHooks) func(context.Context, *domain.NavigationEvent) { return h.OnResult }),
	}
}

// MergeSearch calls every non-nil hook in order.
func MergeSearch(hooks ...domain.SearchHooks) domain.SearchHooks {
	pick := func(get func(domain.SearchHooks) func(*domain.LookupEvent)) func(*domain.LookupEvent) {
		var fns []func(*domain.LookupEvent)
		for _, h := range hooks {
			if fn := get(h); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(e *domain.LookupEvent) {
			for _, fn := range fns {
				fn(e)
			}
		}
	}
	return domain.SearchHooks{
		OnLookup:  pick(func(h domain.SearchHooks) func(*domain.LookupEvent) { return h.OnLookup }),
		OnResults: pick(func(h domain.SearchHooks) func(*domain.LookupEvent) { return h.OnResults }),
		OnFailure: pick(func(h domain.SearchHooks) func(*domain.LookupEvent) { return h.OnFailure }),
		OnStale:   pick(func(h domain.SearchHooks) func(*domain.LookupEvent) { return h.OnStale }),
	}
}
