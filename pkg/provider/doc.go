// Package provider implements the stateful half of the container/presenter
// split: a Provider owns one mutable state mapping and a fixed set of
// handlers, and delegates visual output to a caller-supplied presenter.
//
// A provider variant is described by a Def value rather than a subclass:
//
//	var Counter = provider.Def{
//	    Name:         "Counter",
//	    DefaultState: func() provider.State { return provider.State{"count": 0} },
//	    MakeHandlers: func(p *provider.Provider) provider.Handlers {
//	        return provider.Handlers{
//	            "increment": func() {
//	                n, _ := p.State()["count"].(int)
//	                p.RequestMutation(provider.State{"count": n + 1})
//	            },
//	        }
//	    },
//	}
//
// Instances are created with New(def, props). The merged payload a presenter
// receives is passthrough props, then state, then handlers, with later
// sources winning on key collision.
//
// Lifecycle is Constructed -> (RequestMutation loop) -> Disposed. Handlers
// never change after construction.
package provider
