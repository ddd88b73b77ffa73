package example

import (
	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/provider"
	"github.com/stateview-go/stateview/pkg/vdom"
)

// Counter is a provider variant holding a single integer count with
// increment, decrement, and reset handlers.
var Counter = provider.Def{
	Name: "Counter",
	DefaultState: func() provider.State {
		return provider.State{"count": 0}
	},
	MakeHandlers: func(p *provider.Provider) provider.Handlers {
		return provider.Handlers{
			"increment": func() {
				n, _ := p.State()["count"].(int)
				p.RequestMutation(provider.State{"count": n + 1})
			},
			"decrement": func() {
				n, _ := p.State()["count"].(int)
				p.RequestMutation(provider.State{"count": n - 1})
			},
			"reset": func() {
				p.RequestMutation(provider.State{"count": 0})
			},
		}
	},
}

// CounterView is a stateless presenter for Counter.
func CounterView(payload provider.Payload, _ provider.Ctx) *vdom.VNode {
	count, _ := payload["count"].(int)
	label, _ := payload["label"].(string)
	if label == "" {
		label = "Count"
	}

	return vdom.Div(vdom.Class("counter"),
		vdom.Span(vdom.Class("counter-label"), vdom.Textf("%s: %d", label, count)),
		vdom.Button(vdom.OnClick(payload["increment"]), vdom.Text("+")),
		vdom.Button(vdom.OnClick(payload["decrement"]), vdom.Text("-")),
		vdom.Button(vdom.OnClick(payload["reset"]), vdom.Text("reset")),
	)
}

// CounterButton is Counter composed with CounterView.
var CounterButton = compose.WithRender(Counter, CounterView)
