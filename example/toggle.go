package example

import (
	"github.com/stateview-go/stateview/pkg/compose"
	"github.com/stateview-go/stateview/pkg/provider"
	"github.com/stateview-go/stateview/pkg/vdom"
)

// Toggle is a provider variant holding a boolean "on" flag.
var Toggle = provider.Def{
	Name: "Toggle",
	DefaultState: func() provider.State {
		return provider.State{"on": false}
	},
	MakeHandlers: func(p *provider.Provider) provider.Handlers {
		return provider.Handlers{
			"toggle": func() {
				on, _ := p.State()["on"].(bool)
				p.RequestMutation(provider.State{"on": !on})
			},
		}
	},
	DefaultRender: ToggleView,
}

// ToggleView is a stateless presenter for Toggle. It doubles as the
// variant's default render, so Toggle works without composition.
func ToggleView(payload provider.Payload, _ provider.Ctx) *vdom.VNode {
	on, _ := payload["on"].(bool)

	state := "off"
	if on {
		state = "on"
	}

	return vdom.Div(vdom.Class("toggle", state),
		vdom.Button(vdom.OnClick(payload["toggle"]), vdom.Textf("turn %s", flip(state))),
	)
}

// Switch is Toggle composed with its own view under a diagnostic name.
var Switch = compose.WithRender(Toggle, ToggleView)

func flip(state string) string {
	if state == "on" {
		return "off"
	}
	return "on"
}
