package example

import (
	"github.com/stateview-go/stateview/pkg/provider"
	"github.com/stateview-go/stateview/pkg/vdom"
)

// Reducer action types recognized by the Items variant.
const (
	ActionAdd   = "add"
	ActionClear = "clear"
)

// Items is a reducer-style provider variant: a single "dispatch" handler
// routes typed actions to state mutations. Unrecognized action types
// produce an empty merge, leaving state unchanged.
var Items = provider.Def{
	Name: "Items",
	DefaultState: func() provider.State {
		return provider.State{"items": []string{}}
	},
	MakeHandlers: func(p *provider.Provider) provider.Handlers {
		return provider.Handlers{
			"dispatch": func(actionType string, payload any) {
				switch actionType {
				case ActionAdd:
					item, _ := payload.(string)
					items, _ := p.State()["items"].([]string)
					p.RequestMutation(provider.State{
						"items": append(items, item),
					})
				case ActionClear:
					p.RequestMutation(provider.State{
						"items": []string{},
					})
				default:
					p.RequestMutation(provider.State{})
				}
			},
		}
	},
}

// ItemsView is a stateless presenter for Items.
func ItemsView(payload provider.Payload, _ provider.Ctx) *vdom.VNode {
	items, _ := payload["items"].([]string)

	return vdom.Ul(vdom.Class("items"),
		vdom.Range(items, func(item string, _ int) *vdom.VNode {
			return vdom.Li(vdom.Text(item))
		}),
	)
}
