// Package compose recombines the two halves of the container/presenter
// split: WithRender binds a stateless presenter to a provider definition,
// producing a ready-to-use component.
//
//	CounterButton := compose.WithRender(example.Counter, counterView)
//	p := CounterButton.Mount(provider.Props{"label": "Clicks"})
//
// Factory is the deferred form for when the presenter is not known yet:
//
//	f := compose.NewFactory(example.Counter)
//	CounterButton := f.Build(counterView)
package compose
