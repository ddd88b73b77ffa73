package render

import (
	"strings"
	"testing"

	"github.com/stateview-go/stateview/pkg/vdom"
)

func renderString(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return html
}

func TestRenderBasicElement(t *testing.T) {
	html := renderString(t, vdom.Div(vdom.Class("card"), vdom.Text("hello")))
	want := `<div class="card">hello</div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderNil(t *testing.T) {
	if html := renderString(t, nil); html != "" {
		t.Errorf("nil node rendered %q, want empty", html)
	}
}

func TestRenderEscapesText(t *testing.T) {
	html := renderString(t, vdom.Text(`<script>"&'`))
	want := "&lt;script&gt;&quot;&amp;&#39;"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderEscapesAttributes(t *testing.T) {
	html := renderString(t, vdom.Div(vdom.Attr{Key: "title", Value: `a"b<c`}))
	if !strings.Contains(html, `title="a&quot;b&lt;c"`) {
		t.Errorf("attribute not escaped: %q", html)
	}
}

func TestRenderRaw(t *testing.T) {
	html := renderString(t, vdom.Raw("<b>bold</b>"))
	if html != "<b>bold</b>" {
		t.Errorf("raw node escaped: %q", html)
	}
}

func TestRenderFragment(t *testing.T) {
	html := renderString(t, vdom.Fragment(vdom.Text("a"), vdom.Span(vdom.Text("b"))))
	want := "a<span>b</span>"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderVoidElement(t *testing.T) {
	html := renderString(t, vdom.Input(vdom.Type("text")))
	want := `<input type="text">`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderBooleanAttrs(t *testing.T) {
	t.Run("true renders bare", func(t *testing.T) {
		html := renderString(t, vdom.Button(vdom.Disabled(true)))
		if !strings.Contains(html, "<button disabled>") {
			t.Errorf("got %q", html)
		}
	})
	t.Run("false omitted", func(t *testing.T) {
		html := renderString(t, vdom.Button(vdom.Disabled(false)))
		if strings.Contains(html, "disabled") {
			t.Errorf("got %q", html)
		}
	})
}

func TestRenderAttrAliases(t *testing.T) {
	html := renderString(t, vdom.Div(
		vdom.Attr{Key: "className", Value: "a"},
		vdom.Label(vdom.Attr{Key: "htmlFor", Value: "x"}),
	))
	if !strings.Contains(html, `class="a"`) {
		t.Errorf("className not mapped: %q", html)
	}
	if !strings.Contains(html, `for="x"`) {
		t.Errorf("htmlFor not mapped: %q", html)
	}
}

func TestRenderHandlerRegistry(t *testing.T) {
	clicked := func() {}
	typed := func(any) {}

	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(vdom.Div(
		vdom.Button(vdom.OnClick(clicked), vdom.Text("go")),
		vdom.Input(vdom.OnInput(typed)),
	))
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(html, `data-sv="s1"`) || !strings.Contains(html, `data-sv="s2"`) {
		t.Errorf("interactive elements not marked: %q", html)
	}
	if !strings.Contains(html, `data-on-click="true"`) {
		t.Errorf("click marker missing: %q", html)
	}
	if strings.Contains(html, "func(") {
		t.Errorf("handler rendered as attribute: %q", html)
	}

	handlers := r.Handlers()
	if len(handlers) != 2 {
		t.Fatalf("registry has %d handlers, want 2: %v", len(handlers), handlers)
	}
	if handlers["s1_onclick"] == nil {
		t.Error("s1_onclick not registered")
	}
	if handlers["s2_oninput"] == nil {
		t.Error("s2_oninput not registered")
	}
}

func TestRendererReset(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(vdom.Button(vdom.OnClick(func() {}))); err != nil {
		t.Fatal(err)
	}
	r.Reset()

	html, err := r.RenderToString(vdom.Button(vdom.OnClick(func() {})))
	if err != nil {
		t.Fatal(err)
	}

	// Counter restarts after Reset.
	if !strings.Contains(html, `data-sv="s1"`) {
		t.Errorf("counter not reset: %q", html)
	}
	if len(r.Handlers()) != 1 {
		t.Errorf("registry not reset: %v", r.Handlers())
	}
}

func TestRenderDeterministicAttrOrder(t *testing.T) {
	node := vdom.Div(
		vdom.Attr{Key: "b", Value: "2"},
		vdom.Attr{Key: "a", Value: "1"},
		vdom.Attr{Key: "c", Value: "3"},
	)

	first := renderString(t, node)
	for i := 0; i < 5; i++ {
		if got := renderString(t, node); got != first {
			t.Fatalf("output not deterministic: %q vs %q", got, first)
		}
	}
	if !strings.Contains(first, `a="1" b="2" c="3"`) {
		t.Errorf("attributes not sorted: %q", first)
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true, Indent: "  "})
	html, err := r.RenderToString(vdom.Div(vdom.P(vdom.Text("x"))))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "\n") {
		t.Errorf("pretty output has no newlines: %q", html)
	}
}

func TestRenderSkipsInternalProps(t *testing.T) {
	html := renderString(t, vdom.Div(vdom.Attr{Key: "_internal", Value: "x"}))
	if strings.Contains(html, "_internal") {
		t.Errorf("internal prop rendered: %q", html)
	}
}
