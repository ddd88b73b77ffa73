package render

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/stateview-go/stateview/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer turns VNode trees into HTML.
//
// Elements carrying event handler props get a sequential data-sv marker,
// and their handlers are collected into a registry keyed "id_event"
// (e.g. "s1_onclick") so a host can dispatch client events back to them.
type Renderer struct {
	config    RendererConfig
	idCounter uint32
	handlers  map[string]any
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Handlers returns the handler registry collected during rendering.
// The map keys are in the format "id_eventname" (e.g. "s1_onclick").
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Reset clears the marker counter and handler registry for reuse.
func (r *Renderer) Reset() {
	r.idCounter = 0
	r.handlers = make(map[string]any)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}

	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	if isInteractive(node) {
		id := r.nextID()
		if _, err := fmt.Fprintf(w, ` data-sv="%s"`, id); err != nil {
			return err
		}
		r.registerHandlers(id, node)
	}

	if vdom.IsVoidElement(tag) {
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		io.WriteString(w, "\n")
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "</"+tag+">"); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}

	return nil
}

// renderAttributes renders all attributes for an element.
// Event handler props are registered, not rendered; instead a data-on-*
// marker is emitted for client-side binding.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if node.Props == nil {
		return nil
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		if strings.HasPrefix(key, "_") {
			continue
		}
		if strings.HasPrefix(key, "on") && isEventHandler(value) {
			continue
		}

		switch key {
		case "className":
			key = "class"
		case "htmlFor":
			key = "for"
		}

		if isBooleanAttr(key) {
			if boolValue, ok := value.(bool); ok {
				if boolValue {
					if _, err := io.WriteString(w, " "+key); err != nil {
						return err
					}
				}
				continue
			}
		}

		strValue := attrToString(value)
		if strValue != "" {
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(strValue)); err != nil {
				return err
			}
		}
	}

	for _, key := range keys {
		if strings.HasPrefix(key, "on") && isEventHandler(node.Props[key]) {
			eventName := strings.ToLower(key[2:]) // onclick -> click
			if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, eventName); err != nil {
				return err
			}
		}
	}

	return nil
}

// nextID generates the next sequential element marker.
func (r *Renderer) nextID() string {
	r.idCounter++
	return fmt.Sprintf("s%d", r.idCounter)
}

// registerHandlers stores handler references for the given marker.
func (r *Renderer) registerHandlers(id string, node *vdom.VNode) {
	for key, value := range node.Props {
		if strings.HasPrefix(key, "on") && isEventHandler(value) {
			r.handlers[id+"_"+key] = value
		}
	}
}

// isInteractive reports whether the element carries event handler props.
func isInteractive(node *vdom.VNode) bool {
	if node == nil || node.Kind != vdom.KindElement {
		return false
	}
	for key, value := range node.Props {
		if strings.HasPrefix(key, "on") && isEventHandler(value) {
			return true
		}
	}
	return false
}

// isEventHandler returns true if the value is a function.
func isEventHandler(value any) bool {
	if value == nil {
		return false
	}
	return reflect.TypeOf(value).Kind() == reflect.Func
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

// booleanAttrs are attributes rendered by presence rather than value.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

// isBooleanAttr returns true for presence-only attributes.
func isBooleanAttr(key string) bool {
	return booleanAttrs[key]
}

// inlineElements render their children without pretty-print newlines.
var inlineElements = map[string]bool{
	"a": true, "b": true, "code": true, "em": true, "i": true,
	"label": true, "small": true, "span": true, "strong": true,
}

// isInlineElement returns true for inline elements.
func isInlineElement(tag string) bool {
	return inlineElements[tag]
}
