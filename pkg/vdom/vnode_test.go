package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	c := Func(func() *VNode { return Text("hi") })
	out := c.Render()
	if out == nil || out.Kind != KindText || out.Text != "hi" {
		t.Errorf("Func component rendered %v, want text node", out)
	}
}

func TestAttrIsEmpty(t *testing.T) {
	if !(Attr{}).IsEmpty() {
		t.Error("zero Attr should be empty")
	}
	if (Attr{Key: "id", Value: "x"}).IsEmpty() {
		t.Error("populated Attr should not be empty")
	}
}
