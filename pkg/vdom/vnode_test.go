package vdom

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindRaw, "Raw"},
		{KindBoundary, "Boundary"},
		{VKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestElBuildsTree(t *testing.T) {
	node := El("div", Class("container"), ID("main"),
		El("h1", "Title"),
		"plain text",
		nil,
		[]*VNode{El("p", "a"), El("p", "b")},
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("unexpected root: %+v", node)
	}
	if node.Attrs["class"] != "container" || node.Attrs["id"] != "main" {
		t.Errorf("attrs not set: %v", node.Attrs)
	}
	if len(node.Children) != 4 {
		t.Fatalf("got %d children, want 4", len(node.Children))
	}
	if node.Children[1].Kind != KindText || node.Children[1].Text != "plain text" {
		t.Errorf("string child not converted to text node: %+v", node.Children[1])
	}
}

func TestFragmentSkipsNil(t *testing.T) {
	frag := Fragment(Text("a"), nil, Text("b"))
	if frag.Kind != KindFragment {
		t.Fatalf("kind = %v, want Fragment", frag.Kind)
	}
	if len(frag.Children) != 2 {
		t.Errorf("got %d children, want 2", len(frag.Children))
	}
}

func TestCommentIsRawAnchor(t *testing.T) {
	c := Comment("verso-anchor-3")
	if c.Kind != KindRaw {
		t.Fatalf("kind = %v, want Raw", c.Kind)
	}
	if c.Text != "<!--verso-anchor-3-->" {
		t.Errorf("got %q", c.Text)
	}
}

func TestConditionalHelpers(t *testing.T) {
	if If(false, Text("x")) != nil {
		t.Error("If(false) should be nil")
	}
	if If(true, nil) != nil {
		t.Error("If(true, nil) should be nil")
	}
	if got := IfElse(false, Text("a"), Text("b")); got.Text != "b" {
		t.Errorf("IfElse picked %q", got.Text)
	}
	called := false
	When(false, func() *VNode { called = true; return Text("x") })
	if called {
		t.Error("When(false) must not evaluate the function")
	}
}

func TestMap(t *testing.T) {
	items := []string{"a", "b", "c"}
	nodes := Map(items, func(s string) *VNode { return El("li", s) })
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if nodes[2].Children[0].Text != "c" {
		t.Errorf("unexpected node: %+v", nodes[2])
	}
}

func TestFutureResolves(t *testing.T) {
	f := NewFuture(func(ctx context.Context) (*VNode, error) {
		return Text("done"), nil
	})
	node, err := f.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Text != "done" {
		t.Errorf("got %q", node.Text)
	}
	if !f.Settled() {
		t.Error("future should be settled")
	}
}

func TestFutureRunsOnce(t *testing.T) {
	runs := 0
	f := NewFuture(func(ctx context.Context) (*VNode, error) {
		runs++
		return Text("x"), nil
	})
	for i := 0; i < 3; i++ {
		if _, err := f.Wait(context.Background()); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	if runs != 1 {
		t.Errorf("producer ran %d times, want 1", runs)
	}
}

func TestFutureWaitTimeout(t *testing.T) {
	release := make(chan struct{})
	f := NewFuture(func(ctx context.Context) (*VNode, error) {
		<-release
		return Text("late"), nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline error, got %v", err)
	}

	// The producer keeps running; a later waiter still gets the value.
	close(release)
	node, err := f.Wait(context.Background())
	if err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if node.Text != "late" {
		t.Errorf("got %q", node.Text)
	}
}

func TestFutureRecoversPanic(t *testing.T) {
	f := NewFuture(func(ctx context.Context) (*VNode, error) {
		panic("boom")
	})
	_, err := f.Wait(context.Background())
	if err == nil {
		t.Fatal("want error from panicking producer")
	}
}

func TestPreSettledFutures(t *testing.T) {
	ok := ResolvedFuture(Text("v"))
	node, err := ok.Wait(context.Background())
	if err != nil || node.Text != "v" {
		t.Errorf("resolved future: node=%v err=%v", node, err)
	}

	fail := FailedFuture(errors.New("nope"))
	if _, err := fail.Wait(context.Background()); err == nil {
		t.Error("failed future should return its error")
	}
}
