package ssr

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/verso-dev/verso/pkg/dom"
	"github.com/verso-dev/verso/pkg/vdom"
)

// taskList is the canonical async component: registers a query during
// discovery, renders a loading state until its resolve callback has run,
// then renders the data.
func taskList(timeout time.Duration, fetch FetchFunc) (AppFunc, *Query) {
	var tasks []string
	q := NewQuery("tasks", fetch,
		WithTimeout(timeout),
		WithResolve(func(v any) { tasks = v.([]string) }),
	)
	app := func() *vdom.VNode {
		RegisterQuery(q)
		if tasks == nil {
			return vdom.El("div", vdom.Class("loading"), "Loading...")
		}
		items := vdom.Map(tasks, func(task string) *vdom.VNode {
			return vdom.El("li", task)
		})
		return vdom.El("ul", items)
	}
	return app, q
}

func TestRenderFastQueryInlined(t *testing.T) {
	app, q := taskList(500*time.Millisecond, func(ctx context.Context) (any, error) {
		time.Sleep(5 * time.Millisecond)
		return []string{"Task 1", "Task 2"}, nil
	})

	res, err := NewRenderer(Config{}).Render(context.Background(), app, testURL(t, "/tasks"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, "<li>Task 1</li>") || !strings.Contains(res.HTML, "<li>Task 2</li>") {
		t.Errorf("data not inlined: %s", res.HTML)
	}
	if strings.Contains(res.HTML, "Loading") {
		t.Errorf("second pass still shows loading state: %s", res.HTML)
	}
	if len(res.Pending) != 0 {
		t.Errorf("fast query must not be pending, got %d", len(res.Pending))
	}
	if !q.Resolved() {
		t.Error("fast query should be resolved")
	}
}

func TestRenderSlowQueryStaysPending(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	app, q := taskList(10*time.Millisecond, func(ctx context.Context) (any, error) {
		<-release
		return []string{"late"}, nil
	})

	res, err := NewRenderer(Config{}).Render(context.Background(), app, testURL(t, "/tasks"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, "Loading") {
		t.Errorf("slow query should render loading state: %s", res.HTML)
	}
	if len(res.Pending) != 1 || res.Pending[0] != q {
		t.Errorf("slow query should be pending, got %v", res.Pending)
	}
}

func TestRenderDisabledQueryNeverPending(t *testing.T) {
	app, _ := taskList(0, func(ctx context.Context) (any, error) {
		return []string{"never shown"}, nil
	})

	res, err := NewRenderer(Config{}).Render(context.Background(), app, testURL(t, "/"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, "Loading") {
		t.Errorf("disabled query should leave loading state: %s", res.HTML)
	}
	if len(res.Pending) != 0 {
		t.Error("disabled query must be excluded from pending delivery")
	}
}

func TestRenderQueryErrorIsNonFatal(t *testing.T) {
	app, _ := taskList(time.Second, func(ctx context.Context) (any, error) {
		return nil, fmt.Errorf("backend unavailable")
	})

	res, err := NewRenderer(Config{}).Render(context.Background(), app, testURL(t, "/"))
	if err != nil {
		t.Fatalf("query failure must not fail the render: %v", err)
	}
	if !strings.Contains(res.HTML, "Loading") {
		t.Errorf("failed query should leave loading state: %s", res.HTML)
	}
	if len(res.Errors) != 1 {
		t.Errorf("got %d collected errors, want 1", len(res.Errors))
	}
}

func TestRenderSecondPassDoesNotDuplicateQueries(t *testing.T) {
	registrations := 0
	app := func() *vdom.VNode {
		registrations++
		RegisterQuery(NewQuery("k", func(ctx context.Context) (any, error) {
			return nil, nil
		}, WithTimeout(time.Second)))
		return vdom.El("div", "ok")
	}

	res, err := NewRenderer(Config{}).Render(context.Background(), app, testURL(t, "/"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if registrations != 2 {
		t.Errorf("app factory ran %d times, want 2", registrations)
	}
	if len(res.Pending) != 0 {
		t.Errorf("resolved query should not be pending")
	}
}

func TestRenderAppPanicIsFatalWithTeardown(t *testing.T) {
	app := func() *vdom.VNode { panic("component bug") }

	_, err := NewRenderer(Config{}).Render(context.Background(), app, testURL(t, "/"))
	if err == nil {
		t.Fatal("factory panic must fail the render")
	}
	if !strings.Contains(err.Error(), "component bug") {
		t.Errorf("panic value lost: %v", err)
	}
	if Current() != nil {
		t.Error("ambient request context leaked after panic")
	}
	if _, ok := currentTimeoutOverride(); ok {
		t.Error("timeout override leaked after panic")
	}
	if dom.Doc() == nil {
		t.Error("ambient document must survive teardown as an empty tree")
	}
}

func TestRenderCollectsComponentCSS(t *testing.T) {
	const buttonCSS = ".btn { color: blue; }"
	app := func() *vdom.VNode {
		d := dom.Doc()
		// Two components injecting the same style dedupe to one entry.
		for i := 0; i < 2; i++ {
			style := d.CreateElement("style")
			style.SetTextContent(buttonCSS)
			d.Head().AppendChild(style)
		}
		return vdom.El("button", vdom.Class("btn"), "Go")
	}

	r := NewRenderer(Config{GlobalCSS: []string{":root { --accent: red; }"}})
	res, err := r.Render(context.Background(), app, testURL(t, "/"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []string{":root { --accent: red; }", buttonCSS}
	if len(res.CSS) != len(want) {
		t.Fatalf("CSS = %v, want %v", res.CSS, want)
	}
	for i := range want {
		if res.CSS[i] != want[i] {
			t.Errorf("CSS[%d] = %q, want %q", i, res.CSS[i], want[i])
		}
	}
}

func TestRenderCSSResetBetweenRenders(t *testing.T) {
	withStyle := func() *vdom.VNode {
		d := dom.Doc()
		style := d.CreateElement("style")
		style.SetTextContent(".a { color: red; }")
		d.Head().AppendChild(style)
		return vdom.El("div", "a")
	}
	plain := func() *vdom.VNode { return vdom.El("div", "b") }

	r := NewRenderer(Config{})
	if _, err := r.Render(context.Background(), withStyle, testURL(t, "/a")); err != nil {
		t.Fatal(err)
	}
	res, err := r.Render(context.Background(), plain, testURL(t, "/b"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.CSS) != 0 {
		t.Errorf("styles leaked across renders: %v", res.CSS)
	}
}

func TestRenderConcurrentRequestsIsolated(t *testing.T) {
	app := func() *vdom.VNode {
		path := dom.Doc().Location().Path
		return vdom.El("div", "path="+path)
	}

	r := NewRenderer(Config{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			path := fmt.Sprintf("/page/%d", i)
			u := &url.URL{Path: path}
			res, err := r.Render(context.Background(), app, u)
			if err != nil {
				t.Errorf("render %s: %v", path, err)
				return
			}
			if !strings.Contains(res.HTML, "path="+path) {
				t.Errorf("render %s saw wrong location: %s", path, res.HTML)
			}
		}()
	}
	wg.Wait()
}

func TestDiscoverSettlesQueries(t *testing.T) {
	app, q := taskList(time.Second, func(ctx context.Context) (any, error) {
		return []string{"Task 1"}, nil
	})

	queries, err := NewRenderer(Config{}).Discover(context.Background(), app, testURL(t, "/tasks"))
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(queries) != 1 || queries[0] != q {
		t.Fatalf("queries = %v", queries)
	}
	if !q.Settled() {
		t.Error("discover should await the fetch")
	}
	if v, ferr := q.Result(); ferr != nil || len(v.([]string)) != 1 {
		t.Errorf("result = %v, %v", v, ferr)
	}
}
