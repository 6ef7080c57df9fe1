package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verso-dev/verso"
	"github.com/verso-dev/verso/pkg/ssr"
	"github.com/verso-dev/verso/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr           string
		templatePath   string
		staticDir      string
		queryTimeout   time.Duration
		streamDeadline time.Duration
		buffered       bool
		metrics        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo server exercising the render pipeline",
		Long: `Serve a small demo application: an instantly rendered page with one
fast query inlined into the HTML, one slow suspense boundary streamed
as a chunk, and one late query delivered as a script push.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			cfg := verso.DefaultConfig()
			cfg.TemplatePath = templatePath
			cfg.QueryTimeout = queryTimeout
			cfg.StreamDeadline = streamDeadline
			cfg.Streaming = !buffered
			cfg.Metrics.Enabled = metrics
			cfg.Logger = logger
			if staticDir != "" {
				cfg.Static.Dir = staticDir
			}

			app := verso.New(cfg)
			app.Page("/", demoPage())
			return app.Run(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVar(&templatePath, "template", "", "HTML app shell (built-in when empty)")
	cmd.Flags().StringVar(&staticDir, "static", "", "Static files directory")
	cmd.Flags().DurationVar(&queryTimeout, "query-timeout", 200*time.Millisecond, "Default query await budget")
	cmd.Flags().DurationVar(&streamDeadline, "stream-deadline", 10*time.Second, "Streaming response deadline")
	cmd.Flags().BoolVar(&buffered, "buffered", false, "Disable streaming, buffer full pages")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics at /_verso/metrics")

	return cmd
}

// demoPage builds a page with one fast query, one streamed boundary and
// one query that deliberately misses the await window.
func demoPage() verso.Page {
	var greeting string
	fast := ssr.NewQuery("greeting", func(ctx context.Context) (any, error) {
		return "Hello from the server", nil
	}, ssr.WithResolve(func(v any) { greeting = v.(string) }))

	late := ssr.NewQuery("stats", func(ctx context.Context) (any, error) {
		time.Sleep(2 * time.Second)
		return map[string]int{"renders": 1}, nil
	}, ssr.WithTimeout(50*time.Millisecond))

	slow := vdom.NewFuture(func(ctx context.Context) (*vdom.VNode, error) {
		time.Sleep(1 * time.Second)
		return vdom.El("p", "This paragraph streamed in after the shell."), nil
	})

	return func() *vdom.VNode {
		ssr.RegisterQuery(fast)
		ssr.RegisterQuery(late)

		head := "Loading..."
		if greeting != "" {
			head = greeting
		}
		return vdom.El("main",
			vdom.El("h1", head),
			vdom.Boundary(vdom.El("p", "Streaming..."), slow),
		)
	}
}
