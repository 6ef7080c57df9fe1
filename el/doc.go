// Package el provides typed HTML element constructors over the vdom
// package, so page code reads like markup:
//
//	el.Main(
//	    el.H1("Dashboard"),
//	    el.Ul(
//	        el.Li("one"),
//	        el.Li("two"),
//	    ),
//	)
//
// Every constructor accepts the same argument kinds as vdom.El: attrs,
// child nodes, node slices and strings (rendered as escaped text).
package el
