package el

import "github.com/verso-dev/verso/pkg/vdom"

// VNode is re-exported so page code can import only el.
type VNode = vdom.VNode

// Document structure

func Html(args ...any) *VNode    { return vdom.El("html", args...) }
func Head(args ...any) *VNode    { return vdom.El("head", args...) }
func Body(args ...any) *VNode    { return vdom.El("body", args...) }
func Title(args ...any) *VNode   { return vdom.El("title", args...) }
func Meta(args ...any) *VNode    { return vdom.El("meta", args...) }
func Link(args ...any) *VNode    { return vdom.El("link", args...) }
func StyleEl(args ...any) *VNode { return vdom.El("style", args...) }
func Script(args ...any) *VNode  { return vdom.El("script", args...) }

// Sectioning

func Header(args ...any) *VNode  { return vdom.El("header", args...) }
func Footer(args ...any) *VNode  { return vdom.El("footer", args...) }
func Main(args ...any) *VNode    { return vdom.El("main", args...) }
func Nav(args ...any) *VNode     { return vdom.El("nav", args...) }
func Section(args ...any) *VNode { return vdom.El("section", args...) }
func Article(args ...any) *VNode { return vdom.El("article", args...) }
func Aside(args ...any) *VNode   { return vdom.El("aside", args...) }

// Headings

func H1(args ...any) *VNode { return vdom.El("h1", args...) }
func H2(args ...any) *VNode { return vdom.El("h2", args...) }
func H3(args ...any) *VNode { return vdom.El("h3", args...) }
func H4(args ...any) *VNode { return vdom.El("h4", args...) }
func H5(args ...any) *VNode { return vdom.El("h5", args...) }
func H6(args ...any) *VNode { return vdom.El("h6", args...) }

// Grouping content

func Div(args ...any) *VNode        { return vdom.El("div", args...) }
func P(args ...any) *VNode          { return vdom.El("p", args...) }
func Pre(args ...any) *VNode        { return vdom.El("pre", args...) }
func Blockquote(args ...any) *VNode { return vdom.El("blockquote", args...) }
func Ol(args ...any) *VNode         { return vdom.El("ol", args...) }
func Ul(args ...any) *VNode         { return vdom.El("ul", args...) }
func Li(args ...any) *VNode         { return vdom.El("li", args...) }
func Dl(args ...any) *VNode         { return vdom.El("dl", args...) }
func Dt(args ...any) *VNode         { return vdom.El("dt", args...) }
func Dd(args ...any) *VNode         { return vdom.El("dd", args...) }
func Figure(args ...any) *VNode     { return vdom.El("figure", args...) }
func Figcaption(args ...any) *VNode { return vdom.El("figcaption", args...) }
func Hr(args ...any) *VNode         { return vdom.El("hr", args...) }

// Text-level semantics

func A(args ...any) *VNode      { return vdom.El("a", args...) }
func Span(args ...any) *VNode   { return vdom.El("span", args...) }
func Em(args ...any) *VNode     { return vdom.El("em", args...) }
func Strong(args ...any) *VNode { return vdom.El("strong", args...) }
func Small(args ...any) *VNode  { return vdom.El("small", args...) }
func Code(args ...any) *VNode   { return vdom.El("code", args...) }
func Br(args ...any) *VNode     { return vdom.El("br", args...) }
func Time(args ...any) *VNode   { return vdom.El("time", args...) }
func Mark(args ...any) *VNode   { return vdom.El("mark", args...) }

// Embedded content

func Img(args ...any) *VNode    { return vdom.El("img", args...) }
func Iframe(args ...any) *VNode { return vdom.El("iframe", args...) }
func Video(args ...any) *VNode  { return vdom.El("video", args...) }
func Audio(args ...any) *VNode  { return vdom.El("audio", args...) }
func Source(args ...any) *VNode { return vdom.El("source", args...) }
func Canvas(args ...any) *VNode { return vdom.El("canvas", args...) }
func Svg(args ...any) *VNode    { return vdom.El("svg", args...) }

// Tables

func Table(args ...any) *VNode   { return vdom.El("table", args...) }
func Caption(args ...any) *VNode { return vdom.El("caption", args...) }
func Thead(args ...any) *VNode   { return vdom.El("thead", args...) }
func Tbody(args ...any) *VNode   { return vdom.El("tbody", args...) }
func Tfoot(args ...any) *VNode   { return vdom.El("tfoot", args...) }
func Tr(args ...any) *VNode      { return vdom.El("tr", args...) }
func Th(args ...any) *VNode      { return vdom.El("th", args...) }
func Td(args ...any) *VNode      { return vdom.El("td", args...) }

// Forms

func Form(args ...any) *VNode     { return vdom.El("form", args...) }
func Label(args ...any) *VNode    { return vdom.El("label", args...) }
func Input(args ...any) *VNode    { return vdom.El("input", args...) }
func Button(args ...any) *VNode   { return vdom.El("button", args...) }
func Select(args ...any) *VNode   { return vdom.El("select", args...) }
func Option(args ...any) *VNode   { return vdom.El("option", args...) }
func Optgroup(args ...any) *VNode { return vdom.El("optgroup", args...) }
func Textarea(args ...any) *VNode { return vdom.El("textarea", args...) }
func Fieldset(args ...any) *VNode { return vdom.El("fieldset", args...) }
func Legend(args ...any) *VNode   { return vdom.El("legend", args...) }
func Datalist(args ...any) *VNode { return vdom.El("datalist", args...) }
func Output(args ...any) *VNode   { return vdom.El("output", args...) }
func Progress(args ...any) *VNode { return vdom.El("progress", args...) }
func Meter(args ...any) *VNode    { return vdom.El("meter", args...) }

// Interactive elements

func Details(args ...any) *VNode { return vdom.El("details", args...) }
func Summary(args ...any) *VNode { return vdom.El("summary", args...) }
func Dialog(args ...any) *VNode  { return vdom.El("dialog", args...) }
func Template(args ...any) *VNode {
	return vdom.El("template", args...)
}
