package el

import (
	"fmt"
	"strings"

	"github.com/verso-dev/verso/pkg/vdom"
)

// Attr builds an arbitrary attribute.
func Attr(key, value string) vdom.Attr { return vdom.Attr{Key: key, Value: value} }

// Common attributes

func Class(names ...string) vdom.Attr  { return vdom.Class(strings.Join(names, " ")) }
func ID(id string) vdom.Attr           { return vdom.ID(id) }
func Href(url string) vdom.Attr        { return Attr("href", url) }
func Src(url string) vdom.Attr         { return Attr("src", url) }
func Alt(text string) vdom.Attr        { return Attr("alt", text) }
func TitleAttr(text string) vdom.Attr  { return Attr("title", text) }
func Style(css string) vdom.Attr       { return Attr("style", css) }
func Lang(code string) vdom.Attr       { return Attr("lang", code) }
func Role(role string) vdom.Attr       { return Attr("role", role) }
func Target(target string) vdom.Attr   { return Attr("target", target) }
func Rel(rel string) vdom.Attr         { return Attr("rel", rel) }
func Charset(charset string) vdom.Attr { return Attr("charset", charset) }
func Content(value string) vdom.Attr   { return Attr("content", value) }
func NameAttr(name string) vdom.Attr   { return Attr("name", name) }
func DateTime(value string) vdom.Attr  { return Attr("datetime", value) }

// Form attributes

func Type(t string) vdom.Attr            { return Attr("type", t) }
func Value(v string) vdom.Attr           { return Attr("value", v) }
func Placeholder(text string) vdom.Attr  { return Attr("placeholder", text) }
func For(id string) vdom.Attr            { return Attr("for", id) }
func Action(url string) vdom.Attr        { return Attr("action", url) }
func Method(m string) vdom.Attr          { return Attr("method", m) }
func Autocomplete(v string) vdom.Attr    { return Attr("autocomplete", v) }
func MaxLengthAttr(n int) vdom.Attr      { return Attr("maxlength", fmt.Sprintf("%d", n)) }
func MinAttr(v string) vdom.Attr         { return Attr("min", v) }
func MaxAttr(v string) vdom.Attr         { return Attr("max", v) }
func StepAttr(v string) vdom.Attr        { return Attr("step", v) }
func Rows(n int) vdom.Attr               { return Attr("rows", fmt.Sprintf("%d", n)) }
func Cols(n int) vdom.Attr               { return Attr("cols", fmt.Sprintf("%d", n)) }
func ColspanAttr(n int) vdom.Attr        { return Attr("colspan", fmt.Sprintf("%d", n)) }
func RowspanAttr(n int) vdom.Attr        { return Attr("rowspan", fmt.Sprintf("%d", n)) }
func Width(v string) vdom.Attr           { return Attr("width", v) }
func Height(v string) vdom.Attr          { return Attr("height", v) }
func TabIndex(n int) vdom.Attr           { return Attr("tabindex", fmt.Sprintf("%d", n)) }
func AriaLabel(label string) vdom.Attr   { return Attr("aria-label", label) }
func AriaHidden(hidden bool) vdom.Attr   { return Attr("aria-hidden", boolStr(hidden)) }
func DataAttr(name, v string) vdom.Attr  { return Attr("data-"+name, v) }
func Required() vdom.Attr                { return Attr("required", "") }
func Disabled() vdom.Attr                { return Attr("disabled", "") }
func Checked() vdom.Attr                 { return Attr("checked", "") }
func Selected() vdom.Attr                { return Attr("selected", "") }
func Readonly() vdom.Attr                { return Attr("readonly", "") }
func Multiple() vdom.Attr                { return Attr("multiple", "") }
func Autofocus() vdom.Attr               { return Attr("autofocus", "") }
func Loading(strategy string) vdom.Attr  { return Attr("loading", strategy) }
func Download(filename string) vdom.Attr { return Attr("download", filename) }

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
