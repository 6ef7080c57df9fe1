package dom

import (
	"net/url"
	"testing"

	"github.com/verso-dev/verso/pkg/vdom"
)

func TestNewDocumentShape(t *testing.T) {
	d := NewDocument()
	if d.Root().TagName != "html" {
		t.Errorf("root tag = %q", d.Root().TagName)
	}
	kids := d.Root().Children()
	if len(kids) != 2 || kids[0] != d.Head() || kids[1] != d.Body() {
		t.Error("document should be html > head, body")
	}
}

func TestDocumentLocation(t *testing.T) {
	d := NewDocument()
	if d.Location().Path != "/" {
		t.Errorf("default location = %q", d.Location().Path)
	}
	u, _ := url.Parse("https://example.com/tasks?due=today")
	d.SetLocation(u)
	if d.Location().Path != "/tasks" {
		t.Errorf("location path = %q", d.Location().Path)
	}
}

func TestDocumentStylesDeduplicated(t *testing.T) {
	d := NewDocument()
	for _, css := range []string{".a{color:red}", ".b{margin:0}", ".a{color:red}"} {
		style := d.CreateElement("style")
		style.SetTextContent(css)
		d.Head().AppendChild(style)
	}
	// Non-style head children are ignored.
	meta := d.CreateElement("meta")
	d.Head().AppendChild(meta)

	styles := d.Styles()
	if len(styles) != 2 {
		t.Fatalf("got %d styles, want 2", len(styles))
	}
	if styles[0] != ".a{color:red}" || styles[1] != ".b{margin:0}" {
		t.Errorf("styles out of order: %v", styles)
	}
}

func TestAmbientInstallAndReset(t *testing.T) {
	orig := Doc()
	defer Install(orig)

	d := NewDocument()
	prev := Install(d)
	if prev != orig {
		t.Error("Install should return the previous document")
	}
	if Doc() != d {
		t.Error("Doc should return the installed document")
	}

	// A reference captured before Reset stays usable: late async
	// callbacks touch the old tree, not a nil.
	captured := Doc()
	Reset()
	if Doc() == d {
		t.Error("Reset should install a fresh document")
	}
	if Doc() == nil {
		t.Fatal("ambient document must never be nil")
	}
	captured.Body().AppendChild(captured.CreateTextNode("late write, no panic"))
}

func TestToVNodeElement(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div")
	div.SetAttribute("id", "x")
	div.AddClass("box")
	div.SetStyle("color", "red")
	div.AppendChild(d.CreateTextNode("hi"))

	v := ToVNode(div)
	if v.Kind != vdom.KindElement || v.Tag != "div" {
		t.Fatalf("unexpected vnode: %+v", v)
	}
	if v.Attrs["id"] != "x" || v.Attrs["class"] != "box" || v.Attrs["style"] != "color: red" {
		t.Errorf("attrs = %v", v.Attrs)
	}
	if len(v.Children) != 1 || v.Children[0].Text != "hi" {
		t.Errorf("children = %+v", v.Children)
	}
}

func TestToVNodeCommentAnchor(t *testing.T) {
	d := NewDocument()
	c := d.CreateComment("mount-7")
	v := ToVNode(c)
	if v.Kind != vdom.KindRaw {
		t.Fatalf("comment should convert to raw, got %v", v.Kind)
	}
	if v.Text != "<!--mount-7-->" {
		t.Errorf("got %q", v.Text)
	}
}

func TestToVNodeInnerHTML(t *testing.T) {
	d := NewDocument()
	div := d.CreateElement("div")
	div.SetInnerHTML("<svg></svg>")
	v := ToVNode(div)
	if len(v.Children) != 1 || v.Children[0].Kind != vdom.KindRaw {
		t.Fatalf("unexpected children: %+v", v.Children)
	}
	if v.Children[0].Text != "<svg></svg>" {
		t.Errorf("raw html = %q", v.Children[0].Text)
	}
}

func TestToVNodeDetachedFragment(t *testing.T) {
	d := NewDocument()
	frag := d.CreateDocumentFragment()
	frag.AppendChild(d.CreateTextNode("a"))
	frag.AppendChild(d.CreateElement("br"))

	v := ToVNode(frag)
	if v.Kind != vdom.KindFragment || len(v.Children) != 2 {
		t.Fatalf("unexpected fragment vnode: %+v", v)
	}
}
