package render

import "strings"

// EscapeText escapes text for HTML content context. The four characters
// that can change parsing state in text position are replaced; everything
// else passes through.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// EscapeAttr escapes text for a double-quoted attribute value. Only '&'
// and '"' can break out of that context; '<' and '>' are legal inside
// attribute values and are left alone.
func EscapeAttr(s string) string {
	if !strings.ContainsAny(s, `&"`) {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
