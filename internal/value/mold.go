package value

import (
	"fmt"
	"strings"
)

// Mold renders a value in dialect notation. The output of Mold on reader
// output reads back to an equal value for every kind the reader supports.
func Mold(v Value) string {
	var sb strings.Builder
	moldInto(&sb, v)
	return sb.String()
}

func moldInto(sb *strings.Builder, v Value) {
	switch val := v.(type) {
	case Null:
		sb.WriteString("null")
	case Logic:
		if val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Int:
		fmt.Fprintf(sb, "%d", int64(val))
	case Char:
		sb.WriteString(`#"`)
		sb.WriteString(escapeText(string(rune(val))))
		sb.WriteString(`"`)
	case Text:
		sb.WriteString(`"`)
		sb.WriteString(escapeText(string(val)))
		sb.WriteString(`"`)
	case Binary:
		sb.WriteString("#{")
		for _, b := range val {
			fmt.Fprintf(sb, "%02X", b)
		}
		sb.WriteString("}")
	case Word:
		sb.WriteString(string(val))
	case SetWord:
		sb.WriteString(string(val))
		sb.WriteString(":")
	case Tag:
		sb.WriteString("<")
		sb.WriteString(string(val))
		sb.WriteString(">")
	case Block:
		sb.WriteString("[")
		moldSeq(sb, val)
		sb.WriteString("]")
	case Group:
		sb.WriteString("(")
		moldSeq(sb, val.Body)
		sb.WriteString(")")
	case GetGroup:
		sb.WriteString(":(")
		moldSeq(sb, val.Body)
		sb.WriteString(")")
	case Quoted:
		sb.WriteString("'")
		moldInto(sb, val.V)
	case Datatype:
		sb.WriteString(Kind(val).String())
	case Typeset:
		sb.WriteString(val.Name)
	case Bitset:
		sb.WriteString(`#[bitset! "`)
		sb.WriteString(escapeText(string(val.Members())))
		sb.WriteString(`"]`)
	case Position:
		fmt.Fprintf(sb, "#[position! %d]", val.Index)
	case Native:
		fmt.Fprintf(sb, "#[native! %s]", val.Name)
	case Object:
		sb.WriteString("#[object! [")
		for i, p := range val {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(p.Name)
			sb.WriteString(": ")
			moldInto(sb, p.Val)
		}
		sb.WriteString("]]")
	}
}

func moldSeq(sb *strings.Builder, vals []Value) {
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(" ")
		}
		moldInto(sb, v)
	}
}

func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
