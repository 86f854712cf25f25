package feed

import (
	"bytes"
	"io"
)

const xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

type attr struct {
	name  string
	value string // already escaped
}

// Node is an XML element under construction. Text and attribute values are
// stored ready to write: Text and Attr escape, RawText and RawAttr don't.
type Node struct {
	name     string
	attrs    []attr
	text     string
	children []*Node
}

// El starts a new element.
func El(name string, children ...*Node) *Node {
	return &Node{name: name, children: children}
}

func (n *Node) Attr(name, value string) *Node {
	n.attrs = append(n.attrs, attr{name, Escape(value)})
	return n
}

func (n *Node) RawAttr(name, value string) *Node {
	n.attrs = append(n.attrs, attr{name, value})
	return n
}

func (n *Node) Text(s string) *Node {
	n.text = Escape(s)
	return n
}

func (n *Node) RawText(s string) *Node {
	n.text = s
	return n
}

// Append adds children, nil nodes are skipped so optional elements can be
// passed inline.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// Document serializes root with the XML declaration.
func Document(root *Node) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	root.write(&buf, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func (n *Node) write(w io.Writer, depth int) {
	indent(w, depth)
	io.WriteString(w, "<"+n.name)
	for _, a := range n.attrs {
		io.WriteString(w, " "+a.name+`="`+a.value+`"`)
	}

	if n.text == "" && len(n.children) == 0 {
		io.WriteString(w, "/>")
		return
	}
	io.WriteString(w, ">")
	io.WriteString(w, n.text)
	if len(n.children) > 0 {
		for _, c := range n.children {
			io.WriteString(w, "\n")
			c.write(w, depth+1)
		}
		io.WriteString(w, "\n")
		indent(w, depth)
	}
	io.WriteString(w, "</"+n.name+">")
}

func indent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, "  ")
	}
}
