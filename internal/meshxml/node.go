package meshxml

// Attr is a single name/value attribute. Values are stored pre-formatted.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of the document tree. A node owns its children
// exclusively; there are no parent links.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
}

// NewNode returns an empty element with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// Append links a new child element at the end and returns it.
func (n *Node) Append(tag string) *Node {
	c := NewNode(tag)
	n.Children = append(n.Children, c)
	return c
}

// SetAttr sets an attribute, keeping the position of an existing one.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns all children with the given tag, in order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}
