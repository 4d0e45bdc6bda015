package parser

import "encoding/json"

type jsonNode struct {
	Category string      `json:"category,omitempty"`
	Kind     string      `json:"kind,omitempty"`
	Token    string      `json:"token,omitempty"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *CategoryNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func (n *LeafNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func toJSON(n Node) *jsonNode {
	jn := &jsonNode{}
	span := n.Span()
	if span.Start.Line != 0 || span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Line: span.Start.Line, Column: span.Start.Column},
			End:   jsonPosition{Line: span.End.Line, Column: span.End.Column},
		}
	}

	switch n := n.(type) {
	case *CategoryNode:
		jn.Category = n.Name
		if len(n.Children) > 0 {
			jn.Children = make([]*jsonNode, len(n.Children))
			for i, child := range n.Children {
				jn.Children[i] = toJSON(child)
			}
		}
	case *LeafNode:
		jn.Kind = n.Token.Kind.String()
		jn.Token = n.Token.Literal
	}
	return jn
}
