// Package ast defines the JavaScript syntax tree that taproot indexes.
//
// The tree is deliberately small: a handful of node kinds cover the
// shapes the definition index cares about (names, property accesses,
// assignments, declarations, functions, immutable literals), and every
// other construct collapses into KindOther with its children preserved
// so traversals still reach nested definitions. Trees are produced from
// source text by Parse, or constructed directly with New for tests and
// synthetic inputs.
package ast

import "fmt"

// Kind discriminates node shapes.
type Kind uint8

const (
	KindRoot Kind = iota // one per input file
	KindName
	KindThis
	KindGetProp // property access; Value holds the property name
	KindCall
	KindNew
	KindAssign // Value holds the operator; only "=" defines
	KindVar    // declaration statement; children are declarator names
	KindFunction
	KindParamList
	KindBlock
	KindMemberFunctionDef // Value holds the member name
	KindClassMembers
	KindHook // conditional expression
	KindExprResult
	KindReturn
	KindNumber
	KindString
	KindTemplateLit
	KindRegexp
	KindTrue
	KindFalse
	KindNull
	KindUnary // Value holds the operator
	KindOther // unrecognized syntax; Value holds the grammar node type
)

var kindNames = map[Kind]string{
	KindRoot:              "root",
	KindName:              "name",
	KindThis:              "this",
	KindGetProp:           "getprop",
	KindCall:              "call",
	KindNew:               "new",
	KindAssign:            "assign",
	KindVar:               "var",
	KindFunction:          "function",
	KindParamList:         "paramlist",
	KindBlock:             "block",
	KindMemberFunctionDef: "memberfunctiondef",
	KindClassMembers:      "classmembers",
	KindHook:              "hook",
	KindExprResult:        "exprresult",
	KindReturn:            "return",
	KindNumber:            "number",
	KindString:            "string",
	KindTemplateLit:       "templatelit",
	KindRegexp:            "regexp",
	KindTrue:              "true",
	KindFalse:             "false",
	KindNull:              "null",
	KindUnary:             "unary",
	KindOther:             "other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Node is one syntax tree node. Node identity (the pointer) is the
// "location" the definition index keys on; two distinct occurrences of
// the same name are two distinct nodes.
//
// Shape conventions:
//   - KindGetProp: Children[0] is the receiver, Value the property name.
//   - KindVar: each child is a KindName declarator; a declarator's first
//     child, when present, is its initializer.
//   - KindFunction: children are [name, params, body]. The name child is
//     a KindName (empty Value for anonymous functions). Function nodes
//     built from documentation type expressions do not follow this
//     convention — their first child is not a name, which is how extern
//     traversal recognizes them.
//   - KindMemberFunctionDef: Children[0] is the function, Value the name.
//   - KindHook: children are [condition, then, else].
type Node struct {
	Kind     Kind
	Value    string
	Children []*Node
	Parent   *Node

	// JSDoc is the documentation annotation attached to this node, if any.
	JSDoc *JSDocInfo

	// FromExterns marks nodes parsed from extern (declaration-only) inputs.
	FromExterns bool

	// Source position. Line and Col are 1-based; File is the input path.
	File string
	Line int
	Col  int
}

// New builds a node and wires the children's parent pointers.
func New(kind Kind, value string, children ...*Node) *Node {
	n := &Node{Kind: kind, Value: value}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// AddChild appends c and sets its parent.
func (n *Node) AddChild(c *Node) {
	if c == nil {
		return
	}
	c.Parent = n
	n.Children = append(n.Children, c)
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// MarkExterns sets FromExterns on n and its whole subtree.
func (n *Node) MarkExterns() {
	n.FromExterns = true
	for _, c := range n.Children {
		c.MarkExterns()
	}
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Value != "" {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Value)
	}
	return n.Kind.String()
}
