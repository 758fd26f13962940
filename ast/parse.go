package ast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Parse parses JavaScript source into a taproot syntax tree. The file
// name becomes the module identifier of every node; fromExterns marks
// the whole tree as declaration-only input.
func Parse(ctx context.Context, src []byte, file string, fromExterns bool) (*Node, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}

	c := &converter{src: src, file: file, externs: fromExterns}
	root := c.node(KindRoot, "", tree.RootNode())
	c.children(root, tree.RootNode())
	return root, nil
}

// converter turns a tree-sitter concrete syntax tree into Node trees.
type converter struct {
	src     []byte
	file    string
	externs bool
}

// node allocates a Node positioned at the tree-sitter node ts.
func (c *converter) node(kind Kind, value string, ts *sitter.Node) *Node {
	return &Node{
		Kind:        kind,
		Value:       value,
		FromExterns: c.externs,
		File:        c.file,
		Line:        int(ts.StartPoint().Row) + 1,
		Col:         int(ts.StartPoint().Column) + 1,
	}
}

// children converts the named children of ts into children of parent,
// dropping comments and attaching doc comments to the statement that
// follows them.
func (c *converter) children(parent *Node, ts *sitter.Node) {
	var pendingDoc *JSDocInfo
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		child := ts.NamedChild(i)
		if child.Type() == "comment" {
			text := child.Content(c.src)
			if strings.HasPrefix(text, "/**") {
				pendingDoc = ParseJSDoc(text)
			}
			continue
		}
		converted := c.convert(child)
		if converted == nil {
			pendingDoc = nil
			continue
		}
		if pendingDoc != nil {
			attachDoc(converted, pendingDoc)
			pendingDoc = nil
		}
		parent.AddChild(converted)
	}
}

// attachDoc hangs a doc comment on the node the index will look at: the
// expression of an expression statement (the stub or assignment itself),
// otherwise the statement node.
func attachDoc(n *Node, doc *JSDocInfo) {
	if n.Kind == KindExprResult && n.FirstChild() != nil {
		n.FirstChild().JSDoc = doc
		return
	}
	n.JSDoc = doc
}

// convert maps one tree-sitter node to a Node. Unrecognized syntax maps
// to KindOther with children preserved so traversal still descends.
func (c *converter) convert(ts *sitter.Node) *Node {
	switch ts.Type() {
	case "comment":
		return nil

	case "expression_statement":
		n := c.node(KindExprResult, "", ts)
		c.children(n, ts)
		return n

	case "variable_declaration", "lexical_declaration":
		return c.convertVar(ts)

	case "function_declaration", "function", "function_expression",
		"generator_function", "generator_function_declaration":
		return c.convertFunction(ts)

	case "arrow_function":
		return c.convertArrow(ts)

	case "identifier", "shorthand_property_identifier", "statement_identifier":
		return c.node(KindName, ts.Content(c.src), ts)

	case "this":
		return c.node(KindThis, "", ts)

	case "member_expression":
		obj := ts.ChildByFieldName("object")
		prop := ts.ChildByFieldName("property")
		if obj == nil || prop == nil {
			return c.convertOther(ts)
		}
		n := c.node(KindGetProp, prop.Content(c.src), ts)
		n.AddChild(c.convert(obj))
		return n

	case "assignment_expression":
		left := ts.ChildByFieldName("left")
		right := ts.ChildByFieldName("right")
		if left == nil || right == nil {
			return c.convertOther(ts)
		}
		n := c.node(KindAssign, "=", ts)
		n.AddChild(c.convert(left))
		n.AddChild(c.convert(right))
		return n

	case "ternary_expression":
		cond := ts.ChildByFieldName("condition")
		cons := ts.ChildByFieldName("consequence")
		alt := ts.ChildByFieldName("alternative")
		if cond == nil || cons == nil || alt == nil {
			return c.convertOther(ts)
		}
		n := c.node(KindHook, "", ts)
		n.AddChild(c.convert(cond))
		n.AddChild(c.convert(cons))
		n.AddChild(c.convert(alt))
		return n

	case "call_expression":
		n := c.node(KindCall, "", ts)
		if fn := ts.ChildByFieldName("function"); fn != nil {
			n.AddChild(c.convert(fn))
		}
		if args := ts.ChildByFieldName("arguments"); args != nil {
			c.children(n, args)
		}
		return n

	case "new_expression":
		n := c.node(KindNew, "", ts)
		if ctor := ts.ChildByFieldName("constructor"); ctor != nil {
			n.AddChild(c.convert(ctor))
		}
		if args := ts.ChildByFieldName("arguments"); args != nil {
			c.children(n, args)
		}
		return n

	case "unary_expression":
		op := ts.ChildByFieldName("operator")
		arg := ts.ChildByFieldName("argument")
		if op == nil || arg == nil {
			return c.convertOther(ts)
		}
		n := c.node(KindUnary, op.Content(c.src), ts)
		n.AddChild(c.convert(arg))
		return n

	case "parenthesized_expression":
		// Transparent: (expr) converts to expr.
		for i := 0; i < int(ts.NamedChildCount()); i++ {
			child := ts.NamedChild(i)
			if child.Type() != "comment" {
				return c.convert(child)
			}
		}
		return nil

	case "statement_block":
		n := c.node(KindBlock, "", ts)
		c.children(n, ts)
		return n

	case "return_statement":
		n := c.node(KindReturn, "", ts)
		c.children(n, ts)
		return n

	case "class_body":
		n := c.node(KindClassMembers, "", ts)
		c.children(n, ts)
		return n

	case "method_definition":
		return c.convertMethod(ts)

	case "formal_parameters":
		n := c.node(KindParamList, "", ts)
		c.children(n, ts)
		return n

	case "number":
		return c.node(KindNumber, ts.Content(c.src), ts)
	case "string":
		return c.node(KindString, ts.Content(c.src), ts)
	case "template_string":
		return c.node(KindTemplateLit, "", ts)
	case "regex":
		return c.node(KindRegexp, ts.Content(c.src), ts)
	case "true":
		return c.node(KindTrue, "", ts)
	case "false":
		return c.node(KindFalse, "", ts)
	case "null":
		return c.node(KindNull, "", ts)
	case "undefined":
		// The grammar lexes undefined as its own token; the index treats
		// it as the immutable global name.
		return c.node(KindName, "undefined", ts)

	default:
		return c.convertOther(ts)
	}
}

// convertVar maps a var/let/const statement: each declarator becomes a
// name child carrying its initializer, matching the shape definition
// extraction expects. Destructuring declarators have no single name and
// are preserved as KindOther so their initializers are still traversed.
func (c *converter) convertVar(ts *sitter.Node) *Node {
	n := c.node(KindVar, "", ts)
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		decl := ts.NamedChild(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		nameTS := decl.ChildByFieldName("name")
		valueTS := decl.ChildByFieldName("value")
		if nameTS != nil && nameTS.Type() == "identifier" {
			name := c.node(KindName, nameTS.Content(c.src), nameTS)
			if valueTS != nil {
				name.AddChild(c.convert(valueTS))
			}
			n.AddChild(name)
			continue
		}
		other := c.node(KindOther, decl.Type(), decl)
		if valueTS != nil {
			other.AddChild(c.convert(valueTS))
		}
		n.AddChild(other)
	}
	return n
}

// convertFunction maps function declarations and expressions to the
// three-child [name, params, body] shape.
func (c *converter) convertFunction(ts *sitter.Node) *Node {
	n := c.node(KindFunction, "", ts)

	nameTS := ts.ChildByFieldName("name")
	if nameTS != nil {
		n.AddChild(c.node(KindName, nameTS.Content(c.src), nameTS))
	} else {
		n.AddChild(c.node(KindName, "", ts))
	}

	if params := ts.ChildByFieldName("parameters"); params != nil {
		n.AddChild(c.convert(params))
	} else {
		n.AddChild(c.node(KindParamList, "", ts))
	}

	if body := ts.ChildByFieldName("body"); body != nil {
		n.AddChild(c.convert(body))
	} else {
		n.AddChild(c.node(KindBlock, "", ts))
	}
	return n
}

// convertArrow maps an arrow function to the same shape as an anonymous
// function. An expression body ends up as the single child of the block
// without an expression-statement wrapper, so assignments inside it are
// not mistaken for statement-level definitions.
func (c *converter) convertArrow(ts *sitter.Node) *Node {
	n := c.node(KindFunction, "", ts)
	n.AddChild(c.node(KindName, "", ts))

	params := c.node(KindParamList, "", ts)
	if p := ts.ChildByFieldName("parameters"); p != nil {
		c.children(params, p)
	} else if p := ts.ChildByFieldName("parameter"); p != nil {
		// Single bare parameter: x => ...
		params.AddChild(c.convert(p))
	}
	n.AddChild(params)

	body := ts.ChildByFieldName("body")
	if body != nil && body.Type() == "statement_block" {
		n.AddChild(c.convert(body))
	} else {
		block := c.node(KindBlock, "", ts)
		if body != nil {
			block.AddChild(c.convert(body))
		}
		n.AddChild(block)
	}
	return n
}

// convertMethod maps a class method to a member-function definition
// whose child is the method's function.
func (c *converter) convertMethod(ts *sitter.Node) *Node {
	nameTS := ts.ChildByFieldName("name")
	name := ""
	if nameTS != nil {
		name = nameTS.Content(c.src)
	}
	n := c.node(KindMemberFunctionDef, name, ts)

	fn := c.node(KindFunction, "", ts)
	fn.AddChild(c.node(KindName, "", ts))
	if params := ts.ChildByFieldName("parameters"); params != nil {
		fn.AddChild(c.convert(params))
	} else {
		fn.AddChild(c.node(KindParamList, "", ts))
	}
	if body := ts.ChildByFieldName("body"); body != nil {
		fn.AddChild(c.convert(body))
	} else {
		fn.AddChild(c.node(KindBlock, "", ts))
	}
	n.AddChild(fn)
	return n
}

// convertOther preserves unrecognized syntax as a generic node so the
// gathering traversal still reaches definitions nested inside it.
func (c *converter) convertOther(ts *sitter.Node) *Node {
	n := c.node(KindOther, ts.Type(), ts)
	c.children(n, ts)
	return n
}
