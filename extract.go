package taproot

import "github.com/jward/taproot/ast"

// ExtractDefinition decides whether a node is a definition site and, if
// so, returns the definition with its left and right hand sides. The
// node it fires on is always the left-hand side itself, so definition
// sites and left-handsides coincide in the index.
//
// Classification here is provisional: everything extractable starts as
// Concrete (or Stub for extern placeholders) and the gathering
// traversal demotes uncharacterizable right-hand sides to Unknown.
func ExtractDefinition(n *ast.Node, inExterns bool) *Definition {
	parent := n.Parent
	if parent == nil {
		return nil
	}

	switch {
	case parent.Kind == ast.KindVar && n.Kind == ast.KindName:
		// var a = ...; the declarator's child is the initializer.
		if rv := n.FirstChild(); rv != nil {
			return &Definition{kind: Concrete, lvalue: n, rvalue: rv, extern: inExterns}
		}
		if inExterns {
			// Extern "var a;" declares a name with no value.
			return &Definition{kind: Concrete, lvalue: n, extern: true}
		}
		return nil

	case parent.Kind == ast.KindFunction && parent.FirstChild() == n && n.Value != "":
		// function f(){} or a named function expression; the function
		// itself is the value.
		return &Definition{kind: Concrete, lvalue: n, rvalue: parent, extern: inExterns}

	case parent.Kind == ast.KindAssign && parent.Value == "=" &&
		parent.FirstChild() == n && len(parent.Children) == 2 &&
		parent.Parent != nil && parent.Parent.Kind == ast.KindExprResult &&
		(n.Kind == ast.KindName || n.Kind == ast.KindGetProp):
		// Statement-level a = ... or a.b = ...; assignments nested in
		// larger expressions are uses, not definitions.
		return &Definition{kind: Concrete, lvalue: n, rvalue: parent.Children[1], extern: inExterns}

	case n.Kind == ast.KindMemberFunctionDef:
		return &Definition{kind: Concrete, lvalue: n, rvalue: n.FirstChild(), extern: inExterns}

	case parent.Kind == ast.KindParamList && n.Kind == ast.KindName && !inExterns:
		// Implementation parameters bind whatever the caller passes.
		// Extern parameters never reach here: the traversal skips them
		// as documentation placeholders.
		return &Definition{kind: Concrete, lvalue: n, extern: false}

	case inExterns && parent.Kind == ast.KindExprResult &&
		(n.Kind == ast.KindName || n.Kind == ast.KindGetProp) &&
		ast.QualifiedName(n) != "":
		// Bare "Foo.bar;" extern statement: a name-only stub.
		return &Definition{kind: Stub, lvalue: n, extern: true}
	}
	return nil
}
