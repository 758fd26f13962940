package ast

// QualifiedName renders a name or property-access chain as "a.b.c".
// Returns "" when the node is not a qualified name (a call receiver, a
// computed access, and so on). "this"-rooted chains render as "this.p".
func QualifiedName(n *Node) string {
	switch n.Kind {
	case KindName:
		return n.Value
	case KindThis:
		return "this"
	case KindGetProp:
		recv := QualifiedName(n.FirstChild())
		if recv == "" {
			return ""
		}
		return recv + "." + n.Value
	}
	return ""
}

// MatchesQualifiedName reports whether a and b denote the same fully
// qualified reference. Non-qualified shapes never match.
func MatchesQualifiedName(a, b *Node) bool {
	qa := QualifiedName(a)
	return qa != "" && qa == QualifiedName(b)
}

// immutableNames are global identifiers whose value cannot change.
var immutableNames = map[string]bool{
	"undefined": true,
	"Infinity":  true,
	"NaN":       true,
}

// IsImmutableValue reports whether evaluating n always yields the same
// value with no side effects: literals, the immutable globals, and
// simple unary operators applied to immutable operands.
func IsImmutableValue(n *Node) bool {
	switch n.Kind {
	case KindNumber, KindString, KindTemplateLit, KindRegexp,
		KindTrue, KindFalse, KindNull:
		return true
	case KindName:
		return immutableNames[n.Value]
	case KindUnary:
		switch n.Value {
		case "-", "+", "!", "~", "void":
			return len(n.Children) == 1 && IsImmutableValue(n.Children[0])
		}
	}
	return false
}

// EnclosingScopeRoot returns the nearest function or file root that
// contains n, starting at n itself. A function node is its own scope
// root, so the name node of a function declaration belongs to the
// function, not its enclosing scope — the granularity incremental
// rebuild relies on.
func EnclosingScopeRoot(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind == KindFunction || cur.Kind == KindRoot {
			return cur
		}
	}
	return nil
}

// NameNode returns the node a function definition is indexed under: the
// function's own name when it has one, otherwise the declarator or
// assignment left-hand side the function is bound to. Returns nil for a
// genuinely anonymous function.
func NameNode(fn *Node) *Node {
	if fn.Kind != KindFunction {
		return nil
	}
	if name := fn.FirstChild(); name != nil && name.Kind == KindName && name.Value != "" {
		return name
	}
	parent := fn.Parent
	if parent == nil {
		return nil
	}
	switch parent.Kind {
	case KindName:
		// var f = function(){}
		if parent.Parent != nil && parent.Parent.Kind == KindVar {
			return parent
		}
	case KindAssign:
		// f.g = function(){}
		if parent.Value == "=" && len(parent.Children) == 2 && parent.Children[1] == fn {
			return parent.Children[0]
		}
	case KindMemberFunctionDef:
		return parent
	}
	return nil
}
