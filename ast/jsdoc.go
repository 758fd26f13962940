package ast

// JSDoc annotation handling. Only two questions matter to the index:
// does a comment declare anything (types a stub), and which type
// references does it mention (extern type names that must be visited).
// Everything else in a doc comment is ignored.

// declarationTags are the annotations that make a comment "declare
// something" for stub-pruning purposes.
var declarationTags = map[string]bool{
	"type":        true,
	"typedef":     true,
	"param":       true,
	"return":      true,
	"returns":     true,
	"const":       true,
	"constant":    true,
	"define":      true,
	"constructor": true,
	"interface":   true,
	"record":      true,
	"enum":        true,
	"extends":     true,
	"implements":  true,
	"this":        true,
	"override":    true,
}

// typedTags are the annotations whose {...} payload is parsed for type
// references.
var typedTags = map[string]bool{
	"type":       true,
	"typedef":    true,
	"param":      true,
	"return":     true,
	"returns":    true,
	"const":      true,
	"constant":   true,
	"define":     true,
	"enum":       true,
	"extends":    true,
	"implements": true,
	"this":       true,
}

// JSDocInfo is the parsed form of one documentation comment.
type JSDocInfo struct {
	declares  bool
	typeRoots []*Node
}

// ContainsDeclaration reports whether the comment carries an annotation
// that declares a type, constant, or signature. An untyped extern stub
// whose comment declares nothing is a candidate for pruning.
func (i *JSDocInfo) ContainsDeclaration() bool {
	return i != nil && i.declares
}

// TypeRoots returns the type-reference expressions mentioned in the
// comment's annotations, as detached node trees. Qualified names parse
// to name/getprop chains; function type expressions parse to function
// nodes whose first child is a parameter list rather than a name.
func (i *JSDocInfo) TypeRoots() []*Node {
	if i == nil {
		return nil
	}
	return i.typeRoots
}

// ParseJSDoc parses a "/** ... */" comment. Returns nil when the
// comment carries no annotations at all.
func ParseJSDoc(comment string) *JSDocInfo {
	info := &JSDocInfo{}
	sawTag := false
	for i := 0; i < len(comment); i++ {
		if comment[i] != '@' {
			continue
		}
		start := i + 1
		j := start
		for j < len(comment) && isIdentPart(comment[j]) {
			j++
		}
		tag := comment[start:j]
		if tag == "" {
			continue
		}
		sawTag = true
		if declarationTags[tag] {
			info.declares = true
		}
		if typedTags[tag] {
			if payload, rest := bracePayload(comment[j:]); payload != "" {
				info.typeRoots = append(info.typeRoots, parseTypeRefs(payload)...)
				j += rest
			}
		}
		i = j - 1
	}
	if !sawTag {
		return nil
	}
	return info
}

// bracePayload extracts the balanced {...} immediately following a tag,
// skipping whitespace. Returns the inner text and the number of bytes
// consumed from s.
func bracePayload(s string) (string, int) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != '{' {
		return "", 0
	}
	depth := 0
	start := i + 1
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start:j], j + 1
			}
		}
	}
	return "", 0
}

// parseTypeRefs extracts type references from a jsdoc type expression.
// It is not a full type grammar: it recognizes dotted qualified names
// and function(...) shapes and skips everything else.
func parseTypeRefs(s string) []*Node {
	var roots []*Node
	i := 0
	for i < len(s) {
		if !isIdentStart(s[i]) {
			i++
			continue
		}
		word, next := scanIdent(s, i)
		if word == "function" && peekNonSpace(s, next) == '(' {
			fn, after := parseFunctionType(s, next)
			roots = append(roots, fn)
			i = after
			continue
		}
		node := New(KindName, word)
		i = next
		for peekNonSpace(s, i) == '.' {
			i = skipSpace(s, i) + 1
			if i >= len(s) || !isIdentStart(s[i]) {
				break
			}
			var prop string
			prop, i = scanIdent(s, i)
			node = New(KindGetProp, prop, node)
		}
		roots = append(roots, node)
	}
	return roots
}

// parseFunctionType parses "( ... )" after the function keyword into a
// function node whose first child is the parameter list. The shape is
// deliberately name-less so extern traversal recognizes it as a
// documentation function and skips its subtree.
func parseFunctionType(s string, i int) (*Node, int) {
	i = skipSpace(s, i) // now at '('
	depth := 0
	start := i + 1
	end := len(s)
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = j
				fn := New(KindFunction, "", New(KindParamList, "", parseTypeRefs(s[start:end])...))
				return fn, end + 1
			}
		}
	}
	return New(KindFunction, "", New(KindParamList, "")), end
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func scanIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) && isIdentPart(s[i]) {
		i++
	}
	return s[start:i], i
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

func peekNonSpace(s string, i int) byte {
	i = skipSpace(s, i)
	if i < len(s) {
		return s[i]
	}
	return 0
}
