package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSDoc_NoTags(t *testing.T) {
	assert.Nil(t, ParseJSDoc("/** just prose, nothing annotated */"))
}

func TestParseJSDoc_TypeDeclares(t *testing.T) {
	info := ParseJSDoc("/** @type {number} */")
	require.NotNil(t, info)
	assert.True(t, info.ContainsDeclaration())
}

func TestParseJSDoc_NonDeclaringTag(t *testing.T) {
	info := ParseJSDoc("/** @deprecated use somethingElse */")
	require.NotNil(t, info)
	assert.False(t, info.ContainsDeclaration())
	assert.Empty(t, info.TypeRoots())
}

func TestParseJSDoc_QualifiedTypeRoot(t *testing.T) {
	info := ParseJSDoc("/** @type {foo.bar.Baz} */")
	require.NotNil(t, info)
	roots := info.TypeRoots()
	require.Len(t, roots, 1)
	assert.Equal(t, KindGetProp, roots[0].Kind)
	assert.Equal(t, "foo.bar.Baz", QualifiedName(roots[0]))
}

func TestParseJSDoc_UnionTypeRoots(t *testing.T) {
	info := ParseJSDoc("/** @param {Foo|Bar} x */")
	require.NotNil(t, info)
	roots := info.TypeRoots()
	require.Len(t, roots, 2)
	assert.Equal(t, "Foo", roots[0].Value)
	assert.Equal(t, "Bar", roots[1].Value)
}

func TestParseJSDoc_FunctionTypeIsNameless(t *testing.T) {
	info := ParseJSDoc("/** @type {function(Foo): Bar} */")
	require.NotNil(t, info)
	roots := info.TypeRoots()
	require.NotEmpty(t, roots)

	fn := roots[0]
	require.Equal(t, KindFunction, fn.Kind)
	require.NotEmpty(t, fn.Children)
	// First child is a parameter list, not a name. Extern traversal
	// relies on that to skip documentation function shapes.
	assert.Equal(t, KindParamList, fn.FirstChild().Kind)
}

func TestParseJSDoc_NilReceiverSafe(t *testing.T) {
	var info *JSDocInfo
	assert.False(t, info.ContainsDeclaration())
	assert.Nil(t, info.TypeRoots())
}
