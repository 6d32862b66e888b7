package operators

import (
	"sync"
	"testing"

	"github.com/randalmurphal/jsepeval/pkg/jsepeval/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New()

	assert.ElementsMatch(t, ast.Types(), r.NodeTypes())
	assert.Equal(t, []string{"!", "+", "++", "-", "--", "~"}, r.UnaryOperators())
	assert.ElementsMatch(t, []string{
		"===", "!==", "==", "!=", ">", "<", ">=", "<=",
		"+", "-", "*", "/", "%", "**",
		"&", "|", "^", "<<", ">>", ">>>",
		"||", "&&",
	}, r.BinaryOperators())
}

func TestNewEmpty(t *testing.T) {
	r := NewEmpty()
	assert.Empty(t, r.NodeTypes())
	assert.Empty(t, r.UnaryOperators())
	assert.Empty(t, r.BinaryOperators())
}

func TestNodeTypes(t *testing.T) {
	r := New()
	require.True(t, r.HasNodeType(ast.TypeCall))

	r.DisallowNodeType(ast.TypeCall)
	assert.False(t, r.HasNodeType(ast.TypeCall))
	assert.NotContains(t, r.NodeTypes(), ast.TypeCall)

	r.AllowNodeType(ast.TypeCall)
	assert.True(t, r.HasNodeType(ast.TypeCall))

	// Unknown tags may be registered; nothing validates them.
	r.AllowNodeType("NewExpression")
	assert.True(t, r.HasNodeType("NewExpression"))
}

func TestBinaryRemoveAndRestore(t *testing.T) {
	r := New()

	orig, ok := r.BinaryOperator("+")
	require.True(t, ok)

	r.RemoveBinary("+")
	_, ok = r.BinaryOperator("+")
	assert.False(t, ok)

	r.SetBinary("+", orig)
	fn, ok := r.BinaryOperator("+")
	require.True(t, ok)
	assert.Equal(t, 5.0, fn(2, 3))
}

func TestSetShadowsBuiltin(t *testing.T) {
	r := New()
	r.SetUnary("!", func(any) any { return "shadowed" })

	fn, ok := r.UnaryOperator("!")
	require.True(t, ok)
	assert.Equal(t, "shadowed", fn(true))
}

func TestRemoveAbsent(t *testing.T) {
	r := New()
	r.RemoveUnary("nope")
	r.RemoveBinary("nope")
	assert.Len(t, r.UnaryOperators(), 6)
}

func TestClone(t *testing.T) {
	r := New()
	c := r.Clone()

	c.RemoveBinary("===")
	c.DisallowNodeType(ast.TypeThis)
	c.SetUnary("?", func(a any) any { return a })

	_, ok := r.BinaryOperator("===")
	assert.True(t, ok, "clone mutation leaked into original")
	assert.True(t, r.HasNodeType(ast.TypeThis))
	_, ok = r.UnaryOperator("?")
	assert.False(t, ok)

	_, ok = c.BinaryOperator("===")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.SetBinary("custom", func(a, b any) any { return a })
			r.RemoveBinary("custom")
		}()
		go func() {
			defer wg.Done()
			_, _ = r.BinaryOperator("custom")
			_ = r.HasNodeType(ast.TypeLiteral)
			_ = r.BinaryOperators()
		}()
	}
	wg.Wait()

	_, ok := r.BinaryOperator("+")
	assert.True(t, ok)
}
