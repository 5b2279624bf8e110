package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodelang.dev/nodec/pkg/lexer"
	"nodelang.dev/nodec/pkg/token"
)

func TestTokenize(t *testing.T) {
	test := func(source string, want []token.Tag) {
		tokens, err := lexer.New(source).Tokenize()
		require.NoError(t, err)

		got := make([]token.Tag, 0, len(tokens))
		for _, tok := range tokens {
			got = append(got, tok.Tag)
		}
		assert.Equal(t, append(want, token.EOF), got)
	}

	t.Run("keywords and identifiers", func(t *testing.T) {
		test("node export fn main", []token.Tag{
			token.KwNode, token.KwExport, token.KwFn, token.Identifier,
		})
	})

	t.Run("numeric literals", func(t *testing.T) {
		test("42 3.14", []token.Tag{token.IntegerLit, token.FloatLit})
	})

	t.Run("two-character operators", func(t *testing.T) {
		test("== != <= >= && || ->", []token.Tag{
			token.Eq, token.Neq, token.Leq, token.Geq, token.AndAnd, token.OrOr, token.Arrow,
		})
	})

	t.Run("line comments are skipped", func(t *testing.T) {
		test("1 // trailing comment\n2", []token.Tag{token.IntegerLit, token.IntegerLit})
	})

	t.Run("string and char literals", func(t *testing.T) {
		test(`"hi" 'x'`, []token.Tag{token.StringLit, token.CharLit})
	})
}

func TestTokenizeErrors(t *testing.T) {
	t.Run("unterminated string", func(t *testing.T) {
		_, err := lexer.New(`"unterminated`).Tokenize()
		assert.Error(t, err)
	})

	t.Run("multi-codepoint char literal", func(t *testing.T) {
		_, err := lexer.New(`'ab'`).Tokenize()
		assert.Error(t, err)
	})

	t.Run("bare ampersand", func(t *testing.T) {
		_, err := lexer.New(`&`).Tokenize()
		assert.Error(t, err)
	})
}

func TestLiteralValues(t *testing.T) {
	tokens, err := lexer.New(`123 4.5 'z' "abc" true false`).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 7) // 6 literals + EOF

	assert.Equal(t, int32(123), tokens[0].IntVal)
	assert.InDelta(t, float32(4.5), tokens[1].FloatVal, 0.0001)
	assert.Equal(t, 'z', tokens[2].CharVal)
	assert.Equal(t, "abc", tokens[3].StrVal)
	assert.True(t, tokens[4].BoolVal)
	assert.False(t, tokens[5].BoolVal)
}
