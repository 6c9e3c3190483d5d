package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokens_Scalar(t *testing.T) {
	require.Equal(t, []Token{{Kind: TokenNull}}, Collect(Null().Tokens()))
	require.Equal(t, []Token{{Kind: TokenBool, Bool: true}}, Collect(Bool(true).Tokens()))
	require.Equal(t, []Token{{Kind: TokenNumber, Text: "12"}}, Collect(Int(12).Tokens()))
	require.Equal(t, []Token{{Kind: TokenNumber, Text: "0.5"}}, Collect(Float(0.5).Tokens()))
	require.Equal(t, []Token{{Kind: TokenString, Text: "m"}}, Collect(String("m").Tokens()))
}

func TestTokens_Nested(t *testing.T) {
	v := Object(
		Member{"well", String("A-1")},
		Member{"runs", Array(Int(1), Object(Member{"depth", Float(1000)}), Array())},
		Member{"empty", EmptyObject()},
	)

	want := []Token{
		{Kind: TokenObjectStart},
		{Kind: TokenKey, Text: "well"},
		{Kind: TokenString, Text: "A-1"},
		{Kind: TokenKey, Text: "runs"},
		{Kind: TokenArrayStart},
		{Kind: TokenNumber, Text: "1"},
		{Kind: TokenObjectStart},
		{Kind: TokenKey, Text: "depth"},
		{Kind: TokenNumber, Text: "1000.0"},
		{Kind: TokenObjectEnd},
		{Kind: TokenArrayStart},
		{Kind: TokenArrayEnd},
		{Kind: TokenArrayEnd},
		{Kind: TokenKey, Text: "empty"},
		{Kind: TokenObjectStart},
		{Kind: TokenObjectEnd},
		{Kind: TokenObjectEnd},
	}
	require.Equal(t, want, Collect(v.Tokens()))
}

func TestTokens_ExhaustedStreamStaysExhausted(t *testing.T) {
	ts := EmptyObject().Tokens()
	Collect(ts)

	_, ok := ts.Next()
	require.False(t, ok)
}

func TestTokens_DeepNesting(t *testing.T) {
	v := Int(0)
	for i := 0; i < 500; i++ {
		v = Array(v)
	}

	tokens := Collect(v.Tokens())
	require.Len(t, tokens, 1001)
	require.Equal(t, TokenArrayStart, tokens[0].Kind)
	require.Equal(t, TokenNumber, tokens[500].Kind)
	require.Equal(t, TokenArrayEnd, tokens[1000].Kind)
}

func TestToken_IsScalar(t *testing.T) {
	require.True(t, Token{Kind: TokenString}.IsScalar())
	require.True(t, Token{Kind: TokenNull}.IsScalar())
	require.False(t, Token{Kind: TokenKey}.IsScalar())
	require.False(t, Token{Kind: TokenArrayEnd}.IsScalar())
}
