package header

// TokenKind identifies a structural event of a token stream.
type TokenKind uint8

const (
	TokenObjectStart TokenKind = iota + 1 // '{'
	TokenObjectEnd                        // '}'
	TokenArrayStart                       // '['
	TokenArrayEnd                         // ']'
	TokenKey                              // object member key, in Text
	TokenNull                             // null
	TokenBool                             // true or false, in Bool
	TokenNumber                           // number literal, in Text
	TokenString                           // unquoted string, in Text
)

func (k TokenKind) String() string {
	switch k {
	case TokenObjectStart:
		return "ObjectStart"
	case TokenObjectEnd:
		return "ObjectEnd"
	case TokenArrayStart:
		return "ArrayStart"
	case TokenArrayEnd:
		return "ArrayEnd"
	case TokenKey:
		return "Key"
	case TokenNull:
		return "Null"
	case TokenBool:
		return "Bool"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	default:
		return "Unknown"
	}
}

// Token is one event of a pull-style JSON token stream.
//
// Text holds the key for TokenKey, the literal number text for TokenNumber and
// the unquoted string for TokenString. Bool is set for TokenBool.
type Token struct {
	Kind TokenKind
	Text string
	Bool bool
}

// IsScalar reports whether the token is a null, boolean, number or string value.
func (t Token) IsScalar() bool {
	return t.Kind >= TokenNull
}

// TokenStream is a pull-style sequence of tokens. Next returns false once the
// stream is exhausted.
type TokenStream interface {
	Next() (Token, bool)
}

// walkFrame is one open container on the walker stack.
type walkFrame struct {
	node    Value
	pos     int
	keyDone bool // object member key emitted, value pending
}

// walker produces the token stream of a Value without recursion.
type walker struct {
	root    Value
	started bool
	stack   []walkFrame
}

// Tokens returns a TokenStream producing the events of v in document order.
//
//	{"well": "A-1", "runs": [1, 2]}
//
// yields ObjectStart, Key(well), String(A-1), Key(runs), ArrayStart,
// Number(1), Number(2), ArrayEnd, ObjectEnd.
func (v Value) Tokens() TokenStream {
	return &walker{root: v}
}

func (w *walker) Next() (Token, bool) {
	if !w.started {
		w.started = true
		return w.enter(w.root), true
	}

	if len(w.stack) == 0 {
		return Token{}, false
	}

	top := &w.stack[len(w.stack)-1]
	switch top.node.kind {
	case KindObject:
		if top.pos == len(top.node.members) {
			w.stack = w.stack[:len(w.stack)-1]
			return Token{Kind: TokenObjectEnd}, true
		}
		member := top.node.members[top.pos]
		if !top.keyDone {
			top.keyDone = true
			return Token{Kind: TokenKey, Text: member.Key}, true
		}
		top.keyDone = false
		top.pos++

		return w.enter(member.Value), true
	default:
		if top.pos == len(top.node.items) {
			w.stack = w.stack[:len(w.stack)-1]
			return Token{Kind: TokenArrayEnd}, true
		}
		item := top.node.items[top.pos]
		top.pos++

		return w.enter(item), true
	}
}

// enter emits the opening token of v, pushing a frame for containers.
func (w *walker) enter(v Value) Token {
	switch v.kind {
	case KindObject:
		w.stack = append(w.stack, walkFrame{node: v})
		return Token{Kind: TokenObjectStart}
	case KindArray:
		w.stack = append(w.stack, walkFrame{node: v})
		return Token{Kind: TokenArrayStart}
	case KindBool:
		return Token{Kind: TokenBool, Bool: v.b}
	case KindInt, KindFloat, KindNumber:
		return Token{Kind: TokenNumber, Text: v.scalarText()}
	case KindString:
		return Token{Kind: TokenString, Text: v.s}
	default:
		return Token{Kind: TokenNull}
	}
}

// Collect drains ts into a slice. It is mainly useful in tests.
func Collect(ts TokenStream) []Token {
	var tokens []Token
	for tok, ok := ts.Next(); ok; tok, ok = ts.Next() {
		tokens = append(tokens, tok)
	}

	return tokens
}
