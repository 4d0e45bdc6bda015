package lexer

// Source is a cursor over a token sequence. The parser reads tokens only through it.
type Source interface {
	// Current returns the token under the cursor.
	Current() Token
	// Advance moves the cursor forward by one token and returns the new current token.
	// The cursor never moves past the terminating EOF.
	Advance() Token
	// Previous returns the token before the cursor, or the zero Token at position 0.
	Previous() Token
	// Position returns the absolute cursor position.
	Position() int
	// Seek moves the cursor to pos. Positions outside the sequence are ignored.
	Seek(pos int)
	// Reset moves the cursor back to the first token.
	Reset()
}

// Stream is a Source backed by a fully tokenized input.
type Stream struct {
	tokens []Token
	pos    int
}

func NewStream(input []byte, file string) *Stream {
	return &Stream{tokens: Tokenize(input, file)}
}

// NewTokenStream wraps an existing token slice. An EOF token is appended when missing
// and Prev links are rebuilt; the caller's slice is not modified.
func NewTokenStream(tokens []Token) *Stream {
	ts := make([]Token, len(tokens), len(tokens)+1)
	copy(ts, tokens)
	if len(ts) == 0 || ts[len(ts)-1].Kind != TokenEOF {
		var eof Token
		if len(ts) > 0 {
			end := ts[len(ts)-1].Span.End
			eof.Span = Span{Start: end, End: end}
		}
		ts = append(ts, eof)
	}
	link(ts)
	return &Stream{tokens: ts}
}

func (s *Stream) Current() Token {
	return s.tokens[s.pos]
}

func (s *Stream) Advance() Token {
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return s.tokens[s.pos]
}

func (s *Stream) Previous() Token {
	if s.pos == 0 {
		return Token{}
	}
	return s.tokens[s.pos-1]
}

func (s *Stream) Position() int {
	return s.pos
}

func (s *Stream) Seek(pos int) {
	if pos < 0 || pos >= len(s.tokens) {
		return
	}
	s.pos = pos
}

func (s *Stream) Reset() {
	s.pos = 0
}

// Tokens returns the underlying significant tokens, EOF included.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// Len returns the number of tokens including EOF.
func (s *Stream) Len() int {
	return len(s.tokens)
}
