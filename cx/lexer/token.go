package lexer

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Before orders positions by line, then column.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment
	TokenDirective

	// Literals
	TokenIdent
	TokenTypeName
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTrue
	TokenFalse

	// Keywords
	TokenChar
	TokenClass
	TokenConst
	TokenDo
	TokenDouble
	TokenElse
	TokenFloat
	TokenFor
	TokenIf
	TokenImplement
	TokenIn
	TokenInt
	TokenInternal
	TokenLong
	TokenNew
	TokenPrivate
	TokenPublic
	TokenReturn
	TokenShort
	TokenSizeof
	TokenStatic
	TokenStruct
	TokenSuper
	TokenTypedef
	TokenTypeid
	TokenUnion
	TokenUnsigned
	TokenUsing
	TokenVirtual
	TokenVoid
	TokenWhile

	// Separators
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenColonColon

	// Operators
	TokenAssign
	TokenGT
	TokenLT
	TokenNot
	TokenTilde
	TokenQuestion
	TokenColon
	TokenArrow
	TokenEQ
	TokenLE
	TokenGE
	TokenNE
	TokenAnd
	TokenOr
	TokenIncrement
	TokenDecrement
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenPercent
	TokenShl
	TokenShr
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenDirective:     "Directive",
	TokenIdent:         "Ident",
	TokenTypeName:      "TypeName",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenChar:          "char",
	TokenClass:         "class",
	TokenConst:         "const",
	TokenDo:            "do",
	TokenDouble:        "double",
	TokenElse:          "else",
	TokenFloat:         "float",
	TokenFor:           "for",
	TokenIf:            "if",
	TokenImplement:     "implement",
	TokenIn:            "in",
	TokenInt:           "int",
	TokenInternal:      "internal",
	TokenLong:          "long",
	TokenNew:           "new",
	TokenPrivate:       "private",
	TokenPublic:        "public",
	TokenReturn:        "return",
	TokenShort:         "short",
	TokenSizeof:        "sizeof",
	TokenStatic:        "static",
	TokenStruct:        "struct",
	TokenSuper:         "super",
	TokenTypedef:       "typedef",
	TokenTypeid:        "typeid",
	TokenUnion:         "union",
	TokenUnsigned:      "unsigned",
	TokenUsing:         "using",
	TokenVirtual:       "virtual",
	TokenVoid:          "void",
	TokenWhile:         "while",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenEllipsis:      "...",
	TokenColonColon:    "::",
	TokenAssign:        "=",
	TokenGT:            ">",
	TokenLT:            "<",
	TokenNot:           "!",
	TokenTilde:         "~",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenArrow:         "->",
	TokenEQ:            "==",
	TokenLE:            "<=",
	TokenGE:            ">=",
	TokenNE:            "!=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenBitAnd:        "&",
	TokenBitOr:         "|",
	TokenBitXor:        "^",
	TokenPercent:       "%",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind are dropped before parsing.
func (k TokenKind) IsTrivia() bool {
	switch k {
	case TokenWhitespace, TokenComment, TokenLineComment, TokenDirective:
		return true
	}
	return false
}

// IsCompoundAssign reports whether k is one of the operator-assignment tokens (+=, <<=, ...).
func (k TokenKind) IsCompoundAssign() bool {
	return k >= TokenPlusAssign && k <= TokenShrAssign
}

// IsPrimitive reports whether k names a builtin type.
func (k TokenKind) IsPrimitive() bool {
	switch k {
	case TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble,
		TokenUnsigned, TokenVoid:
		return true
	}
	return false
}

// Token is a single lexeme. Prev links to the significant token before it in its stream.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	Prev    *Token
}

func (t Token) Pos() Position {
	return t.Span.Start
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Literal)
}

// WithKind returns a copy of t carrying a different kind.
func (t Token) WithKind(kind TokenKind) Token {
	t.Kind = kind
	return t
}

var keywords = map[string]TokenKind{
	"char":      TokenChar,
	"class":     TokenClass,
	"const":     TokenConst,
	"do":        TokenDo,
	"double":    TokenDouble,
	"else":      TokenElse,
	"float":     TokenFloat,
	"for":       TokenFor,
	"if":        TokenIf,
	"implement": TokenImplement,
	"in":        TokenIn,
	"int":       TokenInt,
	"internal":  TokenInternal,
	"long":      TokenLong,
	"new":       TokenNew,
	"private":   TokenPrivate,
	"public":    TokenPublic,
	"return":    TokenReturn,
	"short":     TokenShort,
	"sizeof":    TokenSizeof,
	"static":    TokenStatic,
	"struct":    TokenStruct,
	"super":     TokenSuper,
	"typedef":   TokenTypedef,
	"typeid":    TokenTypeid,
	"union":     TokenUnion,
	"unsigned":  TokenUnsigned,
	"using":     TokenUsing,
	"virtual":   TokenVirtual,
	"void":      TokenVoid,
	"while":     TokenWhile,
	"true":      TokenTrue,
	"false":     TokenFalse,
	"boolean":   TokenTypeName,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
