package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT     = "IDENT"     // x, span, math
	NUMBER    = "NUMBER"    // 5, 3.14, 2.5e3
	STRING    = "STRING"    // "beam AB"
	IMAGINARY = "IMAGINARY" // 2i, 0.5i

	// Document directives (line-based, preserved for renderers)
	COMMENT   = "COMMENT"   // // text
	HEADING   = "HEADING"   // # text (literal keeps the leading #s)
	PARAGRAPH = "PARAGRAPH" // > text

	// Operators
	ASSIGN   = ":="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	CARET    = "^"
	AT       = "@"

	LT    = "<"
	LT_EQ = "<="
	GT    = ">"
	GT_EQ = ">="

	LOGICAL_AND = "&&"
	LOGICAL_OR  = "||"

	EQ     = "=="
	NOT_EQ = "!="

	ELLIPSIS = "..."

	// Delimiters
	PERIOD    = "."
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	FUNCTION  = "FUNCTION"
	PIECEWISE = "PIECEWISE"
	CASE      = "CASE"
	OTHERWISE = "OTHERWISE"
	RETURN    = "RETURN"
	BREAK     = "BREAK"
	FOR       = "FOR"
	WHILE     = "WHILE"
	IF        = "IF"
	ELSE      = "ELSE"
	IMPORT    = "IMPORT"
	AS        = "AS"
	PRINT     = "PRINT"
	SKIP      = "SKIP"
)

type Token struct {
	Type     TokenType
	Literal  string
	Position int // the src index of the token
}

var keywords = map[string]TokenType{
	// declarations
	"fn":        FUNCTION,
	"piecewise": PIECEWISE,
	"case":      CASE,
	"otherwise": OTHERWISE,

	// flow control
	"if":     IF,
	"else":   ELSE,
	"for":    FOR,
	"while":  WHILE,
	"return": RETURN,
	"break":  BREAK,

	// modules
	"import": IMPORT,
	"as":     AS,

	// document
	"print": PRINT,
	"skip":  SKIP,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
