package minipy

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenPercent  TokenType = "%"
	tokenAmp      TokenType = "&"
	tokenPipe     TokenType = "|"
	tokenCaret    TokenType = "^"
	tokenTilde    TokenType = "~"
	tokenLShift   TokenType = "<<"
	tokenRShift   TokenType = ">>"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"
	tokenLTE      TokenType = "<="
	tokenGTE      TokenType = ">="
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="

	tokenPlusAssign     TokenType = "+="
	tokenMinusAssign    TokenType = "-="
	tokenAsteriskAssign TokenType = "*="
	tokenSlashAssign    TokenType = "/="
	tokenPercentAssign  TokenType = "%="
	tokenAmpAssign      TokenType = "&="
	tokenPipeAssign     TokenType = "|="
	tokenCaretAssign    TokenType = "^="
	tokenLShiftAssign   TokenType = "<<="
	tokenRShiftAssign   TokenType = ">>="

	tokenColon  TokenType = ":"
	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"

	// Layout tokens synthesized from line structure.
	tokenNewline TokenType = "NEWLINE"
	tokenIndent  TokenType = "INDENT"
	tokenDedent  TokenType = "DEDENT"

	tokenIf    TokenType = "IF"
	tokenElse  TokenType = "ELSE"
	tokenWhile TokenType = "WHILE"
	tokenPrint TokenType = "PRINT"
	tokenNot   TokenType = "NOT"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source text.
type Position struct {
	Line   int
	Column int
}

// augmentedOps maps augmented-assignment tokens to the binary operator
// they desugar to.
var augmentedOps = map[TokenType]TokenType{
	tokenPlusAssign:     tokenPlus,
	tokenMinusAssign:    tokenMinus,
	tokenAsteriskAssign: tokenAsterisk,
	tokenSlashAssign:    tokenSlash,
	tokenPercentAssign:  tokenPercent,
	tokenAmpAssign:      tokenAmp,
	tokenPipeAssign:     tokenPipe,
	tokenCaretAssign:    tokenCaret,
	tokenLShiftAssign:   tokenLShift,
	tokenRShiftAssign:   tokenRShift,
}

func lookupIdent(ident string) TokenType {
	switch ident {
	case "if":
		return tokenIf
	case "else":
		return tokenElse
	case "while":
		return tokenWhile
	case "print":
		return tokenPrint
	case "not":
		return tokenNot
	}
	return tokenIdent
}
