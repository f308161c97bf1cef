package minipy

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// parser is a recursive-descent Pratt parser over the lexer's token
// stream. It fails fast: the first lex or parse error aborts the run.
type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	err error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(input string) *parser {
	l := newLexer(input)
	p := &parser{l: l}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenNumber, p.parseNumberLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)
	p.registerPrefix(tokenPlus, p.parsePrefixExpression)
	p.registerPrefix(tokenTilde, p.parsePrefixExpression)
	p.registerPrefix(tokenNot, p.parseNotExpression)

	p.infixFns[tokenPlus] = p.parseInfixExpression
	p.infixFns[tokenMinus] = p.parseInfixExpression
	p.infixFns[tokenAsterisk] = p.parseInfixExpression
	p.infixFns[tokenSlash] = p.parseInfixExpression
	p.infixFns[tokenPercent] = p.parseInfixExpression
	p.infixFns[tokenAmp] = p.parseInfixExpression
	p.infixFns[tokenPipe] = p.parseInfixExpression
	p.infixFns[tokenCaret] = p.parseInfixExpression
	p.infixFns[tokenLShift] = p.parseInfixExpression
	p.infixFns[tokenRShift] = p.parseInfixExpression
	p.infixFns[tokenEQ] = p.parseComparisonExpression
	p.infixFns[tokenNotEQ] = p.parseComparisonExpression
	p.infixFns[tokenLT] = p.parseComparisonExpression
	p.infixFns[tokenLTE] = p.parseComparisonExpression
	p.infixFns[tokenGT] = p.parseComparisonExpression
	p.infixFns[tokenGTE] = p.parseComparisonExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	if p.peekToken.Type == tokenIllegal {
		p.fail(&LexError{Pos: p.peekToken.Pos, Message: p.peekToken.Literal})
	}
}

func (p *parser) ParseProgram() (*Program, error) {
	program := &Program{}

	for p.curToken.Type != tokenEOF && p.err == nil {
		if p.curToken.Type == tokenNewline {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if p.err != nil {
			break
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.endStatement()
	}

	if p.err != nil {
		return nil, p.err
	}
	return program, nil
}

// endStatement advances past the statement terminator. A statement ends
// at a newline; block statements already sit on the DEDENT that closed
// their final suite. Anything else is trailing input.
func (p *parser) endStatement() {
	if p.err != nil {
		return
	}
	if p.curToken.Type == tokenDedent {
		p.nextToken()
		return
	}
	switch p.peekToken.Type {
	case tokenNewline:
		p.nextToken()
		p.nextToken()
	case tokenEOF, tokenDedent:
		p.nextToken()
	default:
		p.errorExpected(p.peekToken, "newline")
	}
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenIdent:
		return p.parseAssignStatement()
	default:
		p.errorUnexpected(p.curToken)
		return nil
	}
}

func (p *parser) parseAssignStatement() Statement {
	pos := p.curToken.Pos
	name := p.curToken.Literal

	if p.peekToken.Type == tokenAssign {
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(lowestPrec)
		return &AssignStmt{Name: name, Value: value, position: pos}
	}
	if op, ok := augmentedOps[p.peekToken.Type]; ok {
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(lowestPrec)
		return &AssignStmt{Name: name, Op: op, Value: value, position: pos}
	}

	p.errorExpected(p.peekToken, "'='")
	return nil
}

func (p *parser) parsePrintStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return &PrintStmt{Value: value, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenColon) {
		return nil
	}

	consequent := p.parseSuite()
	if p.err != nil {
		return nil
	}

	var alternate []Statement
	if p.peekToken.Type == tokenElse {
		p.nextToken()
		if !p.expectPeek(tokenColon) {
			return nil
		}
		alternate = p.parseSuite()
		if p.err != nil {
			return nil
		}
	}

	return &IfStmt{Condition: condition, Consequent: consequent, Alternate: alternate, position: pos}
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenColon) {
		return nil
	}

	body := p.parseSuite()
	if p.err != nil {
		return nil
	}

	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

// parseSuite parses the statements governed by an if/else/while header.
// The usual form is an indented block; a single statement on the header
// line is also accepted.
func (p *parser) parseSuite() []Statement {
	if p.peekToken.Type == tokenNewline {
		p.nextToken()
		if p.peekToken.Type != tokenIndent {
			p.errorExpected(p.peekToken, "an indented block")
			return nil
		}
		p.nextToken()
		p.nextToken()
		return p.parseBlock()
	}

	p.nextToken()
	stmt := p.parseStatement()
	if p.err != nil || stmt == nil {
		return nil
	}
	return []Statement{stmt}
}

// parseBlock consumes statements until the DEDENT that closes the block;
// the caller finds curToken sitting on that DEDENT.
func (p *parser) parseBlock() []Statement {
	stmts := []Statement{}

	for p.curToken.Type != tokenDedent && p.curToken.Type != tokenEOF && p.err == nil {
		if p.curToken.Type == tokenNewline {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if p.err != nil {
			return stmts
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.endStatement()
	}

	return stmts
}

const (
	lowestPrec = iota
	precNot
	precComparison
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precSum
	precProduct
	precPrefix
)

var precedences = map[TokenType]int{
	tokenEQ:       precComparison,
	tokenNotEQ:    precComparison,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPipe:     precBitOr,
	tokenCaret:    precBitXor,
	tokenAmp:      precBitAnd,
	tokenLShift:   precShift,
	tokenRShift:   precShift,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenAsterisk: precProduct,
	tokenSlash:    precProduct,
	tokenPercent:  precProduct,
}

var comparisonOps = map[TokenType]bool{
	tokenEQ:    true,
	tokenNotEQ: true,
	tokenLT:    true,
	tokenLTE:   true,
	tokenGT:    true,
	tokenGTE:   true,
}

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()

	for p.err == nil && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	return &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseNumberLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.fail(&ParseError{Pos: p.curToken.Pos, Expected: "number literal", Found: fmt.Sprintf("%q", p.curToken.Literal)})
		return nil
	}
	return &NumberLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPrefix)
	return &UnaryExpr{Operator: operator, Right: right, position: pos}
}

// parseNotExpression binds looser than comparisons, so `not a == b`
// negates the whole comparison.
func (p *parser) parseNotExpression() Expression {
	pos := p.curToken.Pos
	p.nextToken()
	right := p.parseExpression(precNot)
	return &UnaryExpr{Operator: tokenNot, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

// parseComparisonExpression is parseInfixExpression plus the rule that
// comparisons do not chain: `a < b < c` is rejected outright.
func (p *parser) parseComparisonExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)

	if comparisonOps[p.peekToken.Type] {
		p.fail(&ParseError{Pos: p.peekToken.Pos, Found: fmt.Sprintf("chained comparison '%s'", p.peekToken.Type)})
		return nil
	}

	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, fmt.Sprintf("'%s'", tt))
	return false
}

func (p *parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.fail(&ParseError{Pos: tok.Pos, Expected: expected, Found: describeToken(tok)})
}

func (p *parser) errorUnexpected(tok Token) {
	p.fail(&ParseError{Pos: tok.Pos, Found: describeToken(tok)})
}

func describeToken(tok Token) string {
	switch tok.Type {
	case tokenEOF:
		return "end of input"
	case tokenNewline:
		return "newline"
	case tokenIndent:
		return "indent"
	case tokenDedent:
		return "dedent"
	case tokenIdent, tokenNumber, tokenString:
		return fmt.Sprintf("%s %q", strings.ToLower(string(tok.Type)), tok.Literal)
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}
