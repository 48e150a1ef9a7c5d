package parser

import (
	"fmt"
	"strconv"
	"strings"

	"madola/internal/ast"
	"madola/internal/lexer"
	"madola/internal/token"
	"madola/internal/units"
	"madola/internal/util"
)

const (
	_           int = iota
	LOWEST          // start of expression
	LOGICAL_OR      // logical or
	LOGICAL_AND     // logical and
	EQUALS          // ==
	COMPARISON      // > or <
	SUM             // +
	PRODUCT         // *
	PREFIX          // -X or !X
	POWER           // ^ right-associative, binds tighter than unary minus
	CALL            // f(X), a.det()
	INDEX           // array[index]
)

var precedences = map[token.TokenType]int{
	token.LOGICAL_OR:  LOGICAL_OR,
	token.LOGICAL_AND: LOGICAL_AND,
	token.EQ:          EQUALS,
	token.NOT_EQ:      EQUALS,
	token.LT:          COMPARISON,
	token.LT_EQ:       COMPARISON,
	token.GT:          COMPARISON,
	token.GT_EQ:       COMPARISON,
	token.PLUS:        SUM,
	token.MINUS:       SUM,
	token.SLASH:       PRODUCT,
	token.ASTERISK:    PRODUCT,
	token.PERCENT:     PRODUCT,
	token.CARET:       POWER,
	token.PERIOD:      CALL,
	token.LPAREN:      CALL,
	token.LBRACKET:    INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	l        *lexer.Lexer
	src      string // source code here
	errors   []string
	errorPos []int // byte positions parallel to errors

	curToken  token.Token
	peekToken token.Token
	buffered  []token.Token // lookahead beyond peekToken, for unit literals

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{
		l:      l,
		src:    source,
		errors: []string{},
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.IMAGINARY, p.parseImaginaryLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.PLUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteral)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.PERCENT, p.parseInfixExpression)
	p.registerInfix(token.CARET, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.LT_EQ, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.GT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LOGICAL_AND, p.parseInfixExpression)
	p.registerInfix(token.LOGICAL_OR, p.parseInfixExpression)

	p.registerInfix(token.PERIOD, p.parseMethodCallExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if len(p.buffered) > 0 {
		p.peekToken = p.buffered[0]
		p.buffered = p.buffered[1:]
	} else {
		p.peekToken = p.l.NextToken()
	}
}

// peekAfter returns the token following peekToken without consuming anything.
func (p *Parser) peekAfter() token.Token {
	if len(p.buffered) == 0 {
		p.buffered = append(p.buffered, p.l.NextToken())
	}
	return p.buffered[0]
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) addError(message string, args ...interface{}) {
	line, col := util.GetLineAndColumn(p.src, p.curToken.Position)
	m := fmt.Sprintf(message, args...)
	msg := fmt.Sprintf("[%3d:%2d] %s", line, col, m)
	p.errors = append(p.errors, msg)
	p.errorPos = append(p.errorPos, p.curToken.Position)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError("expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	p.addError("no prefix parse function for %s found", t)
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) Errors() []string {
	return p.errors
}

// ErrorPositions returns the byte position of each recorded error, for
// source-context reporting.
func (p *Parser) ErrorPositions() []int {
	return p.errorPos
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.SEMICOLON:
		return nil // stray terminator
	case token.AT:
		return p.parseAtStatement()
	case token.HEADING:
		return p.parseHeadingStatement()
	case token.PARAGRAPH:
		return &ast.ParagraphStatement{Token: p.curToken, Text: p.curToken.Literal}
	case token.COMMENT:
		return &ast.CommentStatement{Token: p.curToken, Text: p.curToken.Literal}
	case token.SKIP:
		stmt := &ast.SkipStatement{Token: p.curToken}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return stmt
	case token.PRINT:
		return p.parsePrintStatement()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.PIECEWISE:
		return p.parsePiecewiseDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		stmt := &ast.BreakStatement{Token: p.curToken}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return stmt
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.ILLEGAL:
		p.addError("unexpected character %q", p.curToken.Literal)
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

// parseAtStatement handles @version and decorated statements.
func (p *Parser) parseAtStatement() ast.Statement {
	atToken := p.curToken

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal

	if name == "version" {
		if !p.expectPeek(token.NUMBER) {
			return nil
		}
		stmt := &ast.VersionStatement{Token: atToken, Version: p.curToken.Literal}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		return stmt
	}

	dec := &ast.DecoratedStatement{Token: atToken, Name: name}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		dec.Args = p.parseExpressionList(token.RPAREN)
	}
	p.nextToken()
	inner := p.parseStatement()
	if inner == nil {
		p.addError("expected statement after decoration @%s", name)
		return nil
	}
	dec.Statement = inner
	return dec
}

func (p *Parser) parseHeadingStatement() ast.Statement {
	literal := p.curToken.Literal
	level := 0
	for level < len(literal) && literal[level] == '#' {
		level++
	}
	if level > 6 {
		level = 6
	}
	text := strings.TrimSpace(strings.TrimLeft(literal, "#"))
	return &ast.HeadingStatement{Token: p.curToken, Level: level, Text: text}
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	stmt := &ast.FunctionDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	identifiers := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return identifiers
	}

	p.nextToken()
	identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		identifiers = append(identifiers, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return identifiers
}

func (p *Parser) parsePiecewiseDeclaration() ast.Statement {
	stmt := &ast.PiecewiseFunctionDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Parameters = p.parseFunctionParameters()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		switch p.curToken.Type {
		case token.CASE:
			c := &ast.PiecewiseCase{}
			if !p.expectPeek(token.LPAREN) {
				return nil
			}
			p.nextToken()
			c.Condition = p.parseExpression(LOWEST)
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			c.Result = p.parseExpression(LOWEST)
			if p.peekTokenIs(token.SEMICOLON) {
				p.nextToken()
			}
			stmt.Cases = append(stmt.Cases, c)
		case token.OTHERWISE:
			c := &ast.PiecewiseCase{}
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			c.Result = p.parseExpression(LOWEST)
			if p.peekTokenIs(token.SEMICOLON) {
				p.nextToken()
			}
			stmt.Cases = append(stmt.Cases, c)
		default:
			p.addError("expected case or otherwise in piecewise body, got %s", p.curToken.Type)
			return nil
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}

	if len(stmt.Cases) == 0 {
		p.addError("piecewise function %s has no cases", stmt.Name.Value)
		return nil
	}

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Var = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.From = p.parseExpression(LOWEST)

	if !p.expectPeek(token.ELLIPSIS) {
		return nil
	}
	p.nextToken()
	stmt.To = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()

		if p.peekTokenIs(token.IF) {
			// else-if chains wrap the nested if in a synthetic block
			p.nextToken()
			nested := p.parseIfStatement()
			if nested == nil {
				return nil
			}
			stmt.Alternative = &ast.BlockStatement{
				Token:      nested.Token,
				Statements: []ast.Statement{nested},
			}
			return stmt
		}

		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		stmt.Alternative = p.parseBlockStatement()
	}

	return stmt
}

func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Module = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Alias = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		p.addError("unterminated block, expected }")
	}

	return block
}

// parseExpressionStatement also folds x := e and x[i] := e into their
// assignment statement forms once the target expression is known.
func (p *Parser) parseExpressionStatement() ast.Statement {
	startToken := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if p.peekTokenIs(token.ASSIGN) {
		switch target := expr.(type) {
		case *ast.Identifier:
			p.nextToken() // :=
			p.nextToken()
			stmt := &ast.AssignmentStatement{Token: target.Token, Name: target}
			stmt.Value = p.parseExpression(LOWEST)
			if p.peekTokenIs(token.SEMICOLON) {
				p.nextToken()
			}
			return stmt
		case *ast.IndexExpression:
			name, ok := target.Left.(*ast.Identifier)
			if !ok {
				p.addError("left side of := must be a name or an indexed name")
				return nil
			}
			p.nextToken() // :=
			p.nextToken()
			stmt := &ast.ArrayAssignmentStatement{Token: name.Token, Name: name, Index: target.Index}
			stmt.Value = p.parseExpression(LOWEST)
			if p.peekTokenIs(token.SEMICOLON) {
				p.nextToken()
			}
			return stmt
		default:
			p.addError("left side of := must be a name or an indexed name")
			return nil
		}
	}

	stmt := &ast.ExpressionStatement{Token: startToken, Expression: expr}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()

		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

// parseNumberLiteral also recognizes unit quantities: a number followed by a
// registered unit symbol, optionally continued with / * ^ while the next
// token still belongs to the unit (10 m, 9.81 m/s^2, 12 kip*ft). A slash
// before a non-unit identifier stays ordinary division.
func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	val, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.addError("could not parse %q as a number", tok.Literal)
		return nil
	}

	if p.peekTokenIs(token.IDENT) && isUnitToken(p.peekToken.Literal) {
		unit := p.parseUnitExpr()
		return &ast.UnitLiteral{Token: tok, Value: val, Unit: unit}
	}

	return &ast.NumberLiteral{Token: tok, Value: val}
}

func isUnitToken(literal string) bool {
	if units.IsValid(literal) {
		return true
	}
	// trailing digits may be exponent shorthand, in3 for in^3
	alpha := len(literal)
	for alpha > 0 && literal[alpha-1] >= '0' && literal[alpha-1] <= '9' {
		alpha--
	}
	return alpha > 0 && alpha < len(literal) && units.IsValid(literal[:alpha])
}

func (p *Parser) parseUnitExpr() string {
	p.nextToken()
	unit := p.curToken.Literal

	for {
		switch {
		case (p.peekTokenIs(token.SLASH) || p.peekTokenIs(token.ASTERISK)) &&
			p.peekAfter().Type == token.IDENT && isUnitToken(p.peekAfter().Literal):
			op := p.peekToken.Literal
			p.nextToken()
			p.nextToken()
			unit += op + p.curToken.Literal
		case p.peekTokenIs(token.CARET) && p.peekAfter().Type == token.NUMBER:
			p.nextToken()
			p.nextToken()
			unit += "^" + p.curToken.Literal
		default:
			return unit
		}
	}
}

func (p *Parser) parseImaginaryLiteral() ast.Expression {
	tok := p.curToken
	val, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.addError("could not parse %q as a number", tok.Literal)
		return nil
	}
	return &ast.ImaginaryLiteral{Token: tok, Value: val}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)

	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()

	if expression.Operator == "^" {
		// power is right-associative
		expression.Right = p.parseExpression(precedence - 1)
	} else {
		expression.Right = p.parseExpression(precedence)
	}

	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)

	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return exp
}

// parseArrayLiteral collects comma-separated elements into rows and
// semicolon-separated rows into the literal: [1,2;3,4].
func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Token: p.curToken}
	lit.Rows = [][]ast.Expression{}

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return lit
	}

	current := []ast.Expression{}
	p.nextToken()
	current = append(current, p.parseExpression(LOWEST))

	for {
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			current = append(current, p.parseExpression(LOWEST))
			continue
		}
		if p.peekTokenIs(token.SEMICOLON) {
			lit.Rows = append(lit.Rows, current)
			current = []ast.Expression{}
			p.nextToken()
			p.nextToken()
			current = append(current, p.parseExpression(LOWEST))
			continue
		}
		break
	}
	lit.Rows = append(lit.Rows, current)

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	return lit
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	return exp
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	ident, ok := function.(*ast.Identifier)
	if !ok {
		p.addError("expected a function name before call arguments")
		return nil
	}
	exp := &ast.CallExpression{Token: p.curToken, Function: ident}
	exp.Arguments = p.parseExpressionList(token.RPAREN)
	return exp
}

func (p *Parser) parseMethodCallExpression(receiver ast.Expression) ast.Expression {
	exp := &ast.MethodCallExpression{Token: p.curToken, Receiver: receiver}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	exp.Method = p.curToken.Literal

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	exp.Arguments = p.parseExpressionList(token.RPAREN)

	return exp
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	list := []ast.Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(end) {
		return nil
	}

	return list
}
