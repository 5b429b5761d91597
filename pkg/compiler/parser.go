package compiler

import (
	"fmt"
	"io"
	"os"
)

// Parser pulls tokens from the Lexer on demand and builds an AST of arena
// nodes. It always moves forward: a buffered token queue provides the
// bounded lookahead needed to tell function declarations from variable
// declarations at file scope without consuming anything observable.
//
// Errors put the parser into panic mode, which suppresses cascading
// messages until synchronize reaches a statement boundary. Parsing always
// returns a program node; a non-zero error count marks the unit as failed.
type Parser struct {
	lex   *Lexer
	arena *Arena

	buf      []Token // lookahead queue; buf[0] is the current token
	prev     Token   // one-slot history, used by synchronize
	consumed int     // tokens consumed so far, for progress checks

	panicMode  bool
	errorCount int
	errw       io.Writer
}

func NewParser(lex *Lexer, arena *Arena) *Parser {
	return &Parser{lex: lex, arena: arena, errw: os.Stderr}
}

// SetErrorWriter redirects diagnostics (default: standard error).
func (p *Parser) SetErrorWriter(w io.Writer) { p.errw = w }

// ErrorCount returns the number of errors found so far, including those
// suppressed while in panic mode.
func (p *Parser) ErrorCount() int { return p.errorCount }

// peekAt returns the token at the given offset without consuming anything.
func (p *Parser) peekAt(offset int) Token {
	for len(p.buf) <= offset {
		p.buf = append(p.buf, p.lex.NextToken())
	}
	return p.buf[offset]
}

// peek returns the current token.
func (p *Parser) peek() Token { return p.peekAt(0) }

// advance consumes and returns the current token, recording it as the
// previous token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Type != EOF {
		p.prev = tok
		p.buf = p.buf[1:]
		p.consumed++
	}
	if tok.Type == INVALID {
		p.errorAtCurrent("Invalid token")
	}
	return tok
}

func (p *Parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) isAtEnd() bool { return p.peek().Type == EOF }

// match consumes the current token if it has the given type.
func (p *Parser) match(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// consume expects the current token to have the given type and consumes it,
// reporting an error otherwise.
func (p *Parser) consume(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	p.errorAtCurrent(fmt.Sprintf("Expected %s, got %s", tt, p.peek().Type))
	return false
}

// errorAtCurrent reports an error at the current token and enters panic
// mode. While panicking, further errors are counted but not printed.
func (p *Parser) errorAtCurrent(message string) {
	p.errorCount++
	if p.panicMode {
		return
	}
	p.panicMode = true

	tok := p.peek()
	fmt.Fprintf(p.errw, "[Line %d, Column %d] Error", tok.Line, tok.Column)
	switch tok.Type {
	case EOF:
		fmt.Fprint(p.errw, " at end")
	default:
		fmt.Fprintf(p.errw, " at '%s'", tok.Lexeme)
	}
	fmt.Fprintf(p.errw, ": %s\n", message)
}

// synchronize leaves panic mode and skips forward until the previous token
// is a semicolon or the current token begins a statement or declaration.
// The top-level parse loop guarantees overall forward progress.
func (p *Parser) synchronize() {
	p.panicMode = false

	for !p.isAtEnd() {
		if p.prev.Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case STRUCT, ENUM, UNION, FOR, IF, WHILE, RETURN:
			return
		}
		p.advance()
	}
}

// located stamps n with the source position of tok and returns n.
func located(n *Node, tok Token) *Node {
	n.Line = tok.Line
	n.Column = tok.Column
	return n
}

// Parse consumes the whole token stream and returns the program node.
// Top-level children are declarations; on errors the tree may be partial.
func (p *Parser) Parse() *Node {
	program := p.arena.NewNode(NodeProgram)
	program.Line = 1
	program.Column = 1

	for !p.isAtEnd() {
		if p.panicMode {
			p.synchronize()
			if p.isAtEnd() {
				break
			}
		}
		before := p.consumed
		decl := p.parseDeclaration()
		if decl != nil {
			program.AddChild(decl)
		}
		// A declaration that failed without consuming anything would spin
		// forever; skip one token to keep moving.
		if decl == nil && p.consumed == before && !p.isAtEnd() {
			p.advance()
		}
	}
	return program
}

// typeSpecifierWidth returns the number of tokens a type specifier starting
// at the current token would occupy, or 0 when the current token cannot
// begin one. Pointer stars are included.
func (p *Parser) typeSpecifierWidth() int {
	tok := p.peek()
	var width int
	switch {
	case tok.Type.IsPrimitiveType():
		width = 1
	case tok.Type == STRUCT || tok.Type == ENUM || tok.Type == UNION:
		width = 1
		if p.peekAt(1).Type == IDENTIFIER {
			width = 2
		}
	case tok.Type == IDENTIFIER:
		width = 1
	default:
		return 0
	}
	for p.peekAt(width).Type == STAR {
		width++
	}
	return width
}

// startsDeclaration reports whether the current tokens look like a
// type-leading declaration rather than an expression. A bare identifier
// only counts when followed by pointer stars and another identifier.
func (p *Parser) startsDeclaration() bool {
	tok := p.peek()
	if tok.Type.IsTypeToken() {
		return true
	}
	if tok.Type != IDENTIFIER {
		return false
	}
	w := p.typeSpecifierWidth()
	return w > 0 && p.peekAt(w).Type == IDENTIFIER
}

// startsFunction reports whether the tokens ahead spell "type identifier (",
// the lookahead that separates functions from variables at file scope.
// The buffered queue guarantees nothing is consumed.
func (p *Parser) startsFunction() bool {
	w := p.typeSpecifierWidth()
	return w > 0 && p.peekAt(w).Type == IDENTIFIER && p.peekAt(w+1).Type == LPAREN
}

func (p *Parser) parseDeclaration() *Node {
	switch p.peek().Type {
	case MODULE:
		p.advance()
		return p.parseModuleDeclaration()
	case IMPORT:
		p.advance()
		return p.parseImportStatement()
	case EXPORT:
		p.advance()
		return p.parseExportStatement()
	case STRUCT:
		if p.peekAt(2).Type == LBRACE {
			p.advance()
			return p.parseStructDeclaration(NodeStruct)
		}
	case UNION:
		if p.peekAt(2).Type == LBRACE {
			p.advance()
			return p.parseStructDeclaration(NodeUnion)
		}
	case ENUM:
		if p.peekAt(2).Type == LBRACE {
			p.advance()
			return p.parseEnumDeclaration()
		}
	}

	if p.startsDeclaration() {
		if p.startsFunction() {
			return p.parseFunctionDeclaration()
		}
		return p.parseVariableDeclaration()
	}

	return p.parseStatement()
}

func (p *Parser) parseModuleDeclaration() *Node {
	tok := p.peek()
	if !p.check(IDENTIFIER) {
		p.errorAtCurrent("Expected module name")
		return nil
	}
	p.advance()
	node := located(p.arena.NewNodeValue(NodeModule, tok.Lexeme), tok)
	p.consume(SEMICOLON)
	return node
}

func (p *Parser) parseImportStatement() *Node {
	tok := p.peek()
	if !p.check(IDENTIFIER) && !p.check(STRING) {
		p.errorAtCurrent("Expected module name")
		return nil
	}
	p.advance()
	node := located(p.arena.NewNodeValue(NodeImport, tok.Lexeme), tok)
	p.consume(SEMICOLON)
	return node
}

func (p *Parser) parseExportStatement() *Node {
	node := located(p.arena.NewNode(NodeExport), p.prev)
	if decl := p.parseDeclaration(); decl != nil {
		node.AddChild(decl)
	}
	return node
}

// parseStructDeclaration parses "struct Name { field* }" (or the union
// form); the leading keyword has already been consumed.
func (p *Parser) parseStructDeclaration(kind NodeKind) *Node {
	tok := p.peek()
	if !p.check(IDENTIFIER) {
		p.errorAtCurrent("Expected struct name")
		return nil
	}
	p.advance()
	node := located(p.arena.NewNodeValue(kind, tok.Lexeme), tok)

	p.consume(LBRACE)
	for !p.check(RBRACE) && !p.isAtEnd() && !p.panicMode {
		if field := p.parseVariableDeclaration(); field != nil {
			node.AddChild(field)
		}
	}
	p.consume(RBRACE)
	return node
}

// parseEnumDeclaration parses "enum Name { A, B = expr, ... }"; the
// leading keyword has already been consumed.
func (p *Parser) parseEnumDeclaration() *Node {
	tok := p.peek()
	if !p.check(IDENTIFIER) {
		p.errorAtCurrent("Expected enum name")
		return nil
	}
	p.advance()
	node := located(p.arena.NewNodeValue(NodeEnum, tok.Lexeme), tok)

	p.consume(LBRACE)
	for !p.check(RBRACE) && !p.isAtEnd() {
		if !p.check(IDENTIFIER) {
			p.errorAtCurrent("Expected enum value name")
			break
		}
		valTok := p.advance()
		value := located(p.arena.NewNodeValue(NodeEnumValue, valTok.Lexeme), valTok)
		if p.match(ASSIGN) {
			if expr := p.parseExpression(); expr != nil {
				value.AddChild(expr)
			}
		}
		node.AddChild(value)
		if !p.match(COMMA) {
			break
		}
	}
	p.consume(RBRACE)
	return node
}

// parseType parses a type specifier: a primitive keyword, a
// struct/enum/union tag form, or a user-defined name, with any number of
// trailing stars wrapping the base in pointer types.
func (p *Parser) parseType() *Node {
	tok := p.peek()
	var node *Node

	switch {
	case tok.Type.IsPrimitiveType():
		p.advance()
		node = p.arena.NewNodeValue(NodeType, tok.Lexeme)
	case tok.Type == STRUCT || tok.Type == ENUM || tok.Type == UNION:
		p.advance()
		name := tok.Lexeme
		if p.check(IDENTIFIER) {
			name = name + " " + p.peek().Lexeme
			p.advance()
		}
		node = p.arena.NewNodeValue(NodeType, name)
	case tok.Type == IDENTIFIER:
		p.advance()
		node = p.arena.NewNodeValue(NodeType, tok.Lexeme)
	default:
		p.errorAtCurrent("Expected type specifier")
		return nil
	}
	located(node, tok)

	for p.match(STAR) {
		ptr := located(p.arena.NewNode(NodePointerType), tok)
		ptr.AddChild(node)
		node = ptr
	}
	return node
}

func (p *Parser) parseVariableDeclaration() *Node {
	startTok := p.peek()
	typeNode := p.parseType()
	if typeNode == nil {
		return nil
	}

	if !p.check(IDENTIFIER) {
		p.errorAtCurrent("Expected variable name")
		return nil
	}
	nameTok := p.advance()

	decl := located(p.arena.NewNodeValue(NodeVariableDeclaration, nameTok.Lexeme), startTok)
	decl.AddChild(typeNode)

	if p.match(ASSIGN) {
		if init := p.parseExpression(); init != nil {
			decl.AddChild(init)
		}
	}
	p.consume(SEMICOLON)
	return decl
}

func (p *Parser) parseFunctionDeclaration() *Node {
	startTok := p.peek()
	returnType := p.parseType()
	if returnType == nil {
		return nil
	}

	if !p.check(IDENTIFIER) {
		p.errorAtCurrent("Expected function name")
		return nil
	}
	nameTok := p.advance()

	fn := located(p.arena.NewNodeValue(NodeFunction, nameTok.Lexeme), startTok)
	fn.AddChild(returnType)

	p.consume(LPAREN)
	fn.AddChild(p.parseParameterList())
	p.consume(RPAREN)

	p.consume(LBRACE)
	fn.AddChild(p.parseBlock())
	return fn
}

// parseParameterList parses zero or more "type name" pairs separated by
// commas. Parameter names are optional, matching declaration-only forms.
func (p *Parser) parseParameterList() *Node {
	list := located(p.arena.NewNode(NodeParameterList), p.peek())
	if p.check(RPAREN) {
		return list
	}

	for {
		typeNode := p.parseType()
		if typeNode == nil {
			break
		}
		param := located(p.arena.NewNode(NodeParameter), p.peek())
		if p.check(IDENTIFIER) {
			param.Value = p.arena.Pool().Intern(p.peek().Lexeme)
			p.advance()
		}
		param.AddChild(typeNode)
		list.AddChild(param)

		if !p.match(COMMA) {
			break
		}
	}
	return list
}

func (p *Parser) parseStatement() *Node {
	switch p.peek().Type {
	case IF:
		p.advance()
		return p.parseIfStatement()
	case WHILE:
		p.advance()
		return p.parseWhileStatement()
	case FOR:
		p.advance()
		return p.parseForStatement()
	case DO:
		p.advance()
		return p.parseDoWhileStatement()
	case SWITCH:
		p.advance()
		return p.parseSwitchStatement()
	case RETURN:
		p.advance()
		return p.parseReturnStatement()
	case BREAK:
		tok := p.advance()
		p.consume(SEMICOLON)
		return located(p.arena.NewNode(NodeBreakStatement), tok)
	case CONTINUE:
		tok := p.advance()
		p.consume(SEMICOLON)
		return located(p.arena.NewNode(NodeContinueStatement), tok)
	case LBRACE:
		p.advance()
		return p.parseBlock()
	case SEMICOLON:
		tok := p.advance()
		return located(p.arena.NewNode(NodeEmpty), tok)
	}

	if p.startsDeclaration() {
		if p.startsFunction() {
			// Function declarations only live at file scope. Report
			// without consuming so recovery can re-parse the tokens as a
			// top-level declaration.
			p.errorAtCurrent("Function declaration not allowed here")
			return nil
		}
		return p.parseVariableDeclaration()
	}
	return p.parseExpressionStatement()
}

// parseBlock parses statements until the closing brace; the opening brace
// has already been consumed. A block also ends at end of input.
func (p *Parser) parseBlock() *Node {
	block := located(p.arena.NewNode(NodeBlock), p.prev)
	for !p.check(RBRACE) && !p.isAtEnd() && !p.panicMode {
		if stmt := p.parseStatement(); stmt != nil {
			block.AddChild(stmt)
		}
	}
	p.consume(RBRACE)
	return block
}

func (p *Parser) parseIfStatement() *Node {
	node := located(p.arena.NewNode(NodeIfStatement), p.prev)

	p.consume(LPAREN)
	if cond := p.parseExpression(); cond != nil {
		node.AddChild(cond)
	}
	p.consume(RPAREN)

	if then := p.parseStatement(); then != nil {
		node.AddChild(then)
	}
	if p.match(ELSE) {
		if els := p.parseStatement(); els != nil {
			node.AddChild(els)
		}
	}
	return node
}

func (p *Parser) parseWhileStatement() *Node {
	node := located(p.arena.NewNode(NodeWhileStatement), p.prev)

	p.consume(LPAREN)
	if cond := p.parseExpression(); cond != nil {
		node.AddChild(cond)
	}
	p.consume(RPAREN)

	if body := p.parseStatement(); body != nil {
		node.AddChild(body)
	}
	return node
}

// parseForStatement parses "for (init; cond; update) body". Absent clauses
// become empty placeholder children so the node always has four children
// and traversal never sees a hole.
func (p *Parser) parseForStatement() *Node {
	node := located(p.arena.NewNode(NodeForStatement), p.prev)
	p.consume(LPAREN)

	// Initializer
	if p.check(SEMICOLON) {
		p.advance()
		node.AddChild(p.arena.NewNode(NodeEmpty))
	} else if p.startsDeclaration() {
		node.AddChild(p.parseVariableDeclaration())
	} else {
		node.AddChild(p.parseExpressionStatement())
	}

	// Condition
	if p.check(SEMICOLON) {
		node.AddChild(p.arena.NewNode(NodeEmpty))
	} else {
		node.AddChild(p.parseExpression())
	}
	p.consume(SEMICOLON)

	// Update
	if p.check(RPAREN) {
		node.AddChild(p.arena.NewNode(NodeEmpty))
	} else {
		node.AddChild(p.parseExpression())
	}
	p.consume(RPAREN)

	node.AddChild(p.parseStatement())

	// A failed clause leaves a nil child; plug it so the node keeps its
	// four-children shape even on malformed input.
	for i, child := range node.Children {
		if child == nil {
			node.Children[i] = p.arena.NewNode(NodeEmpty)
		}
	}
	return node
}

func (p *Parser) parseDoWhileStatement() *Node {
	node := located(p.arena.NewNode(NodeDoWhileStatement), p.prev)

	if body := p.parseStatement(); body != nil {
		node.AddChild(body)
	}
	p.consume(WHILE)
	p.consume(LPAREN)
	if cond := p.parseExpression(); cond != nil {
		node.AddChild(cond)
	}
	p.consume(RPAREN)
	p.consume(SEMICOLON)
	return node
}

// parseSwitchStatement parses "switch (expr) { case v: ... default: ... }".
// Child 0 is the subject; the rest are case and default nodes. Cases do not
// implicitly break.
func (p *Parser) parseSwitchStatement() *Node {
	node := located(p.arena.NewNode(NodeSwitchStatement), p.prev)

	p.consume(LPAREN)
	if subject := p.parseExpression(); subject != nil {
		node.AddChild(subject)
	}
	p.consume(RPAREN)
	p.consume(LBRACE)

	seenDefault := false
	for !p.check(RBRACE) && !p.isAtEnd() && !p.panicMode {
		if p.match(CASE) {
			caseNode := located(p.arena.NewNode(NodeCaseStatement), p.prev)
			if value := p.parseExpression(); value != nil {
				caseNode.AddChild(value)
			}
			p.consume(COLON)
			for !p.check(CASE) && !p.check(DEFAULT) && !p.check(RBRACE) && !p.isAtEnd() && !p.panicMode {
				if stmt := p.parseStatement(); stmt != nil {
					caseNode.AddChild(stmt)
				}
			}
			node.AddChild(caseNode)
		} else if p.match(DEFAULT) {
			if seenDefault {
				p.errorAtCurrent("Multiple default labels in switch")
			}
			seenDefault = true
			p.consume(COLON)
			defaultNode := located(p.arena.NewNode(NodeDefaultStatement), p.prev)
			for !p.check(CASE) && !p.check(DEFAULT) && !p.check(RBRACE) && !p.isAtEnd() && !p.panicMode {
				if stmt := p.parseStatement(); stmt != nil {
					defaultNode.AddChild(stmt)
				}
			}
			node.AddChild(defaultNode)
		} else {
			p.errorAtCurrent("Expected 'case' or 'default'")
			break
		}
	}
	p.consume(RBRACE)
	return node
}

func (p *Parser) parseReturnStatement() *Node {
	node := located(p.arena.NewNode(NodeReturnStatement), p.prev)
	if !p.check(SEMICOLON) {
		if expr := p.parseExpression(); expr != nil {
			node.AddChild(expr)
		}
	}
	p.consume(SEMICOLON)
	return node
}

func (p *Parser) parseExpressionStatement() *Node {
	tok := p.peek()
	expr := p.parseExpression()
	p.consume(SEMICOLON)
	if expr == nil {
		return nil
	}
	node := located(p.arena.NewNode(NodeExpressionStatement), tok)
	node.AddChild(expr)
	return node
}

// Expression parsing, one method per precedence level, lowest first.

func (p *Parser) parseExpression() *Node {
	return p.parseAssignment()
}

// parseAssignment handles = += -= *= /= %= (right-associative).
func (p *Parser) parseAssignment() *Node {
	expr := p.parseTernary()
	if expr == nil {
		return nil
	}

	if p.peek().Type.IsAssignOp() {
		opTok := p.advance()
		right := p.parseAssignment()

		assign := located(p.arena.NewNodeValue(NodeAssignment, opTok.Lexeme), opTok)
		assign.AddChild(expr)
		if right != nil {
			assign.AddChild(right)
		}
		return assign
	}
	return expr
}

// parseTernary handles cond ? a : b (right-associative).
func (p *Parser) parseTernary() *Node {
	expr := p.parseLogicalOr()
	if expr == nil {
		return nil
	}

	if p.match(QUESTION) {
		node := located(p.arena.NewNode(NodeTernary), p.prev)
		node.AddChild(expr)
		if then := p.parseExpression(); then != nil {
			node.AddChild(then)
		}
		p.consume(COLON)
		if els := p.parseTernary(); els != nil {
			node.AddChild(els)
		}
		return node
	}
	return expr
}

// binaryLevel builds a left-associative run of binary operators drawn from
// ops, with operands parsed by next.
func (p *Parser) binaryLevel(next func() *Node, ops ...TokenType) *Node {
	expr := next()
	if expr == nil {
		return nil
	}
	for {
		matched := false
		for _, op := range ops {
			if p.check(op) {
				matched = true
				break
			}
		}
		if !matched {
			return expr
		}
		opTok := p.advance()
		right := next()
		if right == nil {
			return expr
		}
		binary := located(p.arena.NewNodeValue(NodeBinaryOp, opTok.Lexeme), opTok)
		binary.AddChild(expr)
		binary.AddChild(right)
		expr = binary
	}
}

func (p *Parser) parseLogicalOr() *Node {
	return p.binaryLevel(p.parseLogicalAnd, OR_LOGICAL)
}

func (p *Parser) parseLogicalAnd() *Node {
	return p.binaryLevel(p.parseBitwiseOr, AND_LOGICAL)
}

func (p *Parser) parseBitwiseOr() *Node {
	return p.binaryLevel(p.parseBitwiseXor, PIPE)
}

func (p *Parser) parseBitwiseXor() *Node {
	return p.binaryLevel(p.parseBitwiseAnd, CARET)
}

func (p *Parser) parseBitwiseAnd() *Node {
	return p.binaryLevel(p.parseEquality, AND)
}

func (p *Parser) parseEquality() *Node {
	return p.binaryLevel(p.parseRelational, EQUAL, NOT_EQUAL)
}

func (p *Parser) parseRelational() *Node {
	return p.binaryLevel(p.parseShift, LESS, GREATER, LESS_EQ, GREATER_EQ)
}

func (p *Parser) parseShift() *Node {
	return p.binaryLevel(p.parseAdditive, SHL_OP, SHR_OP)
}

func (p *Parser) parseAdditive() *Node {
	return p.binaryLevel(p.parseMultiplicative, PLUS, MINUS)
}

func (p *Parser) parseMultiplicative() *Node {
	return p.binaryLevel(p.parseUnary, STAR, SLASH, PERCENT)
}

// parseUnary handles the prefix operators ! ~ - + * & ++ -- and sizeof.
func (p *Parser) parseUnary() *Node {
	switch p.peek().Type {
	case NOT, TILDE, MINUS, PLUS, STAR, AND, INCREMENT, DECREMENT:
		opTok := p.advance()
		operand := p.parseUnary()
		node := located(p.arena.NewNodeValue(NodeUnaryOp, opTok.Lexeme), opTok)
		if operand != nil {
			node.AddChild(operand)
		}
		return node

	case SIZEOF:
		tok := p.advance()
		node := located(p.arena.NewNode(NodeSizeof), tok)
		p.consume(LPAREN)
		if p.peek().Type.IsTypeToken() {
			if t := p.parseType(); t != nil {
				node.AddChild(t)
			}
		} else if expr := p.parseExpression(); expr != nil {
			node.AddChild(expr)
		}
		p.consume(RPAREN)
		return node
	}
	return p.parsePostfix()
}

// parsePostfix handles indexing, calls, member access, and postfix ++/--.
func (p *Parser) parsePostfix() *Node {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch p.peek().Type {
		case LBRACKET:
			tok := p.advance()
			access := located(p.arena.NewNode(NodeArrayAccess), tok)
			access.AddChild(expr)
			if index := p.parseExpression(); index != nil {
				access.AddChild(index)
			}
			p.consume(RBRACKET)
			expr = access

		case LPAREN:
			tok := p.advance()
			call := located(p.arena.NewNodeValue(NodeFunctionCall, expr.Value), tok)
			if !p.check(RPAREN) {
				for {
					if arg := p.parseExpression(); arg != nil {
						call.AddChild(arg)
					}
					if !p.match(COMMA) {
						break
					}
				}
			}
			p.consume(RPAREN)
			expr = call

		case DOT, ARROW:
			opTok := p.advance()
			if !p.check(IDENTIFIER) {
				p.errorAtCurrent("Expected member name")
				return expr
			}
			memberTok := p.advance()

			access := located(p.arena.NewNodeValue(NodeMemberAccess, opTok.Lexeme), opTok)
			access.AddChild(expr)
			access.AddChild(located(p.arena.NewNodeValue(NodeIdentifier, memberTok.Lexeme), memberTok))
			expr = access

		case INCREMENT, DECREMENT:
			opTok := p.advance()
			postfix := located(p.arena.NewNodeValue(NodePostfixOp, opTok.Lexeme), opTok)
			postfix.AddChild(expr)
			expr = postfix

		default:
			return expr
		}
	}
}

// parsePrimary handles literals, identifiers, and parenthesized
// expressions.
func (p *Parser) parsePrimary() *Node {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		node := located(p.arena.NewNodeValue(NodeNumberLiteral, tok.Lexeme), tok)
		node.Int = tok.Int
		return node

	case FLOAT:
		p.advance()
		node := located(p.arena.NewNodeValue(NodeFloatLiteral, tok.Lexeme), tok)
		node.Float = tok.Float
		return node

	case STRING:
		p.advance()
		return located(p.arena.NewNodeValue(NodeStringLiteral, tok.Lexeme), tok)

	case CHAR_LIT:
		p.advance()
		node := located(p.arena.NewNodeValue(NodeCharLiteral, tok.Lexeme), tok)
		node.Int = tok.Int
		return node

	case TRUE, FALSE:
		p.advance()
		node := located(p.arena.NewNodeValue(NodeBoolLiteral, tok.Lexeme), tok)
		node.Bool = tok.Type == TRUE
		return node

	case NULL:
		p.advance()
		return located(p.arena.NewNodeValue(NodeNullLiteral, "null"), tok)

	case IDENTIFIER:
		p.advance()
		return located(p.arena.NewNodeValue(NodeIdentifier, tok.Lexeme), tok)

	case LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.consume(RPAREN)
		return expr
	}

	p.errorAtCurrent("Expected expression")
	return nil
}
