package script

import "math"

// Program is a parsed script: a list of assignments in source order.
type Program struct {
	Statements []Statement
}

// Statement assigns the value of an expression to a name.
type Statement struct {
	Pos   Pos // position of the assigned name
	Name  string
	Value Expr
}

// Expr is an expression node. The concrete types are NameExpr,
// NumberExpr, UnaryExpr and BinaryExpr.
type Expr interface {
	Position() Pos
}

type NameExpr struct {
	Pos  Pos
	Name string
}

type NumberExpr struct {
	Pos   Pos
	Value float32
}

type UnaryOp int

const (
	OpNegate UnaryOp = iota
	OpDual
	OpReverse
	OpNormalize
	OpMagnitude
	OpSin
	OpCos
	OpASin
	OpACos
)

type UnaryExpr struct {
	Pos     Pos
	Op      UnaryOp
	Operand Expr
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpWedge
	OpInner
	OpRegressive
)

type BinaryExpr struct {
	Pos         Pos // position of the operator
	Left, Right Expr
	Op          BinaryOp
}

func (e *NameExpr) Position() Pos   { return e.Pos }
func (e *NumberExpr) Position() Pos { return e.Pos }
func (e *UnaryExpr) Position() Pos  { return e.Pos }
func (e *BinaryExpr) Position() Pos { return e.Pos }

// Parse parses a script into a Program. Errors carry the source
// location as *Error.
func Parse(source string) (*Program, error) {
	p := &parser{lexer: newLexer(source)}
	prog := &Program{}
	for {
		tok, err := p.lexer.peek()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return prog, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
}

type parser struct {
	lexer *lexer
}

// expect consumes the next token and checks its kind. want describes
// the expectation for the error message.
func (p *parser) expect(kind tokenKind, want string) (*token, error) {
	tok, err := p.lexer.next()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, errorAt(p.lexer.pos, "unexpected end of input, expected %s", want)
	}
	if tok.kind != kind {
		return nil, errorAt(tok.pos, "unexpected token %q, expected %s", tok.String(), want)
	}
	return tok, nil
}

func (p *parser) parseStatement() (Statement, error) {
	name, err := p.expect(tokenName, "a variable name")
	if err != nil {
		return Statement{}, err
	}
	if _, err := p.expect(tokenEqual, `"="`); err != nil {
		return Statement{}, err
	}
	value, err := p.parseBinary(0)
	if err != nil {
		return Statement{}, err
	}
	if _, err := p.expect(tokenSemicolon, `";"`); err != nil {
		return Statement{}, err
	}
	return Statement{Pos: name.pos, Name: name.name, Value: value}, nil
}

var unaryOps = map[tokenKind]UnaryOp{
	tokenMinus:     OpNegate,
	tokenBang:      OpDual,
	tokenTilde:     OpReverse,
	tokenNormalize: OpNormalize,
	tokenMagnitude: OpMagnitude,
	tokenSin:       OpSin,
	tokenCos:       OpCos,
	tokenASin:      OpASin,
	tokenACos:      OpACos,
}

func binaryOp(kind tokenKind) (BinaryOp, int, bool) {
	switch kind {
	case tokenPlus:
		return OpAdd, 1, true
	case tokenMinus:
		return OpSubtract, 1, true
	case tokenStar:
		return OpMultiply, 2, true
	case tokenSlash:
		return OpDivide, 2, true
	case tokenCaret:
		return OpWedge, 2, true
	case tokenPipe:
		return OpInner, 2, true
	case tokenAmpersand:
		return OpRegressive, 2, true
	}
	return 0, 0, false
}

func (p *parser) parseBinary(parentPrecedence int) (Expr, error) {
	var left Expr

	tok, err := p.lexer.peek()
	if err != nil {
		return nil, err
	}
	if tok != nil {
		if op, ok := unaryOps[tok.kind]; ok {
			p.lexer.next()
			// Prefix operators bind tighter than any binary operator.
			operand, err := p.parseBinary(math.MaxInt)
			if err != nil {
				return nil, err
			}
			left = &UnaryExpr{Pos: tok.pos, Op: op, Operand: operand}
		}
	}
	if left == nil {
		left, err = p.parsePrimary()
		if err != nil {
			return nil, err
		}
	}

	for {
		tok, err := p.lexer.peek()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return left, nil
		}
		op, precedence, ok := binaryOp(tok.kind)
		if !ok || precedence <= parentPrecedence {
			return left, nil
		}
		p.lexer.next()

		right, err := p.parseBinary(precedence)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Pos: tok.pos, Left: left, Right: right, Op: op}
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	tok, err := p.lexer.next()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, errorAt(p.lexer.pos, "unexpected end of input, expected an expression")
	}

	switch tok.kind {
	case tokenName:
		return &NameExpr{Pos: tok.pos, Name: tok.name}, nil
	case tokenNumber:
		return &NumberExpr{Pos: tok.pos, Value: tok.number}, nil
	case tokenOpenParen:
		expr, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenCloseParen, `")"`); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, errorAt(tok.pos, "unexpected token %q, expected an expression", tok.String())
}
