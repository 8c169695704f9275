package script

import "fmt"

// Pos is a 1-based source location.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type tokenKind int

const (
	tokenName tokenKind = iota
	tokenNumber
	tokenOpenParen
	tokenCloseParen
	tokenSemicolon
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenCaret
	tokenPipe
	tokenAmpersand
	tokenBang
	tokenTilde
	tokenEqual

	tokenNormalize
	tokenMagnitude
	tokenSin
	tokenCos
	tokenASin
	tokenACos
)

var keywords = map[string]tokenKind{
	"normalize": tokenNormalize,
	"magnitude": tokenMagnitude,
	"sin":       tokenSin,
	"cos":       tokenCos,
	"asin":      tokenASin,
	"acos":      tokenACos,
}

type token struct {
	pos    Pos
	kind   tokenKind
	name   string  // tokenName
	number float32 // tokenNumber
}

func (t token) String() string {
	switch t.kind {
	case tokenName:
		return t.name
	case tokenNumber:
		return fmt.Sprintf("%v", t.number)
	case tokenOpenParen:
		return "("
	case tokenCloseParen:
		return ")"
	case tokenSemicolon:
		return ";"
	case tokenPlus:
		return "+"
	case tokenMinus:
		return "-"
	case tokenStar:
		return "*"
	case tokenSlash:
		return "/"
	case tokenCaret:
		return "^"
	case tokenPipe:
		return "|"
	case tokenAmpersand:
		return "&"
	case tokenBang:
		return "!"
	case tokenTilde:
		return "~"
	case tokenEqual:
		return "="
	}
	for name, kind := range keywords {
		if kind == t.kind {
			return name
		}
	}
	return "?"
}
