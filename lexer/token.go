package lexer

import "fmt"

// Token is a single lexeme of a unit code.
// Class is one of grammar terminal class constants or EoiClass.
type Token struct {
	class     int
	className string
	text      string
	offset    int
}

func (t Token) Class() int {
	return t.class
}

func (t Token) ClassName() string {
	return t.className
}

func (t Token) Text() string {
	return t.text
}

// Offset returns byte offset of the token in the unit code.
func (t Token) Offset() int {
	return t.offset
}

// End returns byte offset right after the token.
func (t Token) End() int {
	return t.offset + len(t.text)
}

func NewToken(class int, className, text string, offset int) Token {
	return Token{class, className, text, offset}
}

const (
	EoiClass     = -1
	EoiClassName = "-end-of-input-"
)

// EoiToken returns end-of-input token for a unit code of given length.
func EoiToken(offset int) Token {
	return Token{class: EoiClass, className: EoiClassName, offset: offset}
}

// String returns debug representation of the token.
func (t Token) String() string {
	if t.class == EoiClass {
		return fmt.Sprintf("%s@%d", t.className, t.offset)
	}
	return fmt.Sprintf("%s(%q)@%d", t.className, t.text, t.offset)
}
