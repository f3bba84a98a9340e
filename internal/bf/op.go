// Package bf is a brainfuck virtual machine: a byte tape, a parsed program
// with a precomputed jump table, and a machine that runs it one step at a time.
package bf

// Op is one of the eight brainfuck instructions.
type Op byte

const (
	OpRight  Op = '>'
	OpLeft   Op = '<'
	OpInc    Op = '+'
	OpDec    Op = '-'
	OpOutput Op = '.'
	OpInput  Op = ','
	OpLoop   Op = '['
	OpEnd    Op = ']'
)

// IsOp reports whether c is an instruction. Everything else is a comment.
func IsOp(c byte) bool {
	switch Op(c) {
	case OpRight, OpLeft, OpInc, OpDec, OpOutput, OpInput, OpLoop, OpEnd:
		return true
	}
	return false
}

func (op Op) String() string {
	return string(rune(op))
}

// Instruction is a parsed instruction together with its byte offset in the
// program source.
type Instruction struct {
	Op  Op
	Pos int
}

func (in Instruction) String() string {
	return in.Op.String()
}
