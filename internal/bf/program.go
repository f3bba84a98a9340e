package bf

// Program is a parsed brainfuck source with its loop jump table.
type Program struct {
	src   []byte
	insts []Instruction
	jump  []int // jump[i] is the partner of a bracket at i, -1 otherwise
}

// Parse strips comments from src and pairs every '[' with its ']' in one
// pass. An unmatched bracket is reported as a *SyntaxError.
func Parse(src []byte) (*Program, error) {
	p := &Program{
		src:   src,
		insts: make([]Instruction, 0, len(src)),
	}
	for pos, c := range src {
		if IsOp(c) {
			p.insts = append(p.insts, Instruction{Op: Op(c), Pos: pos})
		}
	}

	p.jump = make([]int, len(p.insts))
	open := make([]int, 0, 16)
	for i, in := range p.insts {
		p.jump[i] = -1
		switch in.Op {
		case OpLoop:
			open = append(open, i)
		case OpEnd:
			if len(open) == 0 {
				return nil, newSyntaxError(src, in)
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			p.jump[start] = i
			p.jump[i] = start
		}
	}
	if len(open) > 0 {
		// report the innermost unclosed loop
		return nil, newSyntaxError(src, p.insts[open[len(open)-1]])
	}
	return p, nil
}

// MustParse is like Parse but panics on a syntax error.
func MustParse(src string) *Program {
	p, err := Parse([]byte(src))
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.insts)
}

func (p *Program) At(i int) Instruction {
	return p.insts[i]
}

// Match returns the index of the bracket paired with the bracket at i.
func (p *Program) Match(i int) (int, bool) {
	if i < 0 || i >= len(p.jump) || p.jump[i] < 0 {
		return 0, false
	}
	return p.jump[i], true
}

// Source returns the original program text, comments included.
func (p *Program) Source() []byte {
	return p.src
}
