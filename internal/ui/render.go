package ui

import (
	"fmt"
	"strings"

	"github.com/jacob-alan-henning/bfitui/internal/bf"
)

// memoryWindow is the number of cells shown around the pointer in step mode.
const memoryWindow = 20

// BuildSource renders the program text with the instruction at pc
// highlighted. Nothing is highlighted once pc is past the end.
func BuildSource(prog *bf.Program, pc int) string {
	src := prog.Source()
	if pc < 0 || pc >= prog.Len() {
		return string(src)
	}
	pos := prog.At(pc).Pos
	return string(src[:pos]) + PcTextStyle.Render(string(src[pos])) + string(src[pos+1:])
}

// BuildConsole renders program output with control bytes other than
// newline and tab replaced by '.'.
func BuildConsole(out []byte) string {
	var b strings.Builder
	for _, c := range out {
		if c == '\n' || c == '\t' {
			b.WriteByte(c)
			continue
		}
		b.WriteString(byteToAscii(c))
	}
	return b.String()
}

// BuildMemoryState lists tape cells with a marker at the data pointer. With
// window <= 0 every cell up to the high-water mark is listed, otherwise a
// window of that many cells around the pointer.
func BuildMemoryState(tape *bf.Tape, window int) string {
	var stateBuilder strings.Builder
	stateBuilder.WriteString(headerStyle.Render("   cell     dec  hex  ASCII") + "\n")

	ptr := tape.Pointer()
	bottom, top := 0, tape.HighWater()
	if window > 0 {
		bottom = max(min(ptr-window/2, tape.Len()-window), 0)
		top = min(bottom+window, tape.Len()) - 1
	}

	for i := bottom; i <= top; i++ {
		v := tape.Cell(i)
		marker := "  "
		if i == ptr {
			marker = "->"
		}
		fmt.Fprintf(&stateBuilder, "%s %5d    %3d  0x%02x  %s\n", marker, i, v, v, byteToAscii(v))
	}
	return stateBuilder.String()
}

// BuildDump renders the full machine state: source, console, last
// instruction and memory.
func BuildDump(m *bf.Machine) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Instructions:") + "\n")
	b.WriteString(BuildSource(m.Program(), m.PC()) + "\n\n")
	b.WriteString(headerStyle.Render("Console output:") + "\n")
	b.WriteString(BuildConsole(m.Output()) + "\n\n")
	if last, ok := m.Last(); ok {
		fmt.Fprintf(&b, "Command executed: %s\n\n", last.Op)
	}
	b.WriteString(BuildMemoryState(m.Tape(), 0))
	if err := m.Err(); err != nil {
		b.WriteString("\n" + errorStyle.Render(err.Error()) + "\n")
	}
	return b.String()
}

func byteToAscii(value byte) string {
	if value >= 32 && value <= 126 {
		return string(value)
	} else {
		return "."
	}
}
