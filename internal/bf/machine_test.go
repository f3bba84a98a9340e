package bf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func run(t *testing.T, src string, opts Options) *Machine {
	t.Helper()
	m := NewMachine(MustParse(src), opts)
	require.NoError(t, m.Run())
	require.True(t, m.Halted())
	return m
}

func TestMachineEmptyProgram(t *testing.T) {
	m := run(t, "", Options{})
	assert.Empty(t, m.Output())
	assert.Equal(t, uint64(0), m.Steps())
	_, ok := m.Last()
	assert.False(t, ok)
	for i := range m.Tape().Len() {
		require.Zero(t, m.Tape().Cell(i))
	}
}

func TestMachineMultiply(t *testing.T) {
	m := run(t, "++++++++[>++++++++<-]>.", Options{})
	assert.Equal(t, []byte{64}, m.Output())
}

func TestMachineNestedLoops(t *testing.T) {
	m := run(t, "++[>++[>++<-]<-]", Options{})
	tape := m.Tape()
	assert.Equal(t, byte(0), tape.Cell(0))
	assert.Equal(t, byte(0), tape.Cell(1))
	// two outer iterations, each adding 2*2
	assert.Equal(t, byte(8), tape.Cell(2))
}

func TestMachineSkipsNestedLoopWhenZero(t *testing.T) {
	// the inner ']' must not end the skip of the outer loop
	m := run(t, "[[+]+]+", Options{})
	assert.Equal(t, byte(1), m.Tape().Cell(0))
	assert.Equal(t, uint64(2), m.Steps())
}

func TestMachineHelloWorld(t *testing.T) {
	in := strings.NewReader("untouched")
	m := run(t, helloWorld, Options{Input: in})
	assert.Equal(t, "Hello World!\n", string(m.Output()))
	assert.Equal(t, 9, in.Len())
}

func TestMachineWraparound(t *testing.T) {
	m := run(t, "-.+.", Options{})
	assert.Equal(t, []byte{255, 0}, m.Output())

	src := strings.Repeat("+", 256) + "."
	m = run(t, src, Options{})
	assert.Equal(t, []byte{0}, m.Output())
}

func TestMachineBoundsViolation(t *testing.T) {
	t.Run("left of first cell", func(t *testing.T) {
		m := NewMachine(MustParse("+ <"), Options{})
		err := m.Run()
		require.ErrorIs(t, err, ErrBounds)

		var rerr *RuntimeError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, 1, rerr.Index)
		assert.Equal(t, 2, rerr.Pos)
		assert.Equal(t, OpLeft, rerr.Op)
		assert.Equal(t, 0, rerr.Pointer)
		assert.True(t, m.Halted())
		assert.Equal(t, 1, m.PC())
	})

	t.Run("right of last cell", func(t *testing.T) {
		m := NewMachine(MustParse(">>>"), Options{TapeSize: 3})
		err := m.Run()
		require.ErrorIs(t, err, ErrBounds)

		var rerr *RuntimeError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, 2, rerr.Index)
		assert.Equal(t, 2, rerr.Pointer)
		assert.Equal(t, 2, m.Tape().Pointer())

		_, again := m.Step()
		assert.Equal(t, err, again)
	})
}

func TestMachineInput(t *testing.T) {
	m := run(t, ",.,.", Options{Input: strings.NewReader("hi")})
	assert.Equal(t, "hi", string(m.Output()))
}

func TestMachineEOFPolicy(t *testing.T) {
	tests := []struct {
		policy EOFPolicy
		want   byte
	}{
		{EOFUnchanged, 5},
		{EOFZero, 0},
		{EOFMax, 255},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			m := run(t, "+++++,.", Options{EOF: tt.policy})
			assert.Equal(t, []byte{tt.want}, m.Output())
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestMachineInputError(t *testing.T) {
	m := NewMachine(MustParse("+,"), Options{Input: failingReader{}})
	err := m.Run()
	require.ErrorIs(t, err, ErrIO)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, m.Err(), err)
}

func TestMachineOutputSink(t *testing.T) {
	var sink bytes.Buffer
	m := run(t, helloWorld, Options{Output: &sink})
	assert.Equal(t, "Hello World!\n", sink.String())
	assert.Equal(t, sink.Bytes(), m.Output())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestMachineOutputSinkError(t *testing.T) {
	m := NewMachine(MustParse("."), Options{Output: failingWriter{}})
	err := m.Run()
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestMachineStep(t *testing.T) {
	m := NewMachine(MustParse("+ comment [-]"), Options{})

	var ops []Op
	for {
		in, err := m.Step()
		if errors.Is(err, ErrHalted) {
			break
		}
		require.NoError(t, err)
		ops = append(ops, in.Op)
		last, ok := m.Last()
		require.True(t, ok)
		assert.Equal(t, in, last)
	}
	assert.Equal(t, []Op{OpInc, OpLoop, OpDec, OpEnd}, ops)
	assert.Equal(t, uint64(4), m.Steps())

	_, err := m.Step()
	assert.ErrorIs(t, err, ErrHalted)
}

func TestStepAndRunAgree(t *testing.T) {
	programs := []struct {
		src   string
		input string
	}{
		{helloWorld, ""},
		{",[.,]", "echo me"},
		{"+[,[->+<]>.<]", "abc"},
		{"++[>++[>++<-]<-]>>[-<+>]", ""},
	}
	for _, p := range programs {
		t.Run(p.src, func(t *testing.T) {
			batch := NewMachine(MustParse(p.src), Options{Input: strings.NewReader(p.input), EOF: EOFZero})
			require.NoError(t, batch.Run())

			stepped := NewMachine(MustParse(p.src), Options{Input: strings.NewReader(p.input), EOF: EOFZero})
			for {
				_, err := stepped.Step()
				if errors.Is(err, ErrHalted) {
					break
				}
				require.NoError(t, err)
			}

			assert.Equal(t, batch.Output(), stepped.Output())
			assert.Equal(t, batch.Tape().Cells(), stepped.Tape().Cells())
			assert.Equal(t, batch.Tape().Pointer(), stepped.Tape().Pointer())
			assert.Equal(t, batch.Steps(), stepped.Steps())
		})
	}
}

func TestRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMachine(MustParse("+[]"), Options{})
	err := m.RunContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, m.Halted())
}

func TestParseEOFPolicy(t *testing.T) {
	for _, name := range []string{"", "unchanged", "ZERO", "max"} {
		_, err := ParseEOFPolicy(name)
		assert.NoError(t, err, name)
	}
	p, err := ParseEOFPolicy("max")
	require.NoError(t, err)
	assert.Equal(t, EOFMax, p)

	_, err = ParseEOFPolicy("minus-one")
	assert.Error(t, err)
	assert.Equal(t, "EOFPolicy(7)", EOFPolicy(7).String())
}
