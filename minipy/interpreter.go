package minipy

import "io"

// Script is a compiled program, ready to execute any number of times
// against independent environments.
type Script struct {
	program *Program
	source  string
}

// Compile tokenizes and parses source, returning the first *LexError or
// *ParseError encountered.
func Compile(source string) (*Script, error) {
	p := newParser(source)
	program, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return &Script{program: program, source: source}, nil
}

// Execute runs the program against env, sending each print line to sink.
// It returns a *RuntimeError on the first semantic violation; lines
// written before the error remain with the sink.
func (s *Script) Execute(env *Env, sink OutputSink) error {
	exec := &Execution{script: s, env: env, sink: sink}
	return exec.runProgram()
}

// Run compiles and executes source in one call, collecting the ordered
// output lines. Deterministic for identical source text.
func Run(source string) ([]string, error) {
	script, err := Compile(source)
	if err != nil {
		return nil, err
	}
	var buf LineBuffer
	if err := script.Execute(NewEnv(), &buf); err != nil {
		return buf.Lines(), err
	}
	return buf.Lines(), nil
}

// OutputSink receives one call per executed print statement.
type OutputSink interface {
	WriteLine(text string)
}

// LineBuffer collects output lines in memory.
type LineBuffer struct {
	lines []string
}

func (b *LineBuffer) WriteLine(text string) {
	b.lines = append(b.lines, text)
}

func (b *LineBuffer) Lines() []string {
	return b.lines
}

type writerSink struct {
	w io.Writer
}

// NewWriterSink adapts an io.Writer into an OutputSink, appending a
// newline to each line. Write errors are ignored; the language has no
// channel to report them.
func NewWriterSink(w io.Writer) OutputSink {
	return &writerSink{w: w}
}

func (s *writerSink) WriteLine(text string) {
	io.WriteString(s.w, text+"\n")
}
