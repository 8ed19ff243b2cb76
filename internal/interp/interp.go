/*
Package interp implements the line-oriented command language the
telefony command reads from its input: selecting and dropping named
forwarding stores, installing and removing rules, and running the three
forwarding queries.

The lexer keeps a one-rune pushback buffer (a deque.Deque, LIFO) rather
than relying on bufio.Reader.UnreadRune, so one of this module's own
container packages does the small amount of lookahead a hand-rolled
scanner needs here. Command output is buffered in a queue.Queue and
written only once the command has finished executing; the buffered lines
are then written one at a time, and a write failure stops the flush at
that line.
*/
package interp

import (
	"fmt"
	"io"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/p-banach/telefony/deque"
	"github.com/p-banach/telefony/digit"
	"github.com/p-banach/telefony/forward"
	"github.com/p-banach/telefony/queue"
	"github.com/p-banach/telefony/registry"
	"github.com/p-banach/telefony/trie"
)

// SyntaxError is returned for every parse or execution failure except
// end-of-input; its Error() string is already the wire format the
// original interface printed on stderr.
type SyntaxError struct {
	Op   string
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ERROR %s %d", e.Op, e.Line)
}

// ErrEOF is returned when the input ends in the middle of a command.
var ErrEOF = fmt.Errorf("ERROR EOF")

// ErrMemory is never returned in practice: Go's allocator panics rather
// than reporting failure, so there is no path that produces it. It is
// kept only so the error taxonomy this interpreter implements has a
// value for the "MEMORY ERROR" case the original interface defines.
var ErrMemory = fmt.Errorf("MEMORY ERROR")

// Interpreter runs commands against a registry of named forwarding
// stores, writing query results to out.
type Interpreter struct {
	reg         *registry.Registry
	current     *trie.Trie
	currentName string
	out         io.Writer
	log         zerolog.Logger
}

// New returns an Interpreter with a fresh, empty registry.
func New(out io.Writer, log zerolog.Logger) *Interpreter {
	return &Interpreter{
		reg: registry.New(),
		out: out,
		log: log,
	}
}

// Run reads and executes commands from input until it is exhausted,
// stopping at the first error.
func (ip *Interpreter) Run(input string) error {
	sc := newScanner(input)
	for {
		eof, err := sc.skipCommentsAndSpace()
		if err != nil {
			return err
		}
		if eof {
			return nil
		}
		line := sc.line
		cmd, err := parseCommand(sc)
		if err != nil {
			ip.log.Debug().Err(err).Int("line", line).Msg("command parse failed")
			return err
		}
		if err := ip.execute(cmd, line); err != nil {
			ip.log.Debug().Err(err).Int("line", line).Msg("command execution failed")
			return err
		}
	}
}

type commandKind int

const (
	cmdNew commandKind = iota
	cmdDelID
	cmdDelNum
	cmdRule
	cmdForward
	cmdReverse
	cmdCount
)

type command struct {
	kind          commandKind
	id            string
	num1, num2    string
	set           string
	length        int
}

func (ip *Interpreter) execute(c *command, line int) error {
	buf := queue.NewQueue[string]()

	switch c.kind {
	case cmdNew:
		t, err := ip.reg.Select(c.id)
		if err != nil {
			return err
		}
		ip.current = t
		ip.currentName = c.id

	case cmdDelID:
		// Deleting an unregistered name is a silent no-op, matching the
		// original interface's linear scan that simply finds nothing.
		if _, err := ip.reg.Delete(c.id); err == nil && ip.currentName == c.id {
			ip.current = nil
			ip.currentName = ""
		}

	case cmdDelNum:
		if ip.current == nil {
			return &SyntaxError{Op: "DEL", Line: line}
		}
		ip.current.RemoveSubtree(c.num1)

	case cmdRule:
		if ip.current == nil || !ip.current.Insert(c.num1, c.num2) {
			return &SyntaxError{Op: ">", Line: line}
		}

	case cmdForward:
		if ip.current == nil {
			return &SyntaxError{Op: "?", Line: line}
		}
		result := forward.Lookup(ip.current, c.num1)
		for i := 0; i < result.Len(); i++ {
			v, _ := result.Get(i)
			buf.Enqueue(v)
		}

	case cmdReverse:
		if ip.current == nil {
			return &SyntaxError{Op: "?", Line: line}
		}
		results := forward.Reverse(ip.current, c.num1)
		for i := 0; i < results.Len(); i++ {
			v, _ := results.Get(i)
			buf.Enqueue(v)
		}

	case cmdCount:
		if ip.current == nil {
			return &SyntaxError{Op: "@", Line: line}
		}
		n := forward.NonTrivialCount(ip.current, c.set, c.length)
		buf.Enqueue(fmt.Sprintf("%d", n))
	}

	return ip.flush(buf)
}

func (ip *Interpreter) flush(buf *queue.Queue[string]) error {
	for !buf.IsEmpty() {
		line, err := buf.Dequeue()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(ip.out, line); err != nil {
			return err
		}
	}
	return nil
}

// scanner is a rune-at-a-time reader over the whole input, with a
// pushback buffer for the one rune of lookahead the grammar needs.
type scanner struct {
	runes    []rune
	pos      int
	line     int
	pushback *deque.Deque[rune]
}

func newScanner(input string) *scanner {
	return &scanner{
		runes:    []rune(input),
		line:     1,
		pushback: deque.NewDeque[rune](),
	}
}

func (s *scanner) next() (rune, bool) {
	if r, err := s.pushback.PollLast(); err == nil {
		return r, true
	}
	if s.pos >= len(s.runes) {
		return 0, false
	}
	r := s.runes[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
	}
	return r, true
}

func (s *scanner) unread(r rune) {
	if r == '\n' {
		s.line--
	}
	_, _ = s.pushback.OfferLast(r)
}

// skipCommentsAndSpace advances past whitespace and $...$ comments,
// leaving the scanner positioned at the next meaningful rune. It reports
// eof true if input was exhausted while skipping whitespace, which is a
// clean end of input; a comment left unterminated at the end of input
// also reports eof, together with ErrEOF.
func (s *scanner) skipCommentsAndSpace() (eof bool, err error) {
	for {
		r, ok := s.next()
		if !ok {
			return true, nil
		}
		if unicode.IsSpace(r) {
			continue
		}
		if r == '$' {
			if eof := s.skipComment(); eof {
				return true, ErrEOF
			}
			continue
		}
		s.unread(r)
		return false, nil
	}
}

func (s *scanner) skipComment() (eof bool) {
	for {
		r, ok := s.next()
		if !ok {
			return true
		}
		if r == '$' {
			return false
		}
	}
}

func isDigitRune(r rune) bool {
	return r < 128 && digit.IsDigit(byte(r))
}

func (s *scanner) readWhile(pred func(rune) bool) string {
	var out []rune
	for {
		r, ok := s.next()
		if !ok {
			break
		}
		if !pred(r) {
			s.unread(r)
			break
		}
		out = append(out, r)
	}
	return string(out)
}

func parseCommand(sc *scanner) (*command, error) {
	r, ok := sc.next()
	if !ok {
		return nil, ErrEOF
	}

	switch {
	case isDigitRune(r):
		sc.unread(r)
		num1 := sc.readWhile(isDigitRune)
		sc.skipCommentsAndSpace()
		op, ok := sc.next()
		if !ok {
			return nil, ErrEOF
		}
		switch op {
		case '?':
			return &command{kind: cmdForward, num1: num1}, nil
		case '>':
			sc.skipCommentsAndSpace()
			num2 := sc.readWhile(isDigitRune)
			if num2 == "" {
				return nil, &SyntaxError{Op: ">", Line: sc.line}
			}
			return &command{kind: cmdRule, num1: num1, num2: num2}, nil
		default:
			sc.unread(op)
			return nil, &SyntaxError{Op: string(op), Line: sc.line}
		}

	case r == '?':
		sc.skipCommentsAndSpace()
		num, err := expectNumber(sc, "?")
		if err != nil {
			return nil, err
		}
		return &command{kind: cmdReverse, num1: num}, nil

	case r == '@':
		sc.skipCommentsAndSpace()
		set := sc.readWhile(func(r rune) bool { return !unicode.IsSpace(r) })
		if set == "" {
			return nil, &SyntaxError{Op: "@", Line: sc.line}
		}
		sc.skipCommentsAndSpace()
		lengthStr := sc.readWhile(unicode.IsDigit)
		if lengthStr == "" {
			return nil, &SyntaxError{Op: "@", Line: sc.line}
		}
		length := 0
		for _, d := range lengthStr {
			length = length*10 + int(d-'0')
		}
		return &command{kind: cmdCount, set: set, length: length}, nil

	case unicode.IsLetter(r):
		sc.unread(r)
		keyword := sc.readWhile(unicode.IsLetter)
		switch keyword {
		case "NEW":
			sc.skipCommentsAndSpace()
			id, err := expectIdentifier(sc, "NEW")
			if err != nil {
				return nil, err
			}
			return &command{kind: cmdNew, id: id}, nil
		case "DEL":
			sc.skipCommentsAndSpace()
			peek, ok := sc.next()
			if !ok {
				return nil, ErrEOF
			}
			sc.unread(peek)
			if isDigitRune(peek) {
				num := sc.readWhile(isDigitRune)
				return &command{kind: cmdDelNum, num1: num}, nil
			}
			id, err := expectIdentifier(sc, "DEL")
			if err != nil {
				return nil, err
			}
			return &command{kind: cmdDelID, id: id}, nil
		default:
			return nil, &SyntaxError{Op: keyword, Line: sc.line}
		}

	default:
		return nil, &SyntaxError{Op: string(r), Line: sc.line}
	}
}

func expectNumber(sc *scanner, op string) (string, error) {
	num := sc.readWhile(isDigitRune)
	if num == "" {
		return "", &SyntaxError{Op: op, Line: sc.line}
	}
	return num, nil
}

func expectIdentifier(sc *scanner, op string) (string, error) {
	r, ok := sc.next()
	if !ok {
		return "", ErrEOF
	}
	if !unicode.IsLetter(r) {
		sc.unread(r)
		return "", &SyntaxError{Op: op, Line: sc.line}
	}
	sc.unread(r)
	id := sc.readWhile(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
	return id, nil
}
