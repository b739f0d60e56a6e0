// Package vm runs an assembled lexer program as a non-backtracking NFA
// simulation (a Pike/Thompson-style bytecode VM): every live thread is
// advanced one input character at a time, in lockstep, so the whole
// input is scanned in a single pass regardless of how many alternatives
// a token's pattern has.
package vm

import (
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"

	"nilexer/assembler"
	"nilexer/bytecode"
	"nilexer/token"
)

// Program is an assembled lexer program, ready to drive any number of
// concurrent sessions. It holds no mutable state itself, so the same
// Program value may be shared across goroutines.
type Program = assembler.Program

// VM wraps an assembled Program and opens lexing Sessions over it.
type VM struct {
	program Program
}

// New wraps program for lexing.
func New(program Program) *VM {
	return &VM{program: program}
}

// NewSession begins lexing text from its first byte. Each Session owns
// its own thread sets, so sessions opened from the same VM may run
// concurrently without interfering with each other.
func (vm *VM) NewSession(text string) *Session {
	capacity := uint(len(vm.program.Code))
	return &Session{
		program: vm.program,
		runes:   []rune(text),
		current: bitset.New(capacity),
		next:    bitset.New(capacity),
	}
}

// Session walks one input string, producing one token.Token per call to
// Next until the stream's terminal End token is returned.
type Session struct {
	program Program

	current, next *bitset.BitSet

	runePos int
	bytePos uint32

	tokenStart uint32
	done       bool

	runes []rune
}

func (s *Session) tokenLength() uint32 {
	return s.bytePos - s.tokenStart
}

// Next advances the session by lexing exactly one token and returns it.
// The last token of every stream is token.End(); calling Next again after
// that returns an error. A malformed program is reported as a
// MalformedProgramError.
func (s *Session) Next() (token.Token, error) {
	if s.done {
		return token.Token{}, errDone
	}

	s.current.ClearAll()
	if err := s.addThreadErr(0, false); err != nil {
		return token.Token{}, err
	}

	if s.runePos == len(s.runes) {
		s.done = true
		return token.End(), nil
	}

	var best *uint16
	var bestBytePos uint32
	var bestRunePos int
	errorMode := false
	var result *token.Token

	for s.runePos < len(s.runes) {
		ch := s.runes[s.runePos]
		s.runePos++
		chLen := uint32(utf8.RuneLen(ch))
		s.bytePos += chLen

		maxIdx, matched, err := s.matchChar(ch)
		if err != nil {
			return token.Token{}, err
		}

		if matched {
			if errorMode {
				s.bytePos -= chLen
				s.runePos--
				t := token.Error(s.tokenLength())
				result = &t
				errorMode = false
			} else {
				// A match here ends later than any earlier one, so it
				// replaces best whatever its index.
				idx := maxIdx
				best = &idx
				bestBytePos, bestRunePos = s.bytePos, s.runePos
			}
		}

		if s.next.None() {
			if !errorMode {
				if best != nil {
					s.bytePos, s.runePos = bestBytePos, bestRunePos
					t := token.New(s.tokenLength(), *best)
					result = &t
				} else {
					errorMode = true
				}
			}
			if err := s.addThreadErr(0, true); err != nil {
				return token.Token{}, err
			}
		}

		s.current.ClearAll()
		s.current, s.next = s.next, s.current

		if result != nil {
			s.tokenStart = s.bytePos
			break
		}
	}

	if s.bytePos != s.tokenStart {
		if result == nil {
			if best != nil {
				s.bytePos, s.runePos = bestBytePos, bestRunePos
				t := token.New(s.tokenLength(), *best)
				result = &t
			} else {
				t := token.Error(s.tokenLength())
				result = &t
			}
		}
		s.tokenStart = s.bytePos
	}

	if result == nil {
		s.done = true
		return token.End(), nil
	}
	return *result, nil
}

// addThread computes the epsilon closure of pc: Split and Jmp are
// followed recursively without ever being scheduled as threads; a Match
// reached this way returns its token type index instead, so the caller
// can fold it into the step's best-match candidate; anything else (the
// input-consuming opcodes) is a thread leaf and gets inserted into the
// current or next thread set. It returns the greatest token type index
// reachable through pc, or (_, false) if none is.
func (s *Session) addThread(pc assembler.CodePointer, toNext bool) (uint16, bool, error) {
	if int(pc) >= len(s.program.Code) {
		return 0, false, MalformedProgramError{Position: int(pc), Message: "code pointer out of range"}
	}
	instr, err := bytecode.Decode(s.program.Code[pc])
	if err != nil {
		return 0, false, MalformedProgramError{Position: int(pc), Message: err.Error()}
	}

	switch instr.Op {
	case bytecode.Split:
		leftIdx, leftOK, err := s.addThread(instr.First, toNext)
		if err != nil {
			return 0, false, err
		}
		rightIdx, rightOK, err := s.addThread(instr.Second, toNext)
		if err != nil {
			return 0, false, err
		}
		if !leftOK {
			return rightIdx, rightOK, nil
		}
		if !rightOK {
			return leftIdx, leftOK, nil
		}
		if leftIdx > rightIdx {
			return leftIdx, true, nil
		}
		return rightIdx, true, nil

	case bytecode.Jmp:
		return s.addThread(assembler.CodePointer(instr.Operand), toNext)

	case bytecode.Match:
		return uint16(instr.Operand), true, nil

	case bytecode.SplitMany:
		count, err := s.poolValue(instr.Operand)
		if err != nil {
			return 0, false, err
		}
		var best uint16
		haveBest := false
		for i := uint32(0); i < count; i++ {
			target, err := s.poolValue(instr.Operand + 1 + i)
			if err != nil {
				return 0, false, err
			}
			idx, ok, err := s.addThread(assembler.CodePointer(target), toNext)
			if err != nil {
				return 0, false, err
			}
			if ok && (!haveBest || idx > best) {
				best = idx
				haveBest = true
			}
		}
		return best, haveBest, nil

	default:
		if toNext {
			s.next.Set(uint(pc))
		} else {
			s.current.Set(uint(pc))
		}
		return 0, false, nil
	}
}

func (s *Session) addThreadErr(pc assembler.CodePointer, toNext bool) error {
	_, _, err := s.addThread(pc, toNext)
	return err
}

// matchChar advances every thread in the current set that accepts ch,
// folding each newly spawned thread's epsilon closure into the step's
// best match the same way Split does.
func (s *Session) matchChar(ch rune) (uint16, bool, error) {
	var best uint16
	haveBest := false

	for pc, ok := s.current.NextSet(0); ok; pc, ok = s.current.NextSet(pc + 1) {
		instr, err := bytecode.Decode(s.program.Code[pc])
		if err != nil {
			return 0, false, MalformedProgramError{Position: int(pc), Message: err.Error()}
		}

		advanced := false
		switch instr.Op {
		case bytecode.CharImm:
			advanced = rune(instr.Operand) == ch
		case bytecode.CharCp:
			val, err := s.poolValue(instr.Operand)
			if err != nil {
				return 0, false, err
			}
			advanced = rune(val) == ch
		case bytecode.RangeImm:
			advanced = ch >= rune(instr.First) && ch <= rune(instr.Second)
		}

		if !advanced {
			continue
		}

		idx, ok, err := s.addThread(assembler.CodePointer(pc+1), true)
		if err != nil {
			return 0, false, err
		}
		if ok && (!haveBest || idx > best) {
			best = idx
			haveBest = true
		}
	}

	return best, haveBest, nil
}

// poolValue reads a single scalar out of the constant pool, used by
// CharCp to resolve its pool-indirect character.
func (s *Session) poolValue(index uint32) (uint32, error) {
	if int(index) >= len(s.program.ConstantPool) {
		return 0, MalformedProgramError{Position: int(index), Message: "pool index out of range"}
	}
	return s.program.ConstantPool[index], nil
}
