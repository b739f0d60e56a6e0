// Package assembler appends bytecode instructions to a growing code
// buffer, interns values into a constant pool, and hands out patch
// handles so the compiler can resolve forward branch targets once the
// code they point at has been emitted.
package assembler

import "nilexer/bytecode"

// CodePointer indexes into a Program's code buffer. It is 14 bits wide
// (see bytecode.BranchBits); the assembler rejects anything larger.
type CodePointer = uint16

// PoolIndex indexes into a Program's constant pool.
type PoolIndex = uint16

// Program is the immutable output of a successful assembly: a flat
// instruction stream plus the constant pool it references. Once
// produced by Finish, a Program may be shared by any number of
// concurrent VM sessions (see package vm).
type Program struct {
	Code         []bytecode.Word
	ConstantPool []uint32
}

// PatchHandle identifies one 14-bit operand field of a previously emitted
// Split instruction, following the "(code_position, which_field)"
// convention spec.md §9 recommends for representing forward-branch
// patches without a pointer-heavy intermediate graph.
type PatchHandle struct {
	position CodePointer
	high     bool
}

// SplitManyHandle identifies a previously emitted SplitMany instruction
// whose jump table has not yet been written to the constant pool.
type SplitManyHandle struct {
	position CodePointer
}

// Assembler holds the growing code buffer, the constant-pool buffer, and
// the CharCp dedup map. It is reusable: Finish hands off its buffers and
// resets internal state, mirroring the teacher compiler's pattern of one
// long-lived Compiler value reused across Compile calls.
type Assembler struct {
	code []bytecode.Word
	pool []uint32

	// Deduplicates CharCp scalars only; SplitMany tables always append
	// fresh entries (see patchSplitMany).
	poolIndexOf map[uint32]PoolIndex

	pendingSplits    map[CodePointer]bool // position -> neither field patched yet
	pendingSplitMany map[CodePointer]bool
}

// New creates an empty Assembler.
func New() *Assembler {
	return &Assembler{
		poolIndexOf:      make(map[uint32]PoolIndex),
		pendingSplits:    make(map[CodePointer]bool),
		pendingSplitMany: make(map[CodePointer]bool),
	}
}

func (a *Assembler) nextCodePosition() CodePointer {
	return CodePointer(len(a.code))
}

func checkWidth(field string, value uint32, max uint32) error {
	if value > max {
		return OverflowError{Field: field, Value: value, Max: max}
	}
	return nil
}

// EmitCharImm appends a CharImm instruction matching a single Unicode
// scalar value.
func (a *Assembler) EmitCharImm(ch rune) error {
	if err := checkWidth("char_imm scalar", uint32(ch), bytecode.MaxScalarValue); err != nil {
		return err
	}
	a.code = append(a.code, bytecode.Encode(bytecode.CharImm, uint32(ch)))
	return nil
}

// EmitCharCp interns ch in the constant pool (deduplicated) and emits a
// CharCp instruction referencing it.
func (a *Assembler) EmitCharCp(ch rune) error {
	idx, err := a.internScalar(uint32(ch))
	if err != nil {
		return err
	}
	a.code = append(a.code, bytecode.Encode(bytecode.CharCp, uint32(idx)))
	return nil
}

// internScalar deduplicates ch against previously interned CharCp values,
// returning the existing pool index if present.
func (a *Assembler) internScalar(value uint32) (PoolIndex, error) {
	if idx, ok := a.poolIndexOf[value]; ok {
		return idx, nil
	}
	idx := PoolIndex(len(a.pool))
	if err := checkWidth("pool index", uint32(idx), bytecode.MaxMatchValue); err != nil {
		return 0, err
	}
	a.pool = append(a.pool, value)
	a.poolIndexOf[value] = idx
	return idx, nil
}

// EmitMatch appends a Match instruction for the given token type index.
func (a *Assembler) EmitMatch(tokenTypeIndex uint16) error {
	if err := checkWidth("match token index", uint32(tokenTypeIndex), bytecode.MaxMatchValue); err != nil {
		return err
	}
	a.code = append(a.code, bytecode.Encode(bytecode.Match, uint32(tokenTypeIndex)))
	return nil
}

// EmitRangeImm appends a RangeImm instruction matching any scalar in
// [from, to] inclusive.
func (a *Assembler) EmitRangeImm(from, to rune) error {
	if err := checkWidth("range from", uint32(from), bytecode.MaxBranchValue); err != nil {
		return err
	}
	if err := checkWidth("range to", uint32(to), bytecode.MaxBranchValue); err != nil {
		return err
	}
	a.code = append(a.code, bytecode.EncodeBinary(bytecode.RangeImm, uint16(from), uint16(to)))
	return nil
}

// EmitJmp appends an unconditional jump to a known target.
func (a *Assembler) EmitJmp(target CodePointer) error {
	if err := checkWidth("jmp target", uint32(target), bytecode.MaxBranchValue); err != nil {
		return err
	}
	a.code = append(a.code, bytecode.Encode(bytecode.Jmp, uint32(target)))
	return nil
}

// EmitPlaceholderJmp appends a Jmp with a zero target and returns its
// code position, so a later PatchJmp call can resolve it once the true
// target is known.
func (a *Assembler) EmitPlaceholderJmp() CodePointer {
	pos := a.nextCodePosition()
	a.code = append(a.code, bytecode.Encode(bytecode.Jmp, 0))
	return pos
}

// PatchJmp overwrites a previously emitted Jmp's target operand.
func (a *Assembler) PatchJmp(position CodePointer, target CodePointer) error {
	if err := checkWidth("jmp target", uint32(target), bytecode.MaxBranchValue); err != nil {
		return err
	}
	a.code[position] = bytecode.Encode(bytecode.Jmp, uint32(target))
	return nil
}

// EmitSplit appends a Split(then, else) NFA fork and returns two patch
// handles — one per branch target — so the compiler can emit the
// branches' bodies before learning their start positions.
func (a *Assembler) EmitSplit(then, els CodePointer) (thenHandle, elseHandle PatchHandle) {
	position := a.nextCodePosition()
	a.code = append(a.code, bytecode.EncodeBinary(bytecode.Split, then, els))
	a.pendingSplits[position] = true
	return PatchHandle{position: position, high: true}, PatchHandle{position: position, high: false}
}

// PatchTarget rewrites the 14-bit field a PatchHandle identifies with
// newTarget, preserving the instruction's other field and opcode.
func (a *Assembler) PatchTarget(handle PatchHandle, newTarget CodePointer) error {
	if err := checkWidth("split target", uint32(newTarget), bytecode.MaxBranchValue); err != nil {
		return err
	}
	instr, err := bytecode.Decode(a.code[handle.position])
	if err != nil {
		return err
	}
	if handle.high {
		a.code[handle.position] = bytecode.EncodeBinary(bytecode.Split, newTarget, instr.Second)
	} else {
		a.code[handle.position] = bytecode.EncodeBinary(bytecode.Split, instr.First, newTarget)
	}
	delete(a.pendingSplits, handle.position)
	return nil
}

// EmitSplitMany appends a SplitMany instruction with a placeholder pool
// index and returns a handle for PatchSplitMany to resolve once every
// variant's entry position is known.
func (a *Assembler) EmitSplitMany() SplitManyHandle {
	position := a.nextCodePosition()
	a.code = append(a.code, bytecode.Encode(bytecode.SplitMany, 0))
	a.pendingSplitMany[position] = true
	return SplitManyHandle{position: position}
}

// PatchSplitMany appends targets to the constant pool as a length-prefixed
// jump table (see SPEC_FULL.md §3, "SplitMany table convention") and
// patches the handle's instruction to point at the table's first word.
// It must be called exactly once per handle; SplitMany tables are never
// deduplicated against each other even if two variant sets happen to be
// identical, since each table is owned by exactly one instruction.
func (a *Assembler) PatchSplitMany(handle SplitManyHandle, targets []CodePointer) error {
	tableIndex := PoolIndex(len(a.pool))
	if err := checkWidth("split_many table index", uint32(tableIndex), bytecode.MaxMatchValue); err != nil {
		return err
	}
	a.pool = append(a.pool, uint32(len(targets)))
	for _, t := range targets {
		a.pool = append(a.pool, uint32(t))
	}
	a.code[handle.position] = bytecode.Encode(bytecode.SplitMany, uint32(tableIndex))
	delete(a.pendingSplitMany, handle.position)
	return nil
}

// Finish hands off the assembled code and constant pool as an immutable
// Program and resets the Assembler so it can be reused. It returns a
// PatchError if a SplitMany handle was never patched or a Split had
// neither of its fields patched; a Split with only one of its two fields
// patched is not detected.
func (a *Assembler) Finish() (Program, error) {
	if len(a.pendingSplits) > 0 || len(a.pendingSplitMany) > 0 {
		return Program{}, PatchError{Message: "finish called with unresolved patch handles"}
	}

	program := Program{Code: a.code, ConstantPool: a.pool}

	a.code = nil
	a.pool = nil
	a.poolIndexOf = make(map[uint32]PoolIndex)

	return program, nil
}

// NextCodePosition exposes the position the next emitted instruction will
// occupy, for callers (the compiler) that need to record a branch's
// entry point before emitting its body.
func (a *Assembler) NextCodePosition() CodePointer {
	return a.nextCodePosition()
}
