package testutil

import "encoding/binary"

// SPIR-V opcodes used by Module.Bytes.
const (
	opExtension     = 10
	opMemoryModel   = 14
	opEntryPoint    = 15
	opCapability    = 17
	opTypeVoid      = 19
	spirvMagic      = 0x07230203
	modelGLCompute  = 5
	modelFragment   = 4
	modelVertex     = 0
)

// Execution models accepted by EntryPoint.Model.
const (
	ModelVertex    = modelVertex
	ModelFragment  = modelFragment
	ModelGLCompute = modelGLCompute
)

// EntryPoint is an OpEntryPoint to emit.
type EntryPoint struct {
	Model uint32
	Name  string
}

// Module describes a minimal SPIR-V binary: a header followed by the
// declarations the inspector reads. It does not produce a module a driver
// would accept, only one with a well-formed instruction stream.
type Module struct {
	Major        int
	Minor        int
	Generator    uint32
	Capabilities []uint32
	Extensions   []string
	EntryPoints  []EntryPoint
}

// Bytes assembles the module in little-endian word order.
func (m Module) Bytes() []byte {
	var words []uint32
	bound := uint32(2 + len(m.EntryPoints))
	words = append(words,
		spirvMagic,
		uint32(m.Major)<<16|uint32(m.Minor)<<8,
		m.Generator,
		bound,
		0,
	)

	for _, c := range m.Capabilities {
		words = append(words, instruction(opCapability, c)...)
	}
	for _, ext := range m.Extensions {
		words = append(words, instruction(opExtension, literal(ext)...)...)
	}
	words = append(words, instruction(opMemoryModel, 0, 1)...)
	for i, ep := range m.EntryPoints {
		operands := append([]uint32{ep.Model, uint32(2 + i)}, literal(ep.Name)...)
		words = append(words, instruction(opEntryPoint, operands...)...)
	}
	words = append(words, instruction(opTypeVoid, 1)...)

	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func instruction(opcode uint32, operands ...uint32) []uint32 {
	head := uint32(len(operands)+1)<<16 | opcode
	return append([]uint32{head}, operands...)
}

// literal packs s as a nul-terminated string padded to whole words.
func literal(s string) []uint32 {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words
}
