package spirv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Magic is the first word of every SPIR-V module.
const Magic uint32 = 0x07230203

// headerWords is the fixed header size: magic, version, generator, bound, schema.
const headerWords = 5

const (
	opExtension  = 10
	opCapability = 17
	opEntryPoint = 15
)

// ErrNotSPIRV is returned when the input does not start with a SPIR-V header.
var ErrNotSPIRV = errors.New("not a SPIR-V module")

// ExecutionModel is the execution model operand of OpEntryPoint.
type ExecutionModel uint32

var executionModelNames = map[ExecutionModel]string{
	0:    "Vertex",
	1:    "TessellationControl",
	2:    "TessellationEvaluation",
	3:    "Geometry",
	4:    "Fragment",
	5:    "GLCompute",
	6:    "Kernel",
	5267: "TaskNV",
	5268: "MeshNV",
	5313: "RayGenerationKHR",
	5314: "IntersectionKHR",
	5315: "AnyHitKHR",
	5316: "ClosestHitKHR",
	5317: "MissKHR",
	5318: "CallableKHR",
	5364: "TaskEXT",
	5365: "MeshEXT",
}

func (m ExecutionModel) String() string {
	if name, ok := executionModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ExecutionModel(%d)", uint32(m))
}

// EntryPoint is one OpEntryPoint declaration.
type EntryPoint struct {
	Model ExecutionModel `json:"-"`
	Name  string         `json:"name"`
}

// ModuleInfo summarizes a module's header and declarations.
type ModuleInfo struct {
	Major        int          `json:"version_major"`
	Minor        int          `json:"version_minor"`
	Generator    uint32       `json:"generator"`
	Bound        uint32       `json:"bound"`
	Capabilities []Capability `json:"-"`
	Extensions   []string     `json:"extensions,omitempty"`
	EntryPoints  []EntryPoint `json:"entry_points,omitempty"`
}

// Version returns the module version as "major.minor".
func (m *ModuleInfo) Version() string {
	return fmt.Sprintf("%d.%d", m.Major, m.Minor)
}

// CapabilityNames returns the declared capabilities as grammar names.
func (m *ModuleInfo) CapabilityNames() []string {
	names := make([]string, len(m.Capabilities))
	for i, c := range m.Capabilities {
		names[i] = c.String()
	}
	return names
}

// Inspect decodes the header and the capability, extension and entry point
// declarations of a little-endian SPIR-V binary. Other instructions are
// skipped, not validated.
func Inspect(data []byte) (*ModuleInfo, error) {
	if len(data) < headerWords*4 {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrNotSPIRV, len(data))
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of 4", ErrNotSPIRV, len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != Magic {
		return nil, fmt.Errorf("%w: magic 0x%08X", ErrNotSPIRV, magic)
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	info := &ModuleInfo{
		Major:     int((version >> 16) & 0xFF),
		Minor:     int((version >> 8) & 0xFF),
		Generator: binary.LittleEndian.Uint32(data[8:12]),
		Bound:     binary.LittleEndian.Uint32(data[12:16]),
	}

	offset := headerWords * 4
	for offset < len(data) {
		word := binary.LittleEndian.Uint32(data[offset:])
		opcode := word & 0xFFFF
		wordCount := int(word >> 16)
		if wordCount == 0 || offset+wordCount*4 > len(data) {
			return nil, fmt.Errorf("invalid word count %d at offset 0x%X", wordCount, offset)
		}
		operands := data[offset+4 : offset+wordCount*4]

		switch opcode {
		case opCapability:
			if len(operands) < 4 {
				return nil, fmt.Errorf("truncated OpCapability at offset 0x%X", offset)
			}
			info.Capabilities = append(info.Capabilities, Capability(binary.LittleEndian.Uint32(operands)))
		case opExtension:
			info.Extensions = append(info.Extensions, literalString(operands))
		case opEntryPoint:
			if len(operands) < 12 {
				return nil, fmt.Errorf("truncated OpEntryPoint at offset 0x%X", offset)
			}
			info.EntryPoints = append(info.EntryPoints, EntryPoint{
				Model: ExecutionModel(binary.LittleEndian.Uint32(operands)),
				Name:  literalString(operands[8:]),
			})
		}
		offset += wordCount * 4
	}

	return info, nil
}

// literalString reads a nul-terminated UTF-8 literal packed into words.
func literalString(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c == 0 {
			break
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
