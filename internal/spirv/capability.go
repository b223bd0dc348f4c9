package spirv

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCapability is returned by ParseCapability for names outside the
// SPIR-V capability grammar.
var ErrUnknownCapability = errors.New("unknown SPIR-V capability")

// Capability is a SPIR-V capability enumerant.
type Capability uint32

// Capability enumerants from the SPIR-V unified grammar.
const (
	CapabilityMatrix                                    Capability = 0
	CapabilityShader                                    Capability = 1
	CapabilityGeometry                                  Capability = 2
	CapabilityTessellation                              Capability = 3
	CapabilityAddresses                                 Capability = 4
	CapabilityLinkage                                   Capability = 5
	CapabilityKernel                                    Capability = 6
	CapabilityVector16                                  Capability = 7
	CapabilityFloat16Buffer                             Capability = 8
	CapabilityFloat16                                   Capability = 9
	CapabilityFloat64                                   Capability = 10
	CapabilityInt64                                     Capability = 11
	CapabilityInt64Atomics                              Capability = 12
	CapabilityImageBasic                                Capability = 13
	CapabilityImageReadWrite                            Capability = 14
	CapabilityImageMipmap                               Capability = 15
	CapabilityPipes                                     Capability = 17
	CapabilityGroups                                    Capability = 18
	CapabilityDeviceEnqueue                             Capability = 19
	CapabilityLiteralSampler                            Capability = 20
	CapabilityAtomicStorage                             Capability = 21
	CapabilityInt16                                     Capability = 22
	CapabilityTessellationPointSize                     Capability = 23
	CapabilityGeometryPointSize                         Capability = 24
	CapabilityImageGatherExtended                       Capability = 25
	CapabilityStorageImageMultisample                   Capability = 27
	CapabilityUniformBufferArrayDynamicIndexing         Capability = 28
	CapabilitySampledImageArrayDynamicIndexing          Capability = 29
	CapabilityStorageBufferArrayDynamicIndexing         Capability = 30
	CapabilityStorageImageArrayDynamicIndexing          Capability = 31
	CapabilityClipDistance                              Capability = 32
	CapabilityCullDistance                              Capability = 33
	CapabilityImageCubeArray                            Capability = 34
	CapabilitySampleRateShading                         Capability = 35
	CapabilityImageRect                                 Capability = 36
	CapabilitySampledRect                               Capability = 37
	CapabilityGenericPointer                            Capability = 38
	CapabilityInt8                                      Capability = 39
	CapabilityInputAttachment                           Capability = 40
	CapabilitySparseResidency                           Capability = 41
	CapabilityMinLod                                    Capability = 42
	CapabilitySampled1D                                 Capability = 43
	CapabilityImage1D                                   Capability = 44
	CapabilitySampledCubeArray                          Capability = 45
	CapabilitySampledBuffer                             Capability = 46
	CapabilityImageBuffer                               Capability = 47
	CapabilityImageMSArray                              Capability = 48
	CapabilityStorageImageExtendedFormats               Capability = 49
	CapabilityImageQuery                                Capability = 50
	CapabilityDerivativeControl                         Capability = 51
	CapabilityInterpolationFunction                     Capability = 52
	CapabilityTransformFeedback                         Capability = 53
	CapabilityGeometryStreams                           Capability = 54
	CapabilityStorageImageReadWithoutFormat             Capability = 55
	CapabilityStorageImageWriteWithoutFormat            Capability = 56
	CapabilityMultiViewport                             Capability = 57
	CapabilitySubgroupDispatch                          Capability = 58
	CapabilityNamedBarrier                              Capability = 59
	CapabilityPipeStorage                               Capability = 60
	CapabilityGroupNonUniform                           Capability = 61
	CapabilityGroupNonUniformVote                       Capability = 62
	CapabilityGroupNonUniformArithmetic                 Capability = 63
	CapabilityGroupNonUniformBallot                     Capability = 64
	CapabilityGroupNonUniformShuffle                    Capability = 65
	CapabilityGroupNonUniformShuffleRelative            Capability = 66
	CapabilityGroupNonUniformClustered                  Capability = 67
	CapabilityGroupNonUniformQuad                       Capability = 68
	CapabilityShaderLayer                               Capability = 69
	CapabilityShaderViewportIndex                       Capability = 70
	CapabilityUniformDecoration                         Capability = 71
	CapabilityFragmentShadingRateKHR                    Capability = 4422
	CapabilitySubgroupBallotKHR                         Capability = 4423
	CapabilityDrawParameters                            Capability = 4427
	CapabilityWorkgroupMemoryExplicitLayoutKHR          Capability = 4428
	CapabilityWorkgroupMemoryExplicitLayout8BitKHR      Capability = 4429
	CapabilityWorkgroupMemoryExplicitLayout16BitKHR     Capability = 4430
	CapabilitySubgroupVoteKHR                           Capability = 4431
	CapabilityStorageBuffer16BitAccess                  Capability = 4433
	CapabilityUniformAndStorageBuffer16BitAccess        Capability = 4434
	CapabilityStoragePushConstant16                     Capability = 4435
	CapabilityStorageInputOutput16                      Capability = 4436
	CapabilityDeviceGroup                               Capability = 4437
	CapabilityMultiView                                 Capability = 4439
	CapabilityVariablePointersStorageBuffer             Capability = 4441
	CapabilityVariablePointers                          Capability = 4442
	CapabilityAtomicStorageOps                          Capability = 4445
	CapabilitySampleMaskPostDepthCoverage               Capability = 4447
	CapabilityStorageBuffer8BitAccess                   Capability = 4448
	CapabilityUniformAndStorageBuffer8BitAccess         Capability = 4449
	CapabilityStoragePushConstant8                      Capability = 4450
	CapabilityDenormPreserve                            Capability = 4464
	CapabilityDenormFlushToZero                         Capability = 4465
	CapabilitySignedZeroInfNanPreserve                  Capability = 4466
	CapabilityRoundingModeRTE                           Capability = 4467
	CapabilityRoundingModeRTZ                           Capability = 4468
	CapabilityRayQueryProvisionalKHR                    Capability = 4471
	CapabilityRayQueryKHR                               Capability = 4472
	CapabilityRayTraversalPrimitiveCullingKHR           Capability = 4478
	CapabilityRayTracingKHR                             Capability = 4479
	CapabilityInt64ImageEXT                             Capability = 5016
	CapabilityShaderClockKHR                            Capability = 5055
	CapabilityMeshShadingNV                             Capability = 5266
	CapabilityMeshShadingEXT                            Capability = 5283
	CapabilityFragmentBarycentricKHR                    Capability = 5284
	CapabilityFragmentDensityEXT                        Capability = 5291
	CapabilityShaderNonUniform                          Capability = 5301
	CapabilityRuntimeDescriptorArray                    Capability = 5302
	CapabilityInputAttachmentArrayDynamicIndexing       Capability = 5303
	CapabilityUniformTexelBufferArrayDynamicIndexing    Capability = 5304
	CapabilityStorageTexelBufferArrayDynamicIndexing    Capability = 5305
	CapabilityUniformBufferArrayNonUniformIndexing      Capability = 5306
	CapabilitySampledImageArrayNonUniformIndexing       Capability = 5307
	CapabilityStorageBufferArrayNonUniformIndexing      Capability = 5308
	CapabilityStorageImageArrayNonUniformIndexing       Capability = 5309
	CapabilityInputAttachmentArrayNonUniformIndexing    Capability = 5310
	CapabilityUniformTexelBufferArrayNonUniformIndexing Capability = 5311
	CapabilityStorageTexelBufferArrayNonUniformIndexing Capability = 5312
	CapabilityRayTracingNV                              Capability = 5340
	CapabilityVulkanMemoryModel                         Capability = 5345
	CapabilityVulkanMemoryModelDeviceScope              Capability = 5346
	CapabilityPhysicalStorageBufferAddresses            Capability = 5347
	CapabilityDemoteToHelperInvocation                  Capability = 5379
	CapabilityDotProductInputAll                        Capability = 6016
	CapabilityDotProductInput4x8Bit                     Capability = 6017
	CapabilityDotProductInput4x8BitPacked               Capability = 6018
	CapabilityDotProduct                                Capability = 6019
	CapabilityCooperativeMatrixKHR                      Capability = 6022
	CapabilityGroupNonUniformRotateKHR                  Capability = 6026
	CapabilityAtomicFloat32AddEXT                       Capability = 6033
	CapabilityAtomicFloat64AddEXT                       Capability = 6034
)

// capabilityNames maps each enumerant to its canonical grammar name.
var capabilityNames = map[Capability]string{
	CapabilityMatrix:                                    "Matrix",
	CapabilityShader:                                    "Shader",
	CapabilityGeometry:                                  "Geometry",
	CapabilityTessellation:                              "Tessellation",
	CapabilityAddresses:                                 "Addresses",
	CapabilityLinkage:                                   "Linkage",
	CapabilityKernel:                                    "Kernel",
	CapabilityVector16:                                  "Vector16",
	CapabilityFloat16Buffer:                             "Float16Buffer",
	CapabilityFloat16:                                   "Float16",
	CapabilityFloat64:                                   "Float64",
	CapabilityInt64:                                     "Int64",
	CapabilityInt64Atomics:                              "Int64Atomics",
	CapabilityImageBasic:                                "ImageBasic",
	CapabilityImageReadWrite:                            "ImageReadWrite",
	CapabilityImageMipmap:                               "ImageMipmap",
	CapabilityPipes:                                     "Pipes",
	CapabilityGroups:                                    "Groups",
	CapabilityDeviceEnqueue:                             "DeviceEnqueue",
	CapabilityLiteralSampler:                            "LiteralSampler",
	CapabilityAtomicStorage:                             "AtomicStorage",
	CapabilityInt16:                                     "Int16",
	CapabilityTessellationPointSize:                     "TessellationPointSize",
	CapabilityGeometryPointSize:                         "GeometryPointSize",
	CapabilityImageGatherExtended:                       "ImageGatherExtended",
	CapabilityStorageImageMultisample:                   "StorageImageMultisample",
	CapabilityUniformBufferArrayDynamicIndexing:         "UniformBufferArrayDynamicIndexing",
	CapabilitySampledImageArrayDynamicIndexing:          "SampledImageArrayDynamicIndexing",
	CapabilityStorageBufferArrayDynamicIndexing:         "StorageBufferArrayDynamicIndexing",
	CapabilityStorageImageArrayDynamicIndexing:          "StorageImageArrayDynamicIndexing",
	CapabilityClipDistance:                              "ClipDistance",
	CapabilityCullDistance:                              "CullDistance",
	CapabilityImageCubeArray:                            "ImageCubeArray",
	CapabilitySampleRateShading:                         "SampleRateShading",
	CapabilityImageRect:                                 "ImageRect",
	CapabilitySampledRect:                               "SampledRect",
	CapabilityGenericPointer:                            "GenericPointer",
	CapabilityInt8:                                      "Int8",
	CapabilityInputAttachment:                           "InputAttachment",
	CapabilitySparseResidency:                           "SparseResidency",
	CapabilityMinLod:                                    "MinLod",
	CapabilitySampled1D:                                 "Sampled1D",
	CapabilityImage1D:                                   "Image1D",
	CapabilitySampledCubeArray:                          "SampledCubeArray",
	CapabilitySampledBuffer:                             "SampledBuffer",
	CapabilityImageBuffer:                               "ImageBuffer",
	CapabilityImageMSArray:                              "ImageMSArray",
	CapabilityStorageImageExtendedFormats:               "StorageImageExtendedFormats",
	CapabilityImageQuery:                                "ImageQuery",
	CapabilityDerivativeControl:                         "DerivativeControl",
	CapabilityInterpolationFunction:                     "InterpolationFunction",
	CapabilityTransformFeedback:                         "TransformFeedback",
	CapabilityGeometryStreams:                           "GeometryStreams",
	CapabilityStorageImageReadWithoutFormat:             "StorageImageReadWithoutFormat",
	CapabilityStorageImageWriteWithoutFormat:            "StorageImageWriteWithoutFormat",
	CapabilityMultiViewport:                             "MultiViewport",
	CapabilitySubgroupDispatch:                          "SubgroupDispatch",
	CapabilityNamedBarrier:                              "NamedBarrier",
	CapabilityPipeStorage:                               "PipeStorage",
	CapabilityGroupNonUniform:                           "GroupNonUniform",
	CapabilityGroupNonUniformVote:                       "GroupNonUniformVote",
	CapabilityGroupNonUniformArithmetic:                 "GroupNonUniformArithmetic",
	CapabilityGroupNonUniformBallot:                     "GroupNonUniformBallot",
	CapabilityGroupNonUniformShuffle:                    "GroupNonUniformShuffle",
	CapabilityGroupNonUniformShuffleRelative:            "GroupNonUniformShuffleRelative",
	CapabilityGroupNonUniformClustered:                  "GroupNonUniformClustered",
	CapabilityGroupNonUniformQuad:                       "GroupNonUniformQuad",
	CapabilityShaderLayer:                               "ShaderLayer",
	CapabilityShaderViewportIndex:                       "ShaderViewportIndex",
	CapabilityUniformDecoration:                         "UniformDecoration",
	CapabilityFragmentShadingRateKHR:                    "FragmentShadingRateKHR",
	CapabilitySubgroupBallotKHR:                         "SubgroupBallotKHR",
	CapabilityDrawParameters:                            "DrawParameters",
	CapabilityWorkgroupMemoryExplicitLayoutKHR:          "WorkgroupMemoryExplicitLayoutKHR",
	CapabilityWorkgroupMemoryExplicitLayout8BitKHR:      "WorkgroupMemoryExplicitLayout8BitAccessKHR",
	CapabilityWorkgroupMemoryExplicitLayout16BitKHR:     "WorkgroupMemoryExplicitLayout16BitAccessKHR",
	CapabilitySubgroupVoteKHR:                           "SubgroupVoteKHR",
	CapabilityStorageBuffer16BitAccess:                  "StorageBuffer16BitAccess",
	CapabilityUniformAndStorageBuffer16BitAccess:        "UniformAndStorageBuffer16BitAccess",
	CapabilityStoragePushConstant16:                     "StoragePushConstant16",
	CapabilityStorageInputOutput16:                      "StorageInputOutput16",
	CapabilityDeviceGroup:                               "DeviceGroup",
	CapabilityMultiView:                                 "MultiView",
	CapabilityVariablePointersStorageBuffer:             "VariablePointersStorageBuffer",
	CapabilityVariablePointers:                          "VariablePointers",
	CapabilityAtomicStorageOps:                          "AtomicStorageOps",
	CapabilitySampleMaskPostDepthCoverage:               "SampleMaskPostDepthCoverage",
	CapabilityStorageBuffer8BitAccess:                   "StorageBuffer8BitAccess",
	CapabilityUniformAndStorageBuffer8BitAccess:         "UniformAndStorageBuffer8BitAccess",
	CapabilityStoragePushConstant8:                      "StoragePushConstant8",
	CapabilityDenormPreserve:                            "DenormPreserve",
	CapabilityDenormFlushToZero:                         "DenormFlushToZero",
	CapabilitySignedZeroInfNanPreserve:                  "SignedZeroInfNanPreserve",
	CapabilityRoundingModeRTE:                           "RoundingModeRTE",
	CapabilityRoundingModeRTZ:                           "RoundingModeRTZ",
	CapabilityRayQueryProvisionalKHR:                    "RayQueryProvisionalKHR",
	CapabilityRayQueryKHR:                               "RayQueryKHR",
	CapabilityRayTraversalPrimitiveCullingKHR:           "RayTraversalPrimitiveCullingKHR",
	CapabilityRayTracingKHR:                             "RayTracingKHR",
	CapabilityInt64ImageEXT:                             "Int64ImageEXT",
	CapabilityShaderClockKHR:                            "ShaderClockKHR",
	CapabilityMeshShadingNV:                             "MeshShadingNV",
	CapabilityMeshShadingEXT:                            "MeshShadingEXT",
	CapabilityFragmentBarycentricKHR:                    "FragmentBarycentricKHR",
	CapabilityFragmentDensityEXT:                        "FragmentDensityEXT",
	CapabilityShaderNonUniform:                          "ShaderNonUniform",
	CapabilityRuntimeDescriptorArray:                    "RuntimeDescriptorArray",
	CapabilityInputAttachmentArrayDynamicIndexing:       "InputAttachmentArrayDynamicIndexing",
	CapabilityUniformTexelBufferArrayDynamicIndexing:    "UniformTexelBufferArrayDynamicIndexing",
	CapabilityStorageTexelBufferArrayDynamicIndexing:    "StorageTexelBufferArrayDynamicIndexing",
	CapabilityUniformBufferArrayNonUniformIndexing:      "UniformBufferArrayNonUniformIndexing",
	CapabilitySampledImageArrayNonUniformIndexing:       "SampledImageArrayNonUniformIndexing",
	CapabilityStorageBufferArrayNonUniformIndexing:      "StorageBufferArrayNonUniformIndexing",
	CapabilityStorageImageArrayNonUniformIndexing:       "StorageImageArrayNonUniformIndexing",
	CapabilityInputAttachmentArrayNonUniformIndexing:    "InputAttachmentArrayNonUniformIndexing",
	CapabilityUniformTexelBufferArrayNonUniformIndexing: "UniformTexelBufferArrayNonUniformIndexing",
	CapabilityStorageTexelBufferArrayNonUniformIndexing: "StorageTexelBufferArrayNonUniformIndexing",
	CapabilityRayTracingNV:                              "RayTracingNV",
	CapabilityVulkanMemoryModel:                         "VulkanMemoryModel",
	CapabilityVulkanMemoryModelDeviceScope:              "VulkanMemoryModelDeviceScope",
	CapabilityPhysicalStorageBufferAddresses:            "PhysicalStorageBufferAddresses",
	CapabilityDemoteToHelperInvocation:                  "DemoteToHelperInvocation",
	CapabilityDotProductInputAll:                        "DotProductInputAll",
	CapabilityDotProductInput4x8Bit:                     "DotProductInput4x8Bit",
	CapabilityDotProductInput4x8BitPacked:               "DotProductInput4x8BitPacked",
	CapabilityDotProduct:                                "DotProduct",
	CapabilityCooperativeMatrixKHR:                      "CooperativeMatrixKHR",
	CapabilityGroupNonUniformRotateKHR:                  "GroupNonUniformRotateKHR",
	CapabilityAtomicFloat32AddEXT:                       "AtomicFloat32AddEXT",
	CapabilityAtomicFloat64AddEXT:                       "AtomicFloat64AddEXT",
}

// capabilityAliases are alternate grammar spellings that resolve to an
// already named enumerant (extension suffixes promoted to core, renamed
// storage capabilities).
var capabilityAliases = map[string]Capability{
	"StorageUniformBufferBlock16":       CapabilityStorageBuffer16BitAccess,
	"StorageUniform16":                  CapabilityUniformAndStorageBuffer16BitAccess,
	"ShaderNonUniformEXT":               CapabilityShaderNonUniform,
	"RuntimeDescriptorArrayEXT":         CapabilityRuntimeDescriptorArray,
	"VulkanMemoryModelKHR":              CapabilityVulkanMemoryModel,
	"VulkanMemoryModelDeviceScopeKHR":   CapabilityVulkanMemoryModelDeviceScope,
	"PhysicalStorageBufferAddressesEXT": CapabilityPhysicalStorageBufferAddresses,
	"DemoteToHelperInvocationEXT":       CapabilityDemoteToHelperInvocation,
	"FragmentBarycentricNV":             CapabilityFragmentBarycentricKHR,
	"ShadingRateNV":                     CapabilityFragmentDensityEXT,
	"DotProductKHR":                     CapabilityDotProduct,
	"DotProductInputAllKHR":             CapabilityDotProductInputAll,
}

var capabilityByName = func() map[string]Capability {
	m := make(map[string]Capability, len(capabilityNames)+len(capabilityAliases))
	for c, name := range capabilityNames {
		m[name] = c
	}
	for alias, c := range capabilityAliases {
		m[alias] = c
	}
	return m
}()

// ParseCapability resolves a grammar name (case-sensitive) to its enumerant.
func ParseCapability(name string) (Capability, error) {
	if c, ok := capabilityByName[name]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCapability, name)
}

// String returns the canonical grammar name, or the decimal enumerant for
// values outside the table.
func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Capability(%d)", uint32(c))
}

// Known reports whether c is a named enumerant.
func (c Capability) Known() bool {
	_, ok := capabilityNames[c]
	return ok
}

// CapabilityNames returns every canonical capability name sorted by enumerant.
func CapabilityNames() []string {
	caps := make([]Capability, 0, len(capabilityNames))
	for c := range capabilityNames {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })

	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = capabilityNames[c]
	}
	return names
}

// CapabilityAliases returns alias -> canonical name pairs.
func CapabilityAliases() map[string]string {
	out := make(map[string]string, len(capabilityAliases))
	for alias, c := range capabilityAliases {
		out[alias] = c.String()
	}
	return out
}
