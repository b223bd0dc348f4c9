package invocation

import "strings"

// PanicKind selects how an in-shader panic becomes observable.
type PanicKind int

const (
	// PanicSilentExit terminates the invocation without output.
	PanicSilentExit PanicKind = iota
	// PanicDebugPrintfThenExit prints diagnostics through debugPrintf
	// before terminating.
	PanicDebugPrintfThenExit
)

// PanicStrategy is the panic-handling policy attached to a descriptor.
type PanicStrategy struct {
	Kind           PanicKind
	PrintInputs    bool
	PrintBacktrace bool
}

// SilentExit is the strategy used when --debug is not set.
func SilentExit() PanicStrategy {
	return PanicStrategy{Kind: PanicSilentExit}
}

// DebugPrintfThenExit is the instrumented strategy.
func DebugPrintfThenExit(printInputs, printBacktrace bool) PanicStrategy {
	return PanicStrategy{
		Kind:           PanicDebugPrintfThenExit,
		PrintInputs:    printInputs,
		PrintBacktrace: printBacktrace,
	}
}

// PanicStrategyFor returns the strategy for the --debug flag: inputs and
// backtrace are both printed when debugging.
func PanicStrategyFor(debug bool) PanicStrategy {
	if debug {
		return DebugPrintfThenExit(true, true)
	}
	return SilentExit()
}

// AbortStrategy returns the codegen backend's --abort-strategy value, or ""
// when the backend default (silent exit) applies.
func (p PanicStrategy) AbortStrategy() string {
	if p.Kind != PanicDebugPrintfThenExit {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("debug-printf")
	if p.PrintInputs {
		sb.WriteString("+inputs")
	}
	if p.PrintBacktrace {
		sb.WriteString("+backtrace")
	}
	return sb.String()
}

// RequiresNonSemanticInfo reports whether the strategy needs the
// SPV_KHR_non_semantic_info extension for debugPrintf.
func (p PanicStrategy) RequiresNonSemanticInfo() bool {
	return p.Kind == PanicDebugPrintfThenExit
}

// String names the strategy for logs, reports and history rows.
func (p PanicStrategy) String() string {
	if s := p.AbortStrategy(); s != "" {
		return s
	}
	return "silent-exit"
}
