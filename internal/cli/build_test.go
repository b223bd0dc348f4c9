package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spvbuild/internal/spirv"
	"github.com/roach88/spvbuild/internal/testutil"
	"github.com/roach88/spvbuild/internal/toolchain"
)

const testBackend = "/opt/cargo/lib/librustc_codegen_spirv.so"

// buildEnv is a shader crate in the working directory plus a fake cargo
// that reports a single bare .spv artifact.
type buildEnv struct {
	wd       string
	artifact string
	cargo    *testutil.FakeCargoRun
}

func newBuildEnv(t *testing.T, exitCode int) *buildEnv {
	t.Helper()
	wd, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Chdir(wd)

	out := filepath.Join(wd, "target", "spirv-builder", "spirv-unknown-vulkan1.4", "release")
	require.NoError(t, os.MkdirAll(out, 0o755))
	artifact := filepath.Join(out, "sky_shader.spv")
	module := testutil.Module{
		Major:        1,
		Minor:        4,
		Capabilities: []uint32{uint32(spirv.CapabilityShader)},
		EntryPoints:  []testutil.EntryPoint{{Model: testutil.ModelFragment, Name: "main_fs"}},
	}
	require.NoError(t, os.WriteFile(artifact, module.Bytes(), 0o644))

	msg, err := json.Marshal(map[string]any{
		"reason":     "compiler-artifact",
		"package_id": "sky-shader 0.1.0",
		"filenames":  []string{artifact},
	})
	require.NoError(t, err)

	fc := testutil.FakeCargo{ExitCode: exitCode}
	if exitCode == 0 {
		fc.Stdout = []string{string(msg)}
	} else {
		fc.Stderr = "error[E0425]: cannot find value `uv` in this scope"
	}
	return &buildEnv{
		wd:       wd,
		artifact: artifact,
		cargo:    testutil.WriteFakeCargo(t, t.TempDir(), fc),
	}
}

func (e *buildEnv) args(extra ...string) []string {
	return append([]string{"--cargo", e.cargo.Path, "--codegen-backend", testBackend}, extra...)
}

func (e *buildEnv) rustflags(t *testing.T) []string {
	t.Helper()
	return strings.Split(e.cargo.Env(t)[toolchain.EnvEncodedRustflags], "\x1f")
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spvbuild.yaml"), []byte(content), 0o644))
}

func TestBuild_CopiesToDestination(t *testing.T) {
	e := newBuildEnv(t, 0)
	require.NoError(t, os.Mkdir(filepath.Join(e.wd, "assets"), 0o755))

	out, _, err := execute(t, e.args("--destination", "assets")...)
	require.NoError(t, err)

	copied := filepath.Join(e.wd, "assets", "sky_shader.spv")
	want, err := os.ReadFile(e.artifact)
	require.NoError(t, err)
	got, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Contains(t, out, "Built "+e.artifact)
	assert.Contains(t, out, "Copied to "+copied)
	assert.Contains(t, out, "SPIR-V 1.4")
	assert.Contains(t, out, "Fragment main_fs")
	assert.Equal(t, e.wd, e.cargo.Dir(t))
}

func TestBuild_NoDestinationLeavesArtifact(t *testing.T) {
	e := newBuildEnv(t, 0)

	out, _, err := execute(t, e.args()...)
	require.NoError(t, err)
	assert.Contains(t, out, "Built "+e.artifact)
	assert.NotContains(t, out, "Copied to")
}

func TestBuild_ArgsAndToolchain(t *testing.T) {
	e := newBuildEnv(t, 0)

	_, _, err := execute(t, e.args("--target", "spirv-unknown-vulkan1.2")...)
	require.NoError(t, err)

	args := e.cargo.Args(t)
	require.NotEmpty(t, args)
	assert.Equal(t, "+nightly-2025-06-23", args[0])
	assert.Contains(t, args, "spirv-unknown-vulkan1.2")
	assert.Equal(t, "nightly-2025-06-23", e.cargo.Env(t)[toolchain.EnvToolchain])
}

func TestBuild_ConfigFileCapabilities(t *testing.T) {
	e := newBuildEnv(t, 0)
	writeConfig(t, e.wd, "capabilities: [Int8, Int64]\nextensions: [SPV_KHR_shader_clock]\n")

	_, _, err := execute(t, e.args()...)
	require.NoError(t, err)

	assert.Contains(t, e.rustflags(t), "-Ctarget-feature=+Int8,+Int64,+ext:SPV_KHR_shader_clock")
}

func TestBuild_FlagReplacesConfigCapabilities(t *testing.T) {
	e := newBuildEnv(t, 0)
	writeConfig(t, e.wd, "capabilities: [Int8, Int64]\n")

	_, _, err := execute(t, e.args("-c", "Float64")...)
	require.NoError(t, err)

	assert.Contains(t, e.rustflags(t), "-Ctarget-feature=+Float64")
}

func TestBuild_DebugAddsAbortStrategy(t *testing.T) {
	e := newBuildEnv(t, 0)

	_, _, err := execute(t, e.args("--debug")...)
	require.NoError(t, err)

	flags := e.rustflags(t)
	assert.Contains(t, flags, "-Ctarget-feature=+ext:SPV_KHR_non_semantic_info")
	assert.Contains(t, flags, "-Cllvm-args=--abort-strategy=debug-printf+inputs+backtrace")
}

func TestBuild_UnknownCapabilityDropped(t *testing.T) {
	e := newBuildEnv(t, 0)

	out, _, err := execute(t, e.args("-c", "Int8", "-c", "Bogus")...)
	require.NoError(t, err)
	assert.Contains(t, e.rustflags(t), "-Ctarget-feature=+Int8")
	assert.Contains(t, out, "dropped capabilities: [Bogus]")
}

func TestBuild_UnknownCapabilityFail(t *testing.T) {
	e := newBuildEnv(t, 0)

	_, errOut, err := execute(t, e.args("-c", "Bogus", "--unknown-capability", "fail")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, errOut, "Error [E101]")
	assert.False(t, e.cargo.Invoked())
}

func TestBuild_MissingDestination(t *testing.T) {
	e := newBuildEnv(t, 0)

	_, errOut, err := execute(t, e.args("--destination", "missing")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E106]")
	assert.NoDirExists(t, filepath.Join(e.wd, "missing"))
}

func TestBuild_CargoFailure(t *testing.T) {
	e := newBuildEnv(t, 101)

	_, errOut, err := execute(t, e.args()...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, toolchain.ErrBuildFailed)
	assert.Contains(t, errOut, "cannot find value `uv`")
	assert.Contains(t, errOut, "Error [E103]")
}

func TestBuild_JSONOutput(t *testing.T) {
	e := newBuildEnv(t, 0)

	out, _, err := execute(t, e.args("--format", "json")...)
	require.NoError(t, err)

	var resp struct {
		Status  string         `json:"status"`
		BuildID string         `json:"build_id"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.BuildID)
	assert.Equal(t, resp.BuildID, resp.Data["id"])
	assert.Equal(t, e.artifact, resp.Data["artifact"])
	assert.Equal(t, "silent-exit", resp.Data["panic_strategy"])
}

func TestBuild_JSONError(t *testing.T) {
	e := newBuildEnv(t, 101)

	out, _, err := execute(t, e.args("--format", "json")...)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBuildFailed, resp.Error.Code)
}

func TestBuild_InvalidConfig(t *testing.T) {
	e := newBuildEnv(t, 0)
	writeConfig(t, e.wd, "capabilites: [Int8]\n")

	_, errOut, err := execute(t, e.args()...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E002]")
	assert.Contains(t, errOut, "capabilites")
	assert.False(t, e.cargo.Invoked())
}

func TestBuild_RecordsHistory(t *testing.T) {
	e := newBuildEnv(t, 0)
	db := filepath.Join(t.TempDir(), "history.db")

	_, _, err := execute(t, e.args("--history", db)...)
	require.NoError(t, err)
	out, _, err := execute(t, e.args("--history", db)...)
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged since the last build")

	out, _, err = execute(t, "history", "--db", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SEQ"))
	assert.True(t, strings.HasPrefix(lines[1], "2 "))
	assert.Contains(t, lines[1], "ok")
}

func TestBuild_HistoryShowByID(t *testing.T) {
	e := newBuildEnv(t, 0)
	db := filepath.Join(t.TempDir(), "history.db")

	out, _, err := execute(t, e.args("--history", db, "--format", "json")...)
	require.NoError(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.BuildID)

	out, _, err = execute(t, "history", "--db", db, "--id", resp.BuildID)
	require.NoError(t, err)
	assert.Contains(t, out, resp.BuildID)
	assert.Contains(t, out, "silent-exit")
	assert.Contains(t, out, e.artifact)
}

func TestBuild_HistoryInNewDirectory(t *testing.T) {
	e := newBuildEnv(t, 0)
	db := filepath.Join(".spvbuild", "history.db")

	out, _, err := execute(t, e.args("--debug", "--history", db)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Built "+e.artifact)
	assert.FileExists(t, filepath.Join(e.wd, ".spvbuild", "history.db"))

	out, _, err = execute(t, "history", "--db", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "ok")
}
