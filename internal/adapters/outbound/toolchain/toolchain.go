// Package toolchain drives the project's own build system for cross targets.
// It is a collaborator of the migration pipeline, not part of it: armshift
// rewrites sources, the toolchain proves they still build for ARM.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Target describes one cross-compilation destination.
type Target struct {
	OS    string
	Arch  string
	CC    string
	CXX   string
	Flags []string
}

var targets = map[string]Target{
	"linux/amd64":   {OS: "linux", Arch: "amd64", CC: "gcc", CXX: "g++", Flags: []string{"-m64"}},
	"linux/arm64":   {OS: "linux", Arch: "arm64", CC: "aarch64-linux-gnu-gcc", CXX: "aarch64-linux-gnu-g++", Flags: []string{"-march=armv8-a"}},
	"windows/amd64": {OS: "windows", Arch: "amd64", CC: "x86_64-w64-mingw32-gcc", CXX: "x86_64-w64-mingw32-g++", Flags: []string{"-m64"}},
	"windows/arm64": {OS: "windows", Arch: "arm64", CC: "aarch64-w64-mingw32-gcc", CXX: "aarch64-w64-mingw32-g++"},
	"darwin/amd64":  {OS: "darwin", Arch: "amd64", CC: "clang", CXX: "clang++", Flags: []string{"-arch", "x86_64"}},
	"darwin/arm64":  {OS: "darwin", Arch: "arm64", CC: "clang", CXX: "clang++", Flags: []string{"-arch", "arm64"}},
}

// Targets returns the supported target names, sorted.
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildSystem identifies how a project is built.
type BuildSystem string

const (
	BuildSystemGo    BuildSystem = "go"
	BuildSystemCMake BuildSystem = "cmake"
	BuildSystemMake  BuildSystem = "make"
	BuildSystemCargo BuildSystem = "cargo"
	BuildSystemNPM   BuildSystem = "npm"
)

var buildMarkers = []struct {
	file   string
	system BuildSystem
}{
	{"go.mod", BuildSystemGo},
	{"CMakeLists.txt", BuildSystemCMake},
	{"Makefile", BuildSystemMake},
	{"Cargo.toml", BuildSystemCargo},
	{"package.json", BuildSystemNPM},
}

// DetectBuildSystem picks the first recognized build marker in root.
func DetectBuildSystem(root string) (BuildSystem, error) {
	for _, m := range buildMarkers {
		if _, err := os.Stat(filepath.Join(root, m.file)); err == nil {
			return m.system, nil
		}
	}
	return "", fmt.Errorf("no supported build system found in %s", root)
}

// OutputName is the binary name for a target build: the project directory
// name with the target appended, slashes flattened to dashes.
func OutputName(root, target string) string {
	name := filepath.Base(root) + "-" + strings.ReplaceAll(target, "/", "-")
	if strings.HasPrefix(target, "windows/") {
		name += ".exe"
	}
	return name
}

// Result reports one finished target build.
type Result struct {
	Target      string      `json:"target"`
	BuildSystem BuildSystem `json:"build_system"`
	Output      string      `json:"output"`
}

// Builder cross-compiles a project for one target at a time.
type Builder struct {
	logger hclog.Logger
}

func New(logger hclog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build detects the project's build system and drives it for the named
// target. The Output field holds the produced binary name for go builds
// and the build directory for cmake; make, cargo and npm build in place.
func (b *Builder) Build(ctx context.Context, root, target string) (*Result, error) {
	t, ok := targets[target]
	if !ok {
		return nil, fmt.Errorf("unsupported target %q (supported: %s)", target, strings.Join(Targets(), ", "))
	}

	system, err := DetectBuildSystem(root)
	if err != nil {
		return nil, err
	}

	b.logger.Info("building", "target", target, "system", string(system))
	result := &Result{Target: target, BuildSystem: system}

	switch system {
	case BuildSystemGo:
		result.Output, err = b.buildGo(ctx, root, target, t)
	case BuildSystemCMake:
		result.Output, err = b.buildCMake(ctx, root, target, t)
	case BuildSystemMake:
		err = b.buildMake(ctx, root, target, t)
	case BuildSystemCargo:
		err = b.buildCargo(ctx, root, target)
	case BuildSystemNPM:
		err = b.buildNPM(ctx, root, t)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ValidateToolchain checks that the target's C and C++ compilers answer
// --version. Go cross-builds without cgo never reach this.
func (b *Builder) ValidateToolchain(ctx context.Context, target string) error {
	t, ok := targets[target]
	if !ok {
		return fmt.Errorf("unsupported target %q (supported: %s)", target, strings.Join(Targets(), ", "))
	}

	var missing []string
	for _, tool := range []string{t.CC, t.CXX} {
		if err := exec.CommandContext(ctx, tool, "--version").Run(); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("toolchain for %s is missing %s; install the cross-compilation toolchain", target, strings.Join(missing, ", "))
	}
	return nil
}

func (b *Builder) buildGo(ctx context.Context, root, target string, t Target) (string, error) {
	env := []string{"GOOS=" + t.OS, "GOARCH=" + t.Arch}
	if usesCgo(root) {
		if err := b.ValidateToolchain(ctx, target); err != nil {
			return "", err
		}
		env = append(env, "CGO_ENABLED=1", "CC="+t.CC, "CXX="+t.CXX)
	} else {
		env = append(env, "CGO_ENABLED=0")
	}

	out := OutputName(root, target)
	if err := b.run(ctx, root, env, "go", "build", "-o", out, "-ldflags", "-s -w", "."); err != nil {
		return "", err
	}
	return out, nil
}

func (b *Builder) buildCMake(ctx context.Context, root, target string, t Target) (string, error) {
	if err := b.ValidateToolchain(ctx, target); err != nil {
		return "", err
	}

	buildDir := filepath.Join(root, "build-"+strings.ReplaceAll(target, "/", "-"))
	args := []string{
		"-B", buildDir,
		"-S", root,
		"-DCMAKE_SYSTEM_NAME=" + cmakeSystemName(t.OS),
		"-DCMAKE_SYSTEM_PROCESSOR=" + t.Arch,
		"-DCMAKE_C_COMPILER=" + t.CC,
		"-DCMAKE_CXX_COMPILER=" + t.CXX,
	}
	if len(t.Flags) > 0 {
		flags := strings.Join(t.Flags, " ")
		args = append(args, "-DCMAKE_C_FLAGS="+flags, "-DCMAKE_CXX_FLAGS="+flags)
	}

	if err := b.run(ctx, root, nil, "cmake", args...); err != nil {
		return "", fmt.Errorf("cmake configure: %w", err)
	}
	if err := b.run(ctx, root, nil, "cmake", "--build", buildDir, "--parallel"); err != nil {
		return "", fmt.Errorf("cmake build: %w", err)
	}
	return buildDir, nil
}

func (b *Builder) buildMake(ctx context.Context, root, target string, t Target) error {
	if err := b.ValidateToolchain(ctx, target); err != nil {
		return err
	}

	flags := strings.Join(t.Flags, " ")
	env := []string{"CC=" + t.CC, "CXX=" + t.CXX, "CFLAGS=" + flags, "CXXFLAGS=" + flags}

	// A stale x86 object tree must not leak into the cross build.
	_ = b.run(ctx, root, env, "make", "clean")
	return b.run(ctx, root, env, "make", "TARGET="+target)
}

func (b *Builder) buildCargo(ctx context.Context, root, target string) error {
	triple, ok := cargoTriples[target]
	if !ok {
		return fmt.Errorf("no Rust target mapping for %s", target)
	}

	// Best effort; cargo reports the real error if the target is missing.
	_ = b.run(ctx, root, nil, "rustup", "target", "add", triple)
	return b.run(ctx, root, nil, "cargo", "build", "--release", "--target", triple)
}

func (b *Builder) buildNPM(ctx context.Context, root string, t Target) error {
	env := []string{
		"npm_config_target_platform=" + t.OS,
		"npm_config_target_arch=" + t.Arch,
		"npm_config_build_from_source=true",
	}
	return b.run(ctx, root, env, "npm", "rebuild")
}

func (b *Builder) run(ctx context.Context, dir string, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	b.logger.Debug("running", "cmd", name, "args", strings.Join(args, " "))
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

var cargoTriples = map[string]string{
	"linux/amd64":   "x86_64-unknown-linux-gnu",
	"linux/arm64":   "aarch64-unknown-linux-gnu",
	"windows/amd64": "x86_64-pc-windows-gnu",
	"windows/arm64": "aarch64-pc-windows-msvc",
	"darwin/amd64":  "x86_64-apple-darwin",
	"darwin/arm64":  "aarch64-apple-darwin",
}

func cmakeSystemName(osName string) string {
	switch osName {
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	case "darwin":
		return "Darwin"
	}
	return osName
}

// usesCgo reports whether any Go source under root imports "C". Vendored
// and hidden directories are not special-cased; a false positive only
// makes the build ask for a C toolchain it would otherwise skip.
func usesCgo(root string) bool {
	found := false
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || found {
			return filepath.SkipAll
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if strings.Contains(string(data), `import "C"`) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
