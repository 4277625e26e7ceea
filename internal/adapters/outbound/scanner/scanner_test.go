package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/armshift/armshift/internal/adapters/outbound/scanner"
	"github.com/armshift/armshift/internal/domain"
	"github.com/armshift/armshift/internal/domain/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newScanner() *scanner.TreeScanner {
	return scanner.New(catalog.Default(), hclog.NewNullLogger())
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const simdSource = `#include <xmmintrin.h>

void add(float* a, float* b, float* out) {
    __m128 va = _mm_load_ps(a);
    __m128 vb = _mm_load_ps(b);
    _mm_store_ps(out, _mm_add_ps(va, vb));
}
`

const platformSource = `#ifdef _M_X64
#include <windows.h>
void detect(SYSTEM_INFO* info) {
    GetSystemInfo(info);
}
#endif
`

func TestTreeScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "simd.cpp", simdSource)
	writeFile(t, dir, "platform.c", platformSource)
	writeFile(t, dir, "notes.txt", "_mm_add_ps everywhere")

	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(report.Root))
	assert.Equal(t, 2, report.TotalFiles, "notes.txt has no scannable extension")
	assert.Equal(t, 2, report.ScannedFiles)
	assert.False(t, report.ScannedAt.IsZero())

	// simd.cpp: include matched by two overlapping patterns, four
	// intrinsic calls. platform.c: one arch guard, two platform APIs.
	require.Len(t, report.Issues, 9)

	first := report.Issues[0]
	assert.Equal(t, "platform.c", first.File)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, domain.CategoryArchitectureCheck, first.Category)
	assert.Equal(t, domain.SeverityMedium, first.Severity)

	byCategory := report.IssuesByCategory()
	assert.Equal(t, 6, byCategory[domain.CategoryInstructionIntrinsic])
	assert.Equal(t, 1, byCategory[domain.CategoryArchitectureCheck])
	assert.Equal(t, 2, byCategory[domain.CategoryPlatformSpecificAPI])
}

func TestTreeScanner_IssuesSortedByFileAndLine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zz.cpp", "_mm_add_ps(a, b);\n")
	writeFile(t, dir, "aa.cpp", "int x;\n_mm_sub_ps(a, b);\n")

	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, report.Issues, 2)

	assert.Equal(t, "aa.cpp", report.Issues[0].File)
	assert.Equal(t, 2, report.Issues[0].Line)
	assert.Equal(t, "zz.cpp", report.Issues[1].File)
	assert.Equal(t, 1, report.Issues[1].Line)
}

func TestTreeScanner_SkipsIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.cpp", "int main() { return 0; }\n")
	writeFile(t, dir, "node_modules/pkg/simd.c", simdSource)
	writeFile(t, dir, "__pycache__/cached.py", "import ctypes\n")
	writeFile(t, dir, "build/out.cpp", simdSource)

	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalFiles)
	assert.Empty(t, report.Issues)
}

func TestTreeScanner_DetectsBuildSystems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "CMakeLists.txt", "cmake_minimum_required(VERSION 3.10)\n")
	writeFile(t, dir, "Makefile", "all:\n\t$(CC) main.c\n")
	writeFile(t, dir, "rules.mk", "CFLAGS += -O2\n")
	writeFile(t, dir, "app.pro", "TEMPLATE = app\n")
	writeFile(t, dir, "build.gradle", "plugins { id 'java' }\n")
	writeFile(t, dir, "pom.xml", "<project/>\n")
	writeFile(t, dir, "package.json", "{}\n")
	writeFile(t, dir, "Cargo.toml", "[package]\nname = \"demo\"\n")
	writeFile(t, dir, "go.mod", "module example.com/demo\n\ngo 1.22\n")

	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)

	got := map[string]string{}
	for _, bs := range report.BuildSystems {
		got[bs.File] = bs.System
		assert.True(t, bs.NeedsReview)
	}
	assert.Equal(t, map[string]string{
		"CMakeLists.txt": domain.BuildCMake,
		"Makefile":       domain.BuildMake,
		"rules.mk":       domain.BuildMake,
		"app.pro":        domain.BuildQMake,
		"build.gradle":   domain.BuildGradle,
		"pom.xml":        domain.BuildMaven,
		"package.json":   domain.BuildNPM,
		"Cargo.toml":     domain.BuildCargo,
		"go.mod":         domain.BuildGoModules,
	}, got)
}

func TestTreeScanner_ManifestsInsideIgnoredDirsStayHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{}\n")
	writeFile(t, dir, "node_modules/dep/package.json", "{}\n")

	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)

	require.Len(t, report.BuildSystems, 1)
	assert.Equal(t, "package.json", report.BuildSystems[0].File)
}

func TestTreeScanner_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.cpp", simdSource)
	writeFile(t, dir, "b.cpp", platformSource)
	writeFile(t, dir, "c.cpp", simdSource)

	s := newScanner()
	first, err := s.Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)

	serial := domain.DefaultConfig()
	serial.Workers = 1
	second, err := s.Scan(context.Background(), dir, serial)
	require.NoError(t, err)

	assert.Equal(t, first.Issues, second.Issues)
}

func TestTreeScanner_UnreadableFileWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.cpp", simdSource)
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, "broken.cpp")))

	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalFiles)
	assert.Equal(t, 1, report.ScannedFiles)
	assert.NotEmpty(t, report.Issues)
}

func TestTreeScanner_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "simd.cpp", simdSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newScanner().Scan(ctx, dir, domain.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTreeScanner_CleanTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.py", "print('hello')\n")

	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, report.Issues)
	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, "No obvious x86-specific code detected", report.Recommendations[0])
}

func TestTreeScanner_Recommendations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "simd.cpp", simdSource)
	writeFile(t, dir, "CMakeLists.txt", "cmake_minimum_required(VERSION 3.10)\n")
	writeFile(t, dir, "requirements.txt", "numpy==1.24.0\n")

	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)

	assert.Contains(t, report.Recommendations, "Found 6 potential compatibility issues")
	assert.Contains(t, report.Recommendations, "6 high-severity issues require immediate attention")
	assert.Contains(t, report.Recommendations, "CMake detected - review CMakeLists.txt for architecture-specific settings")
	assert.Contains(t, report.Recommendations, "1 dependencies found - verify ARM compatibility")
}
