package scanner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armshift/armshift/internal/domain"
)

func scanDeps(t *testing.T, dir string) []domain.DependencyRecord {
	t.Helper()
	report, err := newScanner().Scan(context.Background(), dir, domain.DefaultConfig())
	require.NoError(t, err)
	return report.Dependencies
}

func TestScanDependencies_PackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "dependencies": {"react": "^18.0.0", "left-pad": "1.3.0"},
  "devDependencies": {"jest": "^29.0.0", "react": "^18.2.0"}
}`)

	deps := scanDeps(t, dir)
	require.Len(t, deps, 3)

	assert.Equal(t, "jest", deps[0].Name)
	assert.Equal(t, "left-pad", deps[1].Name)
	assert.Equal(t, "react", deps[2].Name)
	assert.Equal(t, "^18.2.0", deps[2].Version, "devDependencies version wins on collision")
	for _, d := range deps {
		assert.Equal(t, domain.DependencyTypeNPM, d.Type)
		assert.Equal(t, domain.ArmCompatUnknown, d.ArmCompatible)
	}
}

func TestScanDependencies_Requirements(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", `# ML deps
numpy==1.24.0
torch>=2.0.0

flask
`)

	deps := scanDeps(t, dir)
	require.Len(t, deps, 3)

	assert.Equal(t, domain.DependencyRecord{Name: "numpy", Version: "1.24.0", Type: domain.DependencyTypePython, ArmCompatible: domain.ArmCompatUnknown}, deps[0])
	assert.Equal(t, "torch", deps[1].Name)
	assert.Equal(t, "2.0.0", deps[1].Version)
	assert.Equal(t, "flask", deps[2].Name)
	assert.Equal(t, "*", deps[2].Version, "unpinned requirement records a wildcard")
}

func TestScanDependencies_CargoToml(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", `[package]
name = "demo"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
rand = "0.8"
local-thing = { path = "../local" }

[dev-dependencies]
criterion = "0.5"
`)

	deps := scanDeps(t, dir)
	require.Len(t, deps, 3, "dev-dependencies table is not read")

	assert.Equal(t, "serde", deps[0].Name)
	assert.Equal(t, "1.0", deps[0].Version)
	assert.Equal(t, "rand", deps[1].Name)
	assert.Equal(t, "0.8", deps[1].Version)
	assert.Equal(t, "local-thing", deps[2].Name)
	assert.Equal(t, "*", deps[2].Version)
	for _, d := range deps {
		assert.Equal(t, domain.DependencyTypeCargo, d.Type)
	}
}

func TestScanDependencies_GoMod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", `module example.com/demo

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	// torn between two versions
	github.com/stretchr/testify v1.9.0 // indirect
)
`)

	deps := scanDeps(t, dir)
	require.Len(t, deps, 2)

	assert.Equal(t, "github.com/spf13/cobra", deps[0].Name)
	assert.Equal(t, "v1.8.0", deps[0].Version)
	assert.Equal(t, "github.com/stretchr/testify", deps[1].Name)
	assert.Equal(t, "v1.9.0", deps[1].Version)
	for _, d := range deps {
		assert.Equal(t, domain.DependencyTypeGo, d.Type)
	}
}

func TestScanDependencies_MalformedPackageJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{not json")
	writeFile(t, dir, "requirements.txt", "numpy==1.24.0\n")

	deps := scanDeps(t, dir)
	require.Len(t, deps, 1, "malformed manifest contributes nothing")
	assert.Equal(t, "numpy", deps[0].Name)
}

func TestScanDependencies_ManifestOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies": {"react": "^18.0.0"}}`)
	writeFile(t, dir, "requirements.txt", "numpy==1.24.0\n")
	writeFile(t, dir, "Cargo.toml", "[dependencies]\nserde = \"1.0\"\n")
	writeFile(t, dir, "go.mod", "module example.com/demo\n\nrequire (\n\tgithub.com/spf13/cobra v1.8.0\n)\n")

	deps := scanDeps(t, dir)
	require.Len(t, deps, 4)

	types := make([]string, len(deps))
	for i, d := range deps {
		types[i] = d.Type
	}
	assert.Equal(t, []string{
		domain.DependencyTypeNPM,
		domain.DependencyTypePython,
		domain.DependencyTypeCargo,
		domain.DependencyTypeGo,
	}, types)
}
