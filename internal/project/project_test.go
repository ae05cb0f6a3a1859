package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_Paths(t *testing.T) {
	l := NewLayout("/work/demo")

	assert.Equal(t, "/work/demo/app/app.py", l.AppSource())
	assert.Equal(t, "/work/demo/.vscode/tasks.json", l.TasksFile())
	assert.Equal(t, "/work/demo/stm32/arm_gcc_compiler", l.CompilerDir())
	assert.Equal(t, "/work/demo/stm32/micropython/ports/stm32", l.PortDir())
	assert.Equal(t, "/work/demo/stm32/micropython/ports/stm32/modules/app", l.AppModuleDir())
	assert.Equal(t, "/work/demo/stm32/micropython/ports/stm32/Makefile", l.Makefile())
	assert.Equal(t,
		"/work/demo/stm32/micropython/ports/stm32/boards/NUCLEO_H743ZI/manifest.py",
		l.BoardManifest("NUCLEO_H743ZI"))
	assert.Equal(t,
		"/work/demo/stm32/arm_gcc_compiler/gcc-arm-none-eabi-10.3-2021.07/bin/arm-none-eabi-",
		l.CrossCompilePrefix("gcc-arm-none-eabi-10.3-2021.07"))
	assert.Equal(t, "build-NUCLEO_H743ZI/firmware.hex", l.FirmwareImage("NUCLEO_H743ZI"))
	assert.Equal(t, "/work/demo/stm32/mpy-ops", l.OrchestratorCopy())
}

func TestCreateTree(t *testing.T) {
	l := NewLayout(t.TempDir())

	require.NoError(t, CreateTree(l))

	assert.DirExists(t, l.CompilerDir())
	assert.DirExists(t, l.AppDir())
	assert.DirExists(t, l.VSCodeDir())
}

func TestWriteAppStub(t *testing.T) {
	l := NewLayout(t.TempDir())

	require.NoError(t, WriteAppStub(l))

	data, err := os.ReadFile(l.AppSource())
	require.NoError(t, err)
	assert.Contains(t, string(data), "import pyb")
	assert.Contains(t, string(data), "def run():")
}

func TestRemoveAllEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "stm32", "micropython"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	require.NoError(t, RemoveAllEntries(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveAllEntries_MissingDir(t *testing.T) {
	assert.Error(t, RemoveAllEntries(filepath.Join(t.TempDir(), "missing")))
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "app.py"), []byte("import pyb\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib", "util.py"), []byte("pass\n"), 0644))

	dst := filepath.Join(t.TempDir(), "modules", "app")
	require.NoError(t, CopyTree(src, dst))

	assert.FileExists(t, filepath.Join(dst, "app.py"))
	assert.FileExists(t, filepath.Join(dst, "lib", "util.py"))

	data, err := os.ReadFile(filepath.Join(dst, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, "import pyb\n", string(data))
}
