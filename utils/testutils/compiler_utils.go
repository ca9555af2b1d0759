package testutils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crytic/cheatsheet/utils"
	"github.com/stretchr/testify/require"
)

// FakeCompiler describes the behavior of a stand-in compiler executable used to test output parsing without a real
// toolchain installed.
type FakeCompiler struct {
	// VersionOutput is printed when the executable is invoked with --version.
	VersionOutput string

	// Stdout is printed for every other invocation.
	Stdout string

	// Stderr is printed to standard error for every other invocation.
	Stderr string

	// ExitCode is the exit code for every other invocation.
	ExitCode int
}

// FakeCompilerBinary is the location of a fake compiler written by WriteFakeCompiler.
type FakeCompilerBinary struct {
	// Path is the executable path.
	Path string

	// argsPath is the file the executable records its most recent arguments into.
	argsPath string

	// workDirPath is the file the executable records its most recent working directory into.
	workDirPath string
}

// LastArgs returns the arguments of the most recent non-version invocation, one per element.
func (f *FakeCompilerBinary) LastArgs(t *testing.T) []string {
	b, err := os.ReadFile(f.argsPath)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

// LastArgsPath returns the file the executable records its most recent arguments into. It does not exist until the
// first non-version invocation.
func (f *FakeCompilerBinary) LastArgsPath() string {
	return f.argsPath
}

// LastWorkDir returns the working directory of the most recent non-version invocation.
func (f *FakeCompilerBinary) LastWorkDir(t *testing.T) string {
	b, err := os.ReadFile(f.workDirPath)
	require.NoError(t, err)
	return strings.TrimSpace(string(b))
}

// WriteFakeCompiler writes a shell script behaving as described by fake into a temporary directory. Tests using it are
// skipped on Windows.
func WriteFakeCompiler(t *testing.T, name string, fake FakeCompiler) *FakeCompilerBinary {
	if utils.IsWindowsEnvironment() {
		t.Skip("fake compilers are shell scripts")
	}

	dir := t.TempDir()
	binary := &FakeCompilerBinary{
		Path:        filepath.Join(dir, name),
		argsPath:    filepath.Join(dir, name+".args"),
		workDirPath: filepath.Join(dir, name+".cwd"),
	}
	versionPath := filepath.Join(dir, name+".version")
	stdoutPath := filepath.Join(dir, name+".stdout")
	stderrPath := filepath.Join(dir, name+".stderr")
	require.NoError(t, os.WriteFile(versionPath, []byte(fake.VersionOutput+"\n"), 0644))
	require.NoError(t, os.WriteFile(stdoutPath, []byte(fake.Stdout), 0644))
	require.NoError(t, os.WriteFile(stderrPath, []byte(fake.Stderr), 0644))

	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then
  cat '%s'
  exit 0
fi
printf '%%s\n' "$@" > '%s'
pwd > '%s'
cat > /dev/null
cat '%s'
cat '%s' 1>&2
exit %d
`, versionPath, binary.argsPath, binary.workDirPath, stdoutPath, stderrPath, fake.ExitCode)
	require.NoError(t, os.WriteFile(binary.Path, []byte(script), 0755))
	return binary
}

// RequireCompiler skips the test unless the named compiler executable is available on the PATH, and returns its path.
func RequireCompiler(t *testing.T, name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s is not installed", name)
	}
	return path
}
