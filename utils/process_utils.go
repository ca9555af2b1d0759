package utils

import (
	"bytes"
	"io"
	"os/exec"
	"runtime"
	"sync"
)

// RunCommandWithOutputAndError runs a command to completion and returns its stdout, its stderr and both streams
// interleaved in the order they were written. The error is the one returned by exec.Cmd.Run, so a non-zero exit
// status is reported as an *exec.ExitError.
func RunCommandWithOutputAndError(command *exec.Cmd) ([]byte, []byte, []byte, error) {
	var stdout, stderr, combined bytes.Buffer
	combinedWriter := &lockedWriter{writer: &combined}

	command.Stdout = io.MultiWriter(&stdout, combinedWriter)
	command.Stderr = io.MultiWriter(&stderr, combinedWriter)
	err := command.Run()
	return stdout.Bytes(), stderr.Bytes(), combined.Bytes(), err
}

// IsWindowsEnvironment returns a boolean indicating whether the current execution environment is a Windows platform.
func IsWindowsEnvironment() bool {
	return runtime.GOOS == "windows"
}

// lockedWriter serializes writes from the stdout and stderr copying goroutines of an exec.Cmd.
type lockedWriter struct {
	writer io.Writer
	lock   sync.Mutex
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.writer.Write(p)
}
