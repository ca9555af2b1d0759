// Package version reports the build of the cheatsheet binary. VCS metadata is read from the build info Go embeds in
// module builds, unless it was set with -ldflags.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// GitCommit is the git commit hash.
	GitCommit = ""
	// GitTreeDirty is "true" if the tree had uncommitted changes at build time.
	GitTreeDirty = ""
)

// Info describes a build.
type Info struct {
	Version   string
	GitCommit string
	Dirty     bool
	GoVersion string
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && GitCommit == "" {
			GitCommit = setting.Value
		}
		if setting.Key == "vcs.modified" && GitTreeDirty == "" {
			GitTreeDirty = setting.Value
		}
	}
}

// GetInfo returns the build information of the running binary.
func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		Dirty:     GitTreeDirty == "true",
		GoVersion: runtime.Version(),
	}
}

// Revision returns the abbreviated commit, marked when the tree was dirty, or the empty string if unknown.
func (i Info) Revision() string {
	if i.GitCommit == "" {
		return ""
	}
	revision := i.GitCommit
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if i.Dirty {
		revision += "-dirty"
	}
	return revision
}

// String returns a multi-line description of the build, followed by the pinned toolchain versions the reference is
// written for.
func (i Info) String(solcVersion string, vyperVersion string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("cheatsheet version %s\n", i.Version))
	if revision := i.Revision(); revision != "" {
		sb.WriteString(fmt.Sprintf("  Commit:     %s\n", revision))
	}
	sb.WriteString(fmt.Sprintf("  Go version: %s\n", i.GoVersion))
	sb.WriteString(fmt.Sprintf("  solc:       %s\n", solcVersion))
	sb.WriteString(fmt.Sprintf("  vyper:      %s\n", vyperVersion))
	return sb.String()
}
