package platforms

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/crytic/cheatsheet/utils"
)

// versionRegex captures a semantic version and an optional pre-release tag written without a separator, as vyper does
// (e.g. "0.1.0b13").
var versionRegex = regexp.MustCompile(`(\d+\.\d+\.\d+)(?:-?((?:a|b|rc|alpha|beta)\.?\d+))?`)

// ParseCompilerVersion parses the first version found in compiler output such as `solc --version` or
// `vyper --version`. Pre-release tags are normalized so "0.1.0b13" parses as "0.1.0-b13".
func ParseCompilerVersion(output string) (*semver.Version, error) {
	matches := versionRegex.FindStringSubmatch(output)
	if matches == nil {
		return nil, fmt.Errorf("could not find a compiler version in '%s'", strings.TrimSpace(output))
	}

	versionStr := matches[1]
	if matches[2] != "" {
		versionStr += "-" + strings.ReplaceAll(matches[2], ".", "")
	}
	return semver.NewVersion(versionStr)
}

// getCompilerVersion runs `<binary> --version` and parses the version it reports.
func getCompilerVersion(platform string, binary string) (*semver.Version, error) {
	cmd := exec.Command(binary, "--version")
	_, _, cmdCombined, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil {
		return nil, &CompilerError{Platform: platform, Command: cmd.String(), Output: string(cmdCombined), Err: err}
	}
	return ParseCompilerVersion(string(cmdCombined))
}
