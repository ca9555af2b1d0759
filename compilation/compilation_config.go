package compilation

import (
	"encoding/json"
	"fmt"

	"github.com/crytic/cheatsheet/compilation/platforms"
)

// CompilationConfig describes the compilation platform used for one language along with its platform-specific
// options.
type CompilationConfig struct {
	// Platform references an identifier indicating which compilation platform to use.
	Platform string `json:"platform"`

	// PlatformConfig describes the Platform-specific configuration needed to compile. Its structure depends on
	// Platform.
	PlatformConfig *json.RawMessage `json:"platformConfig"`
}

// NewCompilationConfig returns a CompilationConfig with default values for a given platform identifier.
func NewCompilationConfig(platform string) (*CompilationConfig, error) {
	if !IsSupportedCompilationPlatform(platform) {
		return nil, fmt.Errorf("could not get default compilation config: platform '%s' is unsupported", platform)
	}
	return NewCompilationConfigFromPlatform(GetDefaultPlatformConfig(platform))
}

// NewCompilationConfigFromPlatform wraps a platforms.Platform in a generic CompilationConfig, so that every
// platform's options can be serialized and deserialized through one structure.
func NewCompilationConfigFromPlatform(platform platforms.Platform) (*CompilationConfig, error) {
	b, err := json.Marshal(platform)
	if err != nil {
		return nil, err
	}
	platformConfigMsg := json.RawMessage(b)
	return &CompilationConfig{Platform: platform.Platform(), PlatformConfig: &platformConfigMsg}, nil
}

// GetPlatform deserializes the platform-specific configuration into the platform it describes. Fields missing from
// the configuration keep their default values.
func (c *CompilationConfig) GetPlatform() (platforms.Platform, error) {
	if !IsSupportedCompilationPlatform(c.Platform) {
		return nil, fmt.Errorf("could not get platform from config: platform '%s' is unsupported", c.Platform)
	}

	platform := GetDefaultPlatformConfig(c.Platform)
	if c.PlatformConfig != nil {
		if err := json.Unmarshal(*c.PlatformConfig, platform); err != nil {
			return nil, fmt.Errorf("could not parse '%s' platform config: %v", c.Platform, err)
		}
	}
	return platform, nil
}

// Validate checks the platform identifier is supported and that its platform configuration can be decoded.
func (c *CompilationConfig) Validate() error {
	_, err := c.GetPlatform()
	return err
}
