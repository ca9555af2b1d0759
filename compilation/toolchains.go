package compilation

import (
	"path/filepath"

	"github.com/crytic/cheatsheet/compilation/platforms"
	"github.com/crytic/cheatsheet/snippet"
	"github.com/pkg/errors"
)

// Toolchains holds the compilation platform used for each supported language.
type Toolchains struct {
	// Solidity is the platform used to compile Solidity sources.
	Solidity platforms.Platform

	// Vyper is the platform used to compile Vyper sources.
	Vyper platforms.Platform

	// cache is the artifact cache shared by both platforms, if caching is enabled.
	cache *ArtifactCache
}

// NewToolchains creates the platforms described by the provided configs. If cacheDirectory is non-empty, both
// platforms are wrapped with a shared ArtifactCache stored in that directory. The caller must Close the result.
func NewToolchains(solidity *CompilationConfig, vyper *CompilationConfig, cacheDirectory string) (*Toolchains, error) {
	solidityPlatform, err := solidity.GetPlatform()
	if err != nil {
		return nil, err
	}
	vyperPlatform, err := vyper.GetPlatform()
	if err != nil {
		return nil, err
	}

	toolchains := &Toolchains{Solidity: solidityPlatform, Vyper: vyperPlatform}
	if cacheDirectory != "" {
		toolchains.cache, err = OpenArtifactCache(cacheDirectory)
		if err != nil {
			return nil, err
		}
		toolchains.Solidity = NewCachingPlatform(solidityPlatform, toolchains.cache)
		toolchains.Vyper = NewCachingPlatform(vyperPlatform, toolchains.cache)
	}
	return toolchains, nil
}

// NewDefaultToolchains returns Toolchains invoking solc and vyper from the PATH, without caching.
func NewDefaultToolchains() *Toolchains {
	return &Toolchains{
		Solidity: platforms.NewSolcCompilationConfig(),
		Vyper:    platforms.NewVyperCompilationConfig(),
	}
}

// ForLanguage returns the platform compiling the given language.
func (t *Toolchains) ForLanguage(language snippet.Language) (platforms.Platform, error) {
	switch language {
	case snippet.Solidity:
		return t.Solidity, nil
	case snippet.Vyper:
		return t.Vyper, nil
	default:
		return nil, errors.Wrapf(snippet.ErrUnsupportedLanguage, "no toolchain for language '%s'", language)
	}
}

// ForPath returns the platform for a source file path. Files with the Solidity extension are compiled with the
// Solidity platform and every other file with the Vyper platform.
func (t *Toolchains) ForPath(path string) platforms.Platform {
	if filepath.Ext(path) == t.Solidity.SourceExtension() {
		return t.Solidity
	}
	return t.Vyper
}

// Close releases the artifact cache, if one is open.
func (t *Toolchains) Close() error {
	if t.cache == nil {
		return nil
	}
	err := t.cache.Close()
	t.cache = nil
	return err
}
