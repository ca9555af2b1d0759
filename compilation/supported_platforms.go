package compilation

import (
	"fmt"

	"github.com/crytic/cheatsheet/compilation/platforms"
	"golang.org/x/exp/slices"
)

// defaultPlatformConfigGenerator is a mapping of platform identifier to generator functions which can be used to create
// a default configuration for the given platform. Each platform which provides a generator in this mapping is
// considered a supported compilation platform for a CompilationConfig. Items are populated in the init method.
var defaultPlatformConfigGenerator map[string]func() platforms.Platform

// init populates defaultPlatformConfigGenerator with the supported platforms.
func init() {
	generators := []func() platforms.Platform{
		func() platforms.Platform { return platforms.NewSolcCompilationConfig() },
		func() platforms.Platform { return platforms.NewVyperCompilationConfig() },
	}

	defaultPlatformConfigGenerator = make(map[string]func() platforms.Platform)
	for _, generator := range generators {
		platformId := generator().Platform()

		// Each platform must have a unique identifier
		if _, platformIdExists := defaultPlatformConfigGenerator[platformId]; platformIdExists {
			panic(fmt.Errorf("the compilation platform '%s' is registered with more than one provider", platformId))
		}
		defaultPlatformConfigGenerator[platformId] = generator
	}
}

// GetSupportedCompilationPlatforms obtains a sorted list of platform identifiers supported by methods in this package.
func GetSupportedCompilationPlatforms() []string {
	platformIds := make([]string, 0, len(defaultPlatformConfigGenerator))
	for platformId := range defaultPlatformConfigGenerator {
		platformIds = append(platformIds, platformId)
	}
	slices.Sort(platformIds)
	return platformIds
}

// IsSupportedCompilationPlatform returns a boolean status indicating if a platform identifier is supported within this
// package.
func IsSupportedCompilationPlatform(platform string) bool {
	_, ok := defaultPlatformConfigGenerator[platform]
	return ok
}

// GetDefaultPlatformConfig obtains a platform from the default generator for the provided platform identifier, or nil
// if the platform is unsupported.
func GetDefaultPlatformConfig(platform string) platforms.Platform {
	generator, ok := defaultPlatformConfigGenerator[platform]
	if !ok {
		return nil
	}
	return generator()
}
