package harness

import (
	"fmt"

	"github.com/crytic/cheatsheet/compilation/platforms"
	"github.com/crytic/cheatsheet/compilation/types"
	"github.com/crytic/cheatsheet/logging"
	"github.com/crytic/cheatsheet/snippet"
	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// Toolchains selects compilation platforms by language and by source path. compilation.Toolchains implements it.
type Toolchains interface {
	PathPlatformSelector
	ForLanguage(language snippet.Language) (platforms.Platform, error)
}

// Checker verifies code examples by compiling them and, for every check except CheckCompiles, deploying the result on
// a caller-owned Deployer. Every check returns nil on success.
type Checker struct {
	// toolchains provides the platform for each language.
	toolchains Toolchains

	// deployer receives every deployment. Deployments accumulate on it.
	deployer Deployer

	// logger is the harness sub-logger.
	logger *logging.Logger
}

// NewChecker returns a Checker compiling with toolchains and deploying to deployer.
func NewChecker(toolchains Toolchains, deployer Deployer) *Checker {
	return &Checker{
		toolchains: toolchains,
		deployer:   deployer,
		logger:     logging.GlobalLogger.NewSubLogger("module", logging.HARNESS_SERVICE),
	}
}

// CheckCompiles verifies that a complete source unit compiles, without deploying anything.
func (c *Checker) CheckCompiles(language snippet.Language, code string) error {
	platform, err := c.toolchains.ForLanguage(language)
	if err != nil {
		return err
	}
	compilation, err := CompileContracts(platform, code)
	if err != nil {
		return err
	}
	c.logger.Trace("Compiled ", compilation.Len(), " contract(s) with ", platform.Platform())
	return nil
}

// CheckContract verifies that a complete source unit holding a single contract compiles and deploys.
func (c *Checker) CheckContract(ctx context.Context, language snippet.Language, code string) error {
	return c.CheckSnippet(ctx, language, snippet.NewContract(code), "")
}

// CheckNamedContract verifies that the named contract of a complete source unit compiles and deploys.
func (c *Checker) CheckNamedContract(ctx context.Context, language snippet.Language, code string, name string) error {
	return c.CheckSnippet(ctx, language, snippet.NewContract(code), name)
}

// CheckLocal verifies that a statement sequence compiles and deploys when placed in the constructor of an otherwise
// empty contract.
func (c *Checker) CheckLocal(ctx context.Context, language snippet.Language, local string) error {
	return c.CheckSnippet(ctx, language, snippet.NewLocal(local), "")
}

// CheckGlobal verifies that a declaration compiles and deploys when placed in an otherwise empty contract.
func (c *Checker) CheckGlobal(ctx context.Context, language snippet.Language, global string) error {
	return c.CheckSnippet(ctx, language, snippet.NewGlobal(global), "")
}

// CheckGlobalConstructor verifies that a declaration block and a constructor-body block compile and deploy together.
func (c *Checker) CheckGlobalConstructor(ctx context.Context, language snippet.Language, global string, local string) error {
	return c.CheckSnippet(ctx, language, snippet.NewGlobalLocal(global, local), "")
}

// Check is an alias of CheckGlobalConstructor.
func (c *Checker) Check(ctx context.Context, language snippet.Language, global string, local string) error {
	return c.CheckGlobalConstructor(ctx, language, global, local)
}

// CheckSnippet wraps a snippet for its language, compiles it, selects the contract (the named one, or the only one if
// name is empty) and deploys it.
func (c *Checker) CheckSnippet(ctx context.Context, language snippet.Language, s snippet.Snippet, name string) error {
	platform, err := c.toolchains.ForLanguage(language)
	if err != nil {
		return err
	}

	source, err := snippet.Wrap(language, s)
	if err != nil {
		return err
	}

	var contract *types.CompiledContract
	if name == "" {
		contract, err = CompileSingleContract(platform, source)
	} else {
		contract, err = CompileNamedContract(platform, source, name)
	}
	if err != nil {
		return err
	}
	c.warnOnEmbeddedVersion(platform, contract)

	_, err = DeployAndVerify(ctx, c.deployer, contract)
	return err
}

// warnOnEmbeddedVersion logs a warning when the solc version recorded in an artifact's metadata differs from the
// version the platform reports.
func (c *Checker) warnOnEmbeddedVersion(platform platforms.Platform, contract *types.CompiledContract) {
	embedded := contract.EmbeddedCompilerVersion()
	if embedded == "" {
		return
	}
	version, err := platform.Version()
	if err != nil {
		return
	}

	reported := fmt.Sprintf("%d.%d.%d", version.Major(), version.Minor(), version.Patch())
	if embedded != reported {
		c.logger.Warn("Artifact metadata records solc ", embedded, " but ", platform.Platform(), " reports ", reported)
	}
}

// CheckVersion verifies that the compiler for a language reports the expected version. Pre-release tags may be written
// the way the compiler prints them (e.g. "0.1.0b13").
func (c *Checker) CheckVersion(language snippet.Language, expected string) error {
	platform, err := c.toolchains.ForLanguage(language)
	if err != nil {
		return err
	}

	expectedVersion, err := platforms.ParseCompilerVersion(expected)
	if err != nil {
		return errors.Wrapf(err, "invalid pinned %s version", language.DisplayName())
	}
	actualVersion, err := platform.Version()
	if err != nil {
		return err
	}

	if !actualVersion.Equal(expectedVersion) {
		return errors.Wrapf(ErrVersionMismatch, "%s reports version %s, expected %s", platform.Platform(), actualVersion, expectedVersion)
	}
	return nil
}
