package compilation

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver"
	"github.com/crytic/cheatsheet/compilation/platforms"
	"github.com/crytic/cheatsheet/compilation/types"
	"github.com/crytic/cheatsheet/logging"
	"github.com/crytic/cheatsheet/utils"
	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
	"golang.org/x/crypto/sha3"
)

// ArtifactCacheFileName is the name of the database file an ArtifactCache keeps in its cache directory.
const ArtifactCacheFileName = "artifacts.db"

// artifactBucket is the bbolt bucket compilations are stored in.
var artifactBucket = []byte("compilations")

// ArtifactCache persists normalized compilations keyed by their compiler and sources, so repeated verification runs
// do not re-invoke the compiler for unchanged snippets.
type ArtifactCache struct {
	db *bbolt.DB
}

// OpenArtifactCache opens (or creates) an artifact cache in the provided directory.
func OpenArtifactCache(cacheDirectory string) (*ArtifactCache, error) {
	if err := utils.MakeDirectory(cacheDirectory); err != nil {
		return nil, errors.Wrapf(err, "could not create artifact cache directory '%s'", cacheDirectory)
	}

	db, err := bbolt.Open(filepath.Join(cacheDirectory, ArtifactCacheFileName), 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "could not open artifact cache")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(artifactBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.WithStack(err)
	}
	return &ArtifactCache{db: db}, nil
}

// Get returns the compilation stored under key, and a boolean indicating whether it was found.
func (c *ArtifactCache) Get(key []byte) (*types.Compilation, bool, error) {
	var compilation *types.Compilation
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(artifactBucket).Get(key)
		if data == nil {
			return nil
		}
		compilation = &types.Compilation{}
		return json.Unmarshal(data, compilation)
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "could not read from artifact cache")
	}
	if compilation == nil {
		return nil, false, nil
	}

	compilation.ResolveLibraryPlaceholders()
	return compilation, true, nil
}

// Put stores a compilation under key, replacing any previous entry.
func (c *ArtifactCache) Put(key []byte, compilation *types.Compilation) error {
	data, err := json.Marshal(compilation)
	if err != nil {
		return errors.WithStack(err)
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(artifactBucket).Put(key, data)
	})
}

// Close releases the underlying database.
func (c *ArtifactCache) Close() error {
	return c.db.Close()
}

// ArtifactCacheKey computes the Keccak-256 cache key for a compiler invocation. The invocation is the platform's
// encoded configuration (binary and arguments). Every component is length-prefixed so that distinct inputs never share
// an encoding.
func ArtifactCacheKey(platform string, compilerVersion string, invocation string, sources ...string) []byte {
	hasher := sha3.NewLegacyKeccak256()
	write := func(s string) {
		var length [8]byte
		binary.BigEndian.PutUint64(length[:], uint64(len(s)))
		hasher.Write(length[:])
		hasher.Write([]byte(s))
	}

	write(platform)
	write(compilerVersion)
	write(invocation)
	for _, source := range sources {
		write(source)
	}
	return hasher.Sum(nil)
}

// CachingPlatform wraps a platforms.Platform and serves compilations from an ArtifactCache when the compiler version,
// the platform configuration and the sources match a previous invocation. Any cache failure falls through to the
// wrapped platform.
type CachingPlatform struct {
	platform platforms.Platform
	cache    *ArtifactCache
	logger   *logging.Logger

	// invocation is the JSON form of the wrapped platform's configuration, captured when the platform is wrapped.
	invocation string

	// bypass is set when the configuration could not be encoded. Every compilation then goes to the wrapped platform.
	bypass bool
}

// NewCachingPlatform wraps platform with the provided cache. The platform's configuration is encoded into every cache
// key, so changing compiler arguments never serves artifacts built with the previous ones.
func NewCachingPlatform(platform platforms.Platform, cache *ArtifactCache) *CachingPlatform {
	c := &CachingPlatform{
		platform: platform,
		cache:    cache,
		logger:   logging.GlobalLogger.NewSubLogger("module", logging.COMPILATION_SERVICE),
	}

	invocation, err := json.Marshal(platform)
	if err != nil {
		c.logger.Warn("Disabling the artifact cache for ", platform.Platform(), err)
		c.bypass = true
	}
	c.invocation = string(invocation)
	return c
}

// Platform returns the identifier of the wrapped platform.
func (c *CachingPlatform) Platform() string {
	return c.platform.Platform()
}

// SourceExtension returns the source extension of the wrapped platform.
func (c *CachingPlatform) SourceExtension() string {
	return c.platform.SourceExtension()
}

// Version returns the compiler version of the wrapped platform.
func (c *CachingPlatform) Version() (*semver.Version, error) {
	return c.platform.Version()
}

// QualifiedContractKey returns the qualified contract key of the wrapped platform.
func (c *CachingPlatform) QualifiedContractKey(name string) string {
	return c.platform.QualifiedContractKey(name)
}

// CompileSource compiles source text, consulting the cache first.
func (c *CachingPlatform) CompileSource(source string) (*types.Compilation, error) {
	return c.compile([]string{"source", source}, func() (*types.Compilation, error) {
		return c.platform.CompileSource(source)
	})
}

// CompileFiles compiles the provided files, consulting the cache first. Both the paths and the file contents are part
// of the cache key, since contract keys are derived from the paths.
func (c *CachingPlatform) CompileFiles(paths []string) (*types.Compilation, error) {
	compileFiles := func() (*types.Compilation, error) {
		return c.platform.CompileFiles(paths)
	}

	keyParts := []string{"files"}
	for _, path := range paths {
		contents, err := os.ReadFile(path)
		if err != nil {
			return compileFiles()
		}
		keyParts = append(keyParts, path, string(contents))
	}
	return c.compile(keyParts, compileFiles)
}

// compile resolves a cache entry for the given key parts, or runs compileFunc and stores its result.
func (c *CachingPlatform) compile(keyParts []string, compileFunc func() (*types.Compilation, error)) (*types.Compilation, error) {
	if c.bypass {
		return compileFunc()
	}
	version, err := c.platform.Version()
	if err != nil {
		return compileFunc()
	}

	key := ArtifactCacheKey(c.platform.Platform(), version.String(), c.invocation, keyParts...)
	compilation, found, err := c.cache.Get(key)
	if err != nil {
		c.logger.Warn("Ignoring artifact cache", err)
	} else if found {
		c.logger.Debug("Using cached compilation from ", c.platform.Platform())
		return compilation, nil
	}

	compilation, err = compileFunc()
	if err != nil {
		return nil, err
	}
	if err = c.cache.Put(key, compilation); err != nil {
		c.logger.Warn("Could not store compilation in artifact cache", err)
	}
	return compilation, nil
}
