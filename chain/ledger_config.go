package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// TestLedgerConfig describes the configuration of a TestLedger.
type TestLedgerConfig struct {
	// BlockGasLimit is the gas limit of every block produced by the ledger. Zero keeps the backend default.
	BlockGasLimit uint64 `json:"blockGasLimit"`

	// DeployerBalance is the genesis balance of the deployer account in wei, as a base 10 string.
	DeployerBalance string `json:"deployerBalance"`

	// DeployerPrivateKey is the hex-encoded private key of the deployer account. If empty, a key is generated each
	// time a ledger is created.
	DeployerPrivateKey string `json:"deployerPrivateKey,omitempty"`
}

// DefaultTestLedgerConfig obtains a default configuration for a TestLedger.
func DefaultTestLedgerConfig() *TestLedgerConfig {
	return &TestLedgerConfig{
		BlockGasLimit: 30_000_000,
		// 1,000,000 ether
		DeployerBalance: "1000000000000000000000000",
	}
}

// Validate ensures the balance and private key can be parsed.
func (c *TestLedgerConfig) Validate() error {
	if _, err := c.deployerBalance(); err != nil {
		return err
	}
	if c.DeployerPrivateKey != "" {
		if _, err := crypto.HexToECDSA(strings.TrimPrefix(c.DeployerPrivateKey, "0x")); err != nil {
			return errors.Wrap(err, "invalid ledger deployer private key")
		}
	}
	return nil
}

// deployerBalance parses DeployerBalance.
func (c *TestLedgerConfig) deployerBalance() (*uint256.Int, error) {
	balance, err := uint256.FromDecimal(c.DeployerBalance)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid ledger deployer balance '%s'", c.DeployerBalance)
	}
	if balance.IsZero() {
		return nil, errors.New("the ledger deployer balance must be positive")
	}
	return balance, nil
}
