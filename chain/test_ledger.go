package chain

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/crytic/cheatsheet/compilation/abiutils"
	"github.com/crytic/cheatsheet/logging"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/eth/ethconfig"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/node"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// TestLedger is an in-memory blockchain with a single funded deployer account, used to deploy compiled contracts.
// Deployments are never rolled back: each one observes the state left behind by earlier deployments. A TestLedger is
// owned by its creator, must be closed with Close, and is not safe for concurrent use.
type TestLedger struct {
	// backend is the simulated blockchain.
	backend *simulated.Backend

	// client is the RPC client connected to backend.
	client simulated.Client

	// deployerKey is the private key which signs every deployment.
	deployerKey *ecdsa.PrivateKey

	// deployerAddress is the address derived from deployerKey.
	deployerAddress common.Address

	// chainID is the chain identifier used when signing transactions.
	chainID *big.Int

	// Events are the event emitters of the ledger.
	Events TestLedgerEvents

	// logger is the ledger's sub-logger.
	logger *logging.Logger
}

// NewTestLedger creates a TestLedger from the provided config, funding the deployer account at genesis. If a nil
// config is provided, a default one is used.
func NewTestLedger(config *TestLedgerConfig) (*TestLedger, error) {
	if config == nil {
		config = DefaultTestLedgerConfig()
	}

	balance, err := config.deployerBalance()
	if err != nil {
		return nil, err
	}

	var deployerKey *ecdsa.PrivateKey
	if config.DeployerPrivateKey != "" {
		deployerKey, err = crypto.HexToECDSA(strings.TrimPrefix(config.DeployerPrivateKey, "0x"))
	} else {
		deployerKey, err = crypto.GenerateKey()
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not obtain the ledger deployer key")
	}
	deployerAddress := crypto.PubkeyToAddress(deployerKey.PublicKey)

	genesisAlloc := gethTypes.GenesisAlloc{
		deployerAddress: {Balance: balance.ToBig()},
	}
	var options []func(nodeConf *node.Config, ethConf *ethconfig.Config)
	if config.BlockGasLimit > 0 {
		options = append(options, simulated.WithBlockGasLimit(config.BlockGasLimit))
	}
	backend := simulated.NewBackend(genesisAlloc, options...)
	client := backend.Client()

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		_ = backend.Close()
		return nil, errors.Wrap(err, "could not obtain the ledger chain id")
	}

	ledger := &TestLedger{
		backend:         backend,
		client:          client,
		deployerKey:     deployerKey,
		deployerAddress: deployerAddress,
		chainID:         chainID,
		logger:          logging.GlobalLogger.NewSubLogger("module", logging.LEDGER_SERVICE),
	}
	ledger.logger.Debug("Started test ledger with chain id ", chainID.String(), " and deployer ", deployerAddress.Hex())
	return ledger, nil
}

// DeployerAddress returns the address of the funded account which signs deployments.
func (l *TestLedger) DeployerAddress() common.Address {
	return l.deployerAddress
}

// ChainID returns the chain identifier of the ledger.
func (l *TestLedger) ChainID() *big.Int {
	return new(big.Int).Set(l.chainID)
}

// Client returns the RPC client of the ledger, which can be used to query deployed contracts.
func (l *TestLedger) Client() simulated.Client {
	return l.client
}

// Deploy submits a constructor transaction for the given ABI and init bytecode, mines it, and blocks until the
// receipt is available. Constructor arguments are ABI-encoded and appended to the bytecode. A constructor which
// reverts during gas estimation is reported as an error describing the revert reason, if one can be decoded.
func (l *TestLedger) Deploy(ctx context.Context, contractAbi abi.ABI, bytecode []byte, args ...any) (*DeploymentResult, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(l.deployerKey, l.chainID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(opts, contractAbi, bytecode, l.client, args...)
	if err != nil {
		return nil, l.describeDeploymentError(&contractAbi, err)
	}
	l.backend.Commit()

	receipt, err := bind.WaitMined(ctx, l.client, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not obtain the receipt of deployment transaction %s", tx.Hash().Hex())
	}

	result := &DeploymentResult{
		Address: address,
		TxHash:  tx.Hash(),
		Receipt: receipt,
	}
	if result.Succeeded() {
		result.RuntimeBytecode, err = l.client.CodeAt(ctx, address, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read the code deployed at %s", address.Hex())
		}
	}

	l.logger.Trace("Deployed contract at ", address.Hex(), " using ", result.GasUsed(), " gas")
	l.Events.ContractDeployed.Publish(ContractDeployedEvent{Ledger: l, Result: result})
	return result, nil
}

// describeDeploymentError wraps a failed deployment, decoding any revert data carried by the error.
func (l *TestLedger) describeDeploymentError(contractAbi *abi.ABI, err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if hexData, ok := dataErr.ErrorData().(string); ok {
			if returnData, decodeErr := hexutil.Decode(hexData); decodeErr == nil {
				if reason := abiutils.DescribeRevert(contractAbi, returnData); reason != "" {
					return errors.Wrapf(err, "could not deploy contract (%s)", reason)
				}
			}
		}
	}
	return errors.Wrap(err, "could not deploy contract")
}

// Close shuts down the simulated blockchain. The ledger cannot be used afterwards.
func (l *TestLedger) Close() error {
	return l.backend.Close()
}
