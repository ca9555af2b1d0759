package harness

import (
	"github.com/crytic/cheatsheet/chain"
	"github.com/crytic/cheatsheet/compilation/types"
	"github.com/crytic/cheatsheet/logging"
	"github.com/crytic/cheatsheet/logging/colors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// Deployer submits constructor transactions and waits for them to be mined. chain.TestLedger implements it.
type Deployer interface {
	Deploy(ctx context.Context, contractAbi abi.ABI, bytecode []byte, args ...any) (*chain.DeploymentResult, error)
}

// DeployAndVerify deploys a compiled contract by calling its no-argument constructor and blocks until the transaction
// is mined. The bytecode is extracted from the artifact first, so trailing placeholders never reach the ledger.
// Success means no error was returned: a mined transaction with a failed status is only logged.
func DeployAndVerify(ctx context.Context, deployer Deployer, contract *types.CompiledContract) (*chain.DeploymentResult, error) {
	logger := logging.GlobalLogger.NewSubLogger("module", logging.HARNESS_SERVICE)

	if contract.HasUnlinkedLibraries() {
		logger.Warn("Deploying bytecode truncated at unlinked libraries ", colors.Bold, contract.UnresolvedLibraries())
	}
	if contract.InitBytecodeHasOddLength() {
		logger.Warn("Dropping the odd trailing nibble of the init bytecode")
	}

	bytecode, err := contract.InitBytecode()
	if err != nil {
		return nil, err
	}

	result, err := deployer.Deploy(ctx, contract.Abi, bytecode)
	if err != nil {
		return nil, errors.WithMessage(err, "deploy-and-verify failed")
	}

	if !result.Succeeded() {
		logger.Warn("Constructor transaction ", result.TxHash.Hex(), " was mined with a failed status")
	}
	return result, nil
}
