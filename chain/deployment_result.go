package chain

import (
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
)

// DeploymentResult describes a contract deployment mined on a TestLedger.
type DeploymentResult struct {
	// Address is the address the contract was deployed to.
	Address common.Address

	// TxHash is the hash of the constructor transaction.
	TxHash common.Hash

	// Receipt is the receipt of the constructor transaction.
	Receipt *gethTypes.Receipt

	// RuntimeBytecode is the code stored at Address once the constructor finished.
	RuntimeBytecode []byte
}

// Succeeded indicates whether the constructor transaction was mined with a successful status.
func (d *DeploymentResult) Succeeded() bool {
	return d.Receipt != nil && d.Receipt.Status == gethTypes.ReceiptStatusSuccessful
}

// GasUsed returns the gas consumed by the constructor transaction.
func (d *DeploymentResult) GasUsed() uint64 {
	if d.Receipt == nil {
		return 0
	}
	return d.Receipt.GasUsed
}
