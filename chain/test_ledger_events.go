package chain

import "github.com/crytic/cheatsheet/events"

// TestLedgerEvents describes the event emitters of a TestLedger.
type TestLedgerEvents struct {
	// ContractDeployed is published after every mined deployment transaction, whether or not the constructor
	// succeeded.
	ContractDeployed events.EventEmitter[ContractDeployedEvent]
}

// ContractDeployedEvent describes a deployment transaction mined by a TestLedger.
type ContractDeployedEvent struct {
	Ledger *TestLedger
	Result *DeploymentResult
}
