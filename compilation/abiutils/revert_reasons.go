package abiutils

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// An enum is defined below providing all `Panic(uint)` error codes returned in return data when the VM encounters
// an error in some cases.
// Reference: https://docs.soliditylang.org/en/latest/control-structures.html#panic-via-assert-and-error-via-require
const (
	PanicCodeCompilerInserted              = 0x00
	PanicCodeAssertFailed                  = 0x01
	PanicCodeArithmeticUnderOverflow       = 0x11
	PanicCodeDivideByZero                  = 0x12
	PanicCodeEnumTypeConversionOutOfBounds = 0x21
	PanicCodeIncorrectStorageAccess        = 0x22
	PanicCodePopEmptyArray                 = 0x31
	PanicCodeOutOfBoundsArrayAccess        = 0x32
	PanicCodeAllocateTooMuchMemory         = 0x41
	PanicCodeCallUninitializedVariable     = 0x51
)

var (
	// panicMethod describes the `Panic(uint256)` return data emitted by failed assertions and checked arithmetic.
	panicMethod = newRevertMethod("Panic", "uint256")

	// errorMethod describes the `Error(string)` return data emitted by require and revert with a reason.
	errorMethod = newRevertMethod("Error", "string")
)

// newRevertMethod builds the ABI method describing a built-in revert payload with a single argument.
func newRevertMethod(name string, argType string) abi.Method {
	typ, _ := abi.NewType(argType, "", nil)
	return abi.NewMethod(name, name, abi.Function, "", false, false, []abi.Argument{{Type: typ}}, abi.Arguments{})
}

// GetSolidityPanicCode obtains a panic code from revert return data, or nil if the data does not encode a Panic.
func GetSolidityPanicCode(returnData []byte) *big.Int {
	if len(returnData) != 4+32 || !bytes.Equal(returnData[:4], panicMethod.ID) {
		return nil
	}
	values, err := panicMethod.Inputs.Unpack(returnData[4:])
	if err != nil || len(values) == 0 {
		return nil
	}
	panicCode, _ := values[0].(*big.Int)
	return panicCode
}

// GetSolidityRevertErrorString obtains the reason string from revert return data, or nil if the data does not encode
// an Error.
func GetSolidityRevertErrorString(returnData []byte) *string {
	if len(returnData) <= 4 || !bytes.Equal(returnData[:4], errorMethod.ID) {
		return nil
	}
	values, err := errorMethod.Inputs.Unpack(returnData[4:])
	if err != nil || len(values) == 0 {
		return nil
	}
	errorMessage, ok := values[0].(string)
	if !ok {
		return nil
	}
	return &errorMessage
}

// GetSolidityCustomRevertError resolves a custom error declared in the contract ABI from revert return data. Returns
// the ABI error definition as well as its unpacked values, or nil outputs if no declared error matches.
func GetSolidityCustomRevertError(contractAbi *abi.ABI, returnData []byte) (*abi.Error, []any) {
	if contractAbi == nil || len(returnData) < 4 {
		return nil, nil
	}
	for _, abiError := range contractAbi.Errors {
		if bytes.Equal(abiError.ID.Bytes()[:4], returnData[:4]) {
			matchedCustomError := abiError
			unpackedCustomErrorArgs, err := matchedCustomError.Inputs.Unpack(returnData[4:])
			if err == nil {
				return &matchedCustomError, unpackedCustomErrorArgs
			}
		}
	}
	return nil, nil
}

// DescribeRevert returns a human-readable description of revert return data. The contract ABI, if provided, is used to
// resolve custom errors. An empty string is returned when no return data was provided.
func DescribeRevert(contractAbi *abi.ABI, returnData []byte) string {
	if len(returnData) == 0 {
		return ""
	}
	if panicCode := GetSolidityPanicCode(returnData); panicCode != nil {
		return GetPanicReason(panicCode.Uint64())
	}
	if reason := GetSolidityRevertErrorString(returnData); reason != nil {
		return fmt.Sprintf("reverted with reason: '%s'", *reason)
	}
	if customError, args := GetSolidityCustomRevertError(contractAbi, returnData); customError != nil {
		argStrs := make([]string, len(args))
		for i, arg := range args {
			argStrs[i] = fmt.Sprintf("%v", arg)
		}
		return fmt.Sprintf("reverted with custom error: %s(%s)", customError.Name, strings.Join(argStrs, ", "))
	}
	return fmt.Sprintf("reverted with unrecognized return data: 0x%x", returnData)
}

// GetPanicReason will take in a panic code as an uint64 and will return the string reason behind that panic code. For
// example, if panic code is PanicCodeAssertFailed, then "panic: assertion failed" is returned.
func GetPanicReason(panicCode uint64) string {
	switch panicCode {
	case PanicCodeCompilerInserted:
		return "panic: compiler inserted panic"
	case PanicCodeAssertFailed:
		return "panic: assertion failed"
	case PanicCodeArithmeticUnderOverflow:
		return "panic: arithmetic underflow"
	case PanicCodeDivideByZero:
		return "panic: division by zero"
	case PanicCodeEnumTypeConversionOutOfBounds:
		return "panic: enum access out of bounds"
	case PanicCodeIncorrectStorageAccess:
		return "panic: incorrect storage access"
	case PanicCodePopEmptyArray:
		return "panic: pop on empty array"
	case PanicCodeOutOfBoundsArrayAccess:
		return "panic: out of bounds array access"
	case PanicCodeAllocateTooMuchMemory:
		return "panic: overallocation of memory"
	case PanicCodeCallUninitializedVariable:
		return "panic: call on uninitialized variable"
	default:
		return fmt.Sprintf("unknown panic code(%v)", panicCode)
	}
}
