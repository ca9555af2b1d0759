package types

const (
	// StdinSourceName is the source name solc assigns to source text read from standard input.
	StdinSourceName = "<stdin>"
)
