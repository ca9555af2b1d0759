package cmd

const (
	// ConfigFlagDescription describes the --config flag shared by commands that read a project config
	ConfigFlagDescription = "path to the project config file (defaults to cheatsheet.json in the working directory)"

	// OutFlagDescription describes the --out flag of the render command
	OutFlagDescription = "write the rendered page to this file instead of standard output"
)
