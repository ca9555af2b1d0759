package cmd

// addInitFlags adds the various flags for the init command
func addInitFlags() {
	initCmd.Flags().String("out", "", "output path for the new project configuration file")
	initCmd.Flags().Bool("force", false, "overwrite an existing project configuration file")
	addCompilerFlags(initCmd)
}
