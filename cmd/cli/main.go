package main

import (
	"fmt"
	"os"

	"github.com/crucial707/loanapp/cmd/cli/auth"
	"github.com/crucial707/loanapp/cmd/cli/predict"
	"github.com/crucial707/loanapp/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	predict.InitPredict(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
