package main

import "github.com/theWizardsBaker/sbatch-gen/cmd"

func main() {
	cmd.Execute()
}
