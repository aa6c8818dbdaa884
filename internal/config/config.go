package config

import (
	"os"
)

const VERSION = "1.0.0"

// Config holds global application settings
type Config struct {
	Debug     bool
	Quiet     bool
	Color     bool
	Version   string
	SinfoBin  string // sinfo binary name or path
	OutputDir string // Where generated scripts are written

	Defaults Defaults
}

// Defaults holds values pre-filled into interactive prompts
type Defaults struct {
	MailUser string // --mail-user suggestion
	MailType string // --mail-type suggestion
	CPUs     int    // CPU count suggestion (0 = none)
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults resets Global to built-in defaults
func LoadDefaults() {
	outputDir, err := os.Getwd()
	if err != nil {
		outputDir = "."
	}

	Global = Config{
		Debug:     false,
		Quiet:     false,
		Color:     true,
		Version:   VERSION,
		SinfoBin:  "sinfo",
		OutputDir: outputDir,
		Defaults: Defaults{
			MailType: "ALL",
		},
	}
}
