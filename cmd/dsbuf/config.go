package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"
)

// addConfigCommand adds the config command, which prints the effective
// configuration as YAML.
func addConfigCommand(app *kingpin.Application, opts *options) {
	cmd := app.Command("config", "Print the effective buffer configuration")
	cmd.Action(func(_ *kingpin.ParseContext) error {
		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	})
}
