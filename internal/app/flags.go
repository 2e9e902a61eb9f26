package app

import "flag"

// Config represents the command-line parameters for the viewer application.
type Config struct {
	Scene      string
	Scale      int
	Seed       int64
	ConfigFile string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scene: "world", Scale: 3, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene to run (world, basin, lavapool)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for world reset")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "optional YAML world config file")
}
