package main

import (
	"flag"

	"github.com/BurntSushi/toml"
)

const (
	DEFAULT_CONFIG   = "siasm.toml" // Project configuration, read if present.
	DEFAULT_TEMPLATE = "z80.tpl"    // Opcode template.
)

// Config holds the assembly settings, from flags or a TOML project file:
//
//	template = "z80.tpl"
//	origin   = 0x8000
//	output   = "game.bin"
//	listing  = true
type Config struct {
	Template string `toml:"template"`
	Origin   int    `toml:"origin"`
	Output   string `toml:"output"`
	NoLink   bool   `toml:"nolink"`
	Verbose  bool   `toml:"verbose"`
	Listing  bool   `toml:"listing"`

	md toml.MetaData // Keys present in the project file.
}

// LoadConfig decodes a TOML project file. Unknown keys are an error.
func LoadConfig(name string) (cfg Config, err error) {
	cfg.md, err = toml.DecodeFile(name, &cfg)
	if err != nil {
		return
	}

	if undecoded := cfg.md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = &ErrConfig{File: name, Keys: keys}
	}

	return
}

// Apply copies the settings present in the project file into opt, except
// those whose flag was given on the command line.
func (cfg Config) Apply(opt *Config, fs *flag.FlagSet) {
	given := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) {
		given[fl.Name] = true
	})

	// use reports whether the project file setting key overrides its flag.
	use := func(key, name string) bool {
		return !given[name] && cfg.md.IsDefined(key)
	}

	if use("template", "t") {
		opt.Template = cfg.Template
	}
	if use("origin", "org") {
		opt.Origin = cfg.Origin
	}
	if use("output", "o") {
		opt.Output = cfg.Output
	}
	if use("nolink", "nolink") {
		opt.NoLink = cfg.NoLink
	}
	if use("verbose", "v") {
		opt.Verbose = cfg.Verbose
	}
	if use("listing", "l") {
		opt.Listing = cfg.Listing
	}
}
