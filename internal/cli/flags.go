package cli

import "testmark/internal/config"

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	Results     string
	ConfigFile  string
	Verbose     bool
	NameFilter  string
	JSON        bool
	Strict      bool
	From        string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath: f.ProjectPath,
		Results:     f.Results,
		ConfigFile:  f.ConfigFile,
		Verbose:     f.Verbose,
		NameFilter:  f.NameFilter,
		JSON:        f.JSON,
		Strict:      f.Strict,
		From:        f.From,
	}
}
