package domain

// ResultsMeta contains metadata about the test run a results document describes
type ResultsMeta struct {
	Provider         string `json:"provider,omitempty" yaml:"provider,omitempty"`
	TotalTestFiles   int    `json:"total_test_files" yaml:"total_test_files"`
	FailedTestFiles  int    `json:"failed_test_files" yaml:"failed_test_files"`
	PassedTestFiles  int    `json:"passed_test_files" yaml:"passed_test_files"`
	FailedAssertions int    `json:"failed_assertions" yaml:"failed_assertions"`
	Timestamp        string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// ResultsDocument is the hand-off format written by a Test-Result Provider
type ResultsDocument struct {
	Meta  ResultsMeta      `json:"meta"`
	Files []FileTestStatus `json:"files"`
}
