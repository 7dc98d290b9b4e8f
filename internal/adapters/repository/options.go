package repository

// Option applies a configuration option to a dataset load.
type Option func(*loadOptions)

type loadOptions struct {
	sheet     string
	delimiter rune
}

// WithSheet selects the XLSX sheet by name. The first sheet is used when empty.
func WithSheet(name string) Option {
	return func(o *loadOptions) {
		o.sheet = name
	}
}

// WithDelimiter overrides the CSV field delimiter. Files ending in .tsv default to tab.
func WithDelimiter(r rune) Option {
	return func(o *loadOptions) {
		if r != 0 {
			o.delimiter = r
		}
	}
}
