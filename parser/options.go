package parser

import "github.com/shibukawa/ippcode"

// Options controls the front end.
type Options struct {
	// Language is the name in the program header (without the leading dot)
	// and the value of the root language attribute.
	Language string
}

// DefaultOptions provides the default parser options.
var DefaultOptions = Options{Language: ippcode.DefaultLanguage}

// OptionsFromConfig derives parser options from the loaded configuration.
func OptionsFromConfig(config *ippcode.Config) Options {
	return Options{Language: config.Language}
}

func (o Options) header() string {
	return "." + o.Language
}
