package cli

import (
	"fmt"

	"github.com/shibukawa/ippcode/parser"
)

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Files []string `arg:"" help:"Source files to validate, standard input when omitted" optional:""`
}

// Run executes the validate command
func (v *ValidateCmd) Run(ctx *Context) error {
	config, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	files := v.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	options := parser.OptionsFromConfig(config)

	var (
		firstErr error
		failed   int
	)

	for _, file := range files {
		err := validateFile(ctx, file, options)
		if err != nil {
			ctx.failure("FAIL %s: %v", displayName(file), err)

			if firstErr == nil {
				firstErr = err
			}

			failed++

			continue
		}

		ctx.success("OK   %s", displayName(file))
	}

	if firstErr != nil {
		return fmt.Errorf("%d of %d files failed validation: %w", failed, len(files), firstErr)
	}

	return nil
}

func validateFile(ctx *Context, file string, options parser.Options) error {
	input, closeInput, err := openInput(ctx, file)
	if err != nil {
		return err
	}
	defer closeInput()

	program, err := parser.Parse(input, options)
	if err != nil {
		return err
	}

	ctx.progress("%s: %d instructions", displayName(file), program.Len())

	return nil
}
