package errors_test

import (
	"fmt"
	"io/fs"
	"math"

	errs "github.com/matzehuels/obst/pkg/errors"
)

func ExampleValidateFrequency() {
	err := errs.ValidateFrequency("eat", math.NaN())
	fmt.Println(errs.GetCode(err))
	fmt.Println(errs.UserMessage(err))
	fmt.Println(errs.HTTPStatus(errs.GetCode(err)))
	// Output:
	// INVALID_FREQUENCY
	// frequency of "eat" must be a finite number
	// 400
}

func ExampleWrap() {
	err := errs.Wrap(errs.ErrCodeFileNotFound, fs.ErrNotExist, "dataset %s", "words.toml")
	fmt.Println(err)
	fmt.Println(errs.UserMessage(err))
	fmt.Println(errs.Is(fmt.Errorf("build: %w", err), errs.ErrCodeFileNotFound))
	// Output:
	// FILE_NOT_FOUND: dataset words.toml: file does not exist
	// dataset words.toml
	// true
}
