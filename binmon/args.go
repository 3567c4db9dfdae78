package binmon

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ArgsNotFoundError is returned by LoadArgs if the arguments file cannot be
// stat'd. The supervisor treats it as fatal.
type ArgsNotFoundError struct {
	Path string
	Err  error
}

func (err *ArgsNotFoundError) Error() string {
	return fmt.Sprintf("arguments file %s: %v", err.Path, err.Err)
}

func (err *ArgsNotFoundError) Unwrap() error { return err.Err }

// LoadArgs reads the arguments file at path. Each line is split on whitespace
// and the tokens are returned in order. Quotes and escapes are not
// interpreted.
func LoadArgs(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ArgsNotFoundError{path, err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open arguments file")
	}
	defer f.Close()

	var args []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(nil, 1<<20)

	for scanner.Scan() {
		args = append(args, strings.Fields(scanner.Text())...)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read arguments file")
	}

	return args, nil
}
