package kvsession

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxNameLength = 128

//database name ends up in file names, so only [A-Za-z0-9._-] and no
//leading dot
func ValidateDatabaseName(name string) error {
	if err := checkLength(name); err != nil {
		return err
	}

	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: database %q starts with dot", ErrInvalidName, name)
	}

	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return fmt.Errorf("%w: database %q has invalid char %q", ErrInvalidName, name, c)
		}
	}
	return nil
}

func ValidateCollectionName(name string) error {
	if err := checkLength(name); err != nil {
		return err
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: collection %q isn't valid utf8", ErrInvalidName, name)
	}

	for _, c := range name {
		if c < 0x20 || c == 0x7f {
			return fmt.Errorf("%w: collection %q has control char", ErrInvalidName, name)
		}
	}
	return nil
}

func checkLength(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d", ErrInvalidName, MaxNameLength)
	}
	return nil
}
