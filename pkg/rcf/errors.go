package rcf

import "errors"

var (
	ErrInvalidMagic     = errors.New("invalid RCF magic")
	ErrUnsupportedMajor = errors.New("unsupported RCF major version")
	ErrCorruptFile      = errors.New("corrupt RCF file")
	ErrDuplicateSection = errors.New("rcf: duplicate section path")
	ErrFinalised        = errors.New("rcf: writer already finalised")
)
