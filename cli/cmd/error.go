package cmd

import "github.com/ardnew/phrasegen/pkg"

// Sentinel errors returned by the commands.
var (
	ErrFileNotFound   = pkg.NewError("file not found")
	ErrReadTemplates  = pkg.NewError("read templates")
	ErrNoTemplates    = pkg.NewError("no templates given")
	ErrDecodeBindings = pkg.NewError("decode bindings")
	ErrLoadVariants   = pkg.NewError("load variants")
	ErrWriteResults   = pkg.NewError("write results")
	ErrUnknownOutput  = pkg.NewError("unknown output format")
	ErrWatch          = pkg.NewError("watch input files")
)
