package model

import "errors"

// Error definitions for the model package.
var (
	ErrUnknownFamily      = errors.New("model family not found in registry")
	ErrAlreadyRegistered  = errors.New("model family is already registered in the registry")
	ErrMissingInput       = errors.New("sample is missing a required input")
	ErrMissingDownloader  = errors.New("no downloader configured")
	ErrMissingExporter    = errors.New("no exporter configured")
	ErrInstanceNotFetched = errors.New("model has not been fetched")
	ErrIncompleteDecoder  = errors.New("decoder family does not implement DecodeStep")
)
