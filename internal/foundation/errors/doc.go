// Package errors provides the classified error primitives used across mdpages.
//
// A ClassifiedError carries a category (config, filesystem, structure, handler,
// join, internal), a severity and structured context such as the document or
// asset path that failed. Errors are built with a fluent API:
//
//	err := errors.StructureError("handler not registered").
//		WithContext("document", path).
//		WithContext("handler", name).
//		WithCause(ErrMissingHandler).
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
