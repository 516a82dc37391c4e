// Package pipelineconfig loads the weekly pipeline configuration document and
// validates it against its JSON Schema plus the cross-field rules the schema
// cannot express.
//
// Every violation found is reported at once through *ValidationError, which
// matches services.ErrConfigValidation under errors.Is.
package pipelineconfig
