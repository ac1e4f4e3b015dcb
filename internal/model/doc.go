// Package model defines the domain entities managed by the Directory API.
//
// Every persisted entity embeds Meta, which carries the record id and the
// created_on/updated_on timestamps maintained by the dao layer. Entities
// implement Validate, returning field-level errors for shape problems
// (missing fields, bad enum values, trivially malformed input). Anything
// beyond that, such as uniqueness or referential checks, is the dao layer's job.
//
// The package also defines the RFC 9457 Problem Details types used by the
// HTTP surface to report errors.
package model
