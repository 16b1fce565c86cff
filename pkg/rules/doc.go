// Package rules declares field rules for form input and resolves them into
// immutable, ready-to-execute snapshots.
//
// A rule Set maps field names to Declarations in declaration order. A
// Declaration may be written in shorthand (just a Type) or in full with
// options, filters, existence checks and hooks. Sets can be built in Go or
// parsed from YAML or JSON documents.
//
// # Resolution
//
// Resolver turns a Set into a Resolved snapshot for one submission. The steps
// always run in the same order:
//
//  1. shorthand normalization and per-type defaults
//  2. required-if evaluation against the raw data (conditionally dropping
//     the field)
//  3. list inference from the field name
//  4. placeholder substitution ({name}, {current_date}, {current_year},
//     {current_time})
//  5. shouldMatch normalization into a delimited {target} reference; a
//     matchWith target is kept literal
//
// Derived rules such as range choices, password defaults and file MIME
// allow-lists are computed into the snapshot. The input Declaration is never
// mutated, so resolving the same Set twice yields equal FieldRules.
//
// # Usage
//
//	set := rules.NewSet().
//	    Add("email", rules.Declaration{Type: rules.TypeEmail}).
//	    Add("password", rules.Shorthand(rules.TypePassword)).
//	    Add("password_confirm", rules.Declaration{
//	        Type:    rules.TypePassword,
//	        Options: rules.Options{ShouldMatch: &rules.Match{Target: "password"}},
//	    })
//
//	resolved, err := rules.NewResolver().Resolve(set, data)
package rules
