// Package validator checks single field values against resolved rules.
//
// An Engine maps every field type to a Validator. Validation of one element
// of a field runs through a Context which carries the resolved rule, the
// element index, the shared ErrorBag and a lookup for cross-field checks:
//
//	engine := validator.New()
//	bag := validator.NewErrorBag()
//	c := engine.NewContext(rule, 0, bag, lookup)
//	if !engine.Validate(c, value) {
//		if err := c.Err(); err != nil {
//			return err // fatal, the whole execution stops
//		}
//	}
//
// Validators share the same shape: an empty value fails only when the field
// is required, type checks run next, then the limiting rules (min, max, gt,
// lt, first violation wins) and the pattern rules (regex, regexAll, regexAny,
// regexNone). A shouldMatch comparison closes every check.
//
// Messages support the placeholders {_this} (field name), {this} and {value}
// (the quoted value) and {_index} (one based element position). Each recorded
// ValidationError also carries a translation key such as validation.min.
//
// File types validate the upload attached with Context.WithUpload. The
// content is sniffed through a file.Detector, compared with the claimed
// extension and the accepted mimes, and optionally relocated to a moveTo
// directory under a random name.
//
// The ErrorBag keeps the first message recorded for a field and is safe for
// concurrent writers. Its Err method returns ValidationErrors, which satisfy
// the error interface and can be recovered with ExtractValidationErrors.
package validator
