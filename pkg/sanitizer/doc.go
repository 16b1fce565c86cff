// Package sanitizer holds the value transforms applied to accepted form input.
//
// Every helper is a small stateless function and safe for concurrent use:
//
//   - Strings: Trim, Minimize, DecodeURL, case conversion (ToUpper, ToLower,
//     Capitalize, Titleize) and identifier styles (ToSnakeCase, ToCamelCase,
//     ToKebabCase).
//   - Markup: StripTags with an allow-list of elements, RemoveNullBytes and
//     RemoveControlChars.
//   - Formats: FilterEmail and FilterURL drop characters outside the allowed sets.
//   - Numbers: ToNumeric parses the leading number of a string, ToInt, ToFloat
//     and ToBool cast it.
//   - Inflection: Pluralize, Singularize and Ordinalize.
//   - Hashing: Hash and CompareHash wrap bcrypt.
//
// Apply and Compose chain transforms of the same type:
//
//	clean := sanitizer.Compose(
//		sanitizer.DecodeURL,
//		func(s string) string { return sanitizer.StripTags(s, "p,<br>") },
//		sanitizer.Minimize,
//		sanitizer.Trim,
//	)
//	clean("  <p>Hello</p>%20<b>world</b>  ") // "<p>Hello</p> world"
package sanitizer
