package validator

import (
	"strconv"
	"strings"
)

// Message placeholders resolved when an error is recorded.
const (
	PlaceholderField = "{_this}"
	PlaceholderThis  = "{this}"
	PlaceholderValue = "{value}"
	PlaceholderIndex = "{_index}"
)

// Default messages.
const (
	MsgRequired        = "{_this} is required"
	MsgInteger         = "{this} is not a valid integer"
	MsgPInteger        = "{this} is not a valid positive integer"
	MsgNInteger        = "{this} is not a valid negative integer"
	MsgIntegerRange    = "{this} is out of the integer range"
	MsgNumber          = "{this} is not a valid number"
	MsgPNumber         = "{this} is not a valid positive number"
	MsgNNumber         = "{this} is not a valid negative number"
	MsgMoney           = "{this} is not a valid amount"
	MsgDateFormat      = "{this} is not a valid date format"
	MsgDate            = "{this} is not a valid date"
	MsgEmail           = "{this} is not a valid email address"
	MsgURL             = "{this} is not a valid url"
	MsgChoice          = "{this} is not an acceptable choice"
	MsgBoolean         = "{this} is not a valid boolean value"
	MsgRegex           = "{this} is not a valid value"
	MsgRegexAll        = "{this} did not meet all expected formats"
	MsgRegexAny        = "{this} did not meet any of the expected formats"
	MsgRegexNone       = "{this} format not acceptable or contains some unwanted characters"
	MsgMismatch        = " did not match"
	MsgSpoofing        = "File extension spoofing detected"
	MsgMove            = "Error occured while moving uploaded file"
	MsgMultipleValues  = "{_this} does not accept multiple values"
	MsgAlreadyExists   = "{_this}:{this} already exists"
	MsgDoesNotExist    = "{_this}:{this} does not exist"
	MsgValidationFails = "{_this} is not valid"
)

// Comparative phrases of the limiting rules.
const (
	phraseMin = "should not be less than"
	phraseMax = "should not be greater than"
	phraseGt  = "should be greater than"
	phraseLt  = "should be less than"
)

// Render resolves message placeholders. The value is quoted.
func Render(tmpl, field, value string, index int) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	quoted := strconv.Quote(value)
	return strings.NewReplacer(
		PlaceholderField, field,
		PlaceholderThis, quoted,
		PlaceholderValue, quoted,
		PlaceholderIndex, strconv.Itoa(index+1),
	).Replace(tmpl)
}

// pick returns the custom message when set, else the default.
func pick(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}
