package errors

// Code represents an error code
type Code string

// General error codes
const (
	CodeOK              Code = "OK"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
	CodeUnavailable     Code = "UNAVAILABLE"
	CodeUnimplemented   Code = "UNIMPLEMENTED"
)

// Indexing issue codes. These never abort a scan; they are recorded and the
// offending input is either defaulted or dropped.
const (
	// CodeUnknownSchoolCode means a spell bundle carried a school letter we
	// do not recognize. The record is created with SchoolNone.
	CodeUnknownSchoolCode Code = "UNKNOWN_SCHOOL_CODE"

	// CodeUnknownDescriptorSyntax means descriptor text did not match the
	// grammar. The grant is stored without specificity.
	CodeUnknownDescriptorSyntax Code = "UNKNOWN_DESCRIPTOR_SYNTAX"

	// CodeMissingReferencedEntity means a spell or referencing entity could
	// not be resolved against the catalog. The grant is dropped.
	CodeMissingReferencedEntity Code = "MISSING_REFERENCED_ENTITY"

	// CodeAmbiguousSpecificOverwrite means a second, different specific
	// descriptor arrived for an already-specific slot and was discarded.
	CodeAmbiguousSpecificOverwrite Code = "AMBIGUOUS_SPECIFIC_OVERWRITE"

	// CodeInvalidSpellLevel means a spell bundle level was outside "0".."9".
	// The record is created at level 0.
	CodeInvalidSpellLevel Code = "INVALID_SPELL_LEVEL"

	// CodeInvalidCatalogRecord means a corpus spell or entity was rejected by
	// the catalog. The record is skipped and references to it go missing.
	CodeInvalidCatalogRecord Code = "INVALID_CATALOG_RECORD"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// IsIssue reports whether the code is one of the non-fatal indexing issues.
func (c Code) IsIssue() bool {
	switch c {
	case CodeUnknownSchoolCode,
		CodeUnknownDescriptorSyntax,
		CodeMissingReferencedEntity,
		CodeAmbiguousSpecificOverwrite,
		CodeInvalidSpellLevel,
		CodeInvalidCatalogRecord:
		return true
	default:
		return false
	}
}
