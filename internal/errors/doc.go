// Package errors provides structured errors for the spell index.
//
// Two families of codes live here:
//   - general codes (InvalidArgument, NotFound, Internal, ...) returned by
//     constructors, repositories and loaders
//   - indexing issue codes (UnknownSchoolCode, MissingReferencedEntity, ...)
//     that are never returned from the registry but recorded as diagnostics
//
// # Basic Usage
//
//	err := errors.NotFoundf("entity %s not found", key)
//	err := errors.MissingReferencedEntity(spellKey, entityKey)
//
// Wrapping errors:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save corpus")
//	}
//
// Checking:
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//
//	code := errors.GetCode(err)
package errors
