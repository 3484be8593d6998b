// Package naming provides shared case conversion utilities.
//
// Functions split their input into words at separators (underscore, hyphen,
// dot, slash, space and brackets), at lower-to-upper transitions and at the
// end of an initialism, so "APIClient" is the two words "API" and "Client".
//
// These functions are used for:
//   - Contract package: member naming policies (snake case)
//   - Generator package: schema naming strategies and template helpers
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
