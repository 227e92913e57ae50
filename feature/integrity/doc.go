// Package integrity checks that the infrastructure the service relies on is
// in the expected shape.
//
// # Checks Provided
//
//   - Structure: the bucket exists and holds the imports/ and reports/ folders.
//   - Imports: lists CSV files under imports/ and flags those without a report.
//   - Schema: every table owned by the service has the columns its model expects.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs the structure check (supports ?fix=true).
//   - GET /integrity/imports : Lists pending imports.
//   - GET /integrity/schema : Runs the schema check.
package integrity
