// Package retry runs an operation again after transient failures.
//
// [Do] retries with a doubling delay until the operation succeeds, returns
// an error marked with [Permanent], runs out of attempts, or the context
// is done. The S3 publisher uses it for uploads.
package retry
