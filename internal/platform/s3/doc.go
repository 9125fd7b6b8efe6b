// Package s3 publishes configuration bundles to S3 compatible object storage.
//
// Targets are written as s3://bucket/prefix URLs. Credentials come from the
// SV2WIZARD_S3_* environment variables when set and from the default AWS
// credential chain otherwise.
package s3
