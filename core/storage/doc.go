// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so storage
// interactions can be mocked in tests (see core/storage/mocks). Transaction
// import files are read from the configured bucket and import reports are
// written back to it.
//
// # Helpers
//
//   - EnsureBucket: creates the bucket on first start.
//   - ReadObject: downloads an object into memory.
//   - PutJSON: uploads a JSON document.
//   - ListKeys: lists object names under a prefix, filtered by extension.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "imports/checking.csv")
package storage
