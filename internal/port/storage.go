package port

import "context"

// ObjectDownloader abstracts reading an object from cloud object storage.
type ObjectDownloader interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}
