package backup

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
)

// GCS keeps backups as objects of a Google Cloud Storage bucket. It uses
// Application Default Credentials (gcloud auth application-default login).
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// OpenGCS connects to bucket. Objects are named prefix/name.
func OpenGCS(ctx context.Context, bucket, prefix string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, prefix: prefix}, nil
}

func (g *GCS) object(name string) *storage.ObjectHandle {
	return g.client.Bucket(g.bucket).Object(path.Join(g.prefix, name))
}

func (g *GCS) Put(ctx context.Context, name string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := g.object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write gs://%s/%s: %w", g.bucket, name, err)
	}
	// the upload is only done once the writer is closed.
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

func (g *GCS) Get(ctx context.Context, name string) ([]byte, error) {
	r, err := g.object(name).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", g.bucket, name, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Close releases the client.
func (g *GCS) Close() error { return g.client.Close() }
