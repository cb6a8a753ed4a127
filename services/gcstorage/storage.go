package gcstorage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"patternmine/filestore"
)

var _ filestore.FileManager = (*GCSDriver)(nil)

type GCSDriver struct {
	client     *storage.Client
	BucketName string
}

func New(bucketName string) (*GCSDriver, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	d := &GCSDriver{
		BucketName: bucketName,
		client:     client,
	}
	return d, nil
}

func (gcsd *GCSDriver) Create(dir, fileName string, reader io.ReadSeeker) error {
	ctx := context.Background()
	obj := gcsd.client.Bucket(gcsd.BucketName).Object(dir + fileName)
	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, reader); err != nil {
		return err
	}
	return w.Close()
}

func (gcsd *GCSDriver) Get(dir, fileName string) (io.ReadCloser, error) {
	ctx := context.Background()
	obj := gcsd.client.Bucket(gcsd.BucketName).Object(dir + fileName)
	rc, err := obj.NewReader(ctx)
	return rc, err
}

func (gcsd *GCSDriver) GetTopicFilePathAndName(topicId uint64) (string, string) {
	return "input/", fmt.Sprintf("topic-%d.txt", topicId)
}

func (gcsd *GCSDriver) GetVocabFilePathAndName() (string, string) {
	return "input/", "vocab.txt"
}

func (gcsd *GCSDriver) GetPatternFilePathAndName(topicId uint64) (string, string) {
	return "output/", fmt.Sprintf("pattern-%d.txt", topicId)
}

func (gcsd *GCSDriver) GetTreeDumpFilePathAndName(topicId uint64) (string, string) {
	return "output/", fmt.Sprintf("fptree-%d.txt", topicId)
}
