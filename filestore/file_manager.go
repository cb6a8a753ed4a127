package filestore

import (
	"io"
)

// FileManager abstracts where topic datasets live and where mined pattern
// files go, so the mining job runs the same against local disk and cloud
// storage.
type FileManager interface {
	Create(dir, fileName string, reader io.ReadSeeker) error
	Get(path, fileName string) (io.ReadCloser, error)
	GetTopicFilePathAndName(topicId uint64) (string, string)
	GetVocabFilePathAndName() (string, string)
	GetPatternFilePathAndName(topicId uint64) (string, string)
	GetTreeDumpFilePathAndName(topicId uint64) (string, string)
}
