package disk

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"patternmine/filestore"
)

var _ filestore.FileManager = (*DiskDriver)(nil)

// DiskDriver keeps all topic, vocab and pattern files under one base
// directory, analogous to a bucket name.
type DiskDriver struct {
	baseDir string
}

func New(baseDir string) *DiskDriver {
	return &DiskDriver{baseDir: baseDir}
}

func MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (dd *DiskDriver) Create(path, fileName string, reader io.ReadSeeker) error {
	err := MkdirAll(path)
	if err != nil {
		log.WithError(err).Errorln("Failed to create dir")
		return err
	}

	if !strings.HasSuffix(path, "/") {
		path = path + "/"
	}
	file, err := os.Create(path + fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, reader)
	return err
}

// Get opens a file in read only mode.
// Caller should take care of closing the returned io.ReadCloser.
func (dd *DiskDriver) Get(path, fileName string) (io.ReadCloser, error) {
	log.WithFields(log.Fields{
		"Path":     path,
		"FileName": fileName,
	}).Debug("DiskDriver Opening file")

	if !strings.HasSuffix(path, "/") {
		path = path + "/"
	}
	file, err := os.OpenFile(path+fileName, os.O_RDONLY, 0444)
	return file, err
}

func (dd *DiskDriver) GetBucketName() string {
	return dd.baseDir
}

func (dd *DiskDriver) GetTopicFilePathAndName(topicId uint64) (string, string) {
	return fmt.Sprintf("%s/input/", dd.baseDir), fmt.Sprintf("topic-%d.txt", topicId)
}

func (dd *DiskDriver) GetVocabFilePathAndName() (string, string) {
	return fmt.Sprintf("%s/input/", dd.baseDir), "vocab.txt"
}

func (dd *DiskDriver) GetPatternFilePathAndName(topicId uint64) (string, string) {
	return fmt.Sprintf("%s/output/", dd.baseDir), fmt.Sprintf("pattern-%d.txt", topicId)
}

func (dd *DiskDriver) GetTreeDumpFilePathAndName(topicId uint64) (string, string) {
	return fmt.Sprintf("%s/output/", dd.baseDir), fmt.Sprintf("fptree-%d.txt", topicId)
}
