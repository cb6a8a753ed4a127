package disk

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndGet(t *testing.T) {
	dd := New(t.TempDir())
	dir, name := dd.GetPatternFilePathAndName(1)

	content := []byte("4\tapple\n")
	err := dd.Create(dir, name, bytes.NewReader(content))
	assert.Nil(t, err)

	rc, err := dd.Get(dir, name)
	assert.Nil(t, err)
	defer rc.Close()
	got, err := ioutil.ReadAll(rc)
	assert.Nil(t, err)
	assert.Equal(t, content, got)
}

func TestGetMissingFile(t *testing.T) {
	dd := New(t.TempDir())
	dir, name := dd.GetTopicFilePathAndName(42)
	_, err := dd.Get(dir, name)
	assert.NotNil(t, err)
}

func TestTopicFilePath(t *testing.T) {
	dd := New("/usr/local/var/patternmine")
	dir, name := dd.GetTopicFilePathAndName(3)
	assert.Equal(t, "/usr/local/var/patternmine/input/", dir)
	assert.Equal(t, "topic-3.txt", name)
}

func TestVocabFilePath(t *testing.T) {
	dd := New("/usr/local/var/patternmine")
	dir, name := dd.GetVocabFilePathAndName()
	assert.Equal(t, "/usr/local/var/patternmine/input/", dir)
	assert.Equal(t, "vocab.txt", name)
}

func TestPatternFilePath(t *testing.T) {
	dd := New("/usr/local/var/patternmine")
	dir, name := dd.GetPatternFilePathAndName(7)
	assert.Equal(t, "/usr/local/var/patternmine/output/", dir)
	assert.Equal(t, fmt.Sprintf("pattern-%d.txt", 7), name)
}

func TestTreeDumpFilePath(t *testing.T) {
	dd := New("/usr/local/var/patternmine")
	dir, name := dd.GetTreeDumpFilePathAndName(7)
	assert.Equal(t, "/usr/local/var/patternmine/output/", dir)
	assert.Equal(t, "fptree-7.txt", name)
}
