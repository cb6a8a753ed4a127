package pattern

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	fp "patternmine/fptree"
	"patternmine/filestore"
)

// 20 MB.
const maxLineBytes = 20 * 1024 * 1024

// CreateScannerFromReader returns a line scanner sized for wide transaction
// lines.
func CreateScannerFromReader(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, maxLineBytes)
	scanner.Buffer(buf, maxLineBytes)
	return scanner
}

// ReadTransactions parses one transaction per line, items as space separated
// vocabulary indices. Blank lines are skipped. Any malformed token fails the
// whole read; partial results are worse than a hard failure here.
func ReadTransactions(r io.Reader) ([][]int, error) {
	trns := make([][]int, 0)
	scanner := CreateScannerFromReader(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		items := make([]int, 0, len(fields))
		for _, f := range fields {
			itm, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Wrapf(err, "bad item token %q on line %d", f, lineNum)
			}
			if itm < 0 {
				return nil, errors.Errorf("negative item index %d on line %d", itm, lineNum)
			}
			items = append(items, itm)
		}
		trns = append(trns, items)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading transactions")
	}
	return trns, nil
}

// ReadVocab parses the index to term dictionary, one `index term` pair per
// line. Terms may contain spaces; everything after the index belongs to the
// term.
func ReadVocab(r io.Reader) (map[int]string, error) {
	vocab := make(map[int]string)
	scanner := CreateScannerFromReader(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.Errorf("malformed vocab line %d: %q", lineNum, line)
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "bad vocab index %q on line %d", fields[0], lineNum)
		}
		if _, ok := vocab[idx]; ok {
			return nil, errors.Errorf("duplicate vocab index %d on line %d", idx, lineNum)
		}
		vocab[idx] = strings.Join(fields[1:], " ")
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading vocab")
	}
	return vocab, nil
}

// WritePatterns renders mined itemsets as `support<TAB>term term ...`, one
// line each, in the order given (SortPatterns puts highest support first).
// An item missing from the vocabulary fails the run.
func WritePatterns(w io.Writer, patterns []fp.ConditionalPattern, vocab map[int]string) error {
	bw := bufio.NewWriter(w)
	for _, pt := range patterns {
		terms := make([]string, 0, len(pt.Items))
		for _, itm := range pt.Items {
			term, ok := vocab[itm]
			if !ok {
				return errors.Errorf("item index %d missing from vocab", itm)
			}
			terms = append(terms, term)
		}
		line := fmt.Sprintf("%d\t%s\n", pt.Count, strings.Join(terms, " "))
		if _, err := bw.WriteString(line); err != nil {
			log.WithFields(log.Fields{"line": line, "err": err}).Error("Unable to write pattern line.")
			return err
		}
	}
	return bw.Flush()
}

// MineTopicFile mines one topic dataset end to end: read the transactions and
// the vocab through the file manager, mine all itemsets meeting minSupport,
// write the pattern file. Returns the number of transactions read and the
// number of itemsets written.
func MineTopicFile(fm filestore.FileManager, topicId uint64, minSupport, numRoutines int, dumpTree bool) (int, int, error) {
	trns, err := readTopicTransactions(fm, topicId)
	if err != nil {
		return 0, 0, err
	}
	vocab, err := readVocabFile(fm)
	if err != nil {
		return 0, 0, err
	}

	patterns, err := fp.MineFrequentItemsetsParallel(trns, minSupport, numRoutines)
	if err != nil {
		return 0, 0, err
	}

	var buf bytes.Buffer
	if err := WritePatterns(&buf, patterns, vocab); err != nil {
		return 0, 0, err
	}
	dir, name := fm.GetPatternFilePathAndName(topicId)
	if err := fm.Create(dir, name, bytes.NewReader(buf.Bytes())); err != nil {
		return 0, 0, errors.Wrapf(err, "writing pattern file %s%s", dir, name)
	}

	if dumpTree {
		if err := dumpTopicTree(fm, topicId, trns, minSupport); err != nil {
			return 0, 0, err
		}
	}

	log.WithFields(log.Fields{
		"TopicId":      topicId,
		"Transactions": len(trns),
		"Patterns":     len(patterns),
	}).Info("Mined topic file")
	return len(trns), len(patterns), nil
}

func readTopicTransactions(fm filestore.FileManager, topicId uint64) ([][]int, error) {
	dir, name := fm.GetTopicFilePathAndName(topicId)
	rc, err := fm.Get(dir, name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening topic file %s%s", dir, name)
	}
	defer rc.Close()
	return ReadTransactions(rc)
}

func readVocabFile(fm filestore.FileManager) (map[int]string, error) {
	dir, name := fm.GetVocabFilePathAndName()
	rc, err := fm.Get(dir, name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening vocab file %s%s", dir, name)
	}
	defer rc.Close()
	return ReadVocab(rc)
}

// dumpTopicTree serializes the global tree of one topic next to its pattern
// file, for inspection.
func dumpTopicTree(fm filestore.FileManager, topicId uint64, trns [][]int, minSupport int) error {
	counts := fp.CountItems(trns, minSupport)
	tr, err := fp.BuildTree(trns, counts)
	if err != nil {
		return err
	}
	lines, err := tr.Serialize()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteString("\n")
	}
	dir, name := fm.GetTreeDumpFilePathAndName(topicId)
	return fm.Create(dir, name, bytes.NewReader(buf.Bytes()))
}
