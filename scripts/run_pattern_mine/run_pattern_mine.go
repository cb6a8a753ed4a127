package main

import (
	"flag"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	C "patternmine/config"
	"patternmine/filestore"
	"patternmine/pattern"
	serviceDisk "patternmine/services/disk"
	serviceGCS "patternmine/services/gcstorage"
)

func main() {
	envFlag := flag.String("env", C.Development, "")
	bucketName := flag.String("bucket_name", "/usr/local/var/patternmine/local_disk", "Base dir (or bucket) holding input/ and output/")
	supportCountFlag := flag.Int("support_count", 400, "Minimum support count for a frequent itemset")
	numRoutinesFlag := flag.Int("num_routines", 1, "No of routines for top level mining")
	topicIdsFlag := flag.String("topic_ids", "1,2,3,4", "Comma separated list of topic file ids. ex: 1,2,6,9")
	dumpTreeFlag := flag.Bool("dump_tree", false, "Also write the serialized global tree per topic")

	flag.Parse()

	config := &C.Configuration{
		AppName:      "pattern_mine_job",
		Env:          *envFlag,
		BucketName:   *bucketName,
		SupportCount: *supportCountFlag,
		NumRoutines:  *numRoutinesFlag,
		DumpTree:     *dumpTreeFlag,
	}
	if err := C.InitConf(config); err != nil {
		log.WithError(err).Fatal("Failed to initialize config")
	}

	log.WithFields(log.Fields{
		"Env":          config.Env,
		"Bucket":       config.BucketName,
		"SupportCount": config.SupportCount,
		"NumRoutines":  config.NumRoutines,
		"TopicIds":     *topicIdsFlag,
	}).Infoln("Initialising")

	var fileManager filestore.FileManager
	var err error
	if config.Env == C.Development {
		fileManager = serviceDisk.New(config.BucketName)
	} else {
		fileManager, err = serviceGCS.New(config.BucketName)
		if err != nil {
			log.WithError(err).Fatal("Failed to init GCS client")
		}
	}

	topicIds, err := parseTopicIds(*topicIdsFlag)
	if err != nil {
		log.WithError(err).Fatal("Failed to parse topic ids")
	}

	for _, topicId := range topicIds {
		numTrans, numPatterns, err := pattern.MineTopicFile(fileManager, topicId,
			config.SupportCount, config.NumRoutines, config.DumpTree)
		if err != nil {
			log.WithFields(log.Fields{"TopicId": topicId, "err": err}).Fatal("Failed to mine topic file")
		}
		log.WithFields(log.Fields{
			"TopicId":      topicId,
			"Transactions": numTrans,
			"Patterns":     numPatterns,
		}).Info("Done with topic")
	}
}

func parseTopicIds(s string) ([]uint64, error) {
	ids := make([]uint64, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
