package fptree

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Sentinel items in the serialized stream. levelMark closes a tree level,
// childMark closes the children of one node within a level. Real items are
// vocabulary indices and never negative.
const (
	levelMark = -2
	childMark = -3
)

// TreeNode is the line format of one serialized node.
type TreeNode struct {
	Item  int `json:"it"`
	Count int `json:"ct"`
}

type customQueue struct {
	queue []*node
	lock  sync.RWMutex
}

func (c *customQueue) Enqueue(n *node) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.queue = append(c.queue, n)
}

func (c *customQueue) Dequeue() error {
	if len(c.queue) > 0 {
		c.lock.Lock()
		defer c.lock.Unlock()
		c.queue = c.queue[1:]
		return nil
	}
	return fmt.Errorf("pop error: queue is empty")
}

func (c *customQueue) Front() (*node, error) {
	if len(c.queue) > 0 {
		c.lock.Lock()
		defer c.lock.Unlock()
		return c.queue[0], nil
	}
	return nil, fmt.Errorf("peek error: queue is empty")
}

func (c *customQueue) Size() int {
	return len(c.queue)
}

func (c *customQueue) DequeFront() (*node, error) {
	topNode, err := c.Front()
	if err != nil {
		return nil, err
	}
	err = c.Dequeue()
	if err != nil {
		return nil, err
	}
	return topNode, nil
}

func makeTreeNode(n *node) TreeNode {
	var t TreeNode
	if n.IsRoot {
		t.Item = rootItem
		t.Count = -1
	} else {
		t.Item = n.Item
		t.Count = n.Counter
	}
	return t
}

func makeStringFromNode(n *node) (string, error) {
	tnode := makeTreeNode(n)
	bytes, err := json.Marshal(tnode)
	if err != nil {
		log.Errorf("unable to marshal node :%v", n)
		return "", err
	}
	return string(bytes), nil
}

// Serialize walks the tree breadth first and renders one JSON line per node,
// with sentinel lines closing each level and each sibling group.
func (t Tree) Serialize() ([]string, error) {
	nodeListString := make([]string, 0)

	if len(t.Root.NextMap) == 0 {
		return []string{}, nil
	}

	treeNodeList, err := serializeHelper(t.Root)
	if err != nil {
		return []string{}, err
	}

	for _, nd := range treeNodeList {
		ndString, err := makeStringFromNode(nd)
		if err != nil {
			return nil, err
		}
		nodeListString = append(nodeListString, ndString)
	}
	return nodeListString, nil
}

// orderedChildren keeps the serialized stream deterministic.
func orderedChildren(n *node) []*node {
	keys := make([]int, 0, len(n.NextMap))
	for k := range n.NextMap {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	children := make([]*node, 0, len(keys))
	for _, k := range keys {
		children = append(children, n.NextMap[k])
	}
	return children
}

func serializeHelper(root *node) ([]*node, error) {
	nodeQueue := &customQueue{queue: make([]*node, 0)}
	nodeList := make([]*node, 0)

	sentinelNode := InitNode(levelMark, -2)
	childNode := InitNode(childMark, -2)
	nodeQueue.Enqueue(root)
	nodeQueue.Enqueue(sentinelNode)

	for nodeQueue.Size() > 0 {
		frontNode, err := nodeQueue.DequeFront()
		if err != nil {
			return nil, err
		}

		switch frontNode.Item {
		case levelMark:
			nodeList = append(nodeList, sentinelNode)
			if nodeQueue.Size() != 0 {
				nodeQueue.Enqueue(sentinelNode)
			}
		case childMark:
			nodeList = append(nodeList, childNode)
		default:
			nodeList = append(nodeList, frontNode)
			for _, nd := range orderedChildren(frontNode) {
				nodeQueue.Enqueue(nd)
			}
			fd, err := nodeQueue.Front()
			if err != nil {
				return nil, err
			}
			if fd.Item != levelMark {
				nodeQueue.Enqueue(childNode)
			}
		}
	}
	return nodeList, nil
}

func WriteTreeToFile(fname string, nodes []string) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	w := bufio.NewWriter(file)

	for _, nd := range nodes {
		if _, err := w.WriteString(fmt.Sprintf("%s\n", nd)); err != nil {
			log.WithFields(log.Fields{"line": nd, "err": err}).Error("Unable to write to file.")
			return err
		}
	}
	return w.Flush()
}

func SerializeTreeToFile(tr Tree, fname string) error {
	nodeStrings, err := tr.Serialize()
	if err != nil {
		log.Error("Unable to serialize tree")
		return err
	}
	if err := WriteTreeToFile(fname, nodeStrings); err != nil {
		log.Error("Unable to write serialized tree to file")
		return err
	}
	return nil
}

func ReadNodesFromFile(fname string) ([]*node, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	nodes := make([]*node, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		tmpNode, err := createNodeFromTreeNodeString(line)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, tmpNode)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Debugf("number of nodes to process:%d", len(nodes))
	return nodes, nil
}

func createNodeFromTreeNodeString(data string) (*node, error) {
	var t TreeNode
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		log.WithFields(log.Fields{"line": data, "err": err}).Error("Read failed")
		return nil, err
	}
	return InitNode(t.Item, t.Count), nil
}

func deserialize(data []*node) (Tree, error) {
	t := InitTree()
	if len(data) == 0 {
		return t, nil
	}
	log.Debugf("entering deserialize :%d", len(data))
	if err := deserializeHelper(data, &t); err != nil {
		return Tree{}, err
	}
	return t, nil
}

func deserializeHelper(data []*node, tr *Tree) error {
	prevLevel := &customQueue{queue: make([]*node, 0)}
	currentLevel := &customQueue{queue: make([]*node, 0)}
	var err error

	parentNode := tr.Root
	currentLevel.Enqueue(tr.Root)

	for idx := 1; idx < len(data); idx++ {
		tmpNode := data[idx]
		switch tmpNode.Item {
		case levelMark:
			if prevLevel.Size() != 0 {
				return fmt.Errorf("prev level not empty :%d", prevLevel.Size())
			}
			for currentLevel.Size() != 0 {
				nd, err := currentLevel.DequeFront()
				if err != nil {
					return err
				}
				prevLevel.Enqueue(nd)
			}
			if prevLevel.Size() > 0 {
				parentNode, err = prevLevel.DequeFront()
				if err != nil {
					return err
				}
			}
		case childMark:
			if prevLevel.Size() > 0 {
				parentNode, err = prevLevel.DequeFront()
				if err != nil {
					return err
				}
			}
		default:
			currentLevel.Enqueue(tmpNode)
			parentNode.NextMap[tmpNode.Item] = tmpNode
			tmpNode.ParentNode = parentNode
			tr.CountMap[tmpNode.Item] += tmpNode.Counter
			if err := tr.UpdateHeaderTable(tmpNode); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateTreeFromFile rebuilds a tree from its serialized dump, header table
// included.
func CreateTreeFromFile(fname string) (Tree, error) {
	nodes, err := ReadNodesFromFile(fname)
	if err != nil {
		return Tree{}, err
	}
	tree, err := deserialize(nodes)
	if err != nil {
		return Tree{}, err
	}
	return tree, nil
}
