package assignment

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/edgepart/internal/configdoc"
	"github.com/arloliu/edgepart/internal/logger"
	"github.com/arloliu/edgepart/types"
)

// Publisher writes a vertex assignment into a configuration document.
type Publisher struct {
	logger types.Logger
}

// NewPublisher creates a configuration document publisher.
//
// Parameters:
//   - l: Logger for publishing events (nop logger if nil)
//
// Returns:
//   - *Publisher: A new publisher instance
func NewPublisher(l types.Logger) *Publisher {
	if l == nil {
		l = logger.NewNop()
	}

	return &Publisher{logger: l}
}

// Publish sets worker_config.vertex_assignment and worker_config.num_workers.
//
// The vertex_assignment mapping lists every vertex in ascending order with its
// "worker-<n>" label. worker_config is created if absent; all other keys keep
// their value and position.
func (p *Publisher) Publish(doc *configdoc.Document, asg *types.VertexAssignment) error {
	n := asg.VertexCount()
	pairs := make([]*yaml.Node, 0, 2*n)
	for v := range n {
		pairs = append(pairs, configdoc.IntNode(v), configdoc.StringNode(types.WorkerLabel(asg.Worker(v))))
	}

	if err := doc.Set(configdoc.MappingNode(pairs...), configdoc.KeyWorkerConfig, configdoc.KeyVertexAssignment); err != nil {
		return err
	}

	return doc.SetInt(asg.WorkerCount(), configdoc.KeyWorkerConfig, configdoc.KeyNumWorkers)
}

// PublishFile loads the document at path, publishes asg into it and saves it.
//
// Parameters:
//   - path: Configuration document to patch
//   - asg: The assignment to publish
//
// Returns:
//   - bool: false if the document does not exist and publishing was skipped
//   - error: ErrIO or ErrInvalidConfig on load or save failure
func (p *Publisher) PublishFile(path string, asg *types.VertexAssignment) (bool, error) {
	doc, err := configdoc.Load(path)
	if err != nil {
		if errors.Is(err, types.ErrConfigTargetMissing) {
			p.logger.Warn("configuration document not found, skipping assignment publish", "path", path)
			return false, nil
		}

		return false, err
	}

	if err := p.Publish(doc, asg); err != nil {
		return false, fmt.Errorf("publish assignment to %s: %w", path, err)
	}
	if err := doc.Save(path); err != nil {
		return false, err
	}

	p.logger.Info("published vertex assignment",
		"path", path,
		"vertices", asg.VertexCount(),
		"workers", asg.WorkerCount(),
	)

	return true, nil
}
