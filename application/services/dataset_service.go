package services

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/xinran093/synthesisAI-V2/domain/core/aggregates"
	"github.com/xinran093/synthesisAI-V2/domain/core/entities"
	"github.com/xinran093/synthesisAI-V2/domain/services"
	"github.com/xinran093/synthesisAI-V2/pkg/errors"
	"github.com/xinran093/synthesisAI-V2/pkg/observability"
)

// Link is one weighted undirected edge in the shape the rendering
// collaborator consumes.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Network is the node/link view of the derived graph.
type Network struct {
	Nodes []NodeView `json:"nodes"`
	Links []Link     `json:"links"`
}

// NodeView is one participant in the rendering shape.
type NodeView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CommentCount int    `json:"commentCount"`
}

// GraphData is the full derived artifact for one dataset: the interaction
// network, the concatenated corpus and its ranked terms.
type GraphData struct {
	Network       Network              `json:"network"`
	WordCloudText string               `json:"wordCloudText"`
	Terms         []services.TermCount `json:"terms"`
}

// DatasetService ingests tabular discussion datasets and derives the
// participant-interaction graph and ranked term corpus. Each ingestion builds
// a fresh graph that fully replaces the prior one; concurrent loads are
// serialized so the last load wins.
type DatasetService struct {
	normalizer *services.RecordNormalizer
	builder    *services.GraphBuilder
	analyzer   *services.TextAnalyzer
	logger     *zap.Logger
	metrics    *observability.Collector

	mu      sync.RWMutex
	current *GraphData
}

// NewDatasetService creates a dataset service.
func NewDatasetService(logger *zap.Logger, metrics *observability.Collector) *DatasetService {
	return &DatasetService{
		normalizer: services.NewRecordNormalizer(),
		builder:    services.NewGraphBuilder(),
		analyzer:   services.NewTextAnalyzer(),
		logger:     logger,
		metrics:    metrics,
	}
}

// IngestCSV reads one CSV dataset (header row required), normalizes every
// row, rebuilds the graph and corpus, and replaces the current graph data.
func (s *DatasetService) IngestCSV(ctx context.Context, r io.Reader) (*GraphData, error) {
	comments, err := s.readComments(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "dataset ingestion canceled")
	}

	graph, corpus := s.builder.Build(comments)
	if err := graph.Validate(); err != nil {
		return nil, errors.Wrap(err, "derived graph failed validation")
	}

	data := &GraphData{
		Network:       networkView(graph),
		WordCloudText: corpus,
		Terms:         s.analyzer.Rank(corpus, services.DefaultRankLimit),
	}
	s.current = data

	if s.metrics != nil {
		s.metrics.DatasetsIngested.Inc()
		s.metrics.CommentsNormalized.Add(float64(len(comments)))
	}
	s.logger.Info("dataset ingested",
		zap.Int("comments", len(comments)),
		zap.Int("participants", graph.NodeCount()),
		zap.Int("interactions", graph.EdgeCount()),
	)

	return data, nil
}

// IngestFile ingests the dataset at path. Used for the startup dataset and
// for hot reloads.
func (s *DatasetService) IngestFile(ctx context.Context, path string) (*GraphData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewNotFoundError("dataset file").WithCause(err)
	}
	defer f.Close()

	return s.IngestCSV(ctx, f)
}

// Current returns the most recently derived graph data, if any dataset has
// been ingested.
func (s *DatasetService) Current() (*GraphData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// readComments parses the CSV stream into normalized comments. Individual
// malformed rows degrade gracefully; only an unreadable stream or a missing
// header is an error.
func (s *DatasetService) readComments(r io.Reader) ([]entities.Comment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewValidationError("dataset is empty or has no header row").WithCause(err)
	}

	comments := make([]entities.Comment, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// One unparseable row does not fail the dataset.
			s.logger.Warn("skipping malformed csv row", zap.Error(err))
			continue
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		comments = append(comments, s.normalizer.Normalize(row))
	}

	return comments, nil
}

// networkView flattens the aggregate into the node/link shape the rendering
// collaborator and the persistence sink share.
func networkView(graph *aggregates.Graph) Network {
	participants := graph.Participants()
	nodes := make([]NodeView, 0, len(participants))
	for _, p := range participants {
		nodes = append(nodes, NodeView{ID: p.ID, Name: p.DisplayName, CommentCount: p.CommentCount})
	}

	interactions := graph.Interactions()
	links := make([]Link, 0, len(interactions))
	for _, edge := range interactions {
		links = append(links, Link{
			Source: edge.Key.First(),
			Target: edge.Key.Second(),
			Weight: edge.Weight,
		})
	}

	return Network{Nodes: nodes, Links: links}
}
