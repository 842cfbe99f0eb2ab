// Package ingest creates collections and imports csv or json records into them.
package ingest

import (
	"context"
	"fmt"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	doming "github.com/raywlfun/WeaviateDBCluster/internal/domain/ingest"
	"github.com/raywlfun/WeaviateDBCluster/internal/metrics"
)

// DefaultBatchSize is the number of objects sent per batch request.
const DefaultBatchSize = 1000

// CreateRequest names a new collection and the records to fill it with.
type CreateRequest struct {
	Name       string
	Vectorizer string
	Format     string
	Data       []byte
}

// Created is the outcome of creating and filling a collection.
type Created struct {
	Info   doming.Info   `json:"collection"`
	Report doming.Report `json:"import"`
}

// Service handles collection creation and record imports.
type Service struct {
	cols        CollectionStore
	writer      BatchWriter
	headers     map[string]string
	replication int
	batchSize   int
}

// Option configures a Service.
type Option func(*Service)

// WithBatchSize overrides DefaultBatchSize. Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// New creates an ingest service. headers are the provider keys configured
// for the cluster connection; replication below 1 selects the default.
func New(cols CollectionStore, writer BatchWriter, headers map[string]string, replication int, opts ...Option) *Service {
	if replication < 1 {
		replication = doming.DefaultReplicationFactor
	}
	s := &Service{
		cols:        cols,
		writer:      writer,
		headers:     headers,
		replication: replication,
		batchSize:   DefaultBatchSize,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create validates the request, creates the collection and imports the
// records. Nothing is created when any check fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Created, error) {
	if err := doming.ValidateName(req.Name); err != nil {
		return Created{}, err
	}
	vec, err := doming.ParseVectorizer(req.Vectorizer)
	if err != nil {
		return Created{}, err
	}
	if err := vec.CheckKey(s.headers); err != nil {
		return Created{}, err
	}
	objs, err := prepare(req.Format, req.Data)
	if err != nil {
		return Created{}, err
	}

	exists, err := s.cols.CollectionExists(ctx, req.Name)
	if err != nil {
		return Created{}, fmt.Errorf("check collection: %w", err)
	}
	if exists {
		return Created{}, fmt.Errorf("%w: Collection '%s' already exists", domain.ErrAlreadyExists, req.Name)
	}

	spec := doming.CollectionSpec{Name: req.Name, Vectorizer: vec, ReplicationFactor: s.replication}
	if err := s.cols.CreateCollection(ctx, spec); err != nil {
		return Created{}, fmt.Errorf("create collection: %w", err)
	}

	report := s.importObjects(ctx, req.Name, objs)
	info, err := s.cols.CollectionInfo(ctx, req.Name)
	if err != nil {
		return Created{}, fmt.Errorf("collection info: %w", err)
	}
	return Created{Info: info, Report: report}, nil
}

// Upload imports records into an existing collection.
func (s *Service) Upload(ctx context.Context, collection, format string, data []byte) (doming.Report, error) {
	objs, err := prepare(format, data)
	if err != nil {
		return doming.Report{}, err
	}
	exists, err := s.cols.CollectionExists(ctx, collection)
	if err != nil {
		return doming.Report{}, fmt.Errorf("check collection: %w", err)
	}
	if !exists {
		return doming.Report{}, fmt.Errorf("%w: Collection '%s' does not exist", domain.ErrNotFound, collection)
	}
	return s.importObjects(ctx, collection, objs), nil
}

// Info reports the properties and object count of collection.
func (s *Service) Info(ctx context.Context, collection string) (doming.Info, error) {
	info, err := s.cols.CollectionInfo(ctx, collection)
	if err != nil {
		return doming.Info{}, fmt.Errorf("collection info: %w", err)
	}
	return info, nil
}

func prepare(format string, data []byte) ([]doming.Object, error) {
	f, err := doming.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	recs, err := doming.ParseRecords(f, data)
	if err != nil {
		return nil, err
	}
	return doming.Prepare(recs)
}

// importObjects sends objs in chunks of batchSize. A chunk the cluster
// rejects as a whole marks each of its objects failed; later chunks still run.
func (s *Service) importObjects(ctx context.Context, collection string, objs []doming.Object) doming.Report {
	report := doming.Report{Total: len(objs), Failures: []doming.Failure{}}
	for start := 0; start < len(objs); start += s.batchSize {
		end := min(start+s.batchSize, len(objs))
		chunk := objs[start:end]

		failures, err := s.writer.BatchObjects(ctx, collection, chunk)
		if err != nil {
			for i, o := range chunk {
				report.Failures = append(report.Failures, doming.Failure{Index: start + i, ID: o.ID, Message: err.Error()})
			}
			continue
		}
		for _, f := range failures {
			f.Index += start
			report.Failures = append(report.Failures, f)
		}
	}
	report.Imported = report.Total - len(report.Failures)
	metrics.BatchObjectsTotal.WithLabelValues("imported").Add(float64(report.Imported))
	metrics.BatchObjectsTotal.WithLabelValues("failed").Add(float64(len(report.Failures)))
	return report
}
