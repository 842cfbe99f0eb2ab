package weaviate

import (
	"context"
	"errors"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	doming "github.com/raywlfun/WeaviateDBCluster/internal/domain/ingest"
)

// CollectionExists reports whether collection is defined.
func (c *Client) CollectionExists(ctx context.Context, collection string) (bool, error) {
	err := c.sdkCall("collection_exists", domain.ErrNotFound, func() error {
		_, err := c.sdk.Schema().ClassGetter().WithClassName(collection).Do(ctx)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// CreateCollection defines a new collection with the given vectorizer and replication.
func (c *Client) CreateCollection(ctx context.Context, spec doming.CollectionSpec) error {
	class := &models.Class{
		Class:             spec.Name,
		Vectorizer:        string(spec.Vectorizer),
		ReplicationConfig: &models.ReplicationConfig{Factor: int64(spec.ReplicationFactor)},
	}
	return c.sdkCall("create_collection", nil, func() error {
		return c.sdk.Schema().ClassCreator().WithClass(class).Do(ctx)
	})
}

// CollectionInfo returns the vectorizer, properties and object count of collection.
func (c *Client) CollectionInfo(ctx context.Context, collection string) (doming.Info, error) {
	info := doming.Info{Name: collection}
	err := c.sdkCall("collection_info", domain.ErrNotFound, func() error {
		cls, err := c.sdk.Schema().ClassGetter().WithClassName(collection).Do(ctx)
		if err != nil {
			return err
		}
		info.Vectorizer = cls.Vectorizer
		info.Properties = schemaProperties(cls.Properties)
		return nil
	})
	if err != nil {
		return doming.Info{}, err
	}
	if info.ObjectCount, err = c.CountObjects(ctx, collection, ""); err != nil {
		return doming.Info{}, err
	}
	return info, nil
}

// BatchObjects imports objs in one batch request. Objects the cluster rejects
// are returned as failures; err is set only when the whole request failed.
func (c *Client) BatchObjects(ctx context.Context, collection string, objs []doming.Object) ([]doming.Failure, error) {
	batch := make([]*models.Object, len(objs))
	for i, o := range objs {
		batch[i] = &models.Object{Class: collection, ID: strfmt.UUID(o.ID), Properties: o.Properties}
	}

	var failures []doming.Failure
	err := c.sdkCall("batch_objects", nil, func() error {
		results, err := c.sdk.Batch().ObjectsBatcher().WithObjects(batch...).Do(ctx)
		if err != nil {
			return err
		}
		for i, r := range results {
			if r.Result == nil || r.Result.Errors == nil || len(r.Result.Errors.Error) == 0 {
				continue
			}
			msgs := make([]string, 0, len(r.Result.Errors.Error))
			for _, e := range r.Result.Errors.Error {
				if e != nil {
					msgs = append(msgs, e.Message)
				}
			}
			id := r.ID.String()
			if id == "" && i < len(objs) {
				id = objs[i].ID
			}
			failures = append(failures, doming.Failure{Index: i, ID: id, Message: strings.Join(msgs, "; ")})
		}
		return nil
	})
	return failures, err
}
