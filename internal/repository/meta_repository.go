package repository

import (
	"context"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

const seedMarkerKey = "seed"

// MetaRepository stores bookkeeping records such as the seed marker.
type MetaRepository struct {
	store docstore.Store
}

// NewMetaRepository constructs a MetaRepository.
func NewMetaRepository(store docstore.Store) *MetaRepository {
	return &MetaRepository{store: store}
}

// SeedMarker reads the seed marker. Returns docstore.ErrNotFound when no
// seed pass has completed yet.
func (r *MetaRepository) SeedMarker(ctx context.Context) (*models.SeedMarker, error) {
	doc, err := r.store.Get(ctx, CollectionMeta, seedMarkerKey)
	if err != nil {
		return nil, err
	}
	marker, err := decode[models.SeedMarker](seedMarkerKey, doc)
	if err != nil {
		return nil, err
	}
	return &marker, nil
}

// PutSeedMarker records a completed seed pass.
func (r *MetaRepository) PutSeedMarker(ctx context.Context, marker models.SeedMarker) error {
	data, err := encode(marker)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, CollectionMeta, seedMarkerKey, data)
}
