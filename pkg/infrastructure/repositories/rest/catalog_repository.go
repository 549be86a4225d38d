package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mbarret/expertdesk/pkg/domain/entities"
	"github.com/mbarret/expertdesk/pkg/domain/repositories"
)

type catalogEntryDTO struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Code   string `json:"code"`
	Active bool   `json:"active"`
}

func (d catalogEntryDTO) toEntity() entities.CatalogEntry {
	return entities.CatalogEntry{ID: d.ID, Label: d.Label, Code: d.Code, Active: d.Active}
}

type createEntryPayload struct {
	Label string `json:"label"`
}

// CatalogRepository reads and extends the reference lists over the REST API.
type CatalogRepository struct {
	client *Client
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a catalog repository over the client.
func NewCatalogRepository(client *Client) *CatalogRepository {
	return &CatalogRepository{client: client}
}

func (r *CatalogRepository) EntryByID(
	ctx context.Context,
	kind entities.CatalogKind,
	id int64,
) (entities.CatalogEntry, error) {
	var dto catalogEntryDTO
	path := fmt.Sprintf("/catalogs/%s/%d", kind.Slug(), id)
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &dto); err != nil {
		return entities.CatalogEntry{}, err
	}
	return dto.toEntity(), nil
}

func (r *CatalogRepository) Page(
	ctx context.Context,
	kind entities.CatalogKind,
	filter entities.CatalogFilter,
) ([]entities.CatalogEntry, error) {
	query := url.Values{}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filter.PageSize))
	}
	path := "/catalogs/" + kind.Slug()
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var dtos []catalogEntryDTO
	if err := r.client.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]entities.CatalogEntry, len(dtos))
	for i, dto := range dtos {
		out[i] = dto.toEntity()
	}
	return out, nil
}

func (r *CatalogRepository) CreateEntry(
	ctx context.Context,
	kind entities.CatalogKind,
	label string,
) (entities.CatalogEntry, error) {
	var dto catalogEntryDTO
	path := "/catalogs/" + kind.Slug()
	if err := r.client.doJSON(ctx, http.MethodPost, path, createEntryPayload{Label: label}, &dto); err != nil {
		return entities.CatalogEntry{}, err
	}
	return dto.toEntity(), nil
}
