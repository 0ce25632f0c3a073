package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"reuse/internal/cache"
	errs "reuse/internal/errors"
	"reuse/internal/model"
	"reuse/internal/repository"
)

const (
	itemListCacheKey = "items:all"
	itemListCacheTTL = time.Minute
)

// CreateItemInput is the validated item creation payload. The owner is
// always the authenticated caller, never a client-supplied field.
type CreateItemInput struct {
	Title       string
	Type        string
	Description *string
	ImageURL    *string
}

// ItemService exposes catalog operations.
type ItemService interface {
	List(ctx context.Context) ([]model.ItemWithOwner, error)
	Create(ctx context.Context, input CreateItemInput, ownerID uint) (*model.Item, error)
	Update(ctx context.Context, id, callerID uint, patch map[string]json.RawMessage) (*model.Item, error)
}

type itemService struct {
	items repository.ItemRepository
	cache *cache.Client
}

// NewItemService builds an ItemService with repository and cache.
func NewItemService(items repository.ItemRepository, cache *cache.Client) ItemService {
	return &itemService{items: items, cache: cache}
}

// List returns all items newest first with the owner's id and name.
// The result is cached briefly; every write invalidates the cache, and a
// Redis outage degrades to plain repository reads.
func (s *itemService) List(ctx context.Context) ([]model.ItemWithOwner, error) {
	if data, _ := s.cache.Get(ctx, itemListCacheKey); data != nil {
		var cached []model.ItemWithOwner
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]model.ItemWithOwner, 0, len(items))
	for _, item := range items {
		listings = append(listings, item.WithOwner())
	}

	if payload, err := json.Marshal(listings); err == nil {
		_ = s.cache.Set(ctx, itemListCacheKey, payload, itemListCacheTTL)
	}
	return listings, nil
}

func (s *itemService) Create(ctx context.Context, input CreateItemInput, ownerID uint) (*model.Item, error) {
	item := &model.Item{
		Title:       input.Title,
		Type:        input.Type,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		UserID:      ownerID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	_ = s.cache.Delete(ctx, itemListCacheKey)
	return item, nil
}

// Update applies a partial update to an owned item. The ownership check
// runs before field validation: a non-owner gets ErrForbidden even when
// the payload is malformed. Fields absent from the patch are untouched;
// explicit nulls clear the nullable columns.
func (s *itemService) Update(ctx context.Context, id, callerID uint, patch map[string]json.RawMessage) (*model.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, err
	}
	if item.UserID != callerID {
		return nil, errs.ErrForbidden
	}

	fields, err := itemPatchFields(patch)
	if err != nil {
		return nil, err
	}

	updated, err := s.items.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, itemListCacheKey)
	return updated, nil
}

// itemPatchFields validates the present patch keys and converts them to
// column assignments. Unknown keys are ignored.
func itemPatchFields(patch map[string]json.RawMessage) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if raw, ok := patch["title"]; ok {
		var title *string
		if err := json.Unmarshal(raw, &title); err != nil || title == nil || len(*title) < 2 {
			return nil, errs.NewValidation("Título muito curto")
		}
		fields["title"] = *title
	}

	if raw, ok := patch["type"]; ok {
		var typ *string
		if err := json.Unmarshal(raw, &typ); err != nil || typ == nil {
			return nil, errs.NewValidation("Tipo inválido")
		}
		fields["type"] = *typ
	}

	if raw, ok := patch["imageUrl"]; ok {
		var imageURL *string
		if err := json.Unmarshal(raw, &imageURL); err != nil {
			return nil, errs.NewValidation("URL da imagem inválida")
		}
		if imageURL != nil {
			if _, err := url.ParseRequestURI(*imageURL); err != nil {
				return nil, errs.NewValidation("URL da imagem inválida")
			}
		}
		fields["image_url"] = imageURL
	}

	if raw, ok := patch["price"]; ok {
		var price *decimal.Decimal
		if err := json.Unmarshal(raw, &price); err != nil {
			return nil, errs.NewValidation("Preço inválido")
		}
		if price != nil && price.IsNegative() {
			return nil, errs.NewValidation("Preço não pode ser negativo")
		}
		fields["price"] = price
	}

	if raw, ok := patch["openToTrade"]; ok {
		var open *bool
		if err := json.Unmarshal(raw, &open); err != nil {
			return nil, errs.NewValidation("Dados inválidos.")
		}
		fields["open_to_trade"] = open
	}

	for key, column := range map[string]string{
		"description": "description",
		"usageTime":   "usage_time",
		"reason":      "reason",
	} {
		if raw, ok := patch[key]; ok {
			var value *string
			if err := json.Unmarshal(raw, &value); err != nil {
				return nil, errs.NewValidation("Dados inválidos.")
			}
			fields[column] = value
		}
	}

	return fields, nil
}
