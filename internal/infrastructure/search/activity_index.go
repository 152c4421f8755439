package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/seva-samiti/connect-backend/internal/domain/entity"
)

// ESActivityIndex mirrors activities into Elasticsearch so the feed can be
// searched by text. Documents carry enough fields to render results without
// a follow-up database read.
type ESActivityIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewESActivityIndex(client *elasticsearch.Client, index string) *ESActivityIndex {
	return &ESActivityIndex{client: client, index: index}
}

type activityDoc struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	MediaURL    string     `json:"media_url"`
	MediaType   string     `json:"media_type"`
	IsPublic    bool       `json:"is_public"`
	CreatedBy   string     `json:"created_by"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (x *ESActivityIndex) Index(ctx context.Context, a *entity.Activity) error {
	doc := activityDoc{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		MediaURL:    a.MediaURL,
		MediaType:   a.MediaType,
		IsPublic:    a.IsPublic,
		CreatedBy:   a.CreatedBy,
		EventDate:   a.EventDate,
		CreatedAt:   a.CreatedAt,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := x.client.Index(x.index, bytes.NewReader(body),
		x.client.Index.WithDocumentID(a.ID),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithRefresh("false"),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index activity %s: %s", a.ID, res.String())
	}
	return nil
}

func (x *ESActivityIndex) Remove(ctx context.Context, id string) error {
	res, err := x.client.Delete(x.index, id, x.client.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	// 404 means the document was never indexed; nothing to clean up.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete activity %s from index: %s", id, res.String())
	}
	return nil
}

func (x *ESActivityIndex) Search(ctx context.Context, query string, size int, publicOnly bool) ([]*entity.Activity, error) {
	must := []map[string]any{{
		"multi_match": map[string]any{
			"query":     query,
			"fields":    []string{"title^2", "description"},
			"fuzziness": "AUTO",
		},
	}}
	boolQuery := map[string]any{"must": must}
	if publicOnly {
		boolQuery["filter"] = []map[string]any{{"term": map[string]any{"is_public": true}}}
	}

	body, err := json.Marshal(map[string]any{
		"size":  size,
		"query": map[string]any{"bool": boolQuery},
		"sort":  []map[string]any{{"_score": map[string]any{"order": "desc"}}},
	})
	if err != nil {
		return nil, err
	}

	res, err := x.client.Search(
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(x.index),
		x.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search activities: %s", res.String())
	}

	var out struct {
		Hits struct {
			Hits []struct {
				Source activityDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}

	activities := make([]*entity.Activity, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		d := h.Source
		activities = append(activities, &entity.Activity{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			MediaURL:    d.MediaURL,
			MediaType:   d.MediaType,
			IsPublic:    d.IsPublic,
			CreatedBy:   d.CreatedBy,
			EventDate:   d.EventDate,
			CreatedAt:   d.CreatedAt,
		})
	}
	return activities, nil
}
