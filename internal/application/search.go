package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/userkit/account-service/internal/domain/entity"
)

// SearchService keeps a denormalized copy of user profiles in Elasticsearch
// and answers search queries against it. Indexing is best-effort and happens
// after the owning transaction committed; a failed index never fails the
// request that triggered it.
type SearchService struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewSearchService(es *elasticsearch.Client, index string, logger *logrus.Logger) *SearchService {
	return &SearchService{ES: es, Index: index, Logger: logger}
}

// IndexUser writes the user's profile document, replacing any previous
// version.
func (s *SearchService) IndexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.Index == "" {
		return nil
	}
	doc := map[string]any{
		"id":                u.ID().String(),
		"username":          u.Username(),
		"email":             u.Email(),
		"disabled":          u.Disabled(),
		"is_email_verified": u.IsEmailVerified(),
		"created_at":        u.CreatedAt().Format(time.RFC3339Nano),
		"updated_at":        u.UpdatedAt().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.Index, DocumentID: u.ID().String(), Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID()).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "user_id": u.ID()}).Warn("es index response error")
	}
	return nil
}

// Search runs a multi_match query over username and email.
func (s *SearchService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.Index == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
