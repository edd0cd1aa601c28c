package tui

import (
	"errors"

	"github.com/thomaskoefod/enrichreadr/internal/api"
	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

// detailState is the article detail view-model: one article fetched by
// id, a loading flag, and the boundary-converted error if the fetch
// failed.
type detailState struct {
	id      string
	article *models.Article
	loading bool
	err     error
}

// begin prepares a fetch for id. An empty id settles immediately with
// a validation error and must not reach the network; the caller checks
// loading before issuing the fetch command.
func (s *detailState) begin(id string) {
	s.article = nil
	s.err = nil
	s.id = id
	if id == "" {
		s.loading = false
		s.err = api.ErrMissingID
		return
	}
	s.loading = true
}

func (s *detailState) apply(article *models.Article) {
	s.loading = false
	s.err = nil
	s.article = article
}

func (s *detailState) fail(err error) {
	s.loading = false
	s.article = nil
	s.err = err
}

// notFound reports whether the view should render the "Article Not
// Found" state. Both a missing id and a backend 404 land here, while
// remaining distinguishable error kinds for logging and tests.
func (s *detailState) notFound() bool {
	if s.err == nil {
		return false
	}
	if api.IsNotFound(s.err) {
		return true
	}
	var ve *api.ValidationError
	return errors.As(s.err, &ve)
}
