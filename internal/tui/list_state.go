package tui

import (
	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

// listState is the article list view-model: paging and search state,
// the last-fetched page, and a sequence counter implementing
// last-requested-wins. Responses carrying a stale sequence number are
// discarded, so an older fetch can never overwrite a newer one. It is
// a plain struct so a test harness can drive it without a terminal.
type listState struct {
	page     int
	pageSize int
	query    string
	language string

	articles []models.Article
	total    int
	loading  bool
	err      error

	seq int // most recently issued request
}

func newListState(pageSize int) listState {
	return listState{page: 1, pageSize: pageSize}
}

// beginFetch marks a new in-flight request and returns its sequence
// token. Any response or failure carrying an older token is ignored.
func (s *listState) beginFetch() int {
	s.seq++
	s.loading = true
	return s.seq
}

// apply installs a fetch result. Returns false when the result is
// stale and was discarded: tokens are monotonic, so a response from
// any request older than the newest one seen loses.
func (s *listState) apply(seq int, resp *models.ArticleListResponse) bool {
	if seq < s.seq {
		return false
	}
	s.seq = seq
	s.loading = false
	s.err = nil
	s.articles = resp.Articles
	s.total = resp.Total
	return true
}

// fail settles a fetch with an error. The previous articles and total
// are retained so the view degrades to stale-but-available data.
func (s *listState) fail(seq int, err error) bool {
	if seq < s.seq {
		return false
	}
	s.seq = seq
	s.loading = false
	s.err = err
	return true
}

func (s *listState) totalPages() int {
	if s.total <= 0 || s.pageSize <= 0 {
		return 0
	}
	return (s.total + s.pageSize - 1) / s.pageSize
}

// nextPage advances one page, clamped to the last valid page. Returns
// true when the page actually changed and a fetch is needed.
func (s *listState) nextPage() bool {
	if last := s.totalPages(); last == 0 || s.page >= last {
		return false
	}
	s.page++
	return true
}

// prevPage goes back one page; a no-op at page 1.
func (s *listState) prevPage() bool {
	if s.page <= 1 {
		return false
	}
	s.page--
	return true
}

// setQuery installs a new search query and resets to the first page.
// Returns true when the query changed.
func (s *listState) setQuery(q string) bool {
	if s.query == q {
		return false
	}
	s.query = q
	s.page = 1
	return true
}

// setLanguage installs a list language filter and resets to the first
// page. Filters only apply to the list endpoint, not search.
func (s *listState) setLanguage(lang string) bool {
	if s.language == lang {
		return false
	}
	s.language = lang
	s.page = 1
	return true
}

// searching reports whether the search endpoint should serve the next
// fetch.
func (s *listState) searching() bool {
	return s.query != ""
}
