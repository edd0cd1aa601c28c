package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

type articleItem struct {
	article models.Article
}

func (i articleItem) Title() string {
	return i.article.Title
}

func (i articleItem) Description() string {
	qa := "QA pending"
	if i.article.QAScores != nil {
		if i.article.QAScores.Passed {
			qa = "QA passed"
		} else {
			qa = "QA failed"
		}
	}
	meta := fmt.Sprintf("%s | %s | %s",
		LanguageLabel(i.article.Language, i.article.Dialect),
		FormatDate(i.article.CreatedAt),
		qa,
	)
	if summary := TruncateSummary(i.article.Summary, summaryBudget); summary != "" {
		return summary + "\n" + meta
	}
	return meta
}

func (i articleItem) FilterValue() string {
	return i.article.Title
}

var _ list.Item = articleItem{}
