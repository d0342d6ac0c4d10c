package service

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sarangchurch/quiettime/internal/markdown"
	"github.com/sarangchurch/quiettime/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrGuidePageNotFound = errors.New("guide page not found")

// GuideService serves the markdown guide pages (how to keep a quiet
// time, how the reading plan works). Pages load once at startup; the
// content directory is part of the deploy, not user data.
type GuideService struct {
	parser      *markdown.Parser
	contentPath string
	pages       map[string]*model.GuidePage
	ordered     []*model.GuidePage
}

func NewGuideService(contentPath string) *GuideService {
	return &GuideService{
		parser:      markdown.NewParser(),
		contentPath: contentPath,
		pages:       make(map[string]*model.GuidePage),
	}
}

func (s *GuideService) LoadPages() error {
	guidePath := filepath.Join(s.contentPath, "guide")

	entries, err := os.ReadDir(guidePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		page, err := s.loadPage(filepath.Join(guidePath, entry.Name()))
		if err != nil {
			return err
		}
		s.pages[page.Slug] = page
		s.ordered = append(s.ordered, page)
	}

	sort.SliceStable(s.ordered, func(i, j int) bool {
		if s.ordered[i].Order != s.ordered[j].Order {
			return s.ordered[i].Order < s.ordered[j].Order
		}
		return s.ordered[i].Slug < s.ordered[j].Slug
	})

	return nil
}

func (s *GuideService) loadPage(path string) (*model.GuidePage, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	htmlContent, meta, err := s.parser.ParseWithFrontmatter(source)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSuffix(filepath.Base(path), ".md")
	page := &model.GuidePage{
		Slug:        slug,
		HTMLContent: string(htmlContent),
	}

	title, ok := meta["title"].(string)
	if ok {
		page.Title = title
	} else {
		page.Title = titleFromSlug(slug)
	}

	description, ok := meta["description"].(string)
	if ok {
		page.Description = description
	}

	switch order := meta["order"].(type) {
	case int:
		page.Order = order
	case float64:
		page.Order = int(order)
	}

	return page, nil
}

func (s *GuideService) Pages() []*model.GuidePage {
	return s.ordered
}

func (s *GuideService) Page(slug string) (*model.GuidePage, error) {
	page, ok := s.pages[slug]
	if !ok {
		return nil, ErrGuidePageNotFound
	}
	return page, nil
}

func titleFromSlug(slug string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(slug, "-", " "))
}
