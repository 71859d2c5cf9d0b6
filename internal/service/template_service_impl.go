package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/KwakOri/Temis-sub000/internal/logger"
	tmpl "github.com/KwakOri/Temis-sub000/internal/template"
	"github.com/charmbracelet/log"
)

type templateService struct {
	templateDir string
	fallbackMax int
	logger      *log.Logger
}

type templateEntry struct {
	Index    int
	Path     string
	Compiled *tmpl.Compiled
}

// NewTemplateService serves the built-in templates plus every valid *.json
// file in templateDir. fallbackMax caps entries per day for templates that
// leave maxPerDay unset.
func NewTemplateService(templateDir string, fallbackMax int, l *log.Logger) TemplateService {
	return &templateService{
		templateDir: templateDir,
		fallbackMax: fallbackMax,
		logger:      logger.OrDiscard(l),
	}
}

func (s *templateService) List(ctx context.Context) ([]domain.Template, error) {
	entries, err := s.loadTemplateEntries()
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	templates := make([]domain.Template, 0, len(entries))
	for _, entry := range entries {
		templates = append(templates, entry.Compiled.Summary())
	}
	return templates, nil
}

func (s *templateService) Get(ctx context.Context, ref string) (*tmpl.Compiled, error) {
	entry, err := s.resolveTemplate(ref)
	if err != nil {
		return nil, err
	}
	return entry.Compiled, nil
}

func (s *templateService) resolveTemplate(ref string) (*templateEntry, error) {
	input := strings.TrimSpace(ref)
	if input == "" {
		return nil, fmt.Errorf("template %q: empty template name: %w", ref, domain.ErrNotFound)
	}

	entries, err := s.loadTemplateEntries()
	if err != nil {
		return nil, fmt.Errorf("template %q: listing templates: %w", ref, err)
	}

	// Resolve by schema ID, display name, file stem or filename (case-insensitive).
	for i := range entries {
		entry := &entries[i]
		if strings.EqualFold(entry.Compiled.ID, input) || strings.EqualFold(entry.Compiled.Name, input) {
			return entry, nil
		}
		if entry.Path == "" {
			continue
		}
		filename := filepath.Base(entry.Path)
		fileStem := strings.TrimSuffix(filename, filepath.Ext(filename))
		if strings.EqualFold(fileStem, input) || strings.EqualFold(filename, input) {
			return entry, nil
		}
	}

	// Resolve by integer selector from `template list`.
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(entries) {
		return &entries[n-1], nil
	}

	return nil, fmt.Errorf("template %q: %w", ref, domain.ErrNotFound)
}

// loadTemplateEntries returns built-ins first, then directory templates sorted
// by filename. Invalid files and files reusing a known ID are skipped with a warning.
func (s *templateService) loadTemplateEntries() ([]templateEntry, error) {
	builtins, err := tmpl.Builtins(s.fallbackMax)
	if err != nil {
		return nil, fmt.Errorf("loading built-in templates: %w", err)
	}

	entries := make([]templateEntry, 0, len(builtins))
	seen := make(map[string]bool, len(builtins))
	for _, c := range builtins {
		entries = append(entries, templateEntry{Index: len(entries) + 1, Compiled: c})
		seen[strings.ToLower(c.ID)] = true
	}

	if s.templateDir == "" {
		return entries, nil
	}
	files, err := filepath.Glob(filepath.Join(s.templateDir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	for _, file := range files {
		ts, err := tmpl.LoadSchema(file)
		if err != nil {
			s.logger.Warn("skipping template file", "path", file, "error", err)
			continue
		}
		c, err := tmpl.Compile(ts, s.fallbackMax)
		if err != nil {
			s.logger.Warn("skipping invalid template", "path", file, "error", err)
			continue
		}
		if seen[strings.ToLower(c.ID)] {
			s.logger.Warn("skipping template with duplicate id", "path", file, "id", c.ID)
			continue
		}
		seen[strings.ToLower(c.ID)] = true
		entries = append(entries, templateEntry{Index: len(entries) + 1, Path: file, Compiled: c})
	}

	return entries, nil
}
