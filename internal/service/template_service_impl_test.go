package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KwakOri/Temis-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customTemplate = `{
  "id": "podcast",
  "name": "Podcast Slots",
  "version": "0.1.0",
  "fields": [
    {"key": "time", "kind": "time", "placeholder": "20:00", "default": "20:00"},
    {"key": "title", "kind": "text", "placeholder": "Episode"}
  ]
}`

func TestTemplateService_MissingDirectoryServesBuiltins(t *testing.T) {
	svc := NewTemplateService("/nonexistent/templates/path", 3, nil)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "classic", list[0].ID)
	for _, tpl := range list {
		assert.Equal(t, domain.SourceBuiltin, tpl.Source)
	}
}

func TestTemplateService_DirectoryTemplatesFollowBuiltins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "podcast.json"), []byte(customTemplate), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "malformed.json"), []byte(`{"id": "bad`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.json"), []byte(``), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.json"), []byte(`{"id":"classic","name":"Again","version":"1","fields":[{"key":"a","kind":"text"}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a template"), 0o644))

	svc := NewTemplateService(dir, 3, nil)
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4, "invalid and duplicate files are skipped")
	assert.Equal(t, "podcast", list[3].ID)
	assert.Equal(t, domain.SourceFile, list[3].Source)
	assert.Equal(t, 3, list[3].MaxPerDay, "unset maxPerDay takes the configured cap")
	assert.Equal(t, []string{"time", "title"}, list[3].FieldKeys)
}

func TestTemplateService_GetResolvesReferences(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my_podcast.json"), []byte(customTemplate), 0o644))
	svc := NewTemplateService(dir, 3, nil)

	tests := []struct {
		ref  string
		want string
	}{
		{"classic", "classic"},
		{"CLASSIC", "classic"},
		{"Topic board", "topic"},
		{"podcast", "podcast"},
		{"my_podcast", "podcast"},
		{"my_podcast.json", "podcast"},
		{"2", "stream"},
		{"4", "podcast"},
		{"  topic  ", "topic"},
	}
	for _, tc := range tests {
		t.Run(tc.ref, func(t *testing.T) {
			got, err := svc.Get(context.Background(), tc.ref)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.ID)
		})
	}
}

func TestTemplateService_GetNotFound(t *testing.T) {
	svc := NewTemplateService(t.TempDir(), 3, nil)

	for _, ref := range []string{"missing", "", "0", "99"} {
		_, err := svc.Get(context.Background(), ref)
		require.Error(t, err, ref)
		assert.True(t, errors.Is(err, domain.ErrNotFound), ref)
	}
}
