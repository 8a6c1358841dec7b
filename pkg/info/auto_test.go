package info_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/kana/pkg/core"
	"github.com/aretw0/kana/pkg/info"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, raw any) ([]core.ID, error) {
	t.Helper()
	var ids []core.ID
	for i, err := range info.FromAuto(raw) {
		if err != nil {
			return ids, err
		}
		id, err := i.ID()
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids, nil
}

func TestFromAuto(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []core.ID
	}{
		{"Info", core.Info{"id": 1, "md5": "abc"}, []core.ID{1}},
		{"Map", map[string]any{"id": "2"}, []core.ID{2}},
		{"ID", core.ID(3), []core.ID{3}},
		{"Int", 4, []core.ID{4}},
		{"Int64", int64(5), []core.ID{5}},
		{"Numeric String", "6", []core.ID{6}},
		{"ID List", "7, 8,9", []core.ID{7, 8, 9}},
		{"Int Slice", []int{10, 11}, []core.ID{10, 11}},
		{"Mixed Slice", []any{12, "13", core.Info{"id": 14}}, []core.ID{12, 13, 14}},
		{"JSON Bytes", []byte(`[{"id": 15}, {"id": 16}]`), []core.ID{15, 16}},
		{"YAML Stream", strings.NewReader("id: 17\n---\n- id: 18\n- id: 19\n"), []core.ID{17, 18, 19}},
		{"Empty Slice", []core.Info{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromAuto_Errors(t *testing.T) {
	t.Run("Unsupported Type", func(t *testing.T) {
		_, err := collect(t, 3.14)
		assert.ErrorIs(t, err, info.ErrUnsupported)
	})

	t.Run("Missing ID", func(t *testing.T) {
		_, err := collect(t, core.Info{"md5": "abc"})
		assert.ErrorIs(t, err, info.ErrMalformed)
		assert.ErrorIs(t, err, core.ErrMissingID)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := collect(t, []byte("id: [unterminated"))
		assert.ErrorIs(t, err, info.ErrMalformed)
	})

	t.Run("Scalar Document", func(t *testing.T) {
		_, err := collect(t, []byte("just a string"))
		assert.ErrorIs(t, err, info.ErrMalformed)
	})

	t.Run("No Match", func(t *testing.T) {
		_, err := collect(t, filepath.Join(t.TempDir(), "*.json"))
		assert.ErrorIs(t, err, info.ErrNoMatch)
	})

	t.Run("Stops After First Error", func(t *testing.T) {
		ids, err := collect(t, []any{1, 2.5, 3})
		assert.Error(t, err)
		assert.Equal(t, []core.ID{1}, ids)
	})
}

func TestFromAuto_Glob(t *testing.T) {
	dir := t.TempDir()
	write := func(rel string, v any) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		data, err := json.Marshal(v)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0644))
	}

	write("a/info/1.json", map[string]any{"id": 1})
	write("b/info/2.json", map[string]any{"id": 2})
	write("b/info/nested/3.json", []map[string]any{{"id": 3}, {"id": 4}})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "info", "5.yaml"), []byte("id: 5\nrating: s\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "info", "notes.txt"), []byte("ignored"), 0644))

	got, err := collect(t, filepath.Join(dir, "**", "*.*"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.ID{1, 2, 3, 4, 5}, got)

	t.Run("Plain Path", func(t *testing.T) {
		got, err := collect(t, filepath.Join(dir, "a", "info", "1.json"))
		require.NoError(t, err)
		assert.Equal(t, []core.ID{1}, got)
	})

	t.Run("Large IDs Keep Precision", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "big.json"), []byte(`{"id": 9007199254740993}`), 0644))
		got, err := collect(t, filepath.Join(dir, "big.json"))
		require.NoError(t, err)
		assert.Equal(t, []core.ID{9007199254740993}, got)
	})
}
