package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/validation"
)

func TestExport(t *testing.T) {
	s := New()
	s.Add("a")
	s.Add("b")
	s.Toggle(1, true)

	assert.Equal(t, []domain.Record{
		{ID: 0, Name: "a"},
		{ID: 1, Name: "b", Complete: true},
	}, s.Export())

	assert.Empty(t, New().Export())
}

func TestImport(t *testing.T) {
	t.Run("empty snapshot", func(t *testing.T) {
		s, err := Import(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, int64(0), s.NextID())
	})

	t.Run("keeps order and derives next id from max id", func(t *testing.T) {
		records := []domain.Record{
			{ID: 7, Name: "late", Complete: true},
			{ID: 2, Name: "early"},
		}
		s, err := Import(records)
		require.NoError(t, err)

		assert.Equal(t, []int64{7, 2}, ids(s.Tasks()))
		assert.Equal(t, int64(8), s.NextID())

		task, ok := s.Add("next")
		require.True(t, ok)
		assert.Equal(t, int64(8), task.ID)
	})

	t.Run("restored store is fully usable", func(t *testing.T) {
		s, err := Import([]domain.Record{{ID: 0, Name: "a"}})
		require.NoError(t, err)

		var fired int
		s.Subscribe(func(Change) { fired++ })
		assert.True(t, s.Toggle(0, true))
		assert.True(t, s.Remove(0))
		assert.Equal(t, 2, fired)
	})

	rejected := []struct {
		name    string
		records []domain.Record
	}{
		{"duplicate ids", []domain.Record{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}},
		{"blank name", []domain.Record{{ID: 1, Name: "a"}, {ID: 2, Name: " "}}},
		{"empty name", []domain.Record{{ID: 0, Name: ""}}},
		{"negative id", []domain.Record{{ID: -1, Name: "a"}}},
		{"id with no successor", []domain.Record{{ID: 5, Name: "a"}, {ID: math.MaxInt64, Name: "b"}}},
	}
	for _, tt := range rejected {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			s, err := Import(tt.records)
			require.Error(t, err)
			assert.IsType(t, &validation.ValidationError{}, err)
			require.NotNil(t, s)
			assert.Equal(t, 0, s.Len(), "falls back to an empty store")
			assert.Equal(t, int64(0), s.NextID())
		})
	}
}

func TestImport_IDCounterExhausted(t *testing.T) {
	s, err := Import([]domain.Record{{ID: 5, Name: "a"}, {ID: validation.MaxTaskID, Name: "b"}})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), s.NextID())

	_, ok := s.Add("c")
	assert.False(t, ok, "no id is left to issue")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, int64(math.MaxInt64), s.NextID())

	again, err := Import(s.Export())
	require.NoError(t, err)
	assert.Equal(t, s.Tasks(), again.Tasks())
}

func TestRoundTrip(t *testing.T) {
	states := map[string]func() *TaskStore{
		"empty": New,
		"one task": func() *TaskStore {
			s := New()
			s.Add("a")
			return s
		},
		"gaps and flags": func() *TaskStore {
			s := New()
			for _, name := range []string{"a", "b", "c", "d", "e"} {
				s.Add(name)
			}
			s.Remove(0)
			s.Remove(4)
			s.Toggle(2, true)
			return s
		},
		"all removed": func() *TaskStore {
			s := New()
			s.Add("a")
			s.Remove(0)
			return s
		},
	}

	for name, build := range states {
		t.Run(name, func(t *testing.T) {
			original := build()
			restored, err := Import(original.Export())
			require.NoError(t, err)

			assert.Equal(t, original.Tasks(), restored.Tasks())
			if original.Len() == 0 {
				assert.Equal(t, int64(0), restored.NextID())
				return
			}
			maxID := int64(0)
			for _, task := range original.Tasks() {
				if task.ID > maxID {
					maxID = task.ID
				}
			}
			assert.Equal(t, maxID+1, restored.NextID())
			assert.GreaterOrEqual(t, original.NextID(), restored.NextID())
		})
	}
}

func TestRestore(t *testing.T) {
	t.Run("continues from the saved counter", func(t *testing.T) {
		s, err := Restore([]domain.Record{{ID: 1, Name: "a"}}, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), s.NextID())

		task, ok := s.Add("b")
		require.True(t, ok)
		assert.Equal(t, int64(5), task.ID)
	})

	t.Run("empty list keeps retired ids retired", func(t *testing.T) {
		s, err := Restore(nil, 3)
		require.NoError(t, err)

		task, ok := s.Add("a")
		require.True(t, ok)
		assert.Equal(t, int64(3), task.ID)
	})

	t.Run("counter behind the records is ignored", func(t *testing.T) {
		s, err := Restore([]domain.Record{{ID: 7, Name: "a"}}, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(8), s.NextID())
	})

	t.Run("rejected records still honour the counter", func(t *testing.T) {
		s, err := Restore([]domain.Record{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}, 9)
		require.Error(t, err)
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, int64(9), s.NextID())
	})
}
