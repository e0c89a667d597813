package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/campus-case-forecast/internal/forecast"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "predictions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func row(d time.Time, tampa, stPete, health float64) forecast.TableRow {
	return forecast.TableRow{Date: d, Tampa: tampa, StPete: stPete, Health: health}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	d1 := time.Date(2020, time.September, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	t.Run("empty store reads empty", func(t *testing.T) {
		s := openTestStore(t)
		rows, err := s.Predictions(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("replace then read", func(t *testing.T) {
		s := openTestStore(t)
		err := s.ReplacePredictions(ctx, []forecast.TableRow{
			row(d1, 1.5, 2.5, 3.5),
			row(d2, 2, 3, 4),
		})
		require.NoError(t, err)

		rows, err := s.Predictions(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "2020-09-01", rows[0].DS)
		assert.Equal(t, "1.500000", rows[0].YhatTampa)
		assert.Equal(t, "2.500000", rows[0].YhatStPete)
		assert.Equal(t, "3.500000", rows[0].YhatHealth)
		assert.Equal(t, "2020-09-02", rows[1].DS)
	})

	t.Run("replace fully supersedes the previous snapshot", func(t *testing.T) {
		s := openTestStore(t)
		require.NoError(t, s.ReplacePredictions(ctx, []forecast.TableRow{
			row(d1, 1, 1, 1),
			row(d2, 2, 2, 2),
		}))

		require.NoError(t, s.ReplacePredictions(ctx, []forecast.TableRow{
			row(d2, 9, 9, 9),
		}))

		rows, err := s.Predictions(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "2020-09-02", rows[0].DS)
		assert.Equal(t, "9.000000", rows[0].YhatTampa)
	})

	t.Run("replacing with an empty table yields an empty snapshot", func(t *testing.T) {
		s := openTestStore(t)
		require.NoError(t, s.ReplacePredictions(ctx, []forecast.TableRow{row(d1, 1, 1, 1)}))
		require.NoError(t, s.ReplacePredictions(ctx, nil))

		rows, err := s.Predictions(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("rows come back in date order", func(t *testing.T) {
		s := openTestStore(t)
		require.NoError(t, s.ReplacePredictions(ctx, []forecast.TableRow{
			row(d2, 2, 2, 2),
			row(d1, 1, 1, 1),
		}))

		rows, err := s.Predictions(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "2020-09-01", rows[0].DS)
		assert.Equal(t, "2020-09-02", rows[1].DS)
	})
}
