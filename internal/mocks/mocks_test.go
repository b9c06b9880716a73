package mocks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/numerology-api/internal/domain"
	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/generation"
	"github.com/phrazzld/numerology-api/internal/mocks"
	"github.com/phrazzld/numerology-api/internal/store"
)

func TestMockInterpreter(t *testing.T) {
	t.Parallel()

	t.Run("default text", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewMockInterpreterWithText("reading")
		text, err := m.Interpret(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "reading", text)
		assert.Equal(t, 1, m.CallCount())

		m.Reset()
		assert.Zero(t, m.CallCount())
	})

	t.Run("default error", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewMockInterpreterWithError(generation.ErrContentBlocked)
		_, err := m.Interpret(context.Background(), nil)
		assert.ErrorIs(t, err, generation.ErrContentBlocked)
	})

	t.Run("custom function", func(t *testing.T) {
		t.Parallel()

		m := &mocks.MockInterpreter{
			InterpretFn: func(_ context.Context, r *numerology.Report) (string, error) {
				if r == nil {
					return "", errors.New("no report")
				}
				return r.PersonalNumbers.BirthDate, nil
			},
		}
		report := numerology.BuildReport(numerology.MustParseBirthDate("15.03.1990"), "", time.Now())

		text, err := m.Interpret(context.Background(), report)
		require.NoError(t, err)
		assert.Equal(t, "15.03.1990", text)
		assert.Same(t, report, m.InterpretCalls.Reports[0])
	})
}

func TestMockReportStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := mocks.NewMockReportStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, date := range []string{"15.03.1990", "20.07.1985", "29.09.1999"} {
		report := numerology.BuildReport(numerology.MustParseBirthDate(date), "", base)
		saved, err := domain.NewSavedReport(report, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, saved))
		err = s.Create(ctx, saved)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	}
	assert.Equal(t, 3, s.Len())

	list, err := s.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "29.09.1999", list[0].BirthDate)
	assert.Nil(t, list[0].Report)

	list, err = s.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := s.GetByID(ctx, newestID(t, s))
	require.NoError(t, err)
	assert.NotNil(t, got.Report)

	require.NoError(t, s.Delete(ctx, got.ID))
	assert.ErrorIs(t, s.Delete(ctx, got.ID), store.ErrReportNotFound)
	_, err = s.GetByID(ctx, got.ID)
	assert.True(t, store.IsNotFoundError(err))

	assert.Same(t, s, s.WithTx(nil))
	assert.Equal(t, 1, s.WithTxCalls)
}

func newestID(t *testing.T, s *mocks.MockReportStore) uuid.UUID {
	t.Helper()
	list, err := s.List(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	return list[0].ID
}
