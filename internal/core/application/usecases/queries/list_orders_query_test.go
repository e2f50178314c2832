package queries_test

import (
	"testing"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("keeps_explicit_pagination", func(t *testing.T) {
		q := queries.NewListOrdersQuery(2, 1)

		require.NoError(t, q.Validate())
		assert.Equal(t, 2, q.Page())
		assert.Equal(t, 1, q.PerPage())
		assert.Equal(t, 1, q.Offset())
	})

	t.Run("falls_back_to_defaults", func(t *testing.T) {
		q := queries.NewListOrdersQuery(0, -5)

		assert.Equal(t, queries.DefaultPage, q.Page())
		assert.Equal(t, queries.DefaultPerPage, q.PerPage())
		assert.Equal(t, 0, q.Offset())
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var q queries.ListOrdersQuery
		require.ErrorIs(t, q.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	})
}

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("accepts_valid_id", func(t *testing.T) {
		id := kernel.NewUUID()

		q, err := queries.NewGetOrderQuery(id)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.True(t, q.OrderID().IsEqual(id))
	})

	t.Run("rejects_zero_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := queries.NewGetOrderQuery(zero)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var q queries.GetOrderQuery
		require.ErrorIs(t, q.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}
