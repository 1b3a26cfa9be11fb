package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"storefront-backend/internal/domains/order/model"
)

func TestBuildWhere(t *testing.T) {
	userID := uuid.New()
	status := model.StatusShipped

	where, args := buildWhere(ListFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildWhere(ListFilter{UserID: &userID})
	assert.Equal(t, "WHERE o.user_id = $1", where)
	assert.Equal(t, []interface{}{userID}, args)

	where, args = buildWhere(ListFilter{UserID: &userID, Status: &status})
	assert.Equal(t, "WHERE o.user_id = $1 AND o.status = $2", where)
	assert.Equal(t, []interface{}{userID, status}, args)
}

func TestSelectItemsQuery_KeepsCartOrder(t *testing.T) {
	query := strings.Join(strings.Fields(selectItemsQuery), " ")
	assert.Contains(t, query, "position FROM order_items")
	assert.True(t, strings.HasSuffix(query, "ORDER BY position, id"), query)
}
