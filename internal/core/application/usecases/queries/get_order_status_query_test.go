package queries_test

import (
	"strings"
	"testing"

	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderStatusQuery_ByUUID(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderStatusQuery(id.String())
	require.NoError(t, err)
	assert.NoError(t, query.Validate())

	require.NotNil(t, query.OrderID())
	assert.True(t, query.OrderID().IsEqual(id))
	assert.Nil(t, query.TrackingID())
	assert.Equal(t, id.String(), query.Reference())
}

func TestNewGetOrderStatusQuery_ByTrackingID(t *testing.T) {
	trackingID := kernel.NewTrackingID()

	query, err := queries.NewGetOrderStatusQuery(trackingID.String())
	require.NoError(t, err)

	assert.Nil(t, query.OrderID())
	require.NotNil(t, query.TrackingID())
	assert.Equal(t, trackingID.String(), query.TrackingID().String())
	assert.Equal(t, trackingID.String(), query.Reference())
}

func TestNewGetOrderStatusQuery_NormalizesTrackingID(t *testing.T) {
	trackingID := kernel.NewTrackingID()

	query, err := queries.NewGetOrderStatusQuery("  " + strings.ToLower(trackingID.String()) + " ")
	require.NoError(t, err)

	require.NotNil(t, query.TrackingID())
	assert.Equal(t, trackingID.String(), query.TrackingID().String())
}

func TestNewGetOrderStatusQuery_InvalidReference(t *testing.T) {
	_, err := queries.NewGetOrderStatusQuery("does not look like anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "orderReference")
}

func TestGetOrderStatusQuery_ValidateZeroValue(t *testing.T) {
	var query queries.GetOrderStatusQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderStatusQueryIsNotConstructed)
}

func TestNewGetOrderTimelineQuery(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderTimelineQuery(id.String())
	require.NoError(t, err)
	assert.NoError(t, query.Validate())

	require.NotNil(t, query.OrderID())
	assert.True(t, query.OrderID().IsEqual(id))
	assert.Nil(t, query.TrackingID())
	assert.Equal(t, id.String(), query.Reference())
}

func TestNewGetOrderTimelineQuery_ByTrackingID(t *testing.T) {
	trackingID := kernel.NewTrackingID()

	query, err := queries.NewGetOrderTimelineQuery(trackingID.String())
	require.NoError(t, err)

	assert.Nil(t, query.OrderID())
	require.NotNil(t, query.TrackingID())
	assert.Equal(t, trackingID.String(), query.Reference())
}

func TestNewGetOrderTimelineQuery_InvalidReference(t *testing.T) {
	_, err := queries.NewGetOrderTimelineQuery("nonsense reference")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "orderReference")
}

func TestGetOrderTimelineQuery_ValidateZeroValue(t *testing.T) {
	var query queries.GetOrderTimelineQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderTimelineQueryIsNotConstructed)
}

func TestNewGetOrderHistoryQuery(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderHistoryQuery(id)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(id))
}

func TestNewGetOrderHistoryQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetOrderHistoryQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetOrderHistoryQuery_ValidateZeroValue(t *testing.T) {
	var query queries.GetOrderHistoryQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderHistoryQueryIsNotConstructed)
}
