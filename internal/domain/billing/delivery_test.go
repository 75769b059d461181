package billing

import (
	"testing"

	"github.com/distribops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDelivery(t *testing.T) {
	gps := trade.GPSCoordinate{Latitude: "12.9716", Longitude: "77.5946"}
	delivery, err := NewDelivery(uuid.New(), uuid.New(), uuid.New(), gps)

	require.NoError(t, err)
	assert.Equal(t, DeliveryStatusInTransit, delivery.Status)
	assert.Equal(t, gps, delivery.GPS)
	assert.Nil(t, delivery.DeliveryTime)
}

func TestNewDelivery_Validation(t *testing.T) {
	_, err := NewDelivery(uuid.Nil, uuid.New(), uuid.New(), trade.GPSCoordinate{})
	assert.Error(t, err)

	_, err = NewDelivery(uuid.New(), uuid.Nil, uuid.New(), trade.GPSCoordinate{})
	assert.Error(t, err)

	_, err = NewDelivery(uuid.New(), uuid.New(), uuid.Nil, trade.GPSCoordinate{})
	assert.Error(t, err)
}

func TestDelivery_Complete(t *testing.T) {
	delivery, err := NewDelivery(uuid.New(), uuid.New(), uuid.New(), trade.GPSCoordinate{})
	require.NoError(t, err)

	require.NoError(t, delivery.Complete())
	assert.True(t, delivery.IsCompleted())
	assert.NotNil(t, delivery.DeliveryTime)

	assert.Error(t, delivery.Complete())
}
