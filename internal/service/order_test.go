package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

func TestCreateOrder_StartsPending(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := service.NewOrderService(testLogger(), orders, newFakeUserRepo(), nil, nil, "")

	order, err := svc.Create(context.Background(), &models.Order{
		UserID:        1,
		Total:         45.5,
		PaymentMethod: "cash_on_delivery",
		Status:        "shipped", // client-supplied status must be ignored
		Items:         []models.OrderItem{{ProductID: 1, Name: "T-Shirt", Price: 45.5, Quantity: 1}},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.NotZero(t, order.ID)
}

func TestCreateOrder_EmptyRejected(t *testing.T) {
	svc := service.NewOrderService(testLogger(), newFakeOrderRepo(), newFakeUserRepo(), nil, nil, "")

	_, err := svc.Create(context.Background(), &models.Order{UserID: 1})
	assert.ErrorIs(t, err, service.ErrEmptyOrder)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := service.NewOrderService(testLogger(), newFakeOrderRepo(), newFakeUserRepo(), nil, nil, "")

	err := svc.UpdateStatus(context.Background(), 1, "teleported")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	svc := service.NewOrderService(testLogger(), newFakeOrderRepo(), newFakeUserRepo(), nil, nil, "")

	err := svc.UpdateStatus(context.Background(), 42, models.OrderShipped)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}

func TestUpdateStatus_Applies(t *testing.T) {
	orders := newFakeOrderRepo()
	svc := service.NewOrderService(testLogger(), orders, newFakeUserRepo(), nil, nil, "")
	ctx := context.Background()

	order, err := svc.Create(ctx, &models.Order{
		UserID: 1,
		Items:  []models.OrderItem{{ProductID: 1, Name: "x", Price: 1, Quantity: 1}},
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderDelivered))
	assert.Equal(t, models.OrderDelivered, orders.statuses[order.ID])
}
