package handler

import (
	"wardrobe101/internal/usecase"
)

var (
	authHandler   *AuthHandler
	userHandler   *UserHandler
	itemHandler   *ItemHandler
	orderHandler  *OrderHandler
	uploadHandler *UploadHandler
)

func Setup(
	accountUseCase *usecase.AccountUseCase,
	inventoryUseCase *usecase.InventoryUseCase,
	orderUseCase *usecase.OrderUseCase,
	uploadUseCase *usecase.UploadUseCase,
) {
	authHandler = NewAuthHandler(accountUseCase)
	userHandler = NewUserHandler(accountUseCase)
	itemHandler = NewItemHandler(inventoryUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	uploadHandler = NewUploadHandler(uploadUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}
