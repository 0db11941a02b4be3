package repository

// Factory describes access to the different domain repositories.
type Factory interface {
	Users() UserRepository
	Sessions() SessionRepository
	Products() ProductRepository
	Baskets() BasketRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Promos() PromoRepository
	Deliveries() DeliveryRepository
	Wallets() WalletRepository
	Loyalty() LoyaltyRepository
	Finance() FinanceRepository
	Chats() ChatRepository
	Notifications() NotificationRepository
}
