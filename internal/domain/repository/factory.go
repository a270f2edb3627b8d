package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Customers() CustomerRepository
	Businesses() BusinessRepository
	Purchases() PurchaseRepository
	Rewards() RewardRepository
	Accruals() AccrualRepository
	Stats() StatsRepository
}
