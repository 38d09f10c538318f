package sellerservice

// Company модель компании из SellerService
type Company struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	ManagerIDs []int64   `json:"manager_ids"`
	Addresses  []Address `json:"addresses"`
}

// Address точка обслуживания компании
type Address struct {
	ID       int64  `json:"id"`
	City     string `json:"city"`
	Street   string `json:"street"`
	Building string `json:"building"`
}

// IsManager проверяет, что пользователь является менеджером компании
func (c *Company) IsManager(userID int64) bool {
	for _, managerID := range c.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// HasAddress проверяет, что адрес принадлежит компании
func (c *Company) HasAddress(addressID int64) bool {
	for _, addr := range c.Addresses {
		if addr.ID == addressID {
			return true
		}
	}
	return false
}
