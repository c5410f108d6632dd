package transport

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CategoryNameRequest struct {
	Name string `json:"name"`
}

type CreateSubCategoryRequest struct {
	Name       string `json:"name"`
	CategoryID uint   `json:"category_id"`
}

type SubCategoryNameRequest struct {
	Name string `json:"name"`
}

type SubCategoryStatus struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type ActivateSubCategoriesResponse struct {
	ParentCategory string              `json:"parent_category"`
	SubCategories  []SubCategoryStatus `json:"sub_categories"`
}

type CreateProductRequest struct {
	SubCategoryID uint    `json:"sub_category_id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Quantity      uint    `json:"quantity"`
}

type UpdateProductRequest struct {
	ID          uint     `json:"id"`
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *uint    `json:"quantity"`
}

type ProductStatusRequest struct {
	ID       uint `json:"id"`
	IsActive bool `json:"is_active"`
}

type OrderItemRequest struct {
	ProductID uint `json:"product"`
	Quantity  uint `json:"quantity"`
}

type DeliveryAddressRequest struct {
	City             string `json:"city"`
	StreetAddress    string `json:"street_address"`
	ApartmentAddress string `json:"apartment_address"`
	PostalCode       string `json:"postal_code"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest      `json:"order_items"`
	UseNewAddress   bool                    `json:"use_new_address"`
	DeliveryAddress *DeliveryAddressRequest `json:"delivery_address"`
}

type UpdateOrderStatusRequest struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	AccessExp    int64  `json:"access_exp"`
	RefreshExp   int64  `json:"refresh_exp"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UpsertAddressRequest struct {
	City             string `json:"city"`
	StreetAddress    string `json:"street_address"`
	ApartmentAddress string `json:"apartment_address"`
	PostalCode       string `json:"postal_code"`
}
