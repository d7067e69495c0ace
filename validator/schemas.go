package validator

// Payload schemas. Extension is expressed by struct embedding: the extending
// schema inherits every rule of the base and adds its own fields.

type SignUpPayload struct {
	Name            string `json:"name" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,min=3,email"`
	Password        string `json:"password" validate:"required,min=3"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=3,eqfield=Password"`
}

type SignInPayload struct {
	Email    string `json:"email" validate:"required,min=3,email"`
	Password string `json:"password" validate:"required,min=3"`
}

type ShippingAddressPayload struct {
	FullName      string  `json:"fullName" validate:"required,min=3"`
	StreetAddress string  `json:"streetAddress" validate:"required,min=3"`
	City          string  `json:"city" validate:"required,min=3"`
	PostalCode    string  `json:"postalCode" validate:"required,min=3"`
	Country       string  `json:"country" validate:"required,min=3"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
}

type PaymentMethodPayload struct {
	Type string `json:"type" validate:"required,paymentmethod"`
}

type UpdateProfilePayload struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,min=3,email"`
}

// UpdateUserPayload extends UpdateProfilePayload for the admin user editor.
type UpdateUserPayload struct {
	UpdateProfilePayload
	ID   string `json:"id" validate:"required"`
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type InsertProductPayload struct {
	Name        string   `json:"name" validate:"required,min=3"`
	Slug        string   `json:"slug" validate:"required,min=3"`
	Category    string   `json:"category" validate:"required,min=3"`
	Brand       string   `json:"brand" validate:"required,min=3"`
	Description string   `json:"description" validate:"required,min=3"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images" validate:"required,min=1,dive,required"`
	IsFeatured  bool     `json:"isFeatured"`
	Banner      *string  `json:"banner"`
	Price       string   `json:"price" validate:"required,currency"`
}

// UpdateProductPayload extends InsertProductPayload with the target id.
type UpdateProductPayload struct {
	InsertProductPayload
	ID string `json:"id" validate:"required"`
}

type CartItemPayload struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	Qty       int    `json:"qty" validate:"gte=0"`
	Image     string `json:"image" validate:"required"`
	Price     string `json:"price" validate:"required,currency"`
}

type InsertReviewPayload struct {
	ProductID   string `json:"productId" validate:"required"`
	Rating      int    `json:"rating" validate:"gte=1,lte=5"`
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=3"`
}

type PaymentResultPayload struct {
	ID           string `json:"id" validate:"required"`
	Status       string `json:"status" validate:"required"`
	EmailAddress string `json:"email_address" validate:"required"`
	PricePaid    string `json:"pricePaid" validate:"required,currency"`
}
