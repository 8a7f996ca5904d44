package storeapi

// Wire types for the hosted storefront API. All monetary fields are in the
// minor currency unit (pesewas); normalization to the major unit happens in
// the catalog layer, never here.

type Product struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	Price         int64     `json:"price"`
	OriginalPrice *int64    `json:"originalPrice,omitempty"`
	Images        []string  `json:"images"`
	InStock       bool      `json:"inStock"`
	TotalStock    int       `json:"totalStock"`
	CategoryName  string    `json:"categoryName,omitempty"`
	Variants      []Variant `json:"variants"`
}

type Variant struct {
	ID            string            `json:"_id"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	Price         int64             `json:"price"`
	StockQuantity int               `json:"stockQuantity"`
	Options       map[string]string `json:"options"`
	IsDefault     bool              `json:"isDefault"`
}

type Category struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	ParentID     *string `json:"parentId"`
	Position     int     `json:"position"`
	ProductCount *int    `json:"productCount,omitempty"`
}

type Cart struct {
	ID          string     `json:"_id"`
	TotalAmount int64      `json:"totalAmount"`
	TotalItems  int        `json:"totalItems"`
	Items       []CartItem `json:"items"`
}

type CartItem struct {
	ID        string `json:"_id"`
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	MaxStock  int    `json:"maxStock"`
	Total     int64  `json:"total"`
}

type Order struct {
	OrderNumber   string      `json:"orderNumber"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	TotalAmount   int64       `json:"totalAmount"`
	CreatedAt     int64       `json:"createdAt"`
	UpdatedAt     int64       `json:"updatedAt"`
	Items         []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductName string `json:"productName"`
	VariantName string `json:"variantName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

// ProductPage is the cursor-paginated listing response. A nil NextCursor means
// no further pages regardless of HasMore, and HasMore=false is authoritative.
type ProductPage struct {
	Products   []Product `json:"products"`
	NextCursor *string   `json:"nextCursor"`
	HasMore    bool      `json:"hasMore"`
}

// ListFilters are the supported knobs on the product listing endpoint. Zero
// values mean "not set". Price bounds are in the minor unit.
type ListFilters struct {
	Limit        int
	MinPrice     int64
	MaxPrice     int64
	InStockOnly  bool
	CategorySlug string
}

// CustomerInfo is the checkout submission payload.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address"`
}

// CheckoutResult reports the order created by a successful checkout.
type CheckoutResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

type mutationResponse struct {
	Success bool `json:"success"`
}

type addItemRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	CartID   string `json:"cartId"`
	Quantity int    `json:"quantity"`
}

type checkoutRequest struct {
	CartID       string       `json:"cartId"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
