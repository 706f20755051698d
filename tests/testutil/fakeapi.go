package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/shopspring/decimal"
)

// Signing parameters of tokens issued by FakeAPI
const (
	FakeJWTSecret   = "fake-api-secret"
	FakeJWTIssuer   = "inventory-api"
	FakeJWTAudience = "inventory-dashboard"
)

// Call records one request received by FakeAPI
type Call struct {
	Method string
	Path   string
}

type fakeUser struct {
	user     models.User
	password string
}

type failure struct {
	status  int
	message string
}

// FakeAPI is an in-memory stand-in for the inventory REST API
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	users     map[string]*fakeUser // by email
	tokens    map[string]string    // token -> email
	suppliers map[string]*models.Supplier
	stocks    map[string]*models.Stock
	products  []*models.Product
	orders    []*models.Order
	calls     []Call
	failures  map[string]failure
	clock     time.Time
}

// NewFakeAPI starts a fake API server that is closed when the test ends
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{
		users:     make(map[string]*fakeUser),
		tokens:    make(map[string]string),
		suppliers: make(map[string]*models.Supplier),
		stocks:    make(map[string]*models.Stock),
		failures:  make(map[string]failure),
		clock:     time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	f.Server = httptest.NewServer(f.router())
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake server
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

func (f *FakeAPI) router() *gin.Engine {
	router := gin.New()
	router.Use(f.recordAndFail)

	api := router.Group("/api")
	{
		api.POST("/auth/login", f.login)
		api.POST("/auth/register", f.register)

		authed := api.Group("", f.requireToken)
		authed.GET("/products", f.listProducts)
		authed.POST("/products", f.requireAdmin, f.createProduct)
		authed.PUT("/products/:id", f.requireAdmin, f.updateProduct)
		authed.DELETE("/products/:id", f.requireAdmin, f.deleteProduct)
		authed.GET("/stocks", f.listStocks)
		authed.POST("/stocks", f.requireAdmin, f.createStock)
		authed.PUT("/stocks/:id", f.requireAdmin, f.updateStock)
		authed.DELETE("/stocks/:id", f.requireAdmin, f.deleteStock)
		authed.GET("/suppliers", f.listSuppliers)
		authed.POST("/suppliers", f.requireAdmin, f.createSupplier)
		authed.PUT("/suppliers/:id", f.requireAdmin, f.updateSupplier)
		authed.DELETE("/suppliers/:id", f.requireAdmin, f.deleteSupplier)
		authed.GET("/orders", f.requireAdmin, f.listOrders)
		authed.GET("/orders/my-orders", f.listMyOrders)
		authed.POST("/orders", f.placeOrder)
		authed.PUT("/orders/:id/status", f.requireAdmin, f.updateOrderStatus)
		authed.DELETE("/orders/:id", f.requireAdmin, f.deleteOrder)
	}

	return router
}

// AddUser registers an account directly
func (f *FakeAPI) AddUser(name, email, password string, role models.Role) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := models.User{ID: uuid.NewString(), Name: name, Email: email, Role: string(role)}
	f.users[email] = &fakeUser{user: u, password: password}
	return u
}

// IssueToken signs a token for an existing user without going through login
func (f *FakeAPI) IssueToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueTokenLocked(f.users[email].user, time.Hour)
}

// IssueExpiredToken signs a token that expired an hour ago
func (f *FakeAPI) IssueExpiredToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueTokenLocked(f.users[email].user, -time.Hour)
}

func (f *FakeAPI) issueTokenLocked(u models.User, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"iss":   FakeJWTIssuer,
		"aud":   FakeJWTAudience,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"role":  u.Role,
		"email": u.Email,
		"jti":   uuid.NewString(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(FakeJWTSecret))
	if err != nil {
		panic(fmt.Sprintf("failed to sign fake token: %v", err))
	}
	f.tokens[token] = u.Email
	return token
}

// AddSupplier stores a supplier and returns it with its id
func (f *FakeAPI) AddSupplier(name, company, phone string) models.Supplier {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := &models.Supplier{ID: uuid.NewString(), Name: name, Company: company, Phone: phone}
	f.suppliers[s.ID] = s
	return *s
}

// AddStock stores a stock record for supplierID
func (f *FakeAPI) AddStock(category string, quantity int, supplierID string) models.Stock {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := &models.Stock{ID: uuid.NewString(), Category: category, Quantity: quantity}
	if sup, ok := f.suppliers[supplierID]; ok {
		s.Supplier = &models.Supplier{ID: sup.ID}
	}
	f.stocks[s.ID] = s
	return *f.populateStockLocked(s)
}

// AddProduct stores a product backed by stockID ("" for none)
func (f *FakeAPI) AddProduct(name, price, stockID string) models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := &models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
	}
	if stockID != "" {
		p.Stock = &models.Stock{ID: stockID}
	}
	f.products = append(f.products, p)
	return f.populateProductLocked(p)
}

// AddOrder stores an order as-is; an empty id or zero CreatedAt is filled in
func (f *FakeAPI) AddOrder(o models.Order) models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = f.tickLocked()
	}
	if o.Status == "" {
		o.Status = models.StatusPending
	}
	f.orders = append(f.orders, &o)
	return o
}

// SetStockQuantity changes availability behind the client's back
func (f *FakeAPI) SetStockQuantity(stockID string, quantity int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.stocks[stockID]; ok {
		s.Quantity = quantity
	}
}

// StockQuantity returns the server-side quantity of stockID
func (f *FakeAPI) StockQuantity(stockID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.stocks[stockID]; ok {
		return s.Quantity
	}
	return 0
}

// Orders returns a copy of the stored orders
func (f *FakeAPI) Orders() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out
}

// FailNext makes the next request to method+path answer with status and message
func (f *FakeAPI) FailNext(method, path string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = failure{status: status, message: message}
}

// CallCount returns how many requests matched method and path
func (f *FakeAPI) CallCount(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// TotalCalls returns the number of requests received
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *FakeAPI) tickLocked() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *FakeAPI) populateStockLocked(s *models.Stock) *models.Stock {
	out := *s
	if s.Supplier != nil {
		if sup, ok := f.suppliers[s.Supplier.ID]; ok {
			copied := *sup
			out.Supplier = &copied
		}
	}
	return &out
}

func (f *FakeAPI) populateProductLocked(p *models.Product) models.Product {
	out := *p
	if p.Stock != nil {
		if s, ok := f.stocks[p.Stock.ID]; ok {
			out.Stock = f.populateStockLocked(s)
		}
	}
	return out
}

func (f *FakeAPI) recordAndFail(c *gin.Context) {
	key := c.Request.Method + " " + c.Request.URL.Path

	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: c.Request.Method, Path: c.Request.URL.Path})
	fail, ok := f.failures[key]
	if ok {
		delete(f.failures, key)
	}
	f.mu.Unlock()

	if ok {
		c.AbortWithStatusJSON(fail.status, gin.H{"message": fail.message})
		return
	}
	c.Next()
}

func (f *FakeAPI) requireToken(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	f.mu.Lock()
	email, ok := f.tokens[token]
	var u *fakeUser
	if ok {
		u = f.users[email]
	}
	f.mu.Unlock()

	if !ok || u == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}
	c.Set("user", u.user)
	c.Next()
}

func (f *FakeAPI) requireAdmin(c *gin.Context) {
	if currentUser(c).Role != string(models.RoleAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied: admins only"})
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) models.User {
	u, _ := c.Get("user")
	user, _ := u.(models.User)
	return user
}

func (f *FakeAPI) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[req.Email]
	if !ok || u.password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	token := f.issueTokenLocked(u.user, time.Hour)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u.user})
}

func (f *FakeAPI) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and password are required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[req.Email]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}
	u := models.User{ID: uuid.NewString(), Name: req.Name, Email: req.Email, Role: string(models.RoleCustomer)}
	f.users[req.Email] = &fakeUser{user: u, password: req.Password}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": u})
}

func (f *FakeAPI) listProducts(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, f.populateProductLocked(p))
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) createProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product name is required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p := &models.Product{ID: uuid.NewString()}
	if !f.applyProductLocked(c, p, in) {
		return
	}
	f.products = append(f.products, p)
	c.JSON(http.StatusCreated, f.populateProductLocked(p))
}

func (f *FakeAPI) updateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.findProductLocked(c.Param("id"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	if !f.applyProductLocked(c, p, in) {
		return
	}
	c.JSON(http.StatusOK, f.populateProductLocked(p))
}

func (f *FakeAPI) applyProductLocked(c *gin.Context, p *models.Product, in models.ProductInput) bool {
	if in.StockID != "" {
		if _, ok := f.stocks[in.StockID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Stock not found"})
			return false
		}
		p.Stock = &models.Stock{ID: in.StockID}
	} else {
		p.Stock = nil
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	return true
}

func (f *FakeAPI) deleteProduct(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.products {
		if p.ID == c.Param("id") {
			f.products = append(f.products[:i], f.products[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
}

func (f *FakeAPI) listStocks(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Stock, 0, len(f.stocks))
	for _, s := range f.stocks {
		out = append(out, *f.populateStockLocked(s))
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) createStock(c *gin.Context) {
	var in models.StockInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category is required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s := &models.Stock{ID: uuid.NewString()}
	if !f.applyStockLocked(c, s, in) {
		return
	}
	f.stocks[s.ID] = s
	c.JSON(http.StatusCreated, f.populateStockLocked(s))
}

func (f *FakeAPI) updateStock(c *gin.Context) {
	var in models.StockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid stock"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.stocks[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Stock not found"})
		return
	}
	if !f.applyStockLocked(c, s, in) {
		return
	}
	c.JSON(http.StatusOK, f.populateStockLocked(s))
}

func (f *FakeAPI) applyStockLocked(c *gin.Context, s *models.Stock, in models.StockInput) bool {
	if in.SupplierID != "" {
		if _, ok := f.suppliers[in.SupplierID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Supplier not found"})
			return false
		}
		s.Supplier = &models.Supplier{ID: in.SupplierID}
	} else {
		s.Supplier = nil
	}
	s.ProductName = in.ProductName
	s.Category = in.Category
	s.Quantity = in.Quantity
	return true
}

func (f *FakeAPI) deleteStock(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := c.Param("id")
	if _, ok := f.stocks[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Stock not found"})
		return
	}
	delete(f.stocks, id)
	c.JSON(http.StatusOK, gin.H{"message": "Stock deleted"})
}

func (f *FakeAPI) listSuppliers(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Supplier, 0, len(f.suppliers))
	for _, s := range f.suppliers {
		out = append(out, *s)
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) createSupplier(c *gin.Context) {
	var s models.Supplier
	if err := c.ShouldBindJSON(&s); err != nil || s.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Supplier name is required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s.ID = uuid.NewString()
	f.suppliers[s.ID] = &s
	c.JSON(http.StatusCreated, s)
}

func (f *FakeAPI) updateSupplier(c *gin.Context) {
	var s models.Supplier
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid supplier"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := c.Param("id")
	if _, ok := f.suppliers[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Supplier not found"})
		return
	}
	s.ID = id
	f.suppliers[id] = &s
	c.JSON(http.StatusOK, s)
}

func (f *FakeAPI) deleteSupplier(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := c.Param("id")
	if _, ok := f.suppliers[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Supplier not found"})
		return
	}
	delete(f.suppliers, id)
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}

func (f *FakeAPI) listOrders(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) listMyOrders(c *gin.Context) {
	user := currentUser(c)

	f.mu.Lock()
	defer f.mu.Unlock()

	out := []models.Order{}
	for _, o := range f.orders {
		if o.Customer != nil && o.Customer.ID == user.ID {
			out = append(out, *o)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeAPI) placeOrder(c *gin.Context) {
	user := currentUser(c)

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order must contain at least one item"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	order := &models.Order{
		ID:       uuid.NewString(),
		Customer: &models.CustomerRef{ID: user.ID, Name: user.Name, Email: user.Email},
		Status:   models.StatusPending,
	}

	// Validate everything before touching stock
	for _, item := range req.Items {
		p := f.findProductLocked(item.ProductID)
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		if item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be at least 1"})
			return
		}
		s := f.stockForLocked(p)
		if s == nil || s.Quantity < item.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Insufficient stock for %s", p.Name)})
			return
		}
	}

	total := decimal.Zero
	for _, item := range req.Items {
		p := f.findProductLocked(item.ProductID)
		f.stockForLocked(p).Quantity -= item.Quantity
		line := models.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
		}
		total = total.Add(line.Subtotal())
		order.Items = append(order.Items, line)
	}
	order.TotalAmount = total
	order.CreatedAt = f.tickLocked()

	f.orders = append(f.orders, order)
	c.JSON(http.StatusCreated, order)
}

func (f *FakeAPI) updateOrderStatus(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.orders {
		if o.ID == c.Param("id") {
			o.Status = req.Status
			c.JSON(http.StatusOK, o)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
}

func (f *FakeAPI) deleteOrder(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, o := range f.orders {
		if o.ID == c.Param("id") {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
}

func (f *FakeAPI) findProductLocked(id string) *models.Product {
	for _, p := range f.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (f *FakeAPI) stockForLocked(p *models.Product) *models.Stock {
	if p.Stock == nil {
		return nil
	}
	return f.stocks[p.Stock.ID]
}
