package repositories

import (
	"github.com/codequest532/vyrona-social/internal/config"
	"github.com/codequest532/vyrona-social/internal/models"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindItem(itemID any) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Save(item *models.CartItem) error
	DeleteItem(itemID any) error
	ListByRoom(roomID any) ([]models.CartItemWithProduct, error)
	ListPersonal(userID any) ([]models.CartItemWithProduct, error)
	TotalByRoom(roomID any) (int64, error)
	DeleteByRoomID(roomID any) error
	FindProduct(productID any) (*models.Product, error)
	ListProducts() ([]models.Product, error)
}

type GormCartRepository struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) *GormCartRepository { return &GormCartRepository{db: db} }

func (r *GormCartRepository) FindItem(itemID any) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) Create(item *models.CartItem) error { return r.db.Create(item).Error }
func (r *GormCartRepository) Save(item *models.CartItem) error   { return r.db.Save(item).Error }

func (r *GormCartRepository) DeleteItem(itemID any) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

const cartItemSelect = `cart_items.id, cart_items.room_id, cart_items.user_id,
	users.name AS added_by, cart_items.product_id, products.name AS product_name,
	products.price, cart_items.quantity,
	cart_items.quantity * products.price AS subtotal`

func (r *GormCartRepository) ListByRoom(roomID any) ([]models.CartItemWithProduct, error) {
	var items []models.CartItemWithProduct
	err := r.db.Table("cart_items").
		Select(cartItemSelect).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Joins("JOIN users ON users.id = cart_items.user_id").
		Where("cart_items.room_id = ?", roomID).
		Order("cart_items.created_at ASC").
		Scan(&items).Error
	return items, err
}

func (r *GormCartRepository) ListPersonal(userID any) ([]models.CartItemWithProduct, error) {
	var items []models.CartItemWithProduct
	err := r.db.Table("cart_items").
		Select(cartItemSelect).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Joins("JOIN users ON users.id = cart_items.user_id").
		Where("cart_items.room_id IS NULL AND cart_items.user_id = ?", userID).
		Order("cart_items.created_at ASC").
		Scan(&items).Error
	return items, err
}

// TotalByRoom computes the room's cart total from current rows in one query;
// no running total is ever persisted.
func (r *GormCartRepository) TotalByRoom(roomID any) (int64, error) {
	var total int64
	err := r.db.Table("cart_items").
		Select("COALESCE(SUM(cart_items.quantity * products.price), 0)").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.room_id = ?", roomID).
		Scan(&total).Error
	return total, err
}

func (r *GormCartRepository) DeleteByRoomID(roomID any) error {
	return r.db.Where("room_id = ?", roomID).Delete(&models.CartItem{}).Error
}

func (r *GormCartRepository) FindProduct(productID any) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormCartRepository) ListProducts() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func DefaultCartRepository() CartRepository { return NewCartRepository(config.DB) }
