package services

import (
	"errors"
	"strings"

	"github.com/codequest532/vyrona-social/internal/models"
	"github.com/codequest532/vyrona-social/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CartService struct {
	db   *gorm.DB
	gate AccessGate
}

func NewCartService(db *gorm.DB) *CartService { return &CartService{db: db} }

// AddItem creates a cart line. With a room id the room must be active and the
// caller a member; with roomID nil the line goes to the caller's personal
// cart. The active check runs in the same transaction as the insert so an add
// racing a room deletion fails instead of leaving an orphaned line.
func (s *CartService) AddItem(roomID *uint, userID uint, productID uint, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrValidation
	}

	item := &models.CartItem{RoomID: roomID, UserID: userID, ProductID: productID, Quantity: quantity}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := repositories.NewCartRepository(tx).FindProduct(productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if roomID != nil {
			room, err := repositories.NewRoomRepository(tx).LockByID(*roomID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return err
			}
			if !room.IsActive {
				return ErrRoomInactive
			}
			if _, err := s.gate.RequireMember(tx, *roomID, userID); err != nil {
				return err
			}
		}
		return repositories.NewCartRepository(tx).Create(item)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"item_id": item.ID, "user_id": userID, "product_id": productID}).
		Info("Cart item added")
	return item, nil
}

// UpdateQuantity replaces a line's quantity in place; zero is equivalent to
// removal. Any member of the owning room may update any line in the shared
// case; personal lines are only touchable by their owner.
func (s *CartService) UpdateQuantity(itemID uint, callerID uint, quantity uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := repositories.NewCartRepository(tx)
		item, err := cartRepo.FindItem(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		if err := s.authorizeItem(tx, item, callerID); err != nil {
			return err
		}
		if quantity == 0 {
			return cartRepo.DeleteItem(itemID)
		}
		item.Quantity = quantity
		return cartRepo.Save(item)
	})
}

// RemoveItem deletes a line. Removing an already-removed line reports
// ErrItemNotFound; callers treat a repeat remove as an acceptable outcome.
func (s *CartService) RemoveItem(itemID uint, callerID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := repositories.NewCartRepository(tx)
		item, err := cartRepo.FindItem(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		if err := s.authorizeItem(tx, item, callerID); err != nil {
			return err
		}
		return cartRepo.DeleteItem(itemID)
	})
}

// FindItem loads a single cart line.
func (s *CartService) FindItem(itemID uint) (*models.CartItem, error) {
	item, err := repositories.NewCartRepository(s.db).FindItem(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListRoomItems returns the room's shared cart lines plus the read-time
// total. Caller must be a member.
func (s *CartService) ListRoomItems(roomID uint, callerID uint) ([]models.CartItemWithProduct, int64, error) {
	room, err := repositories.NewRoomRepository(s.db).FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrRoomNotFound
		}
		return nil, 0, err
	}
	if !room.IsActive {
		return nil, 0, ErrRoomNotFound
	}
	if _, err := s.gate.RequireMember(s.db, roomID, callerID); err != nil {
		return nil, 0, err
	}
	cartRepo := repositories.NewCartRepository(s.db)
	items, err := cartRepo.ListByRoom(roomID)
	if err != nil {
		return nil, 0, err
	}
	total, err := cartRepo.TotalByRoom(roomID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListPersonalItems returns the caller's private (non-room) cart.
func (s *CartService) ListPersonalItems(userID uint) ([]models.CartItemWithProduct, int64, error) {
	items, err := repositories.NewCartRepository(s.db).ListPersonal(userID)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	for _, item := range items {
		total += item.Subtotal
	}
	return items, total, nil
}

// ListProducts returns the catalog, sorted by name.
func (s *CartService) ListProducts() ([]models.Product, error) {
	return repositories.NewCartRepository(s.db).ListProducts()
}

// CreateProduct adds a catalog entry. Price is in minor currency units.
func (s *CartService) CreateProduct(name string, price int64) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" || price <= 0 {
		return nil, ErrValidation
	}
	product := models.Product{Name: name, Price: price}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CartTotal recomputes the room's total from current rows.
func (s *CartService) CartTotal(roomID uint) (int64, error) {
	return repositories.NewCartRepository(s.db).TotalByRoom(roomID)
}

func (s *CartService) authorizeItem(tx *gorm.DB, item *models.CartItem, callerID uint) error {
	if item.RoomID == nil {
		if item.UserID != callerID {
			return ErrForbidden
		}
		return nil
	}
	_, err := s.gate.RequireMember(tx, *item.RoomID, callerID)
	return err
}
