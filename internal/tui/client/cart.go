package client

import (
	"encoding/json"
	"fmt"

	"github.com/codequest532/vyrona-social/internal/models"
)

// Catalog and cart endpoints

func (c *APIClient) GetProducts() ([]models.Product, error) {
	resp, err := c.get("/products")
	if err != nil {
		return nil, err
	}

	var result struct {
		Products []models.Product `json:"Products"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return result.Products, nil
}

// GetRoomCart returns the shared cart lines and the server-computed total.
func (c *APIClient) GetRoomCart(roomID uint) ([]models.CartItemWithProduct, int64, error) {
	return c.getCart(fmt.Sprintf("/rooms/%d/cart", roomID))
}

func (c *APIClient) GetPersonalCart() ([]models.CartItemWithProduct, int64, error) {
	return c.getCart("/cart")
}

func (c *APIClient) getCart(path string) ([]models.CartItemWithProduct, int64, error) {
	resp, err := c.get(path)
	if err != nil {
		return nil, 0, err
	}

	var result struct {
		Items     []models.CartItemWithProduct `json:"Items"`
		CartTotal int64                        `json:"CartTotal"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, 0, err
	}
	return result.Items, result.CartTotal, nil
}

func (c *APIClient) AddRoomCartItem(roomID, productID, quantity uint) error {
	_, err := c.post(fmt.Sprintf("/rooms/%d/cart", roomID), map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	return err
}

func (c *APIClient) AddPersonalCartItem(productID, quantity uint) error {
	_, err := c.post("/cart", map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	return err
}

// UpdateCartItem sets a line's quantity; zero removes the line.
func (c *APIClient) UpdateCartItem(itemID, quantity uint) error {
	_, err := c.patch(fmt.Sprintf("/cart/items/%d", itemID), map[string]any{
		"quantity": quantity,
	})
	return err
}

func (c *APIClient) RemoveCartItem(itemID uint) error {
	_, err := c.delete(fmt.Sprintf("/cart/items/%d", itemID))
	return err
}
