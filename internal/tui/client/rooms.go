package client

import (
	"encoding/json"
	"fmt"

	"github.com/codequest532/vyrona-social/internal/models"
)

// Room endpoints

func (c *APIClient) GetRooms(mine bool) ([]models.RoomSummary, error) {
	path := "/rooms"
	if mine {
		path += "?mine=1"
	}
	resp, err := c.get(path)
	if err != nil {
		return nil, err
	}

	var result struct {
		Rooms []models.RoomSummary `json:"Rooms"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return result.Rooms, nil
}

func (c *APIClient) GetRoom(roomID uint) (*models.RoomSummary, error) {
	resp, err := c.get(fmt.Sprintf("/rooms/%d", roomID))
	if err != nil {
		return nil, err
	}

	var result struct {
		Room models.RoomSummary `json:"Room"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &result.Room, nil
}

func (c *APIClient) CreateRoom(name, description string, maxMembers uint) (*models.RoomSummary, error) {
	res, err := c.post("/rooms", map[string]any{
		"name":        name,
		"description": description,
		"max_members": maxMembers,
	})
	if err != nil {
		return nil, err
	}
	return decodeRoom(res)
}

func (c *APIClient) JoinRoomByCode(code string) (*models.RoomSummary, error) {
	res, err := c.post("/rooms/join", map[string]any{"code": code})
	if err != nil {
		return nil, err
	}
	return decodeRoom(res)
}

func (c *APIClient) ExitRoom(roomID uint) error {
	_, err := c.post(fmt.Sprintf("/rooms/%d/exit", roomID), nil)
	return err
}

func (c *APIClient) DeleteRoom(roomID uint) error {
	_, err := c.delete(fmt.Sprintf("/rooms/%d", roomID))
	return err
}

// Membership endpoints

func (c *APIClient) GetMembers(roomID uint) ([]models.Membership, error) {
	resp, err := c.get(fmt.Sprintf("/rooms/%d/members", roomID))
	if err != nil {
		return nil, err
	}

	var result struct {
		Members []models.Membership `json:"Members"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return result.Members, nil
}

func (c *APIClient) AddMember(roomID uint, name string) error {
	_, err := c.post(fmt.Sprintf("/rooms/%d/members", roomID), map[string]any{"name": name})
	return err
}

func (c *APIClient) RemoveMember(roomID, userID uint) error {
	_, err := c.delete(fmt.Sprintf("/rooms/%d/members/%d", roomID, userID))
	return err
}

func (c *APIClient) PromoteMember(roomID, userID uint) error {
	_, err := c.post(fmt.Sprintf("/rooms/%d/members/%d/promote", roomID, userID), nil)
	return err
}

// decodeRoom lifts the "Room" field of a generic response into a summary.
func decodeRoom(res map[string]any) (*models.RoomSummary, error) {
	raw, err := json.Marshal(res["Room"])
	if err != nil {
		return nil, err
	}
	var room models.RoomSummary
	if err := json.Unmarshal(raw, &room); err != nil {
		return nil, err
	}
	return &room, nil
}
