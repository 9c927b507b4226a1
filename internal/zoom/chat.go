package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// decodeItems converts the loosely-typed items from a listing response into
// typed DTOs via a JSON round trip.
func decodeItems[T any](items []any) ([]T, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode listing items: %w", err)
	}
	var out []T
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, fmt.Errorf("failed to decode listing items: %w", err)
	}
	return out, nil
}

// decodeObject converts a single response object into a typed DTO.
func decodeObject[T any](obj map[string]any) (*T, error) {
	encoded, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode response: %w", err)
	}
	var out T
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// Me returns the authorized user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.Execute(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, err
	}
	return decodeObject[User](resp)
}

// ListChannels lists every channel the user is a member of.
func (c *Client) ListChannels(ctx context.Context) ([]Channel, error) {
	items, err := c.CollectAll(ctx, "/chat/users/me/channels", nil)
	if err != nil {
		return nil, err
	}
	return decodeItems[Channel](items)
}

// GetChannel retrieves a channel by ID.
func (c *Client) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	resp, err := c.Execute(ctx, http.MethodGet, "/chat/channels/"+channelID, nil)
	if err != nil {
		return nil, err
	}
	return decodeObject[Channel](resp)
}

// CreateChannel creates a channel and returns it. channelType follows
// Zoom's numbering (1 private, 2 private with members, 3 public).
func (c *Client) CreateChannel(ctx context.Context, name string, channelType int, memberEmails []string) (*Channel, error) {
	members := make([]map[string]string, 0, len(memberEmails))
	for _, email := range memberEmails {
		members = append(members, map[string]string{"email": email})
	}
	body := map[string]any{
		"name":    name,
		"type":    channelType,
		"members": members,
	}
	resp, err := c.Execute(ctx, http.MethodPost, "/chat/users/me/channels", &RequestOptions{Body: body})
	if err != nil {
		return nil, err
	}
	return decodeObject[Channel](resp)
}

// RenameChannel changes a channel's name.
func (c *Client) RenameChannel(ctx context.Context, channelID, name string) error {
	_, err := c.Execute(ctx, http.MethodPatch, "/chat/channels/"+channelID, &RequestOptions{
		Body: map[string]any{"name": name},
	})
	return err
}

// DeleteChannel deletes a channel.
func (c *Client) DeleteChannel(ctx context.Context, channelID string) error {
	_, err := c.Execute(ctx, http.MethodDelete, "/chat/channels/"+channelID, nil)
	return err
}

// ListChannelMembers lists the members of a channel.
func (c *Client) ListChannelMembers(ctx context.Context, channelID string) ([]ChannelMember, error) {
	items, err := c.CollectAll(ctx, "/chat/users/me/channels/"+channelID+"/members", nil)
	if err != nil {
		return nil, err
	}
	return decodeItems[ChannelMember](items)
}

// SendMessage sends a message to a channel or a contact and returns the new
// message ID.
func (c *Client) SendMessage(ctx context.Context, input MessageInput) (string, error) {
	body := map[string]any{"message": input.Message}
	if input.ToChannel != "" {
		body["to_channel"] = input.ToChannel
	}
	if input.ToContact != "" {
		body["to_contact"] = input.ToContact
	}
	if input.ReplyMainMessageID != "" {
		body["reply_main_message_id"] = input.ReplyMainMessageID
	}

	resp, err := c.Execute(ctx, http.MethodPost, "/chat/users/me/messages", &RequestOptions{Body: body})
	if err != nil {
		return "", err
	}
	id, _ := resp["id"].(string)
	return id, nil
}

// ListMessages lists messages exchanged with a channel or contact, newest
// pages first as Zoom returns them.
func (c *Client) ListMessages(ctx context.Context, target MessageTarget, date string) ([]Message, error) {
	query := url.Values{}
	query.Set("to_channel", target.ToChannel)
	query.Set("to_contact", target.ToContact)
	query.Set("date", date)

	items, err := c.CollectAll(ctx, "/chat/users/me/messages", &PageOptions{Query: query})
	if err != nil {
		return nil, err
	}
	return decodeItems[Message](items)
}

// UpdateMessage edits the body of an existing message.
func (c *Client) UpdateMessage(ctx context.Context, messageID string, target MessageTarget, message string) error {
	body := map[string]any{"message": message}
	if target.ToChannel != "" {
		body["to_channel"] = target.ToChannel
	}
	if target.ToContact != "" {
		body["to_contact"] = target.ToContact
	}
	_, err := c.Execute(ctx, http.MethodPut, "/chat/users/me/messages/"+messageID, &RequestOptions{Body: body})
	return err
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, messageID string, target MessageTarget) error {
	query := url.Values{}
	query.Set("to_channel", target.ToChannel)
	query.Set("to_contact", target.ToContact)
	_, err := c.Execute(ctx, http.MethodDelete, "/chat/users/me/messages/"+messageID, &RequestOptions{Query: query})
	return err
}

// ListContacts lists the user's Zoom contacts.
func (c *Client) ListContacts(ctx context.Context) ([]Contact, error) {
	items, err := c.CollectAll(ctx, "/chat/users/me/contacts", nil)
	if err != nil {
		return nil, err
	}
	return decodeItems[Contact](items)
}

// SearchContacts searches directory contacts by name or email.
func (c *Client) SearchContacts(ctx context.Context, searchKey string) ([]Contact, error) {
	query := url.Values{}
	query.Set("search_key", searchKey)

	items, err := c.CollectAll(ctx, "/contacts", &PageOptions{Query: query})
	if err != nil {
		return nil, err
	}
	return decodeItems[Contact](items)
}
