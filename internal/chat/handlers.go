package chat

import (
	"errors"

	"bazaar-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// POST /sendMessage
func (h *Handlers) SendMessage(c *fiber.Ctx) error {
	var body struct {
		ID      string `json:"id"`
		Message string `json:"message"`
		To      string `json:"to"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	productID, err := uuid.Parse(body.ID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid product or recipient email"})
	}

	user := middleware.GetUser(c)
	err = h.Service.SendMessage(c.Context(), user.UserEmail, body.To, body.Message, productID)
	if err != nil {
		if errors.Is(err, ErrInvalidTarget) {
			return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		if errors.Is(err, ErrNotAllowed) {
			// legacy API reports rejected sends as 201 with success=false
			return c.Status(201).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		log.Error().Err(err).Msg("Error saving message")
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error sending message"})
	}

	return c.Status(200).JSON(fiber.Map{"success": true, "message": "Message sent successfully"})
}

// GET /api/new-messages?id=&to=
func (h *Handlers) NewMessages(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	user := middleware.GetUser(c)
	msgs, err := h.Service.MessagesBetween(c.Context(), user.UserEmail, c.Query("to"), productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(msgs)
}

// GET /api/newchats
func (h *Handlers) NewChats(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	threads, err := h.Service.LatestThreadsFor(c.Context(), user.UserEmail)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(threads)
}

// POST /deletechat/:id
func (h *Handlers) DeleteChat(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Chat not found"})
	}
	user := middleware.GetUser(c)
	deleted, err := h.Service.DeleteThread(c.Context(), user.UserEmail, productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Server error"})
	}
	if deleted == 0 {
		return c.Status(404).JSON(fiber.Map{"message": "Chat not found"})
	}
	return c.Status(200).JSON(fiber.Map{"message": "Chat deleted"})
}

// POST /mark-messages-read
func (h *Handlers) MarkMessagesRead(c *fiber.Ctx) error {
	var body struct {
		MessageIDs []string `json:"messageIds"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error updating messages"})
	}
	ids := make([]uuid.UUID, 0, len(body.MessageIDs))
	for _, raw := range body.MessageIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	if err := h.Service.MarkRead(c.Context(), ids); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error updating messages"})
	}
	return c.Status(200).JSON(fiber.Map{"success": true, "message": "Messages marked as read"})
}

// GET /unreadMessages
func (h *Handlers) UnreadMessages(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	count, err := h.Service.UnreadCount(c.Context(), user.UserEmail)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error fetching unread messages", "error": err.Error()})
	}
	return c.Status(200).JSON(fiber.Map{"success": true, "count": count})
}
