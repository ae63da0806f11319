package handlers

import (
	"net/http"

	"storefront/internal/dto"

	"github.com/gin-gonic/gin"
)

// MessageHandler serves the customer support thread. Each customer has one
// thread; admins address it by the customer's user id.
type MessageHandler struct {
	svc MessageService
}

func NewMessageHandler(svc MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// MyThread godoc
// @Summary      Read my support thread
// @Tags         messages
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListMessagesResponse
// @Router       /profile/messages [get]
func (h *MessageHandler) MyThread(c *gin.Context) {
	h.thread(c, currentUser(c), false)
}

// MyPost godoc
// @Summary      Write to support
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.PostMessageRequest  true  "Message"
// @Success      201   {object}  dto.MessageResponse
// @Router       /profile/messages [post]
func (h *MessageHandler) MyPost(c *gin.Context) {
	h.post(c, currentUser(c), false)
}

// AdminThread godoc
// @Summary      Read a customer's support thread
// @Tags         admin-messages
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.ListMessagesResponse
// @Router       /admin/users/{id}/messages [get]
func (h *MessageHandler) AdminThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.thread(c, id, true)
}

// AdminPost godoc
// @Summary      Reply to a customer
// @Tags         admin-messages
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int                     true  "User ID"
// @Param        body  body      dto.PostMessageRequest  true  "Message"
// @Success      201   {object}  dto.MessageResponse
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id}/messages [post]
func (h *MessageHandler) AdminPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.post(c, id, true)
}

func (h *MessageHandler) thread(c *gin.Context, userID int64, admin bool) {
	list, err := h.svc.Thread(c.Request.Context(), userID, admin)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.MessageResponse, len(list))
	for i, m := range list {
		items[i] = messageToResponse(m)
	}
	c.JSON(http.StatusOK, dto.ListMessagesResponse{Items: items})
}

func (h *MessageHandler) post(c *gin.Context, userID int64, admin bool) {
	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.svc.Post(c.Request.Context(), userID, admin, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, messageToResponse(m))
}
