// internal/app/features/chat/handler.go
// The chat feature persists room messages and relays them live. Messages
// are posted over REST and fanned out to websocket subscribers; the
// socket itself is receive-only.
package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	roomstore "github.com/dalemusser/studymatch/internal/app/store/chatrooms"
	groupstore "github.com/dalemusser/studymatch/internal/app/store/groups"
	messagestore "github.com/dalemusser/studymatch/internal/app/store/messages"
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/dalemusser/studymatch/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studymatch/internal/app/system/httpjson"
	"github.com/dalemusser/studymatch/internal/app/system/wstoken"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxMessageLen = 2000

type Handler struct {
	Rooms    *roomstore.Store
	Messages *messagestore.Store
	Groups   *groupstore.Store
	Tokens   *wstoken.Issuer
	Hub      *Hub
	Log      *zap.Logger

	upgrader websocket.Upgrader
}

func NewHandler(
	rooms *roomstore.Store,
	messages *messagestore.Store,
	groups *groupstore.Store,
	tokens *wstoken.Issuer,
	hub *Hub,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Rooms:    rooms,
		Messages: messages,
		Groups:   groups,
		Tokens:   tokens,
		Hub:      hub,
		Log:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The session cookie and the ws token carry the auth; the SPA
			// runs on a different origin than the API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// loadMemberRoom resolves the {roomID} parameter and verifies the caller
// is a room member. Writes the error response itself on failure.
func (h *Handler) loadMemberRoom(w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (*models.ChatRoom, bool) {
	roomID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "roomID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid room id")
		return nil, false
	}

	room, err := h.Rooms.GetByID(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "room not found")
			return nil, false
		}
		httpjson.Internal(w, h.Log, "chat: load room", err)
		return nil, false
	}
	if room.IsPrivate && !room.HasMember(userID) {
		httpjson.Error(w, http.StatusForbidden, "not a room member")
		return nil, false
	}
	return room, true
}

// ServeListRooms handles GET /api/chat/rooms.
func (h *Handler) ServeListRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rooms, err := h.Rooms.ListForUser(r.Context(), userID)
	if err != nil {
		httpjson.Internal(w, h.Log, "chat: list rooms", err)
		return
	}
	httpjson.Write(w, http.StatusOK, rooms)
}

// ServeGroupRoom handles GET /api/chat/rooms/group/{groupID}. The room is
// created on first access and its member list mirrors the group's.
func (h *Handler) ServeGroupRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	group, err := h.Groups.GetByID(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		httpjson.Internal(w, h.Log, "chat: load group", err)
		return
	}
	if !group.HasMember(userID) {
		httpjson.Error(w, http.StatusForbidden, "not a group member")
		return
	}

	room, err := h.Rooms.GetOrCreateForGroup(r.Context(), group)
	if err != nil {
		httpjson.Internal(w, h.Log, "chat: group room", err)
		return
	}
	httpjson.Write(w, http.StatusOK, room)
}

// ServeRoom handles GET /api/chat/rooms/{roomID}.
func (h *Handler) ServeRoom(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	room, ok := h.loadMemberRoom(w, r, userID)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, room)
}

// ServeHistory handles GET /api/chat/rooms/{roomID}/messages.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	room, ok := h.loadMemberRoom(w, r, userID)
	if !ok {
		return
	}

	msgs, err := h.Messages.ListByRoom(r.Context(), room.ID)
	if err != nil {
		httpjson.Internal(w, h.Log, "chat: history", err)
		return
	}
	httpjson.Write(w, http.StatusOK, msgs)
}

// sendRequest is the body for POST /api/chat/rooms/{roomID}/messages.
type sendRequest struct {
	Content string `json:"content"`
}

// ServeSend handles POST /api/chat/rooms/{roomID}/messages. The message
// is stripped to plain text, persisted, and broadcast to the room's live
// connections.
func (h *Handler) ServeSend(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	room, ok := h.loadMemberRoom(w, r, userID)
	if !ok {
		return
	}

	var req sendRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := htmlsanitize.Text(req.Content)
	if content == "" {
		httpjson.Error(w, http.StatusBadRequest, "message is empty")
		return
	}
	if len(content) > maxMessageLen {
		httpjson.Error(w, http.StatusBadRequest, "message too long")
		return
	}

	msg, err := h.Messages.Create(r.Context(), models.Message{
		RoomID:   room.ID,
		SenderID: userID,
		Content:  content,
		Type:     models.MessageTypeText,
	})
	if err != nil {
		httpjson.Internal(w, h.Log, "chat: send", err)
		return
	}

	if err := h.Rooms.Touch(r.Context(), room.ID); err != nil {
		h.Log.Warn("chat: touch room", zap.Error(err))
	}

	if payload, err := json.Marshal(msg); err == nil {
		h.Hub.Broadcast(room.ID, payload)
	} else {
		h.Log.Error("chat: marshal broadcast", zap.Error(err))
	}

	httpjson.Write(w, http.StatusCreated, msg)
}

// ServeToken handles GET /api/chat/ws-token. The browser websocket API
// cannot set headers, so the socket authenticates with a short-lived
// token minted here under the session cookie.
func (h *Handler) ServeToken(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	token, err := h.Tokens.Mint(u.ID)
	if err != nil {
		httpjson.Internal(w, h.Log, "chat: mint ws token", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"token": token})
}

// ServeWS handles GET /api/chat/rooms/{roomID}/ws?token=… and upgrades to
// a websocket that receives the room's messages as they arrive.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userHex, err := h.Tokens.Verify(r.URL.Query().Get("token"))
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid token")
		return
	}
	userID, err := primitive.ObjectIDFromHex(userHex)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid token")
		return
	}

	room, ok := h.loadMemberRoom(w, r, userID)
	if !ok {
		return
	}

	wc, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("chat: ws upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		roomID: room.ID,
		wc:     wc,
		send:   make(chan []byte, sendBuffer),
	}

	h.Hub.register(c)
	go c.writeLoop()
	c.readLoop()
	h.Hub.unregister(c)
}
