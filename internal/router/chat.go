package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"

	"sarvasva/internal/auth"
	"sarvasva/internal/middleware"
	"sarvasva/internal/models"
	"sarvasva/internal/realtime"
	"sarvasva/internal/realtime/bus"
	repo "sarvasva/internal/repository"
)

const publishTimeout = 5 * time.Second

// ChatMessageEvent is what stream subscribers receive for every new message.
type ChatMessageEvent struct {
	CourseID string          `json:"courseId"`
	Message  *models.Message `json:"message"`
}

// ChatRoutes serves course chats. New messages are published on b, and stream subscribers are
// attached to hub.
func ChatRoutes(hub *realtime.Hub, b bus.Bus) *chi.Mux {
	router := chi.NewRouter()

	router.Route("/course/{courseID}", func(router chi.Router) {
		// Sets "courseID" from URL param in the context
		router.Use(middleware.CourseCtx())

		router.Get("/", getChatHandler)
		router.Post("/message", sendMessageHandler(b))

		// Server-Sent Events stream of new messages
		router.Get("/stream", streamChatHandler(hub))
	})

	return router
}

// GET: /course/{courseID}
func getChatHandler(w http.ResponseWriter, r *http.Request) {
	guest, err := auth.GetGuestFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	chat, err := repo.Repository.GetOrCreateChat(&models.GetChatRequest{
		CourseID:  middleware.CourseID(r),
		GuestID:   guest.ID,
		GuestName: guest.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, chat)
}

// POST: /course/{courseID}/message
func sendMessageHandler(b bus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guest, err := auth.GetGuestFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req models.SendMessageRequest
		if err := decodeRequest(r, &req, false); err != nil {
			writeError(w, r, err)
			return
		}
		req.CourseID = middleware.CourseID(r)
		req.GuestID = guest.ID
		req.GuestName = guest.Name

		msg, err := repo.Repository.SendMessage(&req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		// Delivery to subscribers never holds up the response.
		go publishMessage(b, req.CourseID, msg)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, msg)
	}
}

func publishMessage(b bus.Bus, courseID string, msg *models.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := b.Publish(ctx, realtime.Message{
		Room:  courseID,
		Event: realtime.EventChatMessage,
		Data:  ChatMessageEvent{CourseID: courseID, Message: msg},
	})
	if err != nil {
		glog.Warningf("failed to publish chat message %s: %v", msg.ID, err)
	}
}

// GET: /course/{courseID}/stream
func streamChatHandler(hub *realtime.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guest, err := auth.GetGuestFromRequest(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		hub.Serve(w, r, hub.Join(middleware.CourseID(r), guest.ID))
	}
}
