package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/shop-chatbot/internal/apperr"
	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

const (
	// chatTimeout keeps a stuck LLM call from holding the request forever
	chatTimeout = 60 * time.Second

	urgentPrefix        = "Important message from chatbot: "
	forwardPrefix       = "Product info from chatbot: "
	NothingToForwardMsg = "No product information to forward."
)

// ChatUseCase chat orchestration: classify, lookup, answer, notify
type ChatUseCase interface {
	// Chat answers one message with a complete response
	Chat(ctx context.Context, req entity.ChatRequest) (entity.ChatReply, error)

	// ChatStream answers one message chunk by chunk. The notification, if any,
	// is sent after the last chunk and reported in the returned reply.
	ChatStream(ctx context.Context, req entity.ChatRequest, onChunk func(chunk string) error) (entity.ChatReply, error)
}

type chatUseCase struct {
	classifier       *Classifier
	aiRepo           repository.AIRepository
	lookupRepo       repository.LookupRepository
	notificationRepo repository.NotificationRepository
	sessionRepo      repository.SessionRepository
	logger           *slog.Logger
}

// NewChatUseCase creates a ChatUseCase
func NewChatUseCase(
	aiRepo repository.AIRepository,
	lookupRepo repository.LookupRepository,
	notificationRepo repository.NotificationRepository,
	sessionRepo repository.SessionRepository,
	logger *slog.Logger,
) ChatUseCase {
	return &chatUseCase{
		classifier:       NewClassifier(),
		aiRepo:           aiRepo,
		lookupRepo:       lookupRepo,
		notificationRepo: notificationRepo,
		sessionRepo:      sessionRepo,
		logger:           logger,
	}
}

func (u *chatUseCase) Chat(ctx context.Context, req entity.ChatRequest) (entity.ChatReply, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	reply, prompt, err := u.prepare(ctx, req)
	if err != nil {
		return reply, err
	}

	response, err := u.aiRepo.GenerateResponse(ctx, prompt)
	if err != nil {
		return reply, apperr.ErrLLM.WrapParent(err)
	}
	reply.Response = response

	reply.Notification = u.notify(ctx, req.Message, reply)
	return reply, nil
}

func (u *chatUseCase) ChatStream(ctx context.Context, req entity.ChatRequest, onChunk func(chunk string) error) (entity.ChatReply, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	reply, prompt, err := u.prepare(ctx, req)
	if err != nil {
		return reply, err
	}

	var (
		sb      strings.Builder
		sinkErr error
	)
	err = u.aiRepo.StreamResponse(ctx, prompt, func(chunk string) error {
		sb.WriteString(chunk)
		if err := onChunk(chunk); err != nil {
			sinkErr = err
			return err
		}
		return nil
	})
	reply.Response = sb.String()
	if err != nil {
		if sinkErr != nil && errors.Is(err, sinkErr) {
			return reply, err
		}
		return reply, apperr.ErrLLM.WrapParent(err)
	}

	reply.Notification = u.notify(ctx, req.Message, reply)
	return reply, nil
}

// prepare classifies the message, runs the lookup and builds the prompt.
func (u *chatUseCase) prepare(ctx context.Context, req entity.ChatRequest) (entity.ChatReply, entity.Prompt, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return entity.ChatReply{}, entity.Prompt{}, apperr.ErrEmptyMessage
	}

	reply := entity.ChatReply{SessionID: req.SessionID}
	if reply.SessionID == "" {
		reply.SessionID = uuid.NewString()
	}

	reply.Intent = u.classifier.Classify(message)
	if reply.Intent.NeedsLookup() {
		reply.Lookup = u.lookupRepo.Query(ctx, reply.Intent.Term, reply.Intent.Category)
	}

	u.logger.InfoContext(ctx, "message classified",
		slog.String("session_id", reply.SessionID),
		slog.String("category", string(reply.Intent.Category)),
		slog.String("term", reply.Intent.Term),
		slog.String("notify", string(reply.Intent.Notify)),
		slog.String("lookup", reply.Lookup.Status.String()),
	)

	if reply.Lookup.IsFound() {
		if err := u.sessionRepo.SaveLookup(ctx, reply.SessionID, reply.Lookup); err != nil {
			u.logger.WarnContext(ctx, "failed to remember lookup", slog.Any("error", err))
		}
	}

	return reply, BuildPrompt(message, reply.Intent, reply.Lookup), nil
}

// notify sends the notification the intent asks for. Returns nil when none was asked.
func (u *chatUseCase) notify(ctx context.Context, message string, reply entity.ChatReply) *entity.NotificationOutcome {
	var text string

	switch reply.Intent.Notify {
	case entity.NotifyUrgent:
		text = urgentPrefix + strings.TrimSpace(message)
	case entity.NotifyForward:
		data, ok := u.forwardData(ctx, reply)
		if !ok {
			return &entity.NotificationOutcome{Status: NothingToForwardMsg}
		}
		text = forwardPrefix + data
	default:
		return nil
	}

	outcome := u.notificationRepo.Send(ctx, entity.Notification{Message: text})
	if !outcome.Sent {
		u.logger.WarnContext(ctx, "notification not delivered",
			slog.String("session_id", reply.SessionID),
			slog.String("status", outcome.Status),
		)
	}
	return &outcome
}

// forwardData picks this request's lookup, else the session's last found lookup.
func (u *chatUseCase) forwardData(ctx context.Context, reply entity.ChatReply) (string, bool) {
	if reply.Lookup.IsFound() {
		return reply.Lookup.Data, true
	}

	last, ok, err := u.sessionRepo.LastLookup(ctx, reply.SessionID)
	if err != nil {
		u.logger.WarnContext(ctx, "failed to read session", slog.Any("error", err))
		return "", false
	}
	if !ok || !last.IsFound() {
		return "", false
	}
	return last.Data, true
}
