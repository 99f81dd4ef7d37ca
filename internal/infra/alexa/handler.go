package alexa

import (
	"context"
	"io"
	"net/http"
	"time"

	"refuse_day_skill/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxRequestBody = 64 << 10

// TurnHandler answers one conversational turn.
type TurnHandler interface {
	HandleTurn(ctx context.Context, turn app.Turn) app.Reply
}

// Handler is the HTTPS endpoint the Alexa service posts skill requests to.
type Handler struct {
	conversation  TurnHandler
	validate      *validator.Validate
	applicationID string
	turnTimeout   time.Duration
	logger        *logrus.Entry
}

func NewHandler(conversation TurnHandler, applicationID string, turnTimeout time.Duration, logger *logrus.Entry) *Handler {
	return &Handler{
		conversation:  conversation,
		validate:      validator.New(),
		applicationID: applicationID,
		turnTimeout:   turnTimeout,
		logger:        logger.WithField("component", "alexa_handler"),
	}
}

// Routes mounts the skill endpoint and a liveness probe.
func (h *Handler) Routes(inboundPerMinute int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.With(httprate.LimitByIP(inboundPerMinute, time.Minute)).Post("/alexa", h.ServeSkill)
	return r
}

// ServeSkill decodes an Alexa request, runs the turn and writes the Alexa response.
func (h *Handler) ServeSkill(w http.ResponseWriter, r *http.Request) {
	turnID := uuid.NewString()
	logCtx := h.logger.WithField("turn_id", turnID)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		logCtx.WithError(err).Warn("Failed to read request body")
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}

	var envelope RequestEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logCtx.WithError(err).Warn("Malformed skill request")
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&envelope); err != nil {
		logCtx.WithError(err).Warn("Invalid skill request")
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if h.applicationID != "" && envelope.ApplicationID() != h.applicationID {
		logCtx.WithField("application_id", envelope.ApplicationID()).Warn("Request for another skill")
		http.Error(w, "unknown application", http.StatusForbidden)
		return
	}

	ctx := r.Context()
	if h.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.turnTimeout)
		defer cancel()
	}

	turn := envelope.Turn(turnID)
	logCtx.WithField("request_type", turn.Kind).WithField("intent", turn.Intent).Debug("Handling turn")
	reply := h.conversation.HandleTurn(ctx, turn)

	out, err := json.Marshal(NewResponseEnvelope(reply))
	if err != nil {
		logCtx.WithError(err).Error("Failed to encode skill response")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		logCtx.WithError(err).Warn("Failed to write skill response")
	}
}
