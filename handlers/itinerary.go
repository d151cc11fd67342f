package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxetravel/logger"
	"luxetravel/services"
)

// upper bound for one recording
const maxAudioBytes = 25 << 20

var errAudioTooLarge = errors.New("audio exceeds 25 MiB")

type ItineraryRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type ItineraryResponse struct {
	Outcome   services.Outcome `json:"outcome"`
	Prompt    string           `json:"prompt"`
	Itinerary string           `json:"itinerary"`
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type ChatResponse struct {
	SessionID string           `json:"session_id"`
	Outcome   services.Outcome `json:"outcome"`
	Reply     string           `json:"reply"`
}

type SpeakRequest struct {
	Text string `json:"text" binding:"required"`
}

// ─── Itinerary ────────────────────────────────────────────────────────────────

func (h *Handler) GenerateItinerary(c *gin.Context) {
	var req ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoPrompt.Error()})
		return
	}
	prompt := strings.TrimSpace(req.Prompt)

	text, err := h.ai.GenerateItinerary(c.Request.Context(), prompt)
	if err != nil {
		logger.Log.Warn("[itinerary] generation failed, using fallback", zap.Error(err))
		c.JSON(http.StatusOK, ItineraryResponse{
			Outcome:   services.OutcomeError,
			Prompt:    prompt,
			Itinerary: services.ItineraryFallback,
		})
		return
	}

	outcome := services.OutcomeOK
	if strings.TrimSpace(text) == "" {
		outcome = services.OutcomeEmpty
	}
	c.JSON(http.StatusOK, ItineraryResponse{Outcome: outcome, Prompt: prompt, Itinerary: text})
}

// ─── Chat ─────────────────────────────────────────────────────────────────────

// Chat sends one message with the session's history. Failed turns are not
// added to the history.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	sessionID, ok := h.resolveSession(c, req.SessionID)
	if !ok {
		return
	}
	history, err := h.sessions.History(sessionID)
	if err != nil {
		sessionError(c, err)
		return
	}

	reply, err := h.ai.Chat(c.Request.Context(), history, req.Message)
	if err != nil {
		logger.Log.Warn("[chat] reply failed, using fallback", zap.String("session", sessionID), zap.Error(err))
		c.JSON(http.StatusOK, ChatResponse{SessionID: sessionID, Outcome: services.OutcomeError, Reply: services.ChatFallback})
		return
	}

	if err := h.sessions.AppendChat(sessionID,
		services.ChatTurn{Role: "user", Text: req.Message},
		services.ChatTurn{Role: "model", Text: reply},
	); err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{SessionID: sessionID, Outcome: services.OutcomeOK, Reply: reply})
}

// ─── Voice ────────────────────────────────────────────────────────────────────

// Transcribe accepts the recording either as a multipart "audio" file or as
// the raw request body.
func (h *Handler) Transcribe(c *gin.Context) {
	audio, mimeType, err := readAudio(c)
	if errors.Is(err, errAudioTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid audio: " + err.Error()})
		return
	}
	if len(audio) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio is required"})
		return
	}
	if mimeType == "application/octet-stream" {
		mimeType = ""
	}

	text, err := h.ai.Transcribe(c.Request.Context(), audio, mimeType)
	if err != nil {
		logger.Log.Warn("[voice] transcription failed", zap.Int("bytes", len(audio)), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": services.TranscribeFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": strings.TrimSpace(text)})
}

func readAudio(c *gin.Context) ([]byte, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("audio")
		if err != nil {
			return nil, "", err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := readLimited(f)
		return data, fh.Header.Get("Content-Type"), err
	}

	data, err := readLimited(c.Request.Body)
	return data, c.ContentType(), err
}

// readLimited reads one byte past the limit so an oversized recording is
// rejected rather than cut short.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxAudioBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxAudioBytes {
		return nil, errAudioTooLarge
	}
	return data, nil
}

// Speak reads the start of an itinerary aloud and returns it as audio/wav.
func (h *Handler) Speak(c *gin.Context) {
	var req SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	pcm, err := h.ai.Synthesize(c.Request.Context(), services.SpeechText(req.Text))
	if err != nil || len(pcm) == 0 {
		logger.Log.Warn("[voice] speech synthesis failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": services.SpeechFallback})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "audio/wav", services.EncodeWAV(pcm, services.SpeechSampleRate, 1))
}
