package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"markhub/internal/cache"
	"markhub/internal/model"
	"markhub/internal/repository"
)

// WebSocket event types emitted while a session moves through the
// pipeline.
const (
	EventExtractionComplete = "extraction_complete"
	EventQuestionMatched    = "question_matched"
	EventSchemeResolved     = "scheme_resolved"
	EventMarkingComplete    = "marking_complete"
	EventSessionError       = "session_error"
)

// SessionService drives a homework submission through extraction,
// detection, scheme resolution and marking, persisting progress as it
// goes.
type SessionService struct {
	sessions     repository.SessionRepo
	sessionCache cache.SessionCache
	ocr          *OCRService
	marker       *MarkerService
	detection    *DetectionService
	broadcaster  Broadcaster
	logger       *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(
	sessions repository.SessionRepo,
	sessionCache cache.SessionCache,
	ocr *OCRService,
	marker *MarkerService,
	detection *DetectionService,
	logger *slog.Logger,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		sessions:     sessions,
		sessionCache: sessionCache,
		ocr:          ocr,
		marker:       marker,
		detection:    detection,
		logger:       logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SubmitHomework runs the full marking pipeline for one uploaded image.
// The returned session reflects the final state; pipeline failures are
// recorded on the session rather than returned, except the fatal
// missing-marks case which must not be swallowed.
func (s *SessionService) SubmitHomework(ctx context.Context, mimeType, imageBase64 string) (*model.MarkingSession, error) {
	session := &model.MarkingSession{
		ID:       uuid.New().String(),
		Status:   model.SessionProcessing,
		MimeType: mimeType,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	extraction, err := s.ocr.ExtractQuestion(ctx, mimeType, imageBase64)
	if err != nil {
		s.fail(ctx, session, "could not read the homework image")
		return session, nil
	}
	session.Extraction = extraction
	s.broadcast(session.ID, EventExtractionComplete, extraction)

	result, err := s.detection.Detect(ctx, extraction.QuestionText, extraction.QuestionNumber)
	if err != nil {
		// Corrupt corpus data; marking must not proceed on a guess.
		s.fail(ctx, session, "question data is incomplete, cannot mark")
		return session, err
	}
	if !result.Found {
		session.Status = model.SessionUnmatched
		session.Message = result.Message
		s.save(ctx, session)
		s.broadcast(session.ID, EventMarkingComplete, session)
		return session, nil
	}

	session.Match = result.Match
	s.broadcast(session.ID, EventQuestionMatched, result.Match)
	if result.Match.MarkingScheme != nil {
		s.broadcast(session.ID, EventSchemeResolved, result.Match.MarkingScheme)
	}

	feedback, err := s.marker.MarkWork(ctx, extraction, result.Match)
	if err != nil {
		s.fail(ctx, session, "marking failed")
		return session, nil
	}
	session.Feedback = feedback
	session.Status = model.SessionCompleted
	now := time.Now()
	session.CompletedAt = &now

	s.save(ctx, session)
	s.broadcast(session.ID, EventMarkingComplete, session)
	return session, nil
}

// Get returns a session, preferring the cache snapshot.
func (s *SessionService) Get(ctx context.Context, id string) (*model.MarkingSession, error) {
	if cached, err := s.sessionCache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}
	return s.sessions.GetByID(ctx, id)
}

// List returns the most recent sessions.
func (s *SessionService) List(ctx context.Context, limit int64) ([]*model.MarkingSession, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.sessions.GetRecent(ctx, limit)
}

func (s *SessionService) fail(ctx context.Context, session *model.MarkingSession, message string) {
	session.Status = model.SessionFailed
	session.Message = message
	s.save(ctx, session)
	s.broadcast(session.ID, EventSessionError, map[string]string{"message": message})
}

func (s *SessionService) save(ctx context.Context, session *model.MarkingSession) {
	if err := s.sessions.Update(ctx, session); err != nil {
		s.logger.Error("session update failed", "sessionId", session.ID, "error", err)
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		s.logger.Warn("session cache write failed", "sessionId", session.ID, "error", err)
	}
}

func (s *SessionService) broadcast(sessionID, msgType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToSession(sessionID, msgType, payload)
}
