// Package game implements one round of spelling practice: a shuffled
// word queue, the running score, and the record of attempts.
package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spellathon/internal/models"
)

// State tracks the session lifecycle. Sessions never re-enter an
// earlier state.
type State int

const (
	NotStarted State = iota
	InProgress
	Ended
)

// Outcome reports how the last submission compared to its target.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeWrong
)

// Attempt records one submitted answer for one presented word.
type Attempt struct {
	Word       string
	Submission string
}

// Speaker voices words and sentences. Speaking is fire-and-forget; Stop
// cancels anything still in flight.
type Speaker interface {
	Speak(text string)
	Stop()
}

// Observer receives front-end notifications as the session progresses.
// Scores arrive pre-formatted as "<correct>/<total words in list>".
type Observer interface {
	SessionUpdated(definition, score, highScore string, last Outcome)
	SessionEnded(score, highScore string, newHighScore bool, attempts []Attempt)
}

// ScoreStore persists the user's updated score history when the session
// ends. Satisfied by *repository.UserManager.
type ScoreStore interface {
	Update(user *models.User) error
	Commit() error
}

// Session orchestrates one playthrough of a word list for one user.
// Callers must reject empty word lists before constructing a session.
// Sessions are not safe for concurrent use; the front end drives them
// from a single goroutine.
type Session struct {
	id       string
	list     *models.WordList
	user     *models.User
	store    ScoreStore
	speaker  Speaker
	observer Observer
	logger   *zap.Logger

	state        State
	queue        []string
	current      string
	score        int
	highScore    int
	newHighScore bool
	last         Outcome

	attempts   []Attempt
	attemptIdx map[string]int
}

// NewSession creates a session over the given word list for the given
// user. The high-score baseline is captured here, before play begins.
func NewSession(list *models.WordList, user *models.User, store ScoreStore, speaker Speaker, observer Observer, logger *zap.Logger) *Session {
	return &Session{
		id:         uuid.New().String(),
		list:       list,
		user:       user,
		store:      store,
		speaker:    speaker,
		observer:   observer,
		logger:     logger,
		state:      NotStarted,
		highScore:  user.HighScore(list.Name),
		attemptIdx: make(map[string]int),
	}
}

// ID returns the session's identifier, used to correlate log entries
// and progress reports.
func (s *Session) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	return s.score
}

// NewHighScore reports whether this session has beaten the user's
// previous best for the list. Once set it stays set.
func (s *Session) NewHighScore() bool {
	return s.newHighScore
}

// Attempts returns the recorded attempts in presentation order.
func (s *Session) Attempts() []Attempt {
	return s.attempts
}

// Start shuffles the word list into the working queue and presents the
// first word. Calling Start on anything but a fresh session is a no-op.
func (s *Session) Start() {
	if s.state != NotStarted {
		return
	}

	s.queue = s.list.Keys()
	rand.Shuffle(len(s.queue), func(i, j int) {
		s.queue[i], s.queue[j] = s.queue[j], s.queue[i]
	})
	s.state = InProgress
	s.last = OutcomeNone

	s.logger.Info("session started",
		zap.String("session_id", s.id),
		zap.String("user", s.user.Username),
		zap.String("list", s.list.Name),
		zap.Int("words", len(s.queue)),
	)

	if err := s.next(); err != nil {
		s.logger.Error("failed to finish session", zap.String("session_id", s.id), zap.Error(err))
	}
}

// Check records the submission for the current word and scores it by
// exact, case-sensitive comparison, then advances to the next word.
// Returns whether the submission matched. Calls after the session has
// ended report false and change nothing.
func (s *Session) Check(submission string) (bool, error) {
	if s.state != InProgress {
		return false, nil
	}

	s.recordAttempt(s.current, submission)

	correct := submission == s.current
	if correct {
		s.score++
		s.last = OutcomeCorrect
		if s.score > s.highScore {
			s.highScore = s.score
			s.newHighScore = true
		}
	} else {
		s.last = OutcomeWrong
	}

	return correct, s.next()
}

// SpeakWord voices the current word again, cancelling any in-flight
// speech first.
func (s *Session) SpeakWord() {
	s.speaker.Stop()
	s.speaker.Speak(s.current)
}

// SpeakExample voices the current word's example sentence, cancelling
// any in-flight speech first.
func (s *Session) SpeakExample() {
	if word, ok := s.list.GetWord(s.current); ok {
		s.speaker.Stop()
		s.speaker.Speak(word.Example)
	}
}

// End finishes the session: the final score is appended to the user's
// history for this list, the user record is persisted and committed, and
// the front end gets the summary. Exiting early ends the session the
// same way. Safe to call more than once; only the first call persists.
func (s *Session) End() error {
	if s.state == Ended {
		return nil
	}
	s.state = Ended

	s.user.AddScore(s.list.Name, s.score)
	if err := s.store.Update(s.user); err != nil {
		return fmt.Errorf("failed to persist session score: %w", err)
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("failed to commit session score: %w", err)
	}

	s.logger.Info("session ended",
		zap.String("session_id", s.id),
		zap.String("user", s.user.Username),
		zap.String("list", s.list.Name),
		zap.Int("score", s.score),
		zap.Bool("new_high_score", s.newHighScore),
	)

	s.observer.SessionEnded(s.formatScore(s.score), s.formatScore(s.highScore), s.newHighScore, s.attempts)
	return nil
}

// next pops the next word off the shuffled queue, or ends the session
// when the queue is exhausted.
func (s *Session) next() error {
	if len(s.queue) == 0 {
		return s.End()
	}

	s.current = s.queue[len(s.queue)-1]
	s.queue = s.queue[:len(s.queue)-1]
	s.speaker.Speak(s.current)

	definition := ""
	if word, ok := s.list.GetWord(s.current); ok {
		definition = word.Definition
	}
	s.observer.SessionUpdated(definition, s.formatScore(s.score), s.formatScore(s.highScore), s.last)
	return nil
}

// recordAttempt stores the submission for a word, overwriting any prior
// attempt for that exact word while keeping presentation order.
func (s *Session) recordAttempt(word, submission string) {
	if i, seen := s.attemptIdx[word]; seen {
		s.attempts[i].Submission = submission
		return
	}
	s.attemptIdx[word] = len(s.attempts)
	s.attempts = append(s.attempts, Attempt{Word: word, Submission: submission})
}

func (s *Session) formatScore(score int) string {
	return fmt.Sprintf("%d/%d", score, s.list.Len())
}
