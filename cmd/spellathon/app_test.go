package main

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"spellathon/internal/game"
	"spellathon/internal/models"
)

type recordingSpeaker struct {
	stops int
}

func (s *recordingSpeaker) Speak(text string) {}

func (s *recordingSpeaker) Stop() { s.stops++ }

type failingStore struct{}

func (failingStore) Update(*models.User) error { return errors.New("disk failure") }

func (failingStore) Commit() error { return nil }

type workingStore struct{}

func (workingStore) Update(*models.User) error { return nil }

func (workingStore) Commit() error { return nil }

type quietObserver struct{}

func (quietObserver) SessionUpdated(definition, score, highScore string, last game.Outcome) {}

func (quietObserver) SessionEnded(score, highScore string, newHighScore bool, attempts []game.Attempt) {
}

func newSessionApp(speaker *recordingSpeaker, input string) *App {
	return &App{
		speaker: speaker,
		reader:  bufio.NewReader(strings.NewReader(input)),
		logger:  zap.NewNop(),
	}
}

func oneWordSession(store game.ScoreStore, speaker game.Speaker) *game.Session {
	list := models.NewWordList("animals")
	list.AddWord(models.NewWord("cat", "", "", ""))
	user := models.NewUser("anna", "Anna Jones", "hash", "", "")
	return game.NewSession(list, user, store, speaker, quietObserver{}, zap.NewNop())
}

func TestRunSessionStopsSpeakerAfterCompletion(t *testing.T) {
	speaker := &recordingSpeaker{}
	app := newSessionApp(speaker, "cat\n")

	app.runSession(oneWordSession(workingStore{}, speaker))

	if speaker.stops == 0 {
		t.Error("speaker was not stopped after the session ended")
	}
}

func TestRunSessionStopsSpeakerOnPersistFailure(t *testing.T) {
	speaker := &recordingSpeaker{}
	app := newSessionApp(speaker, "cat\n")

	app.runSession(oneWordSession(failingStore{}, speaker))

	if speaker.stops == 0 {
		t.Error("speaker left running after a failed save")
	}
}

func TestRunSessionStopsSpeakerOnEarlyQuit(t *testing.T) {
	speaker := &recordingSpeaker{}
	app := newSessionApp(speaker, "!quit\n")

	app.runSession(oneWordSession(workingStore{}, speaker))

	if speaker.stops == 0 {
		t.Error("speaker left running after quitting early")
	}
}
