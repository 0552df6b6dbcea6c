package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewChatMessage(t *testing.T) {
	userID := uuid.New()
	setID := uuid.New()

	msg, err := NewChatMessage(userID, setID, ChatRoleUser, "What is osmosis?")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if msg.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if msg.Role != ChatRoleUser {
		t.Errorf("Expected role %q, got %q", ChatRoleUser, msg.Role)
	}
	if msg.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if _, err := NewChatMessage(userID, setID, ChatRoleAssistant, "Osmosis is..."); err != nil {
		t.Errorf("Expected assistant role to be valid, got %v", err)
	}

	_, err = NewChatMessage(userID, setID, ChatRole("system"), "not persisted")
	if err != ErrInvalidChatRole {
		t.Errorf("Expected error %v, got %v", ErrInvalidChatRole, err)
	}

	_, err = NewChatMessage(userID, setID, ChatRoleUser, "")
	if err != ErrEmptyChatMessageContent {
		t.Errorf("Expected error %v, got %v", ErrEmptyChatMessageContent, err)
	}

	_, err = NewChatMessage(uuid.Nil, setID, ChatRoleUser, "question")
	if err != ErrEmptyChatMessageUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyChatMessageUserID, err)
	}
}

func TestNewStarredMessage(t *testing.T) {
	userID := uuid.New()
	setID := uuid.New()

	msg, err := NewStarredMessage(userID, setID, "Osmosis is diffusion of water.", "What is osmosis?", "Biology 101")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if msg.StudySetTitle != "Biology 101" {
		t.Errorf("Expected denormalized title %q, got %q", "Biology 101", msg.StudySetTitle)
	}

	_, err = NewStarredMessage(userID, setID, "", "question", "title")
	if err != ErrEmptyStarredMessageContent {
		t.Errorf("Expected error %v, got %v", ErrEmptyStarredMessageContent, err)
	}

	_, err = NewStarredMessage(userID, setID, "answer", "", "title")
	if err != ErrEmptyStarredQuestion {
		t.Errorf("Expected error %v, got %v", ErrEmptyStarredQuestion, err)
	}
}
