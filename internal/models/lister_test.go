package models

import "testing"

func TestNewLister(t *testing.T) {
	lister := NewLister("test-key")
	if lister == nil {
		t.Fatal("NewLister returned nil")
	}
	if lister.apiKey != "test-key" {
		t.Errorf("Expected api key 'test-key', got '%s'", lister.apiKey)
	}
}

func TestListAvailableModelsRequiresKey(t *testing.T) {
	lister := NewLister("")
	if err := lister.ListAvailableModels(); err == nil {
		t.Error("Expected error without API key")
	}
}
