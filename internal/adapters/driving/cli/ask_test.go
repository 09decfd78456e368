package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [video-id] [question]", askCmd.Use)
}

func TestAskCmd_HasInteractiveFlag(t *testing.T) {
	flag := askCmd.Flags().Lookup("interactive")
	assert.NotNil(t, flag)
	assert.Equal(t, "i", flag.Shorthand)
}

func TestAskCmd_AnswersWithSources(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "video-1", "What is this about?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "The video explains the topic in detail.")
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "video-1_chunk_0")
	assert.Contains(t, buf.String(), "00:00:05")
}

func TestAskCmd_NoSourcesOmitsSection(t *testing.T) {
	mocks, cleanup := setupTestServicesWith()
	defer cleanup()
	mocks.chat.answer = "I couldn't find any relevant information in the video content to answer your question."
	mocks.chat.sources = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "video-1", "Anything?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "Sources:")
}

func TestAskCmd_RequiresQuestionWithoutInteractive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "video-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "interactive")
}

func TestAskCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	oldService := chatService
	chatService = nil
	defer func() { chatService = oldService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "video-1", "question"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chat service not configured")
}
