package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

func TestSummarizeCmd_Use(t *testing.T) {
	assert.Equal(t, "summarize [file]", summarizeCmd.Use)
}

func TestSummarizeCmd_HasStyleFlag(t *testing.T) {
	flag := summarizeCmd.Flags().Lookup("style")
	assert.NotNil(t, flag)
	assert.Equal(t, "s", flag.Shorthand)
	assert.Equal(t, "comprehensive", flag.DefValue)
}

func TestSummarizeCmd_FromStdin(t *testing.T) {
	mocks, cleanup := setupTestServicesWith()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("A transcript to summarise."))
	rootCmd.SetArgs([]string{"summarize"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "A concise summary.")
	assert.Equal(t, domain.StyleComprehensive, mocks.summary.lastStyle)
	assert.Equal(t, "default", mocks.summary.lastOwner)
}

func TestSummarizeCmd_StyleFlag(t *testing.T) {
	mocks, cleanup := setupTestServicesWith()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("A transcript."))
	rootCmd.SetArgs([]string{"summarize", "--style", "bullet"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		summarizeStyle = "comprehensive"
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.StyleBullet, mocks.summary.lastStyle)
}

func TestSummarizeCmd_OwnerFlag(t *testing.T) {
	mocks, cleanup := setupTestServicesWith()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("A transcript."))
	rootCmd.SetArgs([]string{"summarize", "--owner", "alice"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		summarizeOwner = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "alice", mocks.summary.lastOwner)
}

func TestSummarizeCmd_UnknownStyleFallsBack(t *testing.T) {
	mocks, cleanup := setupTestServicesWith()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("A transcript."))
	rootCmd.SetArgs([]string{"summarize", "--style", "haiku"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		summarizeStyle = "comprehensive"
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, domain.StyleComprehensive, mocks.summary.lastStyle)
}

func TestSummarizeCmd_EmptyTranscript(t *testing.T) {
	mocks, cleanup := setupTestServicesWith()
	defer cleanup()
	mocks.summary.err = domain.ErrEmptyTranscript

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("   "))
	rootCmd.SetArgs([]string{"summarize"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestSummarizeCmd_MissingCredential(t *testing.T) {
	mocks, cleanup := setupTestServicesWith()
	defer cleanup()
	mocks.summary.err = domain.ErrNoCredential

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("A transcript."))
	rootCmd.SetArgs([]string{"summarize"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "credentials set")
}

func TestSummarizeCmd_GenerationFailure(t *testing.T) {
	mocks, cleanup := setupTestServicesWith()
	defer cleanup()
	mocks.summary.err = domain.ErrGenerationFailed

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader("A transcript."))
	rootCmd.SetArgs([]string{"summarize"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "summarisation failed")
}
