package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/recap-labs/recap-cli/internal/core/ports/driven"
	"github.com/recap-labs/recap-cli/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk, with a
// fallback to embedded defaults.
//
// The store initialises lazily: the prompt directory and default files are
// only created on first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// defaultPrompts contains embedded default prompts, written out as
// editable files on first use. Summary prompts carry two sections split by
// driven.PromptSectionSeparator: the system instruction, then the user
// template with a %s placeholder for the transcript.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptChatSystem: `You are a helpful assistant that answers questions about video content.
Use the following context from the video to answer the user's question:

%s

If the context doesn't contain enough information to answer the question, say so.
Be concise but informative.`,

	driven.PromptSummaryPrefix + "comprehensive": "You are an expert content summarizer. Create a comprehensive summary that captures all key points, main arguments, and important details from the transcript. Focus on accuracy and completeness while maintaining readability." +
		driven.PromptSectionSeparator + "Please provide a comprehensive summary of this video transcript:\n\n%s",

	driven.PromptSummaryPrefix + "bullet": "You are an expert content summarizer. Create a bullet-point summary that highlights the main points and key takeaways from the transcript. Use clear, concise bullet points." +
		driven.PromptSectionSeparator + "Please provide a bullet-point summary of this video transcript:\n\n%s",

	driven.PromptSummaryPrefix + "insights": "You are an expert content analyst. Extract the most important insights, key learnings, and actionable takeaways from the transcript. Focus on what's most valuable for the audience." +
		driven.PromptSectionSeparator + "Please extract key insights and learnings from this video transcript:\n\n%s",

	driven.PromptSummaryPrefix + "timeline": "You are an expert content organizer. Create a chronological timeline of events, topics, or points discussed in the transcript. Organize information in a logical flow." +
		driven.PromptSectionSeparator + "Please create a timeline summary of this video transcript:\n\n%s",

	driven.PromptSummaryPrefix + "qa": "You are an expert content analyst. Create a Q&A format summary by identifying the main questions or topics addressed in the transcript and providing clear answers." +
		driven.PromptSectionSeparator + "Please create a Q&A summary of this video transcript:\n\n%s",

	driven.PromptSummaryPrefix + "brief": "You are an expert content summarizer. Create a brief, concise summary that captures the essence of the transcript in just a few sentences. Focus on the core message." +
		driven.PromptSectionSeparator + "Please provide a brief summary of this video transcript:\n\n%s",
}

// NewPromptStore creates a new file-based prompt store. If promptDir is
// empty, it defaults to ~/.recap/prompts.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".recap", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name. The first call
// creates the prompt directory and default files; subsequent calls serve
// from cache until Reload.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Watch starts a filesystem watcher that reloads the cache whenever a
// prompt file changes, so long-running sessions pick up edits without a
// restart. Stop with Close.
func (s *PromptStore) Watch() error {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return s.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := watcher.Add(s.promptDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch prompt directory: %w", err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 &&
					strings.HasSuffix(event.Name, ".txt") {
					logger.Debug("prompt file changed: %s", event.Name)
					s.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("prompt watcher: %v", err)
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the watcher if one is running.
func (s *PromptStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

// initialise creates the prompt directory and writes default files that
// do not exist yet.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}
}

// loadFromFile reads a prompt file from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt file %q is empty", path)
	}
	return prompt, nil
}
