package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads prompt templates from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded
// defaults.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor. A filesystem watcher invalidates the
// cache when a prompt file is edited, so changes take effect without a
// restart (useful in the long-running chat session).
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	watcher   *fsnotify.Watcher
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for
// new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptAnswerSystem: `You are a helpful AI assistant with access to a knowledge base.
Use the provided context to answer questions accurately and concisely.
If the context doesn't contain relevant information, say so clearly.
Always cite which sources you used in your answer.`,

	driven.PromptAnswerWithContext: `Context from knowledge base:

%s

---

Question: %s

Please answer based on the context provided above.`,

	driven.PromptAnswerNoContext: `Question: %s

Note: No relevant context was found in the knowledge base. Please answer
based on your general knowledge and mention that this is not from the
knowledge base.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.askdocs/prompts/.
//
// The constructor does not perform any I/O - directory creation, file
// writes, and watcher setup happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".askdocs", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory, defaults, and watcher exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
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

// Close stops the filesystem watcher.
func (s *PromptStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}

// initialise creates the prompt directory, default files, and watcher.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
		return
	}

	s.startWatcher()
}

// startWatcher invalidates cached prompts when their files change.
// Watcher failure is not fatal; edits then require a restart.
func (s *PromptStore) startWatcher() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	if err := watcher.Add(s.promptDir); err != nil {
		watcher.Close()
		return
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				name := strings.TrimSuffix(filepath.Base(event.Name), ".txt")
				s.mu.Lock()
				delete(s.cache, name)
				s.mu.Unlock()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# AskDocs Prompts

This directory contains customisable prompts used when answering questions.

## Files

- ` + "`answer_system.txt`" + ` - System prompt framing the assistant
- ` + "`answer_with_context.txt`" + ` - Wraps retrieved context and the question
- ` + "`answer_no_context.txt`" + ` - Used when no relevant context was found

## Customisation

Edit any file to customise behaviour. Changes take effect on the next
question, including inside a running chat session.

## Format Placeholders

Prompts use Go fmt placeholders:
- ` + "`answer_with_context.txt`" + ` takes two ` + "`%s`" + ` values: context, question
- ` + "`answer_no_context.txt`" + ` takes one ` + "`%s`" + ` value: the question

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
