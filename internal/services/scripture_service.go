package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fellowshipconnect/server/pkg/logger"
)

const (
	defaultScriptureBaseURL = "https://bible-api.com"
	scriptureTimeout        = 5 * time.Second
)

// curatedReferences rotate through the daily verse and seed the random pick.
var curatedReferences = []string{
	"john 3:16",
	"philippians 4:13",
	"jeremiah 29:11",
	"romans 8:28",
	"psalm 23:1",
	"proverbs 3:5-6",
	"isaiah 40:31",
	"matthew 11:28",
	"joshua 1:9",
	"psalm 46:1",
	"galatians 5:22-23",
	"hebrews 11:1",
	"2 timothy 1:7",
	"1 corinthians 13:4-7",
	"psalm 119:105",
}

// fallbackVerse is served whenever the upstream API cannot be reached, so the
// endpoint never surfaces an upstream failure.
var fallbackVerse = Verse{
	Reference: "John 3:16",
	Text: "For God so loved the world, that he gave his only begotten Son, " +
		"that whosoever believeth in him should not perish, but have everlasting life.",
	Translation: "KJV",
}

// Verse is the scripture payload returned to clients.
type Verse struct {
	Reference   string `json:"reference"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

type bibleAPIResponse struct {
	Reference       string `json:"reference"`
	Text            string `json:"text"`
	TranslationName string `json:"translation_name"`
}

// ScriptureOption customises ScriptureService behaviour.
type ScriptureOption func(*ScriptureService)

// WithScriptureHTTPClient injects the HTTP client used against the upstream API.
func WithScriptureHTTPClient(client *http.Client) ScriptureOption {
	return func(s *ScriptureService) {
		if client != nil {
			s.client = client
		}
	}
}

// WithScriptureBaseURL overrides the upstream API base URL.
func WithScriptureBaseURL(baseURL string) ScriptureOption {
	return func(s *ScriptureService) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithScriptureClock injects a custom clock primarily for testing.
func WithScriptureClock(clock func() time.Time) ScriptureOption {
	return func(s *ScriptureService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// ScriptureService proxies a public bible API with a static fallback. Lookup
// failures degrade to the fallback verse rather than erroring.
type ScriptureService struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
	log     *zap.Logger
}

// NewScriptureService constructs a ScriptureService.
func NewScriptureService(opts ...ScriptureOption) *ScriptureService {
	service := &ScriptureService{
		client:  &http.Client{Timeout: scriptureTimeout},
		baseURL: defaultScriptureBaseURL,
		now:     time.Now,
		log:     logger.WithModule("scripture"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Daily returns the verse of the day, rotating through the curated list by
// day of year.
func (s *ScriptureService) Daily(ctx context.Context) *Verse {
	reference := curatedReferences[s.now().YearDay()%len(curatedReferences)]
	return s.fetch(ctx, reference)
}

// Random returns a randomly chosen curated verse.
func (s *ScriptureService) Random(ctx context.Context) *Verse {
	reference := curatedReferences[rand.Intn(len(curatedReferences))]
	return s.fetch(ctx, reference)
}

func (s *ScriptureService) fetch(ctx context.Context, reference string) *Verse {
	ctx = ensureContext(ctx)

	verse, err := s.lookup(ctx, reference)
	if err != nil {
		s.log.Warn("scripture lookup failed, serving fallback",
			zap.String("reference", reference), zap.Error(err))
		fallback := fallbackVerse
		return &fallback
	}
	return verse
}

func (s *ScriptureService) lookup(ctx context.Context, reference string) (*Verse, error) {
	endpoint := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(reference))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("scripture service: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scripture service: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scripture service: upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("scripture service: read body: %w", err)
	}

	var payload bibleAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("scripture service: decode body: %w", err)
	}
	if strings.TrimSpace(payload.Text) == "" {
		return nil, errors.New("scripture service: empty verse text")
	}

	return &Verse{
		Reference:   strings.TrimSpace(payload.Reference),
		Text:        strings.TrimSpace(payload.Text),
		Translation: strings.TrimSpace(payload.TranslationName),
	}, nil
}
