package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"
)

type Logger interface {
	Error(msg string, args ...any)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {

	// TenantKey and TenantValue set a tenant header for multi-tenant Loki setups.
	// Both are optional.
	TenantKey   string
	TenantValue string

	// Url of the push endpoint, e.g. https://example.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of lines sent in one request.
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time a line waits in the batch.
	BatchMaxWait time.Duration `validate:"gte=1"`

	// Labels are attached to the pushed stream.
	Labels map[string]string

	// Basic auth, optional.
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 500
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

// Pusher batches log lines and ships them to Loki, one stream per level.
type Pusher struct {
	config    *Config
	ctx       context.Context
	cancel    context.CancelFunc
	client    HTTPClient
	quit      chan struct{}
	stopOnce  sync.Once
	entry     chan LogEntry
	waitGroup sync.WaitGroup
	batch     map[string][]streamValue
	batchSize int
	logger    Logger
}

type LogEntry struct {
	Time      time.Time         `json:"-"`
	Level     string            `json:"-"`
	Message   string            `json:"msg"`
	Caller    string            `json:"caller,omitempty"`
	ErrorType string            `json:"error_type,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values []streamValue     `json:"values"`
}

type streamValue []string

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {
	return NewWithClient(ctx, cfg, logger, &http.Client{Timeout: 10 * time.Second})
}

func NewWithClient(ctx context.Context, cfg Config, logger Logger, client HTTPClient) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid loki config")
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config: &cfg,
		ctx:    ctx,
		cancel: cancel,
		client: client,
		quit:   make(chan struct{}),
		entry:  make(chan LogEntry, cfg.BatchMaxSize),
		batch:  map[string][]streamValue{},
		logger: logger,
	}

	p.waitGroup.Add(1)
	go p.run()
	return p, nil
}

// Push queues a line. Lines pushed after Stop are dropped.
func (p *Pusher) Push(e LogEntry) error {
	select {
	case <-p.quit:
		return errors.New("loki pusher stopped")
	default:
	}

	select {
	case p.entry <- e:
		return nil
	case <-p.quit:
		return errors.New("loki pusher stopped")
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Stop flushes the pending batch and stops the pusher.
func (p *Pusher) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.waitGroup.Wait()
		p.cancel()
	})
}

func (p *Pusher) run() {
	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	trySendBatch := func() {
		if err := p.send(); err != nil {
			p.logger.Error("failed to send logs", "error", err, "lines", p.batchSize)
		}
		clear(p.batch)
		p.batchSize = 0
	}

	defer func() {
	drain:
		for {
			select {
			case entry := <-p.entry:
				p.add(entry)
			default:
				break drain
			}
		}
		if p.batchSize > 0 {
			trySendBatch()
		}
		p.waitGroup.Done()
	}()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.quit:
			return
		case entry := <-p.entry:
			p.add(entry)
			if p.batchSize >= p.config.BatchMaxSize {
				trySendBatch()
			}
		case <-ticker.C:
			if p.batchSize > 0 {
				trySendBatch()
			}
		}
	}
}

func (p *Pusher) add(entry LogEntry) {
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	at := entry.Time
	if at.IsZero() {
		at = time.Now()
	}
	level := entry.Level
	if level == "" {
		level = "unknown"
	}
	p.batch[level] = append(p.batch[level], streamValue{strconv.FormatInt(at.UnixNano(), 10), string(line)})
	p.batchSize++
}

// streams returns the batch as one stream per level, ordered by level name.
func (p *Pusher) streams() []stream {
	levels := make([]string, 0, len(p.batch))
	for level := range p.batch {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	streams := make([]stream, 0, len(levels))
	for _, level := range levels {
		labels := make(map[string]string, len(p.config.Labels)+1)
		for k, v := range p.config.Labels {
			labels[k] = v
		}
		labels["level"] = level
		streams = append(streams, stream{Stream: labels, Values: p.batch[level]})
	}
	return streams
}

func (p *Pusher) send() error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(pushRequest{Streams: p.streams()}); err != nil {
		return errors.Wrap(err, "failed to encode batch")
	}

	if err := gz.Close(); err != nil {
		return err
	}

	// the batch is still flushed on Stop, after ctx may be cancelled
	req, err := http.NewRequestWithContext(context.WithoutCancel(p.ctx), http.MethodPost, p.config.Url, buf)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if len(p.config.TenantKey) > 0 {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}

	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusNoContent {
		return errors.Errorf("received unexpected response code from Loki: %s, body: %s", resp.Status, string(body))
	}

	return nil
}
