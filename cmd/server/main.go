package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	strmetrics "github.com/baditaflorin/go_string_metrics"
	"github.com/baditaflorin/go_string_metrics/internal/adapters/logger"
	"github.com/baditaflorin/go_string_metrics/internal/adapters/normalizer"
	"github.com/baditaflorin/go_string_metrics/internal/warmup"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	// The engine core carries no internal locking; fasthttp handlers run
	// concurrently, so every engine access goes through engineMu.
	engineMu sync.Mutex
	eng      *strmetrics.Engine

	log l.Logger
)

// Request represents a comparison request.
type Request struct {
	Metric  string   `json:"metric"`
	Source  string   `json:"source,omitempty"`
	Target  string   `json:"target,omitempty"`
	Sources []string `json:"sources,omitempty"`
	Targets []string `json:"targets,omitempty"`
	// Mode selects the execution mode on /compare ("default", "batch" or
	// "pairwise"). The /batch and /pairwise endpoints fix their own mode.
	Mode string `json:"mode,omitempty"`
	// Summary omits the algorithm-specific raw payload from results.
	Summary bool `json:"summary,omitempty"`
	// Normalize holds the normalization flag combination applied to every
	// input before comparison (empty = none).
	Normalize string `json:"normalize,omitempty"`
}

// Response represents a single comparison response.
type Response struct {
	Metric  string      `json:"metric"`
	Source  string      `json:"source"`
	Target  string      `json:"target"`
	Score   float64     `json:"score"`
	Raw     interface{} `json:"raw,omitempty"`
	Elapsed string      `json:"elapsed,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	timing := flag.Bool("timing", false, "Capture per-pair timing on results")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	var err error
	log, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting string metrics HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	initEngine(*timing, *warmUp)

	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	log.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		log.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// createLogger builds the process logger, writing to a file when configured.
func createLogger(path string) (l.Logger, error) {
	output := os.Stdout
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		output = f
	}
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  true,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}

// initEngine builds the shared engine and optionally warms the process.
func initEngine(timing, warmUp bool) {
	opts := []strmetrics.Option{strmetrics.WithLogger(log)}
	if timing {
		opts = append(opts, strmetrics.WithTiming())
	}

	var err error
	eng, err = strmetrics.New(opts...)
	if err != nil {
		log.Error("Failed to initialize engine", "error", err)
		os.Exit(1)
	}

	if warmUp {
		mgr := warmup.NewManager(logger.FromExisting(log), warmup.DefaultConfig())
		mgr.RegisterNormalizer(normalizer.NewDefault())
		if err := mgr.WarmUp(context.Background()); err != nil {
			log.Warn("Warmup failed", "error", err)
		}
	}

	log.Info("Engine initialized", "metrics", eng.Metrics())
}

// requestHandler routes requests and logs their outcome.
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "StringMetricsServer")

	switch string(ctx.Path()) {
	case "/health":
		handleHealth(ctx)
	case "/metrics":
		handleMetrics(ctx)
	case "/compare":
		handleRun(ctx, strmetrics.ModeDefault)
	case "/batch":
		handleRun(ctx, strmetrics.ModeBatch)
	case "/pairwise":
		handleRun(ctx, strmetrics.ModePairwise)
	case "/cache/clear":
		handleCacheClear(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	log.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealth reports process status with pool and cache counters.
func handleHealth(ctx *fasthttp.RequestCtx) {
	engineMu.Lock()
	cacheStats := eng.CacheStats()
	poolStats := eng.PoolStats()
	engineMu.Unlock()

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
		"cache": map[string]interface{}{
			"hits":    cacheStats.Hits,
			"misses":  cacheStats.Misses,
			"entries": cacheStats.Entries,
		},
		"pool": map[string]interface{}{
			"acquires": poolStats.Acquires,
			"releases": poolStats.Releases,
			"hits":     poolStats.Hits,
			"misses":   poolStats.Misses,
		},
	})
}

// handleMetrics lists the registered metric identifiers.
func handleMetrics(ctx *fasthttp.RequestCtx) {
	engineMu.Lock()
	names := eng.Metrics()
	engineMu.Unlock()

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{"metrics": names})
}

// handleCacheClear drops every memoized outcome.
func handleCacheClear(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed, use POST")
		return
	}

	engineMu.Lock()
	eng.ClearCache()
	engineMu.Unlock()

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{"status": "cleared"})
}

// handleRun executes a comparison in the given mode.
func handleRun(ctx *fasthttp.RequestCtx, mode strmetrics.Mode) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed, use POST")
		return
	}

	var req Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.Metric == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Missing metric")
		return
	}

	if req.Mode != "" {
		parsed, err := strmetrics.ParseMode(req.Mode)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			writeJSONError(ctx, err.Error())
			return
		}
		if mode != strmetrics.ModeDefault && parsed != mode {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			writeJSONError(ctx, "Mode conflicts with endpoint")
			return
		}
		mode = parsed
	}

	sources, targets := req.Sources, req.Targets
	if len(sources) == 0 && req.Source != "" {
		sources = []string{req.Source}
	}
	if len(targets) == 0 && req.Target != "" {
		targets = []string{req.Target}
	}
	if len(sources) == 0 || len(targets) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Missing source/target texts")
		return
	}

	if req.Normalize != "" {
		n, err := normalizer.ForFlags(req.Normalize)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			writeJSONError(ctx, err.Error())
			return
		}
		sources = normalizeAll(n, sources)
		targets = normalizeAll(n, targets)
	}

	engineMu.Lock()
	cmp, err := eng.Comparator(req.Metric, strmetrics.Sequence(sources...), strmetrics.Sequence(targets...))
	if err == nil {
		err = cmp.Run(mode)
	}
	var results []strmetrics.Result
	if err == nil {
		results, err = cmp.Results()
	}
	engineMu.Unlock()

	if err != nil {
		status := fasthttp.StatusInternalServerError
		switch {
		case errors.Is(err, strmetrics.ErrUnknownMetric),
			errors.Is(err, strmetrics.ErrLengthMismatch),
			errors.Is(err, strmetrics.ErrInvalidMode):
			status = fasthttp.StatusBadRequest
		}
		ctx.SetStatusCode(status)
		writeJSONError(ctx, err.Error())
		return
	}

	responses := make([]Response, len(results))
	for i, r := range results {
		if req.Summary {
			r = r.Summary()
		}
		responses[i] = Response{
			Metric: r.Metric,
			Source: r.Source,
			Target: r.Target,
			Score:  r.Score,
			Raw:    r.Raw,
		}
		if r.Elapsed > 0 {
			responses[i].Elapsed = r.Elapsed.String()
		}
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	if len(responses) == 1 && mode == strmetrics.ModeDefault {
		writeJSONResponse(ctx, responses[0])
		return
	}
	writeJSONResponse(ctx, map[string]interface{}{"results": responses})
}

func normalizeAll(n *normalizer.FlagNormalizer, texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}

// writeJSONResponse encodes v through a pooled buffer to avoid per-request
// allocations.
func writeJSONResponse(ctx *fasthttp.RequestCtx, v interface{}) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := json.NewEncoder(buf)
	if err := enc.Encode(v); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"encoding failure"}`)
		return
	}
	ctx.SetBody(buf.Bytes())
}

// writeJSONError writes an ErrorResponse body.
func writeJSONError(ctx *fasthttp.RequestCtx, msg string) {
	writeJSONResponse(ctx, ErrorResponse{Error: msg})
}
